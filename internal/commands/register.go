// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

// Package commands contains all CLI command definitions.
package commands

import (
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/harshinii001/dataset-management/internal/config"
	"github.com/harshinii001/dataset-management/internal/merge"
	"github.com/harshinii001/dataset-management/internal/pipeline"
	"github.com/harshinii001/dataset-management/internal/session"
	"github.com/harshinii001/dataset-management/internal/split"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	getenv      func(string) string
	configPath  string
	output      string
	ratio       float64
	seed        uint64
	primary     int
	logLevel    string
	metricsFile string
}

// NewRootCmd creates and returns the root command for the CLI. getenv is used
// for configuration overrides.
func NewRootCmd(getenv func(string) string) *cobra.Command {
	opts := &rootOptions{getenv: getenv}

	rootCmd := newRunCmd(opts)
	rootCmd.SilenceUsage = true
	rootCmd.PersistentPostRunE = opts.writeMetrics

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", config.DefaultFileName, "Configuration file (JSON or YAML) with folder_path")
	pf.StringVarP(&opts.output, "output", "o", "", "Output directory (overrides output_dir)")
	pf.Float64Var(&opts.ratio, "ratio", split.DefaultTrainRatio, "Share of each category's annotations assigned to training")
	pf.Uint64Var(&opts.seed, "seed", 0, "Seed for the split shuffle (unset: non-deterministic)")
	pf.IntVar(&opts.primary, "primary-category", merge.DefaultPrimaryCategoryID, "Category id whose annotations are kept when merging")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after a successful run")

	rootCmd.AddCommand(
		newInitCmd(opts),
		newValidateCmd(opts),
		newMergeCmd(opts),
		newSelectCmd(opts),
		newSplitCmd(opts),
		newSchemaCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// load returns a PreRunE that resolves the session from the config file,
// the environment and the flags set on cmd.
func (o *rootOptions) load(configOptional bool) func(*cobra.Command, []string) error {
	return session.PreRunLoad(func(cmd *cobra.Command) session.Options {
		return session.Options{
			ConfigPath:     o.configPath,
			ConfigOptional: configOptional,
			Getenv:         o.getenv,
			LogOutput:      cmd.ErrOrStderr(),
			Override:       o.override(cmd),
		}
	})
}

// override applies the persistent flags the user set on cmd.
func (o *rootOptions) override(cmd *cobra.Command) func(*config.Config) {
	flags := cmd.Flags()
	return func(c *config.Config) {
		if flags.Changed("output") {
			c.OutputDir = o.output
		}
		if flags.Changed("ratio") {
			c.TrainRatio = o.ratio
		}
		if flags.Changed("seed") {
			seed := o.seed
			c.Seed = &seed
		}
		if flags.Changed("primary-category") {
			c.PrimaryCategoryID = o.primary
		}
		if flags.Changed("log-level") {
			c.LogLevel = o.logLevel
		}
	}
}

func (o *rootOptions) writeMetrics(cmd *cobra.Command, _ []string) error {
	if o.metricsFile == "" {
		return nil
	}
	sess := session.FromCommand(cmd)
	if sess == nil {
		return nil
	}
	return sess.Metrics.WriteFile(o.metricsFile)
}

func newPipeline(cmd *cobra.Command, sess *session.Context) *pipeline.Pipeline {
	return pipeline.New(sess.Log, sess.Metrics, cmd.OutOrStdout())
}

func newRand(cfg *config.Config) *rand.Rand {
	if cfg.Seed == nil {
		return nil
	}
	return split.NewRand(*cfg.Seed)
}
