// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harshinii001/dataset-management/internal/config"
	"github.com/harshinii001/dataset-management/internal/prompts"
	"github.com/harshinii001/dataset-management/internal/session"
)

type initOptions struct {
	folder string
	force  bool
}

func newInitCmd(root *rootOptions) *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file",
		Long: `Write the configuration file read by the other commands. folder_path is
set from --folder; every other field takes its default unless the matching
flag (--output, --ratio, --seed, --primary-category, --log-level) is given.
The format follows the file extension: .yaml and .yml are YAML, anything else
is JSON.`,
		Example: `  # Create ./folder_path.json
  dataset init --folder ./annotations

  # Create a YAML config with a fixed seed
  dataset init --folder ./annotations --config pipeline.yaml --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.folder, "folder", "", "Folder holding the annotation files (required)")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing configuration file")
	_ = cmd.MarkFlagRequired("folder")

	return cmd
}

func runInit(cmd *cobra.Command, root *rootOptions, opts *initOptions) error {
	path := root.configPath
	if _, err := os.Stat(path); err == nil && !opts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.Default()
	cfg.FolderPath = opts.folder
	root.override(cmd)(&cfg)
	if err := cfg.ValidateResolved(); err != nil {
		return fmt.Errorf("%w: %v", session.ErrInvalidConfig, err)
	}
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	seed := "random"
	if cfg.Seed != nil {
		seed = strconv.FormatUint(*cfg.Seed, 10)
	}
	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Folder", Value: cfg.FolderPath},
		{Label: "Output", Value: cfg.OutputDir},
		{Label: "Train ratio", Value: strconv.FormatFloat(cfg.TrainRatio, 'g', -1, 64)},
		{Label: "Seed", Value: seed},
	}, "Configuration written to "+path)
	return nil
}
