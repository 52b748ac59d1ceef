// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harshinii001/dataset-management/internal/merge"
	"github.com/harshinii001/dataset-management/internal/pipeline"
	"github.com/harshinii001/dataset-management/internal/prompts"
	"github.com/harshinii001/dataset-management/internal/session"
)

type runOptions struct {
	interactive bool
	strict      bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "dataset [category names...]",
		Short: "Merge, filter and split COCO annotation files",
		Long: `Merge every COCO annotation file found under folder_path into one dataset,
keep the annotations of the given category names, and split them per category
into training and validation sets.

Writes merged_annotations.json, supercategory_annotations.json,
train_annotations.json and val_annotations.json into the output directory.

A category named like a subcommand (init, validate, merge, select, split,
schema, version) is read as that subcommand. Put category names after "--"
to pass them through unchanged.`,
		Example: `  # Keep three categories, reading folder_path from ./folder_path.json
  dataset cookies_box_small_face soap coffee_bottle_top

  # Reproducible 70/30 split into a custom directory
  dataset soap --ratio 0.7 --seed 42 --output splits

  # Keep a category called "split"
  dataset -- split soap

  # Pick categories interactively
  dataset --interactive`,
		Args:    cobra.ArbitraryArgs,
		PreRunE: root.load(false),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runPipeline(cmd, sess, opts, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Choose categories from the merged annotations when none are given")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Also check every input file against the annotation schema")

	return cmd
}

func runPipeline(cmd *cobra.Command, sess *session.Context, opts *runOptions, names []string) error {
	cfg := sess.Config
	sess.Log.Info().Str("folder", cfg.FolderPath).Strs("inputs", names).Msg("starting run")

	runOpts := pipeline.Options{
		FolderPath: cfg.FolderPath,
		OutputDir:  cfg.OutputDir,
		Merge:      merge.Options{PrimaryCategoryID: cfg.PrimaryCategoryID},
		Categories: names,
		TrainRatio: cfg.TrainRatio,
		Rand:       newRand(cfg),
		Strict:     opts.strict,
	}
	if opts.interactive {
		runOpts.Choose = func(available []string) ([]string, error) {
			var selected []string
			if err := prompts.RunCategoryForm(&selected, available); err != nil {
				return nil, err
			}
			return selected, nil
		}
	}

	outcome, err := newPipeline(cmd, sess).Run(runOpts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	prompts.PrintResult(out, prompts.SplitFields(outcome.Split), "")
	fields := []prompts.ResultField{
		{Label: "Files", Value: fmt.Sprint(len(outcome.Files))},
		{Label: "Diagnostics", Value: fmt.Sprint(len(outcome.Report.Diagnostics))},
	}
	for _, path := range outcome.Written {
		fields = append(fields, prompts.ResultField{Label: "Wrote", Value: path})
	}
	prompts.PrintResult(out, fields, "Dataset prepared")
	return nil
}
