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

func newMergeCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Validate and merge the annotation files into one document",
		Long: `Validate and merge every annotation file under folder_path into
merged_annotations.json. Image and annotation ids are renumbered across files
and only annotations of the primary category are kept.`,
		Example: `  # Merge keeping category id 1 of every file
  dataset merge

  # Keep category id 3 instead
  dataset merge --primary-category 3`,
		Args:    cobra.NoArgs,
		PreRunE: root.load(false),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runMerge(cmd, sess)
		},
	}
	return cmd
}

func runMerge(cmd *cobra.Command, sess *session.Context) error {
	cfg := sess.Config
	files, err := pipeline.Discover(cfg.FolderPath)
	if err != nil {
		return fmt.Errorf("discovering annotation files: %w", err)
	}

	p := newPipeline(cmd, sess)
	if _, err := p.Validate(files, false); err != nil {
		return err
	}
	merged, err := p.Merge(files, merge.Options{PrimaryCategoryID: cfg.PrimaryCategoryID}, cfg.OutputDir)
	if err != nil {
		return err
	}

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Files", Value: fmt.Sprint(len(files))},
		{Label: "Images", Value: fmt.Sprint(len(merged.Images))},
		{Label: "Annotations", Value: fmt.Sprint(len(merged.Annotations))},
		{Label: "Wrote", Value: p.Written()[0]},
	}, "")
	return nil
}
