// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harshinii001/dataset-management/internal/coco"
	"github.com/harshinii001/dataset-management/internal/prompts"
	"github.com/harshinii001/dataset-management/internal/session"
)

func newSelectCmd(root *rootOptions) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "select [category names...]",
		Short: "Keep the annotations of the given category names",
		Long: `Filter a merged annotation file down to the annotations whose category
name is one of the arguments, and the images they reference. Writes
supercategory_annotations.json.`,
		Example: `  # Filter <output>/merged_annotations.json
  dataset select soap coffee_bottle_top

  # Filter another merged file
  dataset select soap --input merged.json --output filtered`,
		Args:    cobra.ArbitraryArgs,
		PreRunE: root.load(true),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runSelect(cmd, sess, input, args)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Merged annotation file (default <output>/merged_annotations.json)")

	return cmd
}

func runSelect(cmd *cobra.Command, sess *session.Context, input string, names []string) error {
	if input == "" {
		input = filepath.Join(sess.Config.OutputDir, coco.MergedFileName)
	}
	merged, err := coco.Load(input)
	if err != nil {
		return fmt.Errorf("failed to read merged annotations: %w", err)
	}

	p := newPipeline(cmd, sess)
	selected, err := p.Select(merged, names, sess.Config.OutputDir)
	if err != nil {
		return err
	}

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Annotations", Value: fmt.Sprint(len(selected.Annotations))},
		{Label: "Images", Value: fmt.Sprint(len(selected.Images))},
		{Label: "Wrote", Value: p.Written()[0]},
	}, "")
	return nil
}
