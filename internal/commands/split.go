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

func newSplitCmd(root *rootOptions) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a filtered annotation file into train and val sets",
		Long: `Split the annotations of a filtered file per category into
train_annotations.json and val_annotations.json. Each category contributes
floor(count * ratio) shuffled annotations to training and the rest to
validation.`,
		Example: `  # Split <output>/supercategory_annotations.json 80/20
  dataset split

  # Reproducible 90/10 split
  dataset split --ratio 0.9 --seed 7`,
		Args:    cobra.NoArgs,
		PreRunE: root.load(true),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runSplit(cmd, sess, input)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Filtered annotation file (default <output>/supercategory_annotations.json)")

	return cmd
}

func runSplit(cmd *cobra.Command, sess *session.Context, input string) error {
	cfg := sess.Config
	if input == "" {
		input = filepath.Join(cfg.OutputDir, coco.SelectedFileName)
	}
	filtered, err := coco.Load(input)
	if err != nil {
		return fmt.Errorf("failed to read filtered annotations: %w", err)
	}

	p := newPipeline(cmd, sess)
	res, err := p.Split(filtered, cfg.TrainRatio, newRand(cfg), cfg.OutputDir)
	if err != nil {
		return err
	}

	fields := prompts.SplitFields(res)
	for _, path := range p.Written() {
		fields = append(fields, prompts.ResultField{Label: "Wrote", Value: path})
	}
	prompts.PrintResult(cmd.OutOrStdout(), fields, "")
	return nil
}
