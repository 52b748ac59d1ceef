// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

package commands

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harshinii001/dataset-management/internal/pipeline"
	"github.com/harshinii001/dataset-management/internal/prompts"
	"github.com/harshinii001/dataset-management/internal/session"
	"github.com/harshinii001/dataset-management/internal/validate"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check annotation files for missing keys and dangling references",
		Long: `Check every annotation file under folder_path for missing images or
annotations sections, records without ids, duplicate image file names and
annotations pointing at unknown images. Findings are advisory: the command
succeeds whatever it reports.`,
		Example: `  # Validate the configured folder
  dataset validate

  # Include JSON Schema checks
  dataset validate --strict`,
		Args:    cobra.NoArgs,
		PreRunE: root.load(false),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runValidate(cmd, sess, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Also check every file against the annotation schema")

	return cmd
}

func runValidate(cmd *cobra.Command, sess *session.Context, strict bool) error {
	files, err := pipeline.Discover(sess.Config.FolderPath)
	if err != nil {
		return fmt.Errorf("discovering annotation files: %w", err)
	}

	report, err := newPipeline(cmd, sess).Validate(files, strict)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	prompts.PrintResult(out, []prompts.ResultField{
		{Label: "Files", Value: fmt.Sprint(report.Files)},
		{Label: "Images", Value: fmt.Sprint(report.Images)},
		{Label: "Annotations", Value: fmt.Sprint(report.Annotations)},
	}, "")

	if report.OK() {
		fmt.Fprintln(out, "\nNo problems found.") //nolint:errcheck
		return nil
	}

	counts := make(map[validate.Kind]int)
	for _, d := range report.Diagnostics {
		counts[d.Kind]++
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	fmt.Fprintln(out) //nolint:errcheck
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KIND\tCOUNT")
	for _, k := range kinds {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", k, counts[validate.Kind(k)])
	}
	return w.Flush()
}
