// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/harshinii001/dataset-management/internal/coco"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of an input annotation file",
		Example: `  # Save the schema for editor validation
  dataset schema > coco.schema.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(coco.Schema())
		},
	}
}
