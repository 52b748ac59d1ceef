// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

package prompts

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/harshinii001/dataset-management/internal/split"
)

// RunCategoryForm lets the user pick which category names to keep. The
// choices are the names found in the merged annotations.
func RunCategoryForm(selected *[]string, available []string) error {
	if len(available) == 0 {
		return errors.New("no categories to choose from")
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Categories to keep").
				Description("Annotations of the selected categories go into the train/val split").
				Options(huh.NewOptions(available...)...).
				Validate(func(s []string) error {
					if len(s) == 0 {
						return errors.New("select at least one category")
					}
					return nil
				}).
				Value(selected),
		),
	).WithTheme(Theme()).Run()
}

// SplitFields summarizes a split for PrintResult.
func SplitFields(res *split.Result) []ResultField {
	fields := make([]ResultField, 0, len(res.Counts)+2)
	for _, c := range res.Counts {
		fields = append(fields, ResultField{
			Label: c.Name,
			Value: fmt.Sprintf("%d train / %d val", c.Train, c.Val),
		})
	}
	fields = append(fields,
		ResultField{Label: "Train images", Value: fmt.Sprint(len(res.Train.Images))},
		ResultField{Label: "Val images", Value: fmt.Sprint(len(res.Val.Images))},
	)
	return fields
}
