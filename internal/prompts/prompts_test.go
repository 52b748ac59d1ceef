// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

package prompts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshinii001/dataset-management/internal/coco"
	"github.com/harshinii001/dataset-management/internal/split"
)

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	PrintResult(&buf, []ResultField{
		{Label: "Merged", Value: "outputfolder1/merged_annotations.json"},
	}, "Done")

	out := buf.String()
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "Merged:")
	assert.Contains(t, out, "outputfolder1/merged_annotations.json")
	assert.Contains(t, out, "Done")
}

func TestSplitFields(t *testing.T) {
	train := coco.New(nil)
	train.Images = []coco.Image{{ID: 1}, {ID: 2}}
	res := &split.Result{
		Train:  train,
		Val:    coco.New(nil),
		Counts: []split.CategoryCount{{Name: "soap", Train: 8, Val: 2}},
	}

	fields := SplitFields(res)
	require.Len(t, fields, 3)
	assert.Equal(t, ResultField{Label: "soap", Value: "8 train / 2 val"}, fields[0])
	assert.Equal(t, ResultField{Label: "Train images", Value: "2"}, fields[1])
	assert.Equal(t, ResultField{Label: "Val images", Value: "0"}, fields[2])
}

func TestRunCategoryForm_NoChoices(t *testing.T) {
	var selected []string
	assert.Error(t, RunCategoryForm(&selected, nil))
}
