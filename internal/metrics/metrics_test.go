// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.DocumentsTotal.Add(3)
	m.DiagnosticsTotal.WithLabelValues("duplicate_file_name").Inc()
	m.SplitAnnotations.WithLabelValues("soap", "train").Set(8)

	assert.InDelta(t, 3, testutil.ToFloat64(m.DocumentsTotal), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.DiagnosticsTotal.WithLabelValues("duplicate_file_name")), 1e-9)
	assert.InDelta(t, 8, testutil.ToFloat64(m.SplitAnnotations.WithLabelValues("soap", "train")), 1e-9)
}

func TestMetrics_Gatherer(t *testing.T) {
	m := New()
	m.MergedByCategory.WithLabelValues("soap").Set(2)
	m.MergedByCategory.WithLabelValues("coffee_bottle_top").Set(3)

	count, err := testutil.GatherAndCount(m.Gatherer(), "dataset_merged_annotations_by_category")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	families, err := m.Gatherer().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestMetrics_WriteFile(t *testing.T) {
	m := New()
	m.ImagesMerged.Set(4)

	path := filepath.Join(t.TempDir(), "dataset.prom")
	require.NoError(t, m.WriteFile(path))

	content, err := os.ReadFile(path) //nolint:gosec // test file path
	require.NoError(t, err)
	assert.Contains(t, string(content), "dataset_merged_images 4")
	assert.Contains(t, string(content), "# HELP dataset_documents_total")
}
