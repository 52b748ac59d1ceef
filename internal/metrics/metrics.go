// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

// Package metrics collects pipeline counters and exports them in the
// Prometheus text format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors of one pipeline run on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	DocumentsTotal      prometheus.Counter
	DiagnosticsTotal    *prometheus.CounterVec
	ImagesMerged        prometheus.Gauge
	AnnotationsMerged   prometheus.Gauge
	MergedByCategory    *prometheus.GaugeVec
	AnnotationsDropped  prometheus.Gauge
	AnnotationsSelected prometheus.Gauge
	ImagesSelected      prometheus.Gauge
	SplitAnnotations    *prometheus.GaugeVec
	SplitImages         *prometheus.GaugeVec
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		DocumentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dataset_documents_total",
			Help: "Annotation documents read from the input folder",
		}),
		DiagnosticsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dataset_diagnostics_total",
			Help: "Validation diagnostics by kind",
		}, []string{"kind"}),
		ImagesMerged: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dataset_merged_images",
			Help: "Images in the merged document",
		}),
		AnnotationsMerged: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dataset_merged_annotations",
			Help: "Annotations retained by the merge",
		}),
		MergedByCategory: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dataset_merged_annotations_by_category",
			Help: "Annotations retained by the merge per category name",
		}, []string{"category"}),
		AnnotationsDropped: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dataset_merge_dropped_annotations",
			Help: "Annotations outside the primary category dropped by the merge",
		}),
		AnnotationsSelected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dataset_selected_annotations",
			Help: "Annotations kept by category selection",
		}),
		ImagesSelected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dataset_selected_images",
			Help: "Images kept by category selection",
		}),
		SplitAnnotations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dataset_split_annotations",
			Help: "Annotations per category and subset after the split",
		}, []string{"category", "subset"}),
		SplitImages: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dataset_split_images",
			Help: "Images per subset after the split",
		}, []string{"subset"}),
	}

	reg.MustRegister(
		m.DocumentsTotal,
		m.DiagnosticsTotal,
		m.ImagesMerged,
		m.AnnotationsMerged,
		m.MergedByCategory,
		m.AnnotationsDropped,
		m.AnnotationsSelected,
		m.ImagesSelected,
		m.SplitAnnotations,
		m.SplitImages,
	)
	return m
}

// Gatherer exposes the registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteFile writes all metrics to path in the text exposition format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.Gatherer())
}
