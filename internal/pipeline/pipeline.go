// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

// Package pipeline runs validation, merge, category selection and the
// stratified split over a folder of annotation files, persisting each
// stage's output.
package pipeline

import (
	"fmt"
	"io"
	"math/rand/v2"
	"sort"

	"github.com/rs/zerolog"

	"github.com/harshinii001/dataset-management/internal/coco"
	"github.com/harshinii001/dataset-management/internal/logger"
	"github.com/harshinii001/dataset-management/internal/merge"
	"github.com/harshinii001/dataset-management/internal/metrics"
	"github.com/harshinii001/dataset-management/internal/selector"
	"github.com/harshinii001/dataset-management/internal/split"
	"github.com/harshinii001/dataset-management/internal/validate"
)

// Options configures a full run.
type Options struct {
	FolderPath string
	OutputDir  string
	Merge      merge.Options
	Categories []string
	// Choose picks the category names from the merged document when
	// Categories is empty.
	Choose     func(available []string) ([]string, error)
	TrainRatio float64
	// Rand drives the split shuffle; nil means unseeded.
	Rand   *rand.Rand
	Strict bool
}

// Outcome is what a full run produced.
type Outcome struct {
	Files    []string
	Report   *validate.Report
	Merged   *coco.Document
	Selected *coco.Document
	Split    *split.Result
	Written  []string
}

// Pipeline wires the stages to logging, metrics and persistence.
type Pipeline struct {
	log     zerolog.Logger
	metrics *metrics.Metrics
	out     io.Writer
	written []string
}

// New creates a Pipeline. Diagnostics are printed to out, one per line.
func New(log zerolog.Logger, m *metrics.Metrics, out io.Writer) *Pipeline {
	if m == nil {
		m = metrics.New()
	}
	if out == nil {
		out = io.Discard
	}
	return &Pipeline{log: log, metrics: m, out: out}
}

// Written returns the files persisted so far.
func (p *Pipeline) Written() []string {
	return append([]string(nil), p.written...)
}

// Run executes every stage in order.
func (p *Pipeline) Run(opts Options) (*Outcome, error) {
	files, err := Discover(opts.FolderPath)
	if err != nil {
		return nil, fmt.Errorf("discovering annotation files: %w", err)
	}
	p.log.Info().Str("folder", opts.FolderPath).Int("files", len(files)).Msg("discovered annotation files")

	report, err := p.Validate(files, opts.Strict)
	if err != nil {
		return nil, err
	}

	merged, err := p.Merge(files, opts.Merge, opts.OutputDir)
	if err != nil {
		return nil, err
	}

	names := opts.Categories
	if len(names) == 0 && opts.Choose != nil {
		names, err = opts.Choose(selector.Names(merged))
		if err != nil {
			return nil, err
		}
	}

	selected, err := p.Select(merged, names, opts.OutputDir)
	if err != nil {
		return nil, err
	}

	res, err := p.Split(selected, opts.TrainRatio, opts.Rand, opts.OutputDir)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Files:    files,
		Report:   report,
		Merged:   merged,
		Selected: selected,
		Split:    res,
		Written:  p.Written(),
	}, nil
}

// Validate checks files and prints each diagnostic as it is found.
func (p *Pipeline) Validate(files []string, strict bool) (*validate.Report, error) {
	log := logger.Stage(p.log, "validate")
	v := validate.New(validate.Options{
		Strict: strict,
		OnDiagnostic: func(d validate.Diagnostic) {
			fmt.Fprintln(p.out, d.String()) //nolint:errcheck
			p.metrics.DiagnosticsTotal.WithLabelValues(string(d.Kind)).Inc()
		},
	})
	report, err := v.ValidateFiles(files)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	log.Info().
		Int("files", report.Files).
		Int("images", report.Images).
		Int("annotations", report.Annotations).
		Int("diagnostics", len(report.Diagnostics)).
		Msg("validation finished")
	return report, nil
}

// Merge loads files, merges them and persists the merged document.
func (p *Pipeline) Merge(files []string, opts merge.Options, outDir string) (*coco.Document, error) {
	log := logger.Stage(p.log, "merge")
	sources, err := coco.LoadAll(files)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	p.metrics.DocumentsTotal.Add(float64(len(sources)))

	merged, stats, err := merge.Merge(sources, opts)
	if err != nil {
		return nil, err
	}
	p.metrics.ImagesMerged.Set(float64(stats.Images))
	p.metrics.AnnotationsMerged.Set(float64(stats.AnnotationsRetained))
	p.metrics.AnnotationsDropped.Set(float64(stats.AnnotationsDropped))
	names := make([]string, 0, len(stats.AnnotationsRetainedBy))
	for name := range stats.AnnotationsRetainedBy {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		n := stats.AnnotationsRetainedBy[name]
		p.metrics.MergedByCategory.WithLabelValues(name).Set(float64(n))
		log.Debug().Str("category", name).Int("retained", n).Msg("merged category")
	}
	log.Info().
		Int("documents", stats.Documents).
		Int("images", stats.Images).
		Int("categories", stats.Categories).
		Int("retained", stats.AnnotationsRetained).
		Int("dropped", stats.AnnotationsDropped).
		Int("primary_category_id", opts.PrimaryCategoryID).
		Msg("merged annotation files")

	if err := p.save(merged, outDir, coco.MergedFileName); err != nil {
		return nil, err
	}
	return merged, nil
}

// Select filters merged down to names and persists the result.
func (p *Pipeline) Select(merged *coco.Document, names []string, outDir string) (*coco.Document, error) {
	log := logger.Stage(p.log, "select")
	selected := selector.SelectBySupercategoryNames(merged, names)
	p.metrics.AnnotationsSelected.Set(float64(len(selected.Annotations)))
	p.metrics.ImagesSelected.Set(float64(len(selected.Images)))
	log.Info().
		Strs("names", names).
		Int("annotations", len(selected.Annotations)).
		Int("images", len(selected.Images)).
		Msg("selected categories")

	if err := p.save(selected, outDir, coco.SelectedFileName); err != nil {
		return nil, err
	}
	return selected, nil
}

// Split partitions doc and persists both halves.
func (p *Pipeline) Split(doc *coco.Document, ratio float64, rng *rand.Rand, outDir string) (*split.Result, error) {
	log := logger.Stage(p.log, "split")
	res, err := split.Split(doc, ratio, rng)
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}
	for _, c := range res.Counts {
		p.metrics.SplitAnnotations.WithLabelValues(c.Name, "train").Set(float64(c.Train))
		p.metrics.SplitAnnotations.WithLabelValues(c.Name, "val").Set(float64(c.Val))
		log.Info().Str("category", c.Name).Int("train", c.Train).Int("val", c.Val).Msg("split category")
	}
	p.metrics.SplitImages.WithLabelValues("train").Set(float64(len(res.Train.Images)))
	p.metrics.SplitImages.WithLabelValues("val").Set(float64(len(res.Val.Images)))

	if err := p.save(res.Train, outDir, coco.TrainFileName); err != nil {
		return nil, err
	}
	if err := p.save(res.Val, outDir, coco.ValFileName); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *Pipeline) save(doc *coco.Document, dir, name string) error {
	path, err := coco.Save(doc, dir, name)
	if err != nil {
		return err
	}
	p.written = append(p.written, path)
	p.log.Debug().Str("path", path).Msg("wrote annotation file")
	return nil
}
