// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

// Package merge combines independent annotation documents into one,
// renumbering image and annotation ids so they stay unique.
package merge

import (
	"errors"
	"fmt"

	"github.com/harshinii001/dataset-management/internal/coco"
)

// DefaultPrimaryCategoryID is the category id retained when none is configured.
const DefaultPrimaryCategoryID = 1

// ErrUnknownCategory indicates an annotation whose category_id is not
// declared in its own document.
var ErrUnknownCategory = errors.New("unknown category_id")

// Options configures Merge.
type Options struct {
	// PrimaryCategoryID selects, per source document, the category whose
	// annotations are carried into the merged document.
	PrimaryCategoryID int
}

// DefaultOptions returns the options used by the pipeline unless configured
// otherwise.
func DefaultOptions() Options {
	return Options{PrimaryCategoryID: DefaultPrimaryCategoryID}
}

// Stats summarizes a merge.
type Stats struct {
	Documents             int
	Images                int
	Categories            int
	AnnotationsRetained   int
	AnnotationsDropped    int
	AnnotationsRetainedBy map[string]int
}

// Merge combines sources in order. Categories are appended as they are
// found, images are renumbered 1..N across all sources, and only annotations
// of the primary category are kept, renumbered and pointed at their image's
// new id. The sources are not modified.
func Merge(sources []coco.Source, opts Options) (*coco.Document, Stats, error) {
	merged := coco.New(nil)
	stats := Stats{AnnotationsRetainedBy: make(map[string]int)}

	nextImageID := 1
	nextAnnotationID := 1
	imageOffset := 0

	for _, src := range sources {
		doc := src.Doc
		if doc == nil {
			return nil, Stats{}, fmt.Errorf("merge: %s: nil document", src.Path)
		}
		stats.Documents++

		// category ids are only unique within one source document
		lookup := make(map[int]coco.Category, len(doc.Categories))
		for _, c := range doc.Categories {
			lookup[c.ID] = c
			merged.Categories = append(merged.Categories, c)
		}

		// new ids for this document's images, keyed by their source id
		newImageID := make(map[int]int, len(doc.Images))
		for _, img := range doc.Images {
			if _, dup := newImageID[img.ID]; !dup {
				newImageID[img.ID] = nextImageID
			}
			img.ID = nextImageID
			nextImageID++
			merged.Images = append(merged.Images, img)
		}

		for _, ann := range doc.Annotations {
			category, ok := lookup[ann.CategoryID]
			if !ok {
				return nil, Stats{}, fmt.Errorf("merge: %s: annotation %d: %w %d",
					src.Path, ann.ID, ErrUnknownCategory, ann.CategoryID)
			}
			if category.ID != opts.PrimaryCategoryID {
				stats.AnnotationsDropped++
				continue
			}

			ann = ann.WithName(category.Name)
			ann.ID = nextAnnotationID
			nextAnnotationID++
			if id, ok := newImageID[ann.ImageID]; ok {
				ann.ImageID = id
			} else {
				ann.ImageID += imageOffset
			}
			merged.Annotations = append(merged.Annotations, ann)
			stats.AnnotationsRetainedBy[category.Name]++
		}

		imageOffset = len(merged.Images)
	}

	stats.Images = len(merged.Images)
	stats.Categories = len(merged.Categories)
	stats.AnnotationsRetained = len(merged.Annotations)
	return merged, stats, nil
}
