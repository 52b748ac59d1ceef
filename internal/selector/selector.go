// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

// Package selector narrows a merged document down to an allow-list of
// category names.
package selector

import (
	"github.com/harshinii001/dataset-management/internal/coco"
)

// SelectBySupercategoryNames keeps the annotations whose resolved name is in
// allowed and the images they reference. The category list is copied
// unchanged. Output order follows merged.
func SelectBySupercategoryNames(merged *coco.Document, allowed []string) *coco.Document {
	out := coco.New(merged.Categories)

	names := make(map[string]struct{}, len(allowed))
	for _, n := range allowed {
		names[n] = struct{}{}
	}

	for _, ann := range merged.Annotations {
		if _, ok := names[ann.Name]; ok {
			out.Annotations = append(out.Annotations, ann)
		}
	}
	out.Images = coco.ImagesIn(merged.Images, coco.ImageIDs(out.Annotations))
	return out
}

// Names returns the distinct resolved annotation names of doc in first-seen
// order.
func Names(doc *coco.Document) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, ann := range doc.Annotations {
		if _, ok := seen[ann.Name]; ok {
			continue
		}
		seen[ann.Name] = struct{}{}
		names = append(names, ann.Name)
	}
	return names
}
