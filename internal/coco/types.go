// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

// Package coco provides the COCO annotation document model and its JSON codec.
package coco

import (
	"encoding/json"
	"maps"
)

// Document is a COCO-style annotation document.
type Document struct {
	Licenses    []Record     `json:"licenses"`
	Info        []Record     `json:"info"`
	Categories  []Category   `json:"categories"`
	Images      []Image      `json:"images"`
	Annotations []Annotation `json:"annotations"`
}

// Record is a free-form license or info entry.
type Record map[string]any

// Category is a detection class. Fields other than id, name and
// supercategory are kept in Extra and written back unchanged.
type Category struct {
	ID            int
	Name          string
	Supercategory string
	Extra         map[string]json.RawMessage
}

// Image is an image entry. Fields other than id and file_name are kept in
// Extra and written back unchanged.
type Image struct {
	ID       int
	FileName string
	Extra    map[string]json.RawMessage
}

// Annotation is a single object annotation. Name holds the category name
// resolved at merge time; geometry and any other fields live in Extra.
type Annotation struct {
	ID         int
	ImageID    int
	CategoryID int
	Name       string
	Extra      map[string]json.RawMessage
}

// WithName returns a copy of a carrying the resolved category name. An
// empty name is still written out.
func (a Annotation) WithName(name string) Annotation {
	a.Name = name
	if name == "" {
		extra := make(map[string]json.RawMessage, len(a.Extra)+1)
		maps.Copy(extra, a.Extra)
		extra["name"] = json.RawMessage(`""`)
		a.Extra = extra
	}
	return a
}

// Source pairs a decoded document with the path it was read from.
type Source struct {
	Path string
	Doc  *Document
}

// PlaceholderLicense returns the empty license entry written into every
// produced document.
func PlaceholderLicense() Record {
	return Record{"name": "", "id": 0, "url": ""}
}

// PlaceholderInfo returns the empty info entry written into every produced
// document.
func PlaceholderInfo() Record {
	return Record{
		"contributor":  "",
		"date_created": "",
		"description":  "",
		"url":          "",
		"version":      "",
		"year":         "",
	}
}

// New returns an empty document carrying the placeholder license and info
// entries and a copy of the given categories.
func New(categories []Category) *Document {
	cats := make([]Category, len(categories))
	copy(cats, categories)
	return &Document{
		Licenses:    []Record{PlaceholderLicense()},
		Info:        []Record{PlaceholderInfo()},
		Categories:  cats,
		Images:      []Image{},
		Annotations: []Annotation{},
	}
}

// ImageIDs returns the set of image ids referenced by the given annotations.
func ImageIDs(annotations []Annotation) map[int]struct{} {
	ids := make(map[int]struct{}, len(annotations))
	for _, a := range annotations {
		ids[a.ImageID] = struct{}{}
	}
	return ids
}

// ImagesIn returns the images whose id is in ids, keeping input order.
func ImagesIn(images []Image, ids map[int]struct{}) []Image {
	out := make([]Image, 0, len(ids))
	for _, img := range images {
		if _, ok := ids[img.ID]; ok {
			out = append(out, img)
		}
	}
	return out
}
