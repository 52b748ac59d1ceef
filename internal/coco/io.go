// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

package coco

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Output file names written by the pipeline.
const (
	MergedFileName   = "merged_annotations.json"
	SelectedFileName = "supercategory_annotations.json"
	TrainFileName    = "train_annotations.json"
	ValFileName      = "val_annotations.json"
)

// Parse decodes a document from r.
func Parse(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and decodes the document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadAll loads every path in order.
func LoadAll(paths []string) ([]Source, error) {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		doc, err := Load(p)
		if err != nil {
			return nil, err
		}
		sources = append(sources, Source{Path: p, Doc: doc})
	}
	return sources, nil
}

// Save writes doc as compact JSON to dir/name, creating dir if needed.
// It returns the path of the written file.
func Save(doc *Document, dir, name string) (string, error) {
	if doc == nil {
		return "", errors.New("nil document")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := writeJSON(path, doc); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path) //nolint:gosec // path is from config
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
