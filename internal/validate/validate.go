// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

// Package validate performs advisory structural and referential checks over
// a corpus of COCO annotation files.
package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/harshinii001/dataset-management/internal/coco"
)

// Kind classifies a diagnostic.
type Kind string

// Diagnostic kinds.
const (
	MissingSections       Kind = "missing_sections"
	ImageMissingKeys      Kind = "image_missing_keys"
	DuplicateFileName     Kind = "duplicate_file_name"
	AnnotationMissingKeys Kind = "annotation_missing_keys"
	DanglingImageID       Kind = "dangling_image_id"
	SchemaViolation       Kind = "schema_violation"
)

// Diagnostic is a single human-readable finding.
type Diagnostic struct {
	Kind    Kind
	File    string
	Message string
}

func (d Diagnostic) String() string {
	return d.Message
}

// Report collects the diagnostics of a validation pass.
type Report struct {
	Files       int
	Images      int
	Annotations int
	Diagnostics []Diagnostic
}

// Count returns the number of diagnostics of the given kind.
func (r *Report) Count(kind Kind) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// OK reports whether the pass produced no diagnostics.
func (r *Report) OK() bool {
	return len(r.Diagnostics) == 0
}

// Options configures a Validator.
type Options struct {
	// Strict additionally checks every document against coco.Schema.
	Strict bool
	// OnDiagnostic, if set, is called as each diagnostic is found.
	OnDiagnostic func(Diagnostic)
}

// Validator checks documents in order. File names and image ids are tracked
// across every document it has seen.
type Validator struct {
	opts      Options
	fileNames map[string]struct{}
	imageIDs  map[string]struct{}
	report    Report
}

// New returns a Validator with empty corpus state.
func New(opts Options) *Validator {
	return &Validator{
		opts:      opts,
		fileNames: make(map[string]struct{}),
		imageIDs:  make(map[string]struct{}),
	}
}

// ValidateFiles reads and checks every path in order. Diagnostics never abort
// the pass; unreadable files and invalid JSON do.
func (v *Validator) ValidateFiles(paths []string) (*Report, error) {
	for _, p := range paths {
		data, err := os.ReadFile(p) //nolint:gosec // path is provided by caller
		if err != nil {
			return nil, err
		}
		if err := v.Check(p, data); err != nil {
			return nil, err
		}
	}
	return v.Report(), nil
}

// Report returns the diagnostics gathered so far.
func (v *Validator) Report() *Report {
	r := v.report
	r.Diagnostics = append([]Diagnostic(nil), v.report.Diagnostics...)
	return &r
}

type record map[string]any

// Check validates one document. name is used in diagnostics.
func (v *Validator) Check(name string, data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	v.report.Files++

	if v.opts.Strict {
		if err := coco.CheckSchema(data); err != nil {
			v.add(SchemaViolation, name, "%s does not match the annotation schema: %v", name, err)
		}
	}

	rawImages, hasImages := top["images"]
	rawAnnotations, hasAnnotations := top["annotations"]
	if !hasImages || !hasAnnotations {
		v.add(MissingSections, name, "%s does not contain 'images' or 'annotations' keys.", name)
		return nil
	}

	images, err := decodeRecords(rawImages)
	if err != nil {
		return fmt.Errorf("%s: images: %w", name, err)
	}
	annotations, err := decodeRecords(rawAnnotations)
	if err != nil {
		return fmt.Errorf("%s: annotations: %w", name, err)
	}

	for _, img := range images {
		fileName, hasFileName := img["file_name"]
		id, hasID := img["id"]
		if !hasFileName || !hasID {
			v.add(ImageMissingKeys, name, "%s contains an image object without 'file_name' or 'id' keys.", name)
			continue
		}
		v.report.Images++

		key := valueKey(fileName)
		if _, seen := v.fileNames[key]; seen {
			v.add(DuplicateFileName, name, "Duplicate image file path found: %v", fileName)
		} else {
			v.fileNames[key] = struct{}{}
		}
		v.imageIDs[valueKey(id)] = struct{}{}
	}

	for _, ann := range annotations {
		imageID, hasImageID := ann["image_id"]
		id, hasID := ann["id"]
		if !hasImageID || !hasID {
			v.add(AnnotationMissingKeys, name, "%s contains an annotation object without 'image_id' or 'id' keys.", name)
			continue
		}
		v.report.Annotations++

		if _, ok := v.imageIDs[valueKey(imageID)]; !ok {
			v.add(DanglingImageID, name, "Annotation with id %v has invalid image_id: %v", id, imageID)
		}
	}
	return nil
}

func (v *Validator) add(kind Kind, file, format string, args ...any) {
	d := Diagnostic{Kind: kind, File: file, Message: fmt.Sprintf(format, args...)}
	v.report.Diagnostics = append(v.report.Diagnostics, d)
	if v.opts.OnDiagnostic != nil {
		v.opts.OnDiagnostic(d)
	}
}

// valueKey identifies a decoded JSON value for set membership. Numbers are
// equal when numerically equal (1 and 1.0); other types only match values of
// the same type, so the string "1" is not the number 1.
func valueKey(v any) string {
	if n, ok := v.(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			return "number:" + strconv.FormatFloat(f, 'g', -1, 64)
		}
		return "number:" + n.String()
	}
	return fmt.Sprintf("%T:%v", v, v)
}

// decodeRecords keeps numbers as json.Number so ids keep their JSON type.
func decodeRecords(data json.RawMessage) ([]record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out []record
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
