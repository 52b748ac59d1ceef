// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

package coco

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// Schema returns the JSON Schema an input annotation document is expected
// to satisfy. Records may carry additional properties.
func Schema() *jsonschema.Schema {
	integer := func() *jsonschema.Schema { return &jsonschema.Schema{Type: "integer"} }
	str := func() *jsonschema.Schema { return &jsonschema.Schema{Type: "string"} }
	numbers := func() *jsonschema.Schema {
		return &jsonschema.Schema{Type: "array", Items: &jsonschema.Schema{Type: "number"}}
	}

	return &jsonschema.Schema{
		Schema:      "https://json-schema.org/draft/2020-12/schema",
		Title:       "COCO annotation document",
		Description: "Object detection annotations linking images and categories by integer id.",
		Type:        "object",
		Required:    []string{"images", "annotations"},
		Properties: map[string]*jsonschema.Schema{
			"categories": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type:     "object",
					Required: []string{"id", "name"},
					Properties: map[string]*jsonschema.Schema{
						"id":            integer(),
						"name":          str(),
						"supercategory": str(),
					},
				},
			},
			"images": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type:     "object",
					Required: []string{"id", "file_name"},
					Properties: map[string]*jsonschema.Schema{
						"id":        integer(),
						"file_name": str(),
						"width":     integer(),
						"height":    integer(),
					},
				},
			},
			"annotations": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type:     "object",
					Required: []string{"id", "image_id", "category_id"},
					Properties: map[string]*jsonschema.Schema{
						"id":          integer(),
						"image_id":    integer(),
						"category_id": integer(),
						"name":        str(),
						"bbox":        numbers(),
						"area":        {Type: "number"},
						"iscrowd":     integer(),
					},
				},
			},
		},
	}
}

var resolvedSchema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	return Schema().Resolve(nil)
})

// CheckSchema validates raw JSON against Schema.
func CheckSchema(data []byte) error {
	rs, err := resolvedSchema()
	if err != nil {
		return fmt.Errorf("resolving schema: %w", err)
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return err
	}
	return rs.Validate(instance)
}
