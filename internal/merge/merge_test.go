// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

package merge

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshinii001/dataset-management/internal/coco"
)

// twoCategoryDoc has categories A (id 1) and B (id 2), two images and one
// annotation per category, both on the document's first image.
func twoCategoryDoc(prefix string) *coco.Document {
	return &coco.Document{
		Categories: []coco.Category{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}},
		Images: []coco.Image{
			{ID: 1, FileName: prefix + "/1.jpg"},
			{ID: 2, FileName: prefix + "/2.jpg"},
		},
		Annotations: []coco.Annotation{
			{ID: 1, ImageID: 1, CategoryID: 1},
			{ID: 2, ImageID: 1, CategoryID: 2},
		},
	}
}

func TestMerge_TwoDocuments(t *testing.T) {
	sources := []coco.Source{
		{Path: "first.json", Doc: twoCategoryDoc("first")},
		{Path: "second.json", Doc: twoCategoryDoc("second")},
	}

	merged, stats, err := Merge(sources, DefaultOptions())
	require.NoError(t, err)

	imageIDs := make([]int, len(merged.Images))
	for i, img := range merged.Images {
		imageIDs[i] = img.ID
	}
	assert.Equal(t, []int{1, 2, 3, 4}, imageIDs)

	want := []coco.Annotation{
		{ID: 1, ImageID: 1, CategoryID: 1, Name: "A"},
		{ID: 2, ImageID: 3, CategoryID: 1, Name: "A"},
	}
	if diff := cmp.Diff(want, merged.Annotations); diff != "" {
		t.Errorf("annotations mismatch (-want +got):\n%s", diff)
	}

	// categories accumulate across documents without dedup
	assert.Len(t, merged.Categories, 4)
	assert.Len(t, merged.Licenses, 1)
	assert.Len(t, merged.Info, 1)

	assert.Equal(t, Stats{
		Documents:             2,
		Images:                4,
		Categories:            4,
		AnnotationsRetained:   2,
		AnnotationsDropped:    2,
		AnnotationsRetainedBy: map[string]int{"A": 2},
	}, stats)
}

func TestMerge_DenseIDsAndSourceLocality(t *testing.T) {
	var sources []coco.Source
	var wantFiles []string
	for d := 0; d < 4; d++ {
		doc := &coco.Document{Categories: []coco.Category{{ID: 1, Name: "box"}}}
		for i := 1; i <= d+2; i++ {
			doc.Images = append(doc.Images, coco.Image{ID: i, FileName: fmt.Sprintf("doc%d/%d.jpg", d, i)})
			doc.Annotations = append(doc.Annotations, coco.Annotation{ID: i, ImageID: i, CategoryID: 1})
			wantFiles = append(wantFiles, fmt.Sprintf("doc%d/%d.jpg", d, i))
		}
		sources = append(sources, coco.Source{Path: fmt.Sprintf("doc%d.json", d), Doc: doc})
	}

	merged, _, err := Merge(sources, DefaultOptions())
	require.NoError(t, err)

	byID := make(map[int]coco.Image)
	for i, img := range merged.Images {
		assert.Equal(t, i+1, img.ID)
		byID[img.ID] = img
	}
	require.Len(t, merged.Images, 2+3+4+5)

	require.Len(t, merged.Annotations, len(wantFiles))
	for i, ann := range merged.Annotations {
		assert.Equal(t, i+1, ann.ID)
		img, ok := byID[ann.ImageID]
		require.True(t, ok, "annotation %d points at missing image %d", ann.ID, ann.ImageID)
		assert.Equal(t, wantFiles[i], img.FileName)
	}
}

func TestMerge_OnlyPrimaryCategoryRetained(t *testing.T) {
	doc := &coco.Document{
		Categories: []coco.Category{{ID: 1, Name: "box"}, {ID: 2, Name: "lid"}},
		Images:     []coco.Image{{ID: 1, FileName: "a.jpg"}},
		Annotations: []coco.Annotation{
			{ID: 10, ImageID: 1, CategoryID: 2},
			{ID: 11, ImageID: 1, CategoryID: 1},
			{ID: 12, ImageID: 1, CategoryID: 2},
		},
	}

	tests := []struct {
		name     string
		primary  int
		wantName string
		wantKept int
	}{
		{name: "default primary", primary: 1, wantName: "box", wantKept: 1},
		{name: "configured primary", primary: 2, wantName: "lid", wantKept: 2},
		{name: "absent primary", primary: 3, wantKept: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, stats, err := Merge([]coco.Source{{Path: "a.json", Doc: doc}}, Options{PrimaryCategoryID: tt.primary})
			require.NoError(t, err)

			require.Len(t, merged.Annotations, tt.wantKept)
			assert.Equal(t, 3-tt.wantKept, stats.AnnotationsDropped)
			for _, ann := range merged.Annotations {
				assert.Equal(t, tt.wantName, ann.Name)
			}
		})
	}
}

func TestMerge_LookupIsPerDocument(t *testing.T) {
	first := &coco.Document{
		Categories:  []coco.Category{{ID: 1, Name: "box"}, {ID: 5, Name: "can"}},
		Images:      []coco.Image{{ID: 1, FileName: "a.jpg"}},
		Annotations: []coco.Annotation{{ID: 1, ImageID: 1, CategoryID: 5}},
	}
	second := &coco.Document{
		Categories:  []coco.Category{{ID: 1, Name: "bottle"}},
		Images:      []coco.Image{{ID: 1, FileName: "b.jpg"}},
		Annotations: []coco.Annotation{{ID: 1, ImageID: 1, CategoryID: 5}},
	}

	_, _, err := Merge([]coco.Source{
		{Path: "first.json", Doc: first},
		{Path: "second.json", Doc: second},
	}, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Contains(t, err.Error(), "second.json")
	assert.Contains(t, err.Error(), "annotation 1")
}

func TestMerge_ResolvedNameFromOwnDocument(t *testing.T) {
	first := &coco.Document{
		Categories:  []coco.Category{{ID: 1, Name: "box"}},
		Images:      []coco.Image{{ID: 1, FileName: "a.jpg"}},
		Annotations: []coco.Annotation{{ID: 1, ImageID: 1, CategoryID: 1}},
	}
	second := &coco.Document{
		Categories:  []coco.Category{{ID: 1, Name: "bottle"}},
		Images:      []coco.Image{{ID: 1, FileName: "b.jpg"}},
		Annotations: []coco.Annotation{{ID: 1, ImageID: 1, CategoryID: 1}},
	}

	merged, _, err := Merge([]coco.Source{{Path: "1", Doc: first}, {Path: "2", Doc: second}}, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, merged.Annotations, 2)
	assert.Equal(t, "box", merged.Annotations[0].Name)
	assert.Equal(t, "bottle", merged.Annotations[1].Name)
	assert.Equal(t, 2, merged.Annotations[1].ImageID)
}

func TestMerge_NonSequentialSourceImageIDs(t *testing.T) {
	first := &coco.Document{
		Categories:  []coco.Category{{ID: 1, Name: "box"}},
		Images:      []coco.Image{{ID: 1, FileName: "a.jpg"}},
		Annotations: []coco.Annotation{{ID: 1, ImageID: 1, CategoryID: 1}},
	}
	second := &coco.Document{
		Categories: []coco.Category{{ID: 1, Name: "box"}},
		Images: []coco.Image{
			{ID: 40, FileName: "b.jpg"},
			{ID: 17, FileName: "c.jpg"},
		},
		Annotations: []coco.Annotation{{ID: 1, ImageID: 17, CategoryID: 1}},
	}

	merged, _, err := Merge([]coco.Source{{Path: "1", Doc: first}, {Path: "2", Doc: second}}, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, merged.Annotations, 2)
	assert.Equal(t, 3, merged.Annotations[1].ImageID)
	assert.Equal(t, "c.jpg", merged.Images[2].FileName)
}

func TestMerge_EmptyNamesAreWritten(t *testing.T) {
	var doc coco.Document
	require.NoError(t, json.Unmarshal([]byte(`{
  "categories": [{"id": 1, "name": "", "supercategory": ""}],
  "images": [{"id": 1, "file_name": "a.jpg"}],
  "annotations": [{"id": 1, "image_id": 1, "category_id": 1}]
}`), &doc))

	merged, _, err := Merge([]coco.Source{{Path: "cvat.json", Doc: &doc}}, DefaultOptions())
	require.NoError(t, err)

	cat, err := json.Marshal(merged.Categories[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"","supercategory":""}`, string(cat))

	ann, err := json.Marshal(merged.Annotations[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"image_id":1,"category_id":1,"name":""}`, string(ann))
	assert.NotContains(t, doc.Annotations[0].Extra, "name")
}

func TestMerge_DoesNotModifySources(t *testing.T) {
	doc := twoCategoryDoc("x")
	_, _, err := Merge([]coco.Source{{Path: "x", Doc: twoCategoryDoc("y")}, {Path: "x", Doc: doc}}, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, twoCategoryDoc("x"), doc)
}

func TestMerge_Empty(t *testing.T) {
	merged, stats, err := Merge(nil, DefaultOptions())
	require.NoError(t, err)

	assert.Empty(t, merged.Images)
	assert.Empty(t, merged.Annotations)
	assert.Zero(t, stats.Documents)
}

func TestMerge_NilDocument(t *testing.T) {
	_, _, err := Merge([]coco.Source{{Path: "broken.json"}}, DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.json")
}
