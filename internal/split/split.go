// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

// Package split partitions an annotation document into training and
// validation documents, stratified by category name.
package split

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/harshinii001/dataset-management/internal/coco"
)

// DefaultTrainRatio is the share of each category's annotations assigned to
// training unless configured otherwise.
const DefaultTrainRatio = 0.8

// ErrInvalidRatio is returned for a train ratio outside [0, 1].
var ErrInvalidRatio = errors.New("train ratio must be within [0, 1]")

// CategoryCount is the outcome of splitting one category.
type CategoryCount struct {
	Name  string
	Train int
	Val   int
}

// Result holds both halves of a split.
type Result struct {
	Train  *coco.Document
	Val    *coco.Document
	Counts []CategoryCount
}

// NewRand returns a reproducible random source for Split.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // dataset shuffling
}

// TrainingCount is the number of a category's count annotations that go to
// training.
func TrainingCount(count int, ratio float64) int {
	return int(math.Floor(float64(count) * ratio))
}

// CategoryNames returns the distinct category names in first-seen order.
func CategoryNames(categories []coco.Category) []string {
	seen := make(map[string]struct{}, len(categories))
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		names = append(names, c.Name)
	}
	return names
}

// Split shuffles the annotations of each category name found in
// filtered.Categories and assigns the first floor(count*trainRatio) of them
// to training and the rest to validation. Each half keeps the images its
// annotations reference, so an image can appear in both. Annotations whose
// name matches no category are left out. A nil rng uses an unseeded source.
func Split(filtered *coco.Document, trainRatio float64, rng *rand.Rand) (*Result, error) {
	if math.IsNaN(trainRatio) || trainRatio < 0 || trainRatio > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRatio, trainRatio)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // dataset shuffling
	}

	byName := make(map[string][]coco.Annotation)
	for _, ann := range filtered.Annotations {
		byName[ann.Name] = append(byName[ann.Name], ann)
	}

	res := &Result{
		Train: coco.New(filtered.Categories),
		Val:   coco.New(filtered.Categories),
	}

	for _, name := range CategoryNames(filtered.Categories) {
		anns := byName[name]
		numTraining := TrainingCount(len(anns), trainRatio)

		rng.Shuffle(len(anns), func(i, j int) {
			anns[i], anns[j] = anns[j], anns[i]
		})

		res.Train.Annotations = append(res.Train.Annotations, anns[:numTraining]...)
		res.Val.Annotations = append(res.Val.Annotations, anns[numTraining:]...)
		res.Counts = append(res.Counts, CategoryCount{
			Name:  name,
			Train: numTraining,
			Val:   len(anns) - numTraining,
		})
	}

	res.Train.Images = coco.ImagesIn(filtered.Images, coco.ImageIDs(res.Train.Annotations))
	res.Val.Images = coco.ImagesIn(filtered.Images, coco.ImageIDs(res.Val.Annotations))
	return res, nil
}
