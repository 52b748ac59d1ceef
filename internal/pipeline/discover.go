// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

package pipeline

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Discover returns every *.json file under folder, recursively and in
// lexical order. Hidden files and directories are skipped.
func Discover(folder string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != folder && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && filepath.Ext(path) == ".json" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
