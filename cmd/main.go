// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

// Package main is the entry point for the dataset CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/harshinii001/dataset-management/cmd/internal"
)

func main() {
	if err := internal.Run(context.Background(), os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
