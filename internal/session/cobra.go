// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

package session

import (
	"github.com/spf13/cobra"
)

// FromCommand extracts the pipeline Context from a cobra.Command's context.
func FromCommand(cmd *cobra.Command) *Context {
	return From(cmd.Context())
}

// RequireFromCommand extracts the pipeline Context from a cobra.Command's
// context, returning an error if not found.
func RequireFromCommand(cmd *cobra.Command) (*Context, error) {
	sess := FromCommand(cmd)
	if sess == nil {
		return nil, ErrNotLoaded
	}
	return sess, nil
}

// PreRunLoad returns a PreRunE function that loads the pipeline context with
// the options produced by opts and stores it in the command's context.
func PreRunLoad(opts func(cmd *cobra.Command) Options) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx, err := Load(cmd.Context(), opts(cmd))
		if err != nil {
			return err
		}
		cmd.SetContext(ctx)
		return nil
	}
}
