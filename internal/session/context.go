// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

// Package session provides pipeline context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/harshinii001/dataset-management/internal/config"
	"github.com/harshinii001/dataset-management/internal/logger"
	"github.com/harshinii001/dataset-management/internal/metrics"
)

var (
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotLoaded indicates a command ran without its context loaded.
	ErrNotLoaded = errors.New("pipeline context not loaded")
)

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the resolved configuration and the run's shared services.
type Context struct {
	// Config is the fully resolved configuration (file, env, then flags).
	Config *config.Config

	// Log is the structured logger of this run.
	Log zerolog.Logger

	// Metrics collects the run's counters.
	Metrics *metrics.Metrics
}

// Options controls Load.
type Options struct {
	// ConfigPath is the configuration file; config.DefaultFileName if empty.
	ConfigPath string
	// ConfigOptional starts from config.Default when the file is missing and
	// does not require folder_path.
	ConfigOptional bool
	// Getenv looks up environment overrides; os.Getenv if nil.
	Getenv func(string) string
	// Override, if set, is applied after environment overrides and before
	// validation.
	Override func(*config.Config)
	// LogOutput receives log lines; os.Stderr if nil.
	LogOutput io.Writer
}

// Load resolves the configuration and returns a new context.Context with the
// pipeline Context stored in it.
func Load(ctx context.Context, opts Options) (context.Context, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultFileName
	}
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	var cfg *config.Config
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		if !opts.ConfigOptional {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		def := config.Default()
		cfg = &def
	} else {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(getenv, filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if opts.Override != nil {
		opts.Override(cfg)
	}
	validate := cfg.ValidateResolved
	if opts.ConfigOptional {
		validate = cfg.Validate
	}
	if err := validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	sess := &Context{
		Config:  cfg,
		Log:     logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true, Output: opts.LogOutput}),
		Metrics: metrics.New(),
	}
	return context.WithValue(ctx, contextKey{}, sess), nil
}

// From extracts the pipeline Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if ctx == nil {
		return nil
	}
	if sess, ok := ctx.Value(contextKey{}).(*Context); ok {
		return sess
	}
	return nil
}
