// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

// Package config handles pipeline configuration.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the configuration file looked up when none is given.
const DefaultFileName = "folder_path.json"

// Defaults for optional fields.
const (
	DefaultOutputDir         = "outputfolder1"
	DefaultPrimaryCategoryID = 1
	DefaultTrainRatio        = 0.8
	DefaultLogLevel          = "info"
)

// Environment variables overriding file values.
const (
	EnvFolderPath = "DATASET_FOLDER_PATH"
	EnvOutputDir  = "DATASET_OUTPUT_DIR"
	EnvTrainRatio = "DATASET_TRAIN_RATIO"
	EnvSeed       = "DATASET_SEED"
	EnvLogLevel   = "DATASET_LOG_LEVEL"
)

// Config is the pipeline configuration.
type Config struct {
	FolderPath        string  `yaml:"folder_path" json:"folder_path"`
	OutputDir         string  `yaml:"output_dir" json:"output_dir"`
	PrimaryCategoryID int     `yaml:"primary_category_id" json:"primary_category_id"`
	TrainRatio        float64 `yaml:"train_ratio" json:"train_ratio"`
	Seed              *uint64 `yaml:"seed,omitempty" json:"seed,omitempty"`
	LogLevel          string  `yaml:"log_level" json:"log_level"`
}

// Default returns a Config with every optional field at its default.
func Default() Config {
	return Config{
		OutputDir:         DefaultOutputDir,
		PrimaryCategoryID: DefaultPrimaryCategoryID,
		TrainRatio:        DefaultTrainRatio,
		LogLevel:          DefaultLogLevel,
	}
}

// Load reads a Config from a file path. The format follows the extension:
// .yaml and .yml are YAML, anything else is JSON. Fields absent from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the Config to a file path, using the same format rules as Load.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		return enc.Encode(c)
	default:
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}
}

// ApplyEnv overrides fields from environment variables. Values from a .env
// file in dir are used when the variable is not set in the environment.
func (c *Config) ApplyEnv(getenv func(string) string, dir string) error {
	dotenv, err := godotenv.Read(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading .env: %w", err)
	}
	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	if v := lookup(EnvFolderPath); v != "" {
		c.FolderPath = v
	}
	if v := lookup(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := lookup(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := lookup(EnvTrainRatio); v != "" {
		ratio, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTrainRatio, err)
		}
		c.TrainRatio = ratio
	}
	if v := lookup(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = &seed
	}
	return nil
}

// Validate checks that configured values are in range.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output_dir is required")
	}
	if c.TrainRatio < 0 || c.TrainRatio > 1 {
		return fmt.Errorf("train_ratio must be within [0, 1], got %v", c.TrainRatio)
	}
	if c.PrimaryCategoryID < 0 {
		return fmt.Errorf("primary_category_id must not be negative, got %d", c.PrimaryCategoryID)
	}
	return nil
}

// ValidateResolved checks a configuration that must locate input files.
func (c *Config) ValidateResolved() error {
	if c.FolderPath == "" {
		return errors.New("folder_path is required")
	}
	return c.Validate()
}
