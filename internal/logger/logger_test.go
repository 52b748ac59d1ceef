// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := Stage(New(Config{Level: "info", Output: &buf}), "merge")

	log.Info().Int("images", 4).Msg("merged")
	log.Debug().Msg("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "merged", entry["message"])
	assert.Equal(t, "merge", entry["stage"])
	assert.EqualValues(t, 4, entry["images"])

	_, err := uuid.Parse(entry["run_id"].(string))
	assert.NoError(t, err)
}

func TestNew_Pretty(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Level: "debug", Pretty: true, Output: &buf}).Debug().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), `"message"`)
}
