// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/offerctl/internal/config"
)

func TestDeduplicateFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "empty args",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "only program and command",
			args:     []string{"offerctl", "filter"},
			expected: []string{"offerctl", "filter"},
		},
		{
			name:     "no duplicates",
			args:     []string{"offerctl", "filter", "--output", "text", "--titles"},
			expected: []string{"offerctl", "filter", "--output", "text", "--titles"},
		},
		{
			name:     "duplicate flag with value - last wins",
			args:     []string{"offerctl", "filter", "--output", "json", "--titles", "--output", "text"},
			expected: []string{"offerctl", "filter", "--titles", "--output", "text"},
		},
		{
			name:     "duplicate boolean flag",
			args:     []string{"offerctl", "filter", "--titles", "--count", "--titles"},
			expected: []string{"offerctl", "filter", "--count", "--titles"},
		},
		{
			name:     "duplicate flag with equals syntax",
			args:     []string{"offerctl", "filter", "--output=json", "--titles", "--output=text"},
			expected: []string{"offerctl", "filter", "--titles", "--output=text"},
		},
		{
			name:     "mixed equals and space syntax - same flag",
			args:     []string{"offerctl", "filter", "--output=json", "--output", "text"},
			expected: []string{"offerctl", "filter", "--output", "text"},
		},
		{
			name:     "multiple different flags with duplicates",
			args:     []string{"offerctl", "filter", "--airline", "LH", "--price", "500", "--airline", "BA", "--price", "900"},
			expected: []string{"offerctl", "filter", "--airline", "BA", "--price", "900"},
		},
		{
			name:     "positional args preserved",
			args:     []string{"offerctl", "filter", "offers.json", "--output", "json", "--output", "text"},
			expected: []string{"offerctl", "filter", "offers.json", "--output", "text"},
		},
		{
			name:     "stdin source preserved",
			args:     []string{"offerctl", "airlines", "-", "-o", "json", "-o", "yaml"},
			expected: []string{"offerctl", "airlines", "-", "-o", "yaml"},
		},
		{
			name:     "boolean flag does not swallow positional",
			args:     []string{"offerctl", "filter", "--titles", "offers.json"},
			expected: []string{"offerctl", "filter", "--titles", "offers.json"},
		},
		{
			name:     "different flags not affected",
			args:     []string{"offerctl", "filter", "--color", "--count"},
			expected: []string{"offerctl", "filter", "--color", "--count"},
		},
		{
			name:     "triple duplicate",
			args:     []string{"offerctl", "filter", "--stops", "0", "--stops", "1", "--stops", "2"},
			expected: []string{"offerctl", "filter", "--stops", "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, deduplicateFlags(tt.args))
		})
	}
}

func TestDeduplicateFlagsPreservesOrder(t *testing.T) {
	args := []string{"offerctl", "filter", "--alpha", "--beta", "--gamma"}
	assert.Equal(t, args, deduplicateFlags(args))
}

func TestInjectConfigSet(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		insertIdx int
		entries   []string
		expected  []string
	}{
		{
			name:      "empty set returns args unchanged",
			args:      []string{"offerctl", "filter", "--titles"},
			insertIdx: 2,
			expected:  []string{"offerctl", "filter", "--titles"},
		},
		{
			name:      "single entry injected",
			args:      []string{"offerctl", "filter", "--titles"},
			insertIdx: 2,
			entries:   []string{"--count"},
			expected:  []string{"offerctl", "filter", "--count", "--titles"},
		},
		{
			name:      "multi-word entry split",
			args:      []string{"offerctl", "filter", "--titles"},
			insertIdx: 2,
			entries:   []string{"--output text"},
			expected:  []string{"offerctl", "filter", "--output", "text", "--titles"},
		},
		{
			name:      "insert after source",
			args:      []string{"offerctl", "filter", "offers.json", "--titles"},
			insertIdx: 3,
			entries:   []string{"--airline LH", "--stops 0"},
			expected:  []string{"offerctl", "filter", "offers.json", "--airline", "LH", "--stops", "0", "--titles"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, injectConfigSet(tt.args, tt.entries, tt.insertIdx))
		})
	}
}

func TestInjectConfigSet_DoesNotAliasArgs(t *testing.T) {
	args := make([]string, 3, 10)
	copy(args, []string{"offerctl", "filter", "offers.json"})

	result := injectConfigSet(args, []string{"--count"}, 2)
	assert.Equal(t, []string{"offerctl", "filter", "--count", "offers.json"}, result)
	assert.Equal(t, []string{"offerctl", "filter", "offers.json"}, args)
}

func TestProcessSetOnly(t *testing.T) {
	cfg := `
filter:
  defaults:
    - --output json
  cheap:
    - --price 600
    - --stops 0
`
	cfgPath := filepath.Join(t.TempDir(), "offerctl.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	t.Setenv("OFFERCTL_CFG_FILE", cfgPath)
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "defaults inserted after command",
			args:     []string{"offerctl", "filter", "offers.json", "--output", "text"},
			expected: []string{"offerctl", "filter", "--output", "json", "offers.json", "--output", "text"},
		},
		{
			name:     "named set replaces marker",
			args:     []string{"offerctl", "filter", "offers.json", "@cheap", "--titles"},
			expected: []string{"offerctl", "filter", "offers.json", "--price", "600", "--stops", "0", "--titles"},
		},
		{
			name:     "unknown set drops marker",
			args:     []string{"offerctl", "filter", "@nope"},
			expected: []string{"offerctl", "filter"},
		},
		{
			name:     "command without sets",
			args:     []string{"offerctl", "airlines", "offers.json"},
			expected: []string{"offerctl", "airlines", "offers.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, processSetOnly(tt.args))
		})
	}
}

func TestProcessCommandArgs_DefaultsOverridden(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "offerctl.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("filter:\n  defaults:\n    - --output json\n"), 0o600))
	t.Setenv("OFFERCTL_CFG_FILE", cfgPath)
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	got := processCommandArgs([]string{"offerctl", "filter", "offers.json", "-o", "yaml", "--output", "text"})
	assert.Equal(t, []string{"offerctl", "filter", "offers.json", "-o", "yaml", "--output", "text"}, got)

	got = processCommandArgs([]string{"offerctl", "completion", "bash"})
	assert.Equal(t, []string{"offerctl", "completion", "bash"}, got)
}

func TestHandleNakedCommand(t *testing.T) {
	assert.Equal(t, []string{"offerctl", "--help"}, handleNakedCommand([]string{"offerctl"}))
	assert.Equal(t, []string{"offerctl", "filter"}, handleNakedCommand([]string{"offerctl", "filter"}))
}
