// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReference_MergesCommonFlags(t *testing.T) {
	ref, err := loadReference(filepath.Join("..", "..", "docs", "templates", "offerctl.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, ref.Subcommands)

	for _, sub := range ref.Subcommands {
		ids := make([]string, len(sub.Flags))
		for i, f := range sub.Flags {
			ids[i] = f.ID
		}
		assert.IsIncreasing(t, ids, sub.ID)
		assert.Contains(t, ids, "output", sub.ID)
	}
}

func TestGenerate(t *testing.T) {
	docs := t.TempDir()
	templates := filepath.Join(docs, "templates")
	require.NoError(t, os.MkdirAll(templates, 0o755))

	for _, name := range []string{"offerctl.yaml", "offerctl.md.tmpl", "offerctl.man.tmpl"} {
		data, err := os.ReadFile(filepath.Join("..", "..", "docs", "templates", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(templates, name), data, 0o600))
	}

	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, generate(docs, "1.2.3", now))

	md, err := os.ReadFile(filepath.Join(docs, "commands", "filter.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "offerctl filter")
	assert.Contains(t, string(md), "--price")

	man, err := os.ReadFile(filepath.Join(docs, "man", "share", "man1", "offerctl-airlines.1"))
	require.NoError(t, err)
	assert.Contains(t, string(man), "OFFERCTL-AIRLINES")
	assert.Contains(t, string(man), "1.2.3")
	assert.Contains(t, string(man), "January 2, 2026")
}

func TestGenerate_MissingReference(t *testing.T) {
	assert.Error(t, generate(t.TempDir(), "dev", time.Now()))
}
