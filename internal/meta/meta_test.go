// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package meta

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreams(t *testing.T) {
	var m Meta
	assert.Equal(t, os.Stdin, m.In())
	assert.Equal(t, os.Stdout, m.Out())

	in := strings.NewReader("[]")
	out := &bytes.Buffer{}
	m = Meta{Stdin: in, Stdout: out}
	assert.Equal(t, in, m.In())
	assert.Equal(t, out, m.Out())
}
