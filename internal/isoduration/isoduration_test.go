// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package isoduration

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{in: "PT20H", want: 20 * time.Hour},
		{in: "PT2H26M", want: 2*time.Hour + 26*time.Minute},
		{in: "P1D", want: 24 * time.Hour},
		{in: "P1DT2H", want: 26 * time.Hour},
		{in: "PT90M", want: 90 * time.Minute},
		{in: " PT45S ", want: 45 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, in := range []string{"", "   ", "20 hours", "PT20X"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)

			var mde *MalformedDurationError
			require.True(t, errors.As(err, &mde))
			assert.Equal(t, in, mde.Value)
			assert.False(t, Valid(in))
		})
	}
}

func TestAtMost(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "shorter", a: "PT10H", b: "PT20H", want: true},
		{name: "equal passes", a: "PT20H", b: "PT20H", want: true},
		{name: "longer", a: "PT25H", b: "PT20H", want: false},
		{name: "different units equal", a: "PT90M", b: "PT1H30M", want: true},
		{name: "days against hours", a: "P1D", b: "PT23H59M", want: false},
		{name: "hours against days", a: "PT23H59M", b: "P1D", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AtMost(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAtMost_Malformed(t *testing.T) {
	var mde *MalformedDurationError

	_, err := AtMost("ten hours", "PT20H")
	require.True(t, errors.As(err, &mde))
	assert.Equal(t, "ten hours", mde.Value)

	_, err = AtMost("PT10H", "soon")
	require.True(t, errors.As(err, &mde))
	assert.Equal(t, "soon", mde.Value)
}

func TestParse_Saturates(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{in: "P300Y", want: math.MaxInt64},
		{in: "P1000Y", want: math.MaxInt64},
		{in: "PT3000000H", want: math.MaxInt64},
		{in: "P200Y", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			if tt.want == 0 {
				assert.Positive(t, got)
				assert.Less(t, got, time.Duration(math.MaxInt64))
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}

	ok, err := AtMost("PT10H", "P1000Y")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = AtMost("P1000Y", "P300Y")
	require.NoError(t, err)
	assert.True(t, ok)
}
