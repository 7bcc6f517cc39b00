// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package offer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceStops(t *testing.T) {
	assert.Equal(t, 0, Slice{}.Stops())
	assert.Equal(t, 0, Slice{Segments: make([]Segment, 1)}.Stops())
	assert.Equal(t, 2, Slice{Segments: make([]Segment, 3)}.Stops())
}

func TestOfferMaxStops(t *testing.T) {
	o := Offer{Slices: []Slice{
		{Segments: make([]Segment, 2)},
		{Segments: make([]Segment, 3)},
		{Segments: make([]Segment, 1)},
	}}
	assert.Equal(t, 2, o.MaxStops())
	assert.Equal(t, 0, Offer{}.MaxStops())
}

func TestMalformedRecordError(t *testing.T) {
	err := fmt.Errorf("loading: %w", &MalformedRecordError{Index: 3, Field: "owner.iata_code"})

	var mre *MalformedRecordError
	assert.True(t, errors.As(err, &mre))
	assert.Equal(t, 3, mre.Index)
	assert.Equal(t, "loading: malformed offer at index 3: missing or invalid owner.iata_code", err.Error())
}
