// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package offer

import (
	"encoding/json"
	"fmt"
)

// Owner is the airline selling the offer.
type Owner struct {
	IATACode string `json:"iata_code" yaml:"iata_code"`
	Name     string `json:"name" yaml:"name"`
}

// Place is the airport end of a segment. Informational only.
type Place struct {
	IATACode string `json:"iata_code,omitempty" yaml:"iata_code,omitempty"`
}

// Segment is a single non-stop leg. Only the number of segments in a slice
// matters when filtering.
type Segment struct {
	Origin       Place  `json:"origin" yaml:"origin"`
	Destination  Place  `json:"destination" yaml:"destination"`
	DepartingAt  string `json:"departing_at,omitempty" yaml:"departing_at,omitempty"`
	ArrivingAt   string `json:"arriving_at,omitempty" yaml:"arriving_at,omitempty"`
	FlightNumber string `json:"marketing_carrier_flight_number,omitempty" yaml:"flight_number,omitempty"`
}

// Slice is one directional part of the journey.
type Slice struct {
	Duration string    `json:"duration" yaml:"duration"`
	Segments []Segment `json:"segments" yaml:"segments"`
}

// Stops returns the number of intermediate stops in the slice.
func (s Slice) Stops() int {
	if len(s.Segments) == 0 {
		return 0
	}
	return len(s.Segments) - 1
}

// Offer is a single flight offer.
type Offer struct {
	ID            string  `json:"id,omitempty" yaml:"id,omitempty"`
	Owner         Owner   `json:"owner" yaml:"owner"`
	Slices        []Slice `json:"slices" yaml:"slices"`
	TotalAmount   float64 `json:"total_amount" yaml:"total_amount"`
	TotalCurrency string  `json:"total_currency,omitempty" yaml:"total_currency,omitempty"`

	// Raw is the JSON the offer was decoded from, kept for --output raw.
	Raw json.RawMessage `json:"-" yaml:"-"`
}

// MaxStops returns the largest stop count across the offer's slices.
func (o Offer) MaxStops() int {
	stops := 0
	for _, s := range o.Slices {
		if s.Stops() > stops {
			stops = s.Stops()
		}
	}
	return stops
}

// MalformedRecordError reports a record lacking a field the caller needs.
// Index is the position of the record in its collection.
type MalformedRecordError struct {
	Index int
	Field string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed offer at index %d: missing or invalid %s", e.Index, e.Field)
}
