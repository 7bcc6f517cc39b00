// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tfctl/offerctl/internal/airlines"
	"github.com/tfctl/offerctl/internal/isoduration"
	"github.com/tfctl/offerctl/internal/offer"
)

// OfferColumns are the computed columns of an offer row, in default order.
var OfferColumns = []string{"id", "airline", "name", "price", "currency", "slices", "stops", "duration"}

// AirlineColumns are the columns of an airline index row.
var AirlineColumns = []string{"code", "name"}

// offerRow is the flattened view of an offer.
type offerRow struct {
	ID       string          `json:"id"`
	Airline  string          `json:"airline"`
	Name     string          `json:"name"`
	Price    float64         `json:"price"`
	Currency string          `json:"currency"`
	Slices   int             `json:"slices"`
	Stops    int             `json:"stops"`
	Duration string          `json:"duration"`
	Offer    json.RawMessage `json:"offer"`
}

// OfferDataset flattens offers into the dataset SliceDiceSpit consumes. The
// duration column is the longest slice duration.
func OfferDataset(offers []offer.Offer) ([]byte, error) {
	rows := make([]offerRow, 0, len(offers))
	for _, o := range offers {
		raw := o.Raw
		if len(raw) == 0 {
			b, err := json.Marshal(o)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal offer %s: %w", o.ID, err)
			}
			raw = b
		}

		rows = append(rows, offerRow{
			ID:       o.ID,
			Airline:  o.Owner.IATACode,
			Name:     o.Owner.Name,
			Price:    o.TotalAmount,
			Currency: o.TotalCurrency,
			Slices:   len(o.Slices),
			Stops:    o.MaxStops(),
			Duration: longestDuration(o.Slices),
			Offer:    raw,
		})
	}
	return json.Marshal(rows)
}

// longestDuration returns the longest slice duration as written in the
// document. Unparseable durations are skipped.
func longestDuration(slices []offer.Slice) string {
	var (
		longest string
		max     time.Duration = -1
	)
	for _, s := range slices {
		d, err := isoduration.Parse(s.Duration)
		if err != nil {
			continue
		}
		if d > max {
			max, longest = d, s.Duration
		}
	}
	return longest
}

// AirlineDataset renders an airline index as code/name rows.
func AirlineDataset(idx airlines.Index) ([]byte, error) {
	type airlineRow struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}

	sorted := idx.Sorted()
	rows := make([]airlineRow, 0, len(sorted))
	for _, a := range sorted {
		rows = append(rows, airlineRow{Code: a.Code, Name: a.Name})
	}
	return json.Marshal(rows)
}

// RawOffers joins the original offer documents into a JSON array.
func RawOffers(offers []offer.Offer) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, o := range offers {
		if i > 0 {
			buf.WriteByte(',')
		}
		if len(o.Raw) > 0 {
			buf.Write(o.Raw)
			continue
		}
		b, _ := json.Marshal(o)
		buf.Write(b)
	}
	buf.WriteString("]\n")
	return buf.Bytes()
}
