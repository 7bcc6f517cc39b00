// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package airlines derives the IATA code to airline name lookup from a set of
// offers.
package airlines

import (
	"sort"

	"github.com/tfctl/offerctl/internal/log"
	"github.com/tfctl/offerctl/internal/offer"
)

// Index maps an airline IATA code to its display name. Map iteration order is
// undefined; use Sorted for stable display.
type Index map[string]string

// Airline is a single Index entry.
type Airline struct {
	Code string `json:"iata_code" yaml:"iata_code"`
	Name string `json:"name" yaml:"name"`
}

// BuildIndex scans offers once and records the owner name seen at the first
// occurrence of each IATA code. An offer without an owner code or name fails
// the whole call.
func BuildIndex(offers []offer.Offer) (Index, error) {
	index := make(Index)
	for i, o := range offers {
		if o.Owner.IATACode == "" {
			return nil, &offer.MalformedRecordError{Index: i, Field: "owner.iata_code"}
		}
		if o.Owner.Name == "" {
			return nil, &offer.MalformedRecordError{Index: i, Field: "owner.name"}
		}
		if _, seen := index[o.Owner.IATACode]; seen {
			continue
		}
		index[o.Owner.IATACode] = o.Owner.Name
		log.Tracef("airline indexed: code=%s name=%s", o.Owner.IATACode, o.Owner.Name)
	}

	log.Debugf("airline index built: offers=%d airlines=%d", len(offers), len(index))
	return index, nil
}

// Sorted returns the entries ordered by IATA code.
func (idx Index) Sorted() []Airline {
	entries := make([]Airline, 0, len(idx))
	for code, name := range idx {
		entries = append(entries, Airline{Code: code, Name: name})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Code < entries[j].Code
	})
	return entries
}
