// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"errors"

	"github.com/tfctl/offerctl/internal/isoduration"
	"github.com/tfctl/offerctl/internal/log"
	"github.com/tfctl/offerctl/internal/offer"
)

// Criteria holds the optional filter criteria. A nil field leaves its stage
// inactive, as do an empty Airline or Duration and a zero Price. Zero price
// therefore means "no cap", never "free flights only".
type Criteria struct {
	Airline  *string  `yaml:"airline" json:"airline,omitempty"`
	Duration *string  `yaml:"duration" json:"duration,omitempty"`
	Stops    *int     `yaml:"stops" json:"stops,omitempty"`
	Price    *float64 `yaml:"price" json:"price,omitempty"`
}

// Ptr returns a pointer to v. Handy for building Criteria literals.
func Ptr[T any](v T) *T {
	return &v
}

// Stage is a single predicate of the pipeline. Keep reports whether the offer
// survives the stage.
type Stage struct {
	Name string
	Keep func(offer.Offer) (bool, error)
}

// Stage names, in the order FilterFlights applies them.
const (
	StageAirline  = "airline"
	StageDuration = "duration"
	StageStops    = "stops"
	StagePrice    = "price"
)

// IsZero reports whether no stage is active.
func (c Criteria) IsZero() bool {
	return len(c.Active()) == 0
}

// Active returns the names of the active stages.
func (c Criteria) Active() []string {
	var names []string
	if c.Airline != nil && *c.Airline != "" {
		names = append(names, StageAirline)
	}
	if c.Duration != nil && *c.Duration != "" {
		names = append(names, StageDuration)
	}
	if c.Stops != nil {
		names = append(names, StageStops)
	}
	if c.Price != nil && *c.Price != 0 {
		names = append(names, StagePrice)
	}
	return names
}

// Merge returns c with every non-nil field of override applied on top.
func (c Criteria) Merge(override Criteria) Criteria {
	if override.Airline != nil {
		c.Airline = override.Airline
	}
	if override.Duration != nil {
		c.Duration = override.Duration
	}
	if override.Stops != nil {
		c.Stops = override.Stops
	}
	if override.Price != nil {
		c.Price = override.Price
	}
	return c
}

// Stages builds the active stages. A Duration that is not ISO-8601 fails with
// an *isoduration.MalformedDurationError before any offer is looked at.
func (c Criteria) Stages() ([]Stage, error) {
	var stages []Stage
	for _, name := range c.Active() {
		switch name {
		case StageAirline:
			stages = append(stages, airlineStage(*c.Airline))
		case StageDuration:
			if _, err := isoduration.Parse(*c.Duration); err != nil {
				return nil, err
			}
			stages = append(stages, durationStage(*c.Duration))
		case StageStops:
			stages = append(stages, stopsStage(*c.Stops))
		case StagePrice:
			stages = append(stages, priceStage(*c.Price))
		}
	}
	return stages, nil
}

// FilterFlights returns the offers satisfying every active criterion, in
// their original order. The input is never modified.
func FilterFlights(c Criteria, offers []offer.Offer) ([]offer.Offer, error) {
	stages, err := c.Stages()
	if err != nil {
		return nil, err
	}
	return Apply(stages, offers)
}

// Apply runs the stages in the given order, each over the survivors of the
// previous one. Stages are pure and conjunctive, so any order gives the same
// result. The first error aborts the call with no partial result; a
// MalformedRecordError carries the offer's index in the input.
func Apply(stages []Stage, offers []offer.Offer) ([]offer.Offer, error) {
	kept := make([]int, len(offers))
	for i := range offers {
		kept[i] = i
	}

	for _, stage := range stages {
		next := make([]int, 0, len(kept))
		for _, pos := range kept {
			ok, err := stage.Keep(offers[pos])
			if err != nil {
				var mre *offer.MalformedRecordError
				if errors.As(err, &mre) {
					mre.Index = pos
				}
				log.Debugf("stage failed: stage=%s index=%d err=%v", stage.Name, pos, err)
				return nil, err
			}
			if ok {
				next = append(next, pos)
			}
		}
		log.Debugf("stage applied: stage=%s in=%d out=%d", stage.Name, len(kept), len(next))
		kept = next
	}

	result := make([]offer.Offer, 0, len(kept))
	for _, pos := range kept {
		result = append(result, offers[pos])
	}
	return result, nil
}

// airlineStage keeps offers owned by exactly code (case-sensitive).
func airlineStage(code string) Stage {
	return Stage{
		Name: StageAirline,
		Keep: func(o offer.Offer) (bool, error) {
			if o.Owner.IATACode == "" {
				return false, &offer.MalformedRecordError{Field: "owner.iata_code"}
			}
			return o.Owner.IATACode == code, nil
		},
	}
}

// durationStage keeps offers whose every slice lasts at most limit. An offer
// without slices passes.
func durationStage(limit string) Stage {
	return Stage{
		Name: StageDuration,
		Keep: func(o offer.Offer) (bool, error) {
			for _, s := range o.Slices {
				ok, err := isoduration.AtMost(s.Duration, limit)
				if err != nil || !ok {
					return false, err
				}
			}
			return true, nil
		},
	}
}

// stopsStage keeps offers whose every slice has at most stops+1 segments. An
// offer without slices passes. The comparison is on stops so that
// math.MaxInt cannot overflow.
func stopsStage(stops int) Stage {
	return Stage{
		Name: StageStops,
		Keep: func(o offer.Offer) (bool, error) {
			for _, s := range o.Slices {
				if len(s.Segments)-1 > stops {
					return false, nil
				}
			}
			return true, nil
		},
	}
}

// priceStage keeps offers priced above zero and at most limit.
func priceStage(limit float64) Stage {
	return Stage{
		Name: StagePrice,
		Keep: func(o offer.Offer) (bool, error) {
			return o.TotalAmount > 0 && o.TotalAmount <= limit, nil
		},
	}
}
