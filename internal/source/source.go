// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	awsx "github.com/tfctl/offerctl/internal/aws"
	"github.com/tfctl/offerctl/internal/log"
	"github.com/tfctl/offerctl/internal/offer"
)

// Stdin is the location that reads the document from standard input.
const Stdin = "-"

// defaultPaths are tried in order when Options.Path is empty and the document
// itself is not an array.
var defaultPaths = []string{"data.offers", "data", "offers"}

// Options tunes where and how a document is read.
type Options struct {
	// Path is a gjson path to the offers array inside the document.
	Path string
	// Stdin overrides os.Stdin for the "-" location.
	Stdin io.Reader
	// S3 overrides the client built from Profile, Region and Endpoint.
	S3 S3API

	Profile  string
	Region   string
	Endpoint string
}

// Load reads the document at location and decodes its offers.
func Load(ctx context.Context, location string, opts Options) ([]offer.Offer, error) {
	doc, err := Read(ctx, location, opts)
	if err != nil {
		return nil, err
	}

	offers, err := Decode(doc, opts.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	log.Debugf("offers loaded: location=%s count=%d", location, len(offers))
	return offers, nil
}

// Read returns the raw document at location.
func Read(ctx context.Context, location string, opts Options) ([]byte, error) {
	switch {
	case location == "":
		return nil, fmt.Errorf("no source given")
	case location == Stdin:
		r := opts.Stdin
		if r == nil {
			r = os.Stdin
		}
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return b, nil
	case strings.HasPrefix(location, awsx.S3Scheme):
		return readS3(ctx, location, opts)
	default:
		b, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("failed to read source: %w", err)
		}
		return b, nil
	}
}

// Decode locates the offers array in doc and converts each element.
func Decode(doc []byte, path string) ([]offer.Offer, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("document is not valid JSON")
	}

	list, err := locate(gjson.ParseBytes(doc), path)
	if err != nil {
		return nil, err
	}

	elems := list.Array()
	offers := make([]offer.Offer, 0, len(elems))
	for i, elem := range elems {
		o, err := decodeOffer(elem)
		if err != nil {
			if mre, ok := err.(*offer.MalformedRecordError); ok {
				mre.Index = i
			}
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, nil
}

func locate(root gjson.Result, path string) (gjson.Result, error) {
	if path != "" {
		r := root.Get(path)
		if !r.IsArray() {
			return gjson.Result{}, fmt.Errorf("path %q does not hold an array", path)
		}
		return r, nil
	}

	if root.IsArray() {
		return root, nil
	}
	for _, p := range defaultPaths {
		if r := root.Get(p); r.IsArray() {
			log.Tracef("offers located: path=%s", p)
			return r, nil
		}
	}
	return gjson.Result{}, fmt.Errorf("no offers array found (tried %s)", strings.Join(defaultPaths, ", "))
}

func decodeOffer(r gjson.Result) (offer.Offer, error) {
	if !r.IsObject() {
		return offer.Offer{}, &offer.MalformedRecordError{Field: "offer"}
	}

	o := offer.Offer{
		ID:            r.Get("id").String(),
		TotalCurrency: r.Get("total_currency").String(),
		Raw:           []byte(r.Raw),
	}

	code := r.Get("owner.iata_code")
	if code.Type != gjson.String || code.Str == "" {
		return offer.Offer{}, &offer.MalformedRecordError{Field: "owner.iata_code"}
	}
	name := r.Get("owner.name")
	if name.Type != gjson.String || name.Str == "" {
		return offer.Offer{}, &offer.MalformedRecordError{Field: "owner.name"}
	}
	o.Owner = offer.Owner{IATACode: code.Str, Name: name.Str}

	amount, ok := decodeAmount(r.Get("total_amount"))
	if !ok {
		return offer.Offer{}, &offer.MalformedRecordError{Field: "total_amount"}
	}
	o.TotalAmount = amount

	slices := r.Get("slices")
	if !slices.IsArray() {
		return offer.Offer{}, &offer.MalformedRecordError{Field: "slices"}
	}
	for i, s := range slices.Array() {
		field := "slices." + strconv.Itoa(i)
		d := s.Get("duration")
		if d.Type != gjson.String {
			return offer.Offer{}, &offer.MalformedRecordError{Field: field + ".duration"}
		}
		segs := s.Get("segments")
		if !segs.IsArray() {
			return offer.Offer{}, &offer.MalformedRecordError{Field: field + ".segments"}
		}

		slice := offer.Slice{Duration: d.Str, Segments: []offer.Segment{}}
		for _, seg := range segs.Array() {
			slice.Segments = append(slice.Segments, offer.Segment{
				Origin:       offer.Place{IATACode: seg.Get("origin.iata_code").String()},
				Destination:  offer.Place{IATACode: seg.Get("destination.iata_code").String()},
				DepartingAt:  seg.Get("departing_at").String(),
				ArrivingAt:   seg.Get("arriving_at").String(),
				FlightNumber: seg.Get("marketing_carrier_flight_number").String(),
			})
		}
		o.Slices = append(o.Slices, slice)
	}
	if o.Slices == nil {
		o.Slices = []offer.Slice{}
	}

	return o, nil
}

// decodeAmount accepts a JSON number or a string holding one.
func decodeAmount(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Num, true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
