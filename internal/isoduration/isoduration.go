// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package isoduration parses and compares ISO-8601 durations such as "PT20H"
// or "P1DT2H30M" as absolute elapsed time.
package isoduration

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sosodev/duration"
)

var errEmpty = errors.New("empty duration")

// Upper bounds of the calendar components, used to spot durations that do
// not fit a time.Duration before converting them.
const (
	maxYear  = 366 * 24 * time.Hour
	maxMonth = 31 * 24 * time.Hour
	week     = 7 * 24 * time.Hour
	day      = 24 * time.Hour
)

// MalformedDurationError reports a string that is not an ISO-8601 duration.
type MalformedDurationError struct {
	Value string
	Err   error
}

func (e *MalformedDurationError) Error() string {
	return fmt.Sprintf("malformed ISO-8601 duration %q: %v", e.Value, e.Err)
}

func (e *MalformedDurationError) Unwrap() error {
	return e.Err
}

// Parse converts an ISO-8601 duration to a time.Duration. Years and months
// use the library's average calendar lengths. Durations too long for a
// time.Duration (about 290 years) saturate to the largest one, or the
// smallest when negative.
func Parse(s string) (time.Duration, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, &MalformedDurationError{Value: s, Err: errEmpty}
	}

	d, err := duration.Parse(trimmed)
	if err != nil {
		return 0, &MalformedDurationError{Value: s, Err: err}
	}
	if overflows(d) {
		if d.Negative {
			return time.Duration(math.MinInt64), nil
		}
		return time.Duration(math.MaxInt64), nil
	}
	return d.ToTimeDuration(), nil
}

// overflows reports whether d may exceed the time.Duration range, summing its
// components in float64 nanoseconds with the longest calendar lengths.
func overflows(d *duration.Duration) bool {
	ns := d.Years*float64(maxYear) +
		d.Months*float64(maxMonth) +
		d.Weeks*float64(week) +
		d.Days*float64(day) +
		d.Hours*float64(time.Hour) +
		d.Minutes*float64(time.Minute) +
		d.Seconds*float64(time.Second)
	return ns >= math.MaxInt64
}

// AtMost reports whether duration a is less than or equal to duration b,
// compared as absolute elapsed time.
func AtMost(a, b string) (bool, error) {
	da, err := Parse(a)
	if err != nil {
		return false, err
	}
	db, err := Parse(b)
	if err != nil {
		return false, err
	}
	return da <= db, nil
}

// Valid reports whether s parses as an ISO-8601 duration.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}
