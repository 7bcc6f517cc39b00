// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/tfctl/offerctl/internal/isoduration"
	"github.com/tfctl/offerctl/internal/log"
)

// criterionRegex splits a criterion expression into key, operator and value.
// Examples: "airline=LH", "price=1000", "stops=" (key + operator, no value,
// leaves the stage inactive), "stops" (key only, rejected).
var criterionRegex = regexp.MustCompile(`^([^!=<>~^@/]*)(!?[=<>~^@/]+)?(.*)$`)

// BuildCriteria parses a compact criteria spec such as
// "airline=LH,duration=PT20H,stops=0,price=1000". The delimiter defaults to
// "," and may be overridden with OFFERCTL_FILTER_DELIM. Empty values leave
// the matching stage inactive. Unknown keys, operators other than "=" and
// unparseable values are errors.
func BuildCriteria(spec string) (Criteria, error) {
	var c Criteria

	if strings.TrimSpace(spec) == "" {
		return c, nil
	}

	delim := ","
	if d, ok := os.LookupEnv("OFFERCTL_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, expr := range strings.Split(spec, delim) {
		expr = strings.TrimSpace(expr)
		if expr == "" {
			continue
		}

		parts := criterionRegex.FindStringSubmatch(expr)
		if parts == nil {
			return Criteria{}, fmt.Errorf("invalid criterion: %s", expr)
		}

		key := strings.ToLower(strings.TrimSpace(parts[1]))
		operand := parts[2]
		value := strings.TrimSpace(parts[3])

		if key == "" {
			return Criteria{}, fmt.Errorf("invalid criterion: empty key in %s", expr)
		}
		if operand != "=" {
			return Criteria{}, fmt.Errorf("invalid criterion: %s: unsupported operand %q", expr, operand)
		}

		if err := c.set(key, value); err != nil {
			return Criteria{}, fmt.Errorf("invalid criterion: %s: %w", expr, err)
		}
		log.Tracef("criterion parsed: key=%s value=%s", key, value)
	}

	return c, nil
}

// set assigns a single parsed criterion. An empty value clears the field.
func (c *Criteria) set(key, value string) error {
	switch key {
	case StageAirline:
		if value == "" {
			c.Airline = nil
			return nil
		}
		c.Airline = Ptr(value)
	case StageDuration:
		if value == "" {
			c.Duration = nil
			return nil
		}
		if _, err := isoduration.Parse(value); err != nil {
			return err
		}
		c.Duration = Ptr(value)
	case StageStops:
		if value == "" {
			c.Stops = nil
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("stops must be a non-negative integer")
		}
		c.Stops = Ptr(n)
	case StagePrice:
		if value == "" {
			c.Price = nil
			return nil
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("price must be a non-negative number")
		}
		c.Price = Ptr(f)
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

// String renders the active criteria in BuildCriteria's syntax.
func (c Criteria) String() string {
	var parts []string
	for _, name := range c.Active() {
		switch name {
		case StageAirline:
			parts = append(parts, "airline="+*c.Airline)
		case StageDuration:
			parts = append(parts, "duration="+*c.Duration)
		case StageStops:
			parts = append(parts, "stops="+strconv.Itoa(*c.Stops))
		case StagePrice:
			parts = append(parts, "price="+strconv.FormatFloat(*c.Price, 'f', -1, 64))
		}
	}
	return strings.Join(parts, ",")
}
