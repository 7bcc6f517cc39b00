// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/offerctl/internal/attrs"
	"github.com/tfctl/offerctl/internal/filters"
	"github.com/tfctl/offerctl/internal/isoduration"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks flags whose validity depends on more than one
// value.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if spec := c.String("attrs"); spec != "" {
		var al attrs.AttrList
		if err := al.Set(spec); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}
	s, _ := value.(string)
	if !slices.Contains(validOutputFlagValues, s) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

// DurationValidator accepts an empty value or an ISO-8601 duration.
func DurationValidator(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !isoduration.Valid(s) {
		return fmt.Errorf("must be an ISO-8601 duration such as PT20H, got %q", s)
	}
	return nil
}

// NonNegativeValidator rejects negative numbers.
func NonNegativeValidator(value any) error {
	var negative bool
	switch v := value.(type) {
	case int:
		negative = v < 0
	case int64:
		negative = v < 0
	case float64:
		negative = v < 0
	default:
		return fmt.Errorf("must be a number")
	}
	if negative {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// CriteriaValidator checks the compact --criteria syntax.
func CriteriaValidator(value any) error {
	s, _ := value.(string)
	_, err := filters.BuildCriteria(s)
	return err
}
