// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/offerctl/internal/filters"
	"github.com/tfctl/offerctl/internal/log"
	"github.com/tfctl/offerctl/internal/meta"
	"github.com/tfctl/offerctl/internal/offer"
	"github.com/tfctl/offerctl/internal/output"
)

// CriteriaFromFlags starts from --criteria and overlays the individual
// criterion flags that were set.
func CriteriaFromFlags(cmd *cli.Command) (filters.Criteria, error) {
	c, err := filters.BuildCriteria(cmd.String("criteria"))
	if err != nil {
		return filters.Criteria{}, err
	}

	var explicit filters.Criteria
	if cmd.IsSet("airline") {
		explicit.Airline = filters.Ptr(cmd.String("airline"))
	}
	if cmd.IsSet("duration") {
		explicit.Duration = filters.Ptr(cmd.String("duration"))
	}
	if cmd.IsSet("stops") {
		explicit.Stops = filters.Ptr(cmd.Int("stops"))
	}
	if cmd.IsSet("price") {
		explicit.Price = filters.Ptr(cmd.Float("price"))
	}

	return c.Merge(explicit), nil
}

// filterFetch applies the criteria. With --count only the number of matches
// is printed.
func filterFetch(_ context.Context, cmd *cli.Command, offers []offer.Offer) (*Result, error) {
	c, err := CriteriaFromFlags(cmd)
	if err != nil {
		return nil, err
	}

	kept := offers
	if c.IsZero() {
		log.Debugf("no criteria, keeping all offers: count=%d", len(offers))
	} else {
		log.Debugf("criteria: %s", c.String())
		if kept, err = filters.FilterFlights(c, offers); err != nil {
			return nil, err
		}
	}

	if cmd.Bool("count") {
		_, err := fmt.Fprintln(GetMeta(cmd).Out(), len(kept))
		return nil, err
	}

	dataset, err := output.OfferDataset(kept)
	if err != nil {
		return nil, err
	}

	return &Result{
		Dataset: dataset,
		Raw:     output.RawOffers(kept),
		Footer:  fmt.Sprintf("%d of %d offers", len(kept), len(offers)),
	}, nil
}

// filterCommandBuilder constructs the cli.Command for "filter".
func filterCommandBuilder(meta meta.Meta) *cli.Command {
	ns, cfgFile := "filter", meta.Config.Source

	airline := &cli.StringFlag{
		Name:    "airline",
		Aliases: []string{"A"},
		Usage:   "keep offers sold by this IATA airline code (exact match)",
	}
	duration := &cli.StringFlag{
		Name:    "duration",
		Aliases: []string{"d"},
		Usage:   "keep offers whose every slice lasts at most this ISO-8601 duration",
		Validator: func(value string) error {
			return FlagValidators(value, DurationValidator)
		},
	}
	stops := &cli.IntFlag{
		Name:    "stops",
		Aliases: []string{"n"},
		Usage:   "keep offers whose every slice has at most this many stops",
		Validator: func(value int) error {
			return FlagValidators(value, NonNegativeValidator)
		},
	}
	price := &cli.FloatFlag{
		Name:    "price",
		Aliases: []string{"p"},
		Usage:   "keep offers priced above 0 and at most this amount (0 means no limit)",
		Validator: func(value float64) error {
			return FlagValidators(value, NonNegativeValidator)
		},
	}
	criteria := &cli.StringFlag{
		Name:    "criteria",
		Aliases: []string{"f"},
		Usage:   "compact criteria, e.g. airline=LH,duration=PT20H,stops=0,price=1000",
		Sources: cli.NewValueSourceChain(cli.EnvVar("OFFERCTL_CRITERIA")),
		Validator: func(value string) error {
			return FlagValidators(value, CriteriaValidator)
		},
	}

	NameSpacedValueChainFromConfigFile(ns, cfgFile, airline.Name, &airline.Sources)
	NameSpacedValueChainFromConfigFile(ns, cfgFile, duration.Name, &duration.Sources)
	NameSpacedValueChainFromConfigFile(ns, cfgFile, stops.Name, &stops.Sources)
	NameSpacedValueChainFromConfigFile(ns, cfgFile, price.Name, &price.Sources)
	NameSpacedValueChainFromConfigFile(ns, cfgFile, criteria.Name, &criteria.Sources)

	runner := NewQueryActionRunner(ns, output.OfferColumns, output.OfferColumns, filterFetch)

	return (&QueryCommandBuilder{
		Name:      ns,
		Usage:     "filter offers by airline, duration, stops and price",
		UsageText: "offerctl filter [source] [options]",
		Meta:      meta,
		Flags: []cli.Flag{
			airline,
			duration,
			stops,
			price,
			criteria,
			&cli.BoolFlag{
				Name:  "count",
				Usage: "print only the number of matching offers",
			},
		},
		Action: runner.Run,
	}).Build()
}
