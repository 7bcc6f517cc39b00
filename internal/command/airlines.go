// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/offerctl/internal/airlines"
	"github.com/tfctl/offerctl/internal/log"
	"github.com/tfctl/offerctl/internal/meta"
	"github.com/tfctl/offerctl/internal/offer"
	"github.com/tfctl/offerctl/internal/output"
)

// airlinesFetch builds the airline index of the offers. Raw output is the
// index itself as a code to name object.
func airlinesFetch(_ context.Context, _ *cli.Command, offers []offer.Offer) (*Result, error) {
	idx, err := airlines.BuildIndex(offers)
	if err != nil {
		return nil, err
	}
	log.Debugf("airline index built: offers=%d airlines=%d", len(offers), len(idx))

	dataset, err := output.AirlineDataset(idx)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(idx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal airline index: %w", err)
	}

	return &Result{
		Dataset: dataset,
		Raw:     append(raw, '\n'),
		Footer:  fmt.Sprintf("%d airlines in %d offers", len(idx), len(offers)),
	}, nil
}

// airlinesCommandBuilder constructs the cli.Command for "airlines".
func airlinesCommandBuilder(meta meta.Meta) *cli.Command {
	runner := NewQueryActionRunner("airlines", output.AirlineColumns, []string{"code", "name"}, airlinesFetch)

	return (&QueryCommandBuilder{
		Name:      "airlines",
		Usage:     "list the airlines selling the offers",
		UsageText: "offerctl airlines [source] [options]",
		Meta:      meta,
		Action:    runner.Run,
	}).Build()
}
