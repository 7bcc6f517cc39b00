// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/offerctl/internal/config"
	"github.com/tfctl/offerctl/internal/log"
	"github.com/tfctl/offerctl/internal/offer"
	"github.com/tfctl/offerctl/internal/output"
)

// Result is what a command's FetchFn hands back for emission. A nil Result
// means the command already wrote its output.
type Result struct {
	// Dataset is a JSON array of flat rows, see output.SliceDiceSpit.
	Dataset []byte
	// Raw is written for --output raw.
	Raw []byte
	// Footer is printed under a text table when --titles is set.
	Footer string
}

// QueryActionRunner encapsulates the common action pattern of the offer
// commands: schema short-circuit, attrs, loading offers, the command specific
// step in FetchFn and output emission.
type QueryActionRunner struct {
	CommandName  string
	Columns      []string
	DefaultAttrs []string
	FetchFn      func(context.Context, *cli.Command, []offer.Offer) (*Result, error)
}

// Run executes the query action with the provided context and command.
func (qar *QueryActionRunner) Run(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing action: command=%s args=%v", qar.CommandName, cmd.Args().Slice())

	config.Config.Namespace = qar.CommandName

	if DumpSchemaIfRequested(cmd, qar.Columns, reflect.TypeOf(offer.Offer{})) {
		return nil
	}

	al, err := BuildAttrs(cmd, qar.DefaultAttrs...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %s", al.String())

	offers, err := LoadOffers(ctx, cmd)
	if err != nil {
		return err
	}

	result, err := qar.FetchFn(ctx, cmd, offers)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}

	opts := OutputOptions(cmd)
	opts.Raw = result.Raw
	if opts.Titles {
		opts.Footer = result.Footer
	}
	return output.SliceDiceSpit(result.Dataset, al, opts, m.Out())
}

// NewQueryActionRunner creates a QueryActionRunner with the provided
// configuration.
func NewQueryActionRunner(
	commandName string,
	columns []string,
	defaultAttrs []string,
	fetchFn func(context.Context, *cli.Command, []offer.Offer) (*Result, error),
) *QueryActionRunner {
	return &QueryActionRunner{
		CommandName:  commandName,
		Columns:      columns,
		DefaultAttrs: defaultAttrs,
		FetchFn:      fetchFn,
	}
}
