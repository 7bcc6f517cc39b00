// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/offerctl/internal/config"
	"github.com/tfctl/offerctl/internal/meta"
)

// InitApp builds the offerctl command tree. m supplies the standard streams;
// its Args, Config, Context and StartingDir are filled in here.
func InitApp(ctx context.Context, args []string, m meta.Meta) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// args[1] is the subcommand and also the namespace for config lookups.
	// It could be -h/--help, so ignore it if it looks like a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	// A missing config file is fine; a broken one is not.
	cfg, err := config.Load(ns)
	if err != nil && !errors.Is(err, config.ErrNoConfigFile) {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	m.Args = args
	m.Config = cfg
	m.Context = ctx
	m.StartingDir = sd

	app := &cli.Command{
		Name:      "offerctl",
		Usage:     "Flight Offer Control",
		Writer:    m.Out(),
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "offerctl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		airlinesCommandBuilder(m),
		filterCommandBuilder(m),
		completionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
