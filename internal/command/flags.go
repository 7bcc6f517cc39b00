// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewSchemaFlag constructs the --schema flag.
func NewSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "list the columns and offer paths usable with --attrs",
		HideDefault: true,
	}
}

// NewGlobalFlags returns the flags shared by every data command. params[0] is
// the command namespace and params[1] the config file; with both present the
// flags also take their values from "<ns>.<flag>" and "<flag>" in the config
// file.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	attrs := &cli.StringFlag{
		Name:    "attrs",
		Aliases: []string{"a"},
		Usage:   "comma-separated list of columns to include in results",
	}
	color := &cli.BoolFlag{
		Name:    "color",
		Aliases: []string{"c"},
		Usage:   "enable colored text output",
		Value:   false,
	}
	output := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format (text, json, yaml, raw)",
		Sources: cli.NewValueSourceChain(cli.EnvVar("OFFERCTL_OUTPUT")),
		Value:   "text",
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}
	padding := &cli.IntFlag{
		Name:  "padding",
		Usage: "spaces between text columns",
		Value: 2, //nolint:mnd
	}
	path := &cli.StringFlag{
		Name:  "path",
		Usage: "gjson path to the offers array in the document",
	}
	sort := &cli.StringFlag{
		Name:    "sort",
		Aliases: []string{"s"},
		Usage:   "comma-separated list of columns to sort the results by",
	}
	titles := &cli.BoolFlag{
		Name:    "titles",
		Aliases: []string{"t"},
		Usage:   "show titles with text output",
		Value:   false,
	}

	profile := &cli.StringFlag{
		Name:    "profile",
		Usage:   "AWS profile for s3:// sources",
		Sources: cli.NewValueSourceChain(cli.EnvVar("OFFERCTL_S3_PROFILE")),
	}
	region := &cli.StringFlag{
		Name:    "region",
		Usage:   "AWS region for s3:// sources",
		Sources: cli.NewValueSourceChain(cli.EnvVar("OFFERCTL_S3_REGION")),
	}
	endpoint := &cli.StringFlag{
		Name:    "endpoint",
		Usage:   "S3-compatible endpoint URL for s3:// sources",
		Sources: cli.NewValueSourceChain(cli.EnvVar("OFFERCTL_S3_ENDPOINT")),
	}

	if len(params) == 2 {
		for _, f := range []*cli.StringFlag{attrs, output, path, sort} {
			NameSpacedValueChainFromConfigFile(params[0], params[1], f.Name, &f.Sources)
		}
		for _, f := range []*cli.BoolFlag{color, titles} {
			NameSpacedValueChainFromConfigFile(params[0], params[1], f.Name, &f.Sources)
		}
		NameSpacedValueChainFromConfigFile(params[0], params[1], padding.Name, &padding.Sources)
		NameSpacedValueChainFromConfigFile("s3", params[1], profile.Name, &profile.Sources)
		NameSpacedValueChainFromConfigFile("s3", params[1], region.Name, &region.Sources)
		NameSpacedValueChainFromConfigFile("s3", params[1], endpoint.Name, &endpoint.Sources)
	}

	flags = []cli.Flag{attrs, color, endpoint, output, padding, path, profile, region, sort, titles}
	return
}

// NameSpacedValueChainFromConfigFile appends "<ns>.<name>" and "<name>" from
// the YAML config file at path to chain. An empty path is a no-op.
func NameSpacedValueChainFromConfigFile(ns string, path string, name string, chain *cli.ValueSourceChain) {
	if path == "" {
		return
	}

	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(path)))
}
