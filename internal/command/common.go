// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tfctl/offerctl/internal/attrs"
	"github.com/tfctl/offerctl/internal/config"
	"github.com/tfctl/offerctl/internal/log"
	"github.com/tfctl/offerctl/internal/meta"
	"github.com/tfctl/offerctl/internal/offer"
	"github.com/tfctl/offerctl/internal/output"
	"github.com/tfctl/offerctl/internal/source"
)

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (attrs.AttrList, error) {
	var al attrs.AttrList
	for _, d := range defaults {
		if err := al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, err
		}
	}
	if err := al.SetGlobalTransformSpec(); err != nil {
		return nil, err
	}
	return al, nil
}

// DumpSchemaIfRequested writes the columns and offer paths to the command's
// output when --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, columns []string, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(columns, t, GetMeta(cmd).Out())
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ResolveSource picks the offers location: the first argument, else the
// "source" config key, else stdin when it is not a terminal. More than one
// argument is a usage error.
func ResolveSource(cmd *cli.Command) (string, error) {
	if n := cmd.Args().Len(); n > 1 {
		return "", fmt.Errorf("expected at most one source, got %d arguments: %s",
			n, strings.Join(cmd.Args().Slice(), " "))
	}

	if loc := cmd.Args().First(); loc != "" {
		return loc, nil
	}

	if loc, _ := config.GetString("source", ""); loc != "" {
		log.Debugf("source from config: source=%s", loc)
		return loc, nil
	}

	m := GetMeta(cmd)
	if f, ok := m.In().(*os.File); !ok || !term.IsTerminal(int(f.Fd())) { //nolint:gosec
		return source.Stdin, nil
	}

	return "", fmt.Errorf("no source given: pass a file, s3://bucket/key or - for stdin")
}

// LoadOffers resolves the source and loads its offers using the command's
// --path and S3 flags.
func LoadOffers(ctx context.Context, cmd *cli.Command) ([]offer.Offer, error) {
	loc, err := ResolveSource(cmd)
	if err != nil {
		return nil, err
	}

	return source.Load(ctx, loc, source.Options{
		Path:     cmd.String("path"),
		Stdin:    GetMeta(cmd).In(),
		Profile:  cmd.String("profile"),
		Region:   cmd.String("region"),
		Endpoint: cmd.String("endpoint"),
	})
}

// OutputOptions maps the common output flags onto output.Options.
func OutputOptions(cmd *cli.Command) output.Options {
	return output.Options{
		Format:  cmd.String("output"),
		Sort:    cmd.String("sort"),
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color"),
		Padding: cmd.Int("padding"),
	}
}
