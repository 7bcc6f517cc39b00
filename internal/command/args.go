// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/offerctl/internal/log"
	"github.com/tfctl/offerctl/internal/source"
)

// MoveStdinLast moves a positional "-" source behind the subcommand's flags.
// The flag parser stops at a lone "-", so any flag after it would otherwise
// be left unparsed. A "-" given as a flag value, or after "--", stays put.
func MoveStdinLast(app *cli.Command, args []string) []string {
	if app == nil || len(args) <= 2 { //nolint:mnd
		return args
	}

	sub := app.Command(args[1])
	if sub == nil {
		return args
	}
	bools := boolFlagNames(sub)

	result := make([]string, 0, len(args))
	result = append(result, args[:2]...)
	moved := false
	for i := 2; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			result = append(result, args[i:]...)
			i = len(args)
		case a == source.Stdin && !moved:
			moved = true
		case strings.HasPrefix(a, "-") && a != source.Stdin:
			result = append(result, a)
			name, _, hasValue := strings.Cut(a, "=")
			if !hasValue && !bools[name] && i+1 < len(args) && args[i+1] != "--" {
				i++
				result = append(result, args[i])
			}
		default:
			result = append(result, a)
		}
	}

	if !moved {
		return args
	}

	result = append(result, source.Stdin)
	log.Debugf("stdin source moved last: args=%v", result)
	return result
}

// boolFlagNames returns every spelling of cmd's boolean flags.
func boolFlagNames(cmd *cli.Command) map[string]bool {
	names := map[string]bool{"-h": true, "--help": true}
	for _, f := range cmd.Flags {
		if _, ok := f.(*cli.BoolFlag); !ok {
			continue
		}
		for _, n := range f.Names() {
			names["-"+n] = true
			names["--"+n] = true
		}
	}
	return names
}
