// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/offerctl/internal/command"
	"github.com/tfctl/offerctl/internal/config"
	"github.com/tfctl/offerctl/internal/log"
	"github.com/tfctl/offerctl/internal/meta"
	"github.com/tfctl/offerctl/internal/version"
)

var ctx = context.Background()

// boolFlags never take a value, so the token after them is left alone by
// deduplicateFlags.
var boolFlags = map[string]bool{
	"--color":  true,
	"-c":       true,
	"--count":  true,
	"--help":   true,
	"-h":       true,
	"--schema": true,
	"--titles": true,
	"-t":       true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs expands @set presets and drops repeated flags.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	return deduplicateFlags(args)
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args, meta.Meta{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, command.MoveStdinLast(app, args)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly expands a config argument set. An explicit @set argument
// is replaced by the entries of "<cmd>.<set>"; without one, "<cmd>.defaults"
// is inserted right after the command so that later flags override it.
func processSetOnly(args []string) []string {
	if len(args) < 2 { //nolint:mnd
		return args
	}

	idx := 2
	set := "defaults"
	insertIdx := idx
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			insertIdx = idx + i
			args = append(args[:insertIdx:insertIdx], args[insertIdx+1:]...)
			break
		}
	}

	entries, err := config.GetStringSlice(args[1] + "." + set)
	if err != nil {
		log.Debugf("no arg set: key=%s.%s", args[1], set)
		return args
	}
	return injectConfigSet(args, entries, insertIdx)
}

// injectConfigSet splits each entry on whitespace and inserts the fields at
// insertIdx.
func injectConfigSet(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	result := make([]string, 0, len(args)+len(expanded))
	result = append(result, args[:insertIdx]...)
	result = append(result, expanded...)
	return append(result, args[insertIdx:]...)
}

// deduplicateFlags keeps only the last occurrence of each flag after the
// command, along with its value. "--flag=value" and "--flag value" count as
// the same flag. Positional arguments are kept in place.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 { //nolint:mnd
		return args
	}

	type token struct {
		name  string
		parts []string
	}

	var tokens []token
	for i := 2; i < len(args); i++ {
		a := args[i]
		if a == "-" || !strings.HasPrefix(a, "-") {
			tokens = append(tokens, token{parts: []string{a}})
			continue
		}

		name, _, hasValue := strings.Cut(a, "=")
		parts := []string{a}
		if !hasValue && !boolFlags[name] && i+1 < len(args) && !isFlag(args[i+1]) {
			parts = append(parts, args[i+1])
			i++
		}
		tokens = append(tokens, token{name: name, parts: parts})
	}

	last := map[string]int{}
	for i, t := range tokens {
		if t.name != "" {
			last[t.name] = i
		}
	}

	result := append([]string{}, args[:2]...)
	for i, t := range tokens {
		if t.name != "" && last[t.name] != i {
			continue
		}
		result = append(result, t.parts...)
	}
	return result
}

// isFlag reports whether a looks like a flag rather than a value. A lone "-"
// is the stdin source.
func isFlag(a string) bool {
	return strings.HasPrefix(a, "-") && a != "-"
}
