// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Command docsgen renders the offerctl command reference and man pages from
// docs/templates/offerctl.yaml.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"
)

type Reference struct {
	Subcommands []Subcommand `yaml:"subcommands"`
	Common      Common       `yaml:"common"`
}

type Common struct {
	Flags []Flag `yaml:"flags"`
}

type Subcommand struct {
	ID          string    `yaml:"id"`
	Short       string    `yaml:"short"`
	Description string    `yaml:"description"`
	Usage       string    `yaml:"usage"`
	Flags       []Flag    `yaml:"flags"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`
}

type Flag struct {
	ID          string `yaml:"id"`
	Syntax      string `yaml:"syntax"`
	Description string `yaml:"description"`
	Default     string `yaml:"default,omitempty"`
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

type Output struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

func main() {
	if len(os.Args) != 2 { //nolint:mnd
		fmt.Fprintln(os.Stderr, "usage: docsgen <docs dir>")
		os.Exit(1)
	}

	if err := generate(os.Args[1], getVersion(), time.Now()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadReference reads the command reference and merges the common flags into
// each subcommand, sorted by id.
func loadReference(path string) (Reference, error) {
	var ref Reference

	data, err := os.ReadFile(path)
	if err != nil {
		return ref, err
	}
	if err := yaml.Unmarshal(data, &ref); err != nil {
		return ref, fmt.Errorf("%s: %w", path, err)
	}

	for i, sub := range ref.Subcommands {
		merged := append([]Flag{}, ref.Common.Flags...)
		merged = append(merged, sub.Flags...)
		sort.Slice(merged, func(a, b int) bool {
			return merged[a].ID < merged[b].ID
		})
		ref.Subcommands[i].Flags = merged
	}

	return ref, nil
}

func generate(docs, version string, now time.Time) error {
	ref, err := loadReference(filepath.Join(docs, "templates", "offerctl.yaml"))
	if err != nil {
		return err
	}

	outputs := []Output{
		{Template: "offerctl.md.tmpl", Folder: "commands", Suffix: ".md"},
		{Template: "offerctl.man.tmpl", Folder: filepath.Join("man", "share", "man1"), Prefix: "offerctl-", Suffix: ".1"},
	}

	for _, out := range outputs {
		tmpl, err := template.ParseFiles(filepath.Join(docs, "templates", out.Template))
		if err != nil {
			return err
		}

		folder := filepath.Join(docs, out.Folder)
		if err := os.MkdirAll(folder, 0o755); err != nil {
			return err
		}

		for _, sub := range ref.Subcommands {
			data := TemplateData{
				Subcommand: sub,
				Date:       now.Format("January 2, 2006"),
				Version:    version,
				IDUpper:    strings.ToUpper(sub.ID),
			}

			path := filepath.Join(folder, out.Prefix+sub.ID+out.Suffix)
			fmt.Println("Generating", path)
			if err := render(tmpl, path, data); err != nil {
				return err
			}
		}
	}

	return nil
}

func render(tmpl *template.Template, path string, data TemplateData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return tmpl.Execute(file, data)
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
