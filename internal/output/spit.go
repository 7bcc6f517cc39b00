// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/offerctl/internal/attrs"
	"github.com/tfctl/offerctl/internal/config"
	"github.com/tfctl/offerctl/internal/driller"
	"github.com/tfctl/offerctl/internal/log"
)

// Options controls how a dataset is emitted.
type Options struct {
	// Format is one of text, json, yaml or raw.
	Format string
	// Sort is a comma separated list of output keys, see SortDataset.
	Sort    string
	Titles  bool
	Color   bool
	Padding int
	// Header and Footer are printed around a text table when set.
	Header string
	Footer string
	// Raw is written as is for Format "raw". The dataset is used when nil.
	Raw []byte
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// SliceDiceSpit extracts the attrs from each row of dataset, transforms, sorts
// and renders them to w. If w is nil, os.Stdout is used.
func SliceDiceSpit(dataset []byte, attrList attrs.AttrList, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	if opts.Format == "raw" {
		raw := opts.Raw
		if raw == nil {
			raw = dataset
		}
		_, err := w.Write(raw)
		return err
	}

	if !gjson.ValidBytes(dataset) {
		return fmt.Errorf("dataset is not valid JSON")
	}

	// Sort on the extracted values so that transforms such as digit grouping
	// don't turn numbers into strings first.
	rows := Rows(gjson.ParseBytes(dataset), attrList)
	SortDataset(rows, opts.Sort)
	TransformRows(rows, attrList)
	log.Debugf("rows ready: count=%d sort=%s", len(rows), opts.Sort)

	included := attrList.Included()

	switch opts.Format {
	case "json":
		out := make([]map[string]interface{}, 0, len(rows))
		for _, row := range rows {
			m := make(map[string]interface{}, len(included))
			for _, attr := range included {
				m[attr.OutputKey] = row[attr.OutputKey]
			}
			out = append(out, m)
		}
		b, err := json.Marshal(out)
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		// MapSlice keeps the column order of --attrs.
		out := make([]yaml.MapSlice, 0, len(rows))
		for _, row := range rows {
			ms := make(yaml.MapSlice, 0, len(included))
			for _, attr := range included {
				ms = append(ms, yaml.MapItem{Key: attr.OutputKey, Value: row[attr.OutputKey]})
			}
			out = append(out, ms)
		}
		b, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	case "", "text":
		TableWriter(rows, included, opts, w)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// Rows extracts every attr from each element of dataset, untransformed. Path
// attrs resolve under the element's "offer" object.
func Rows(dataset gjson.Result, attrList attrs.AttrList) []map[string]interface{} {
	elems := dataset.Array()
	rows := make([]map[string]interface{}, 0, len(elems))
	for _, elem := range elems {
		row := make(map[string]interface{}, len(attrList))
		for i := range attrList {
			attr := &attrList[i]
			if attr.Key == "*" {
				continue
			}
			if attr.Path {
				row[attr.OutputKey] = driller.Driller(elem.Get("offer"), attr.Key).Value()
				continue
			}
			row[attr.OutputKey] = elem.Get(attr.Key).Value()
		}
		rows = append(rows, row)
	}
	return rows
}

// TransformRows applies each attr's transform spec in place.
func TransformRows(rows []map[string]interface{}, attrList attrs.AttrList) {
	for _, row := range rows {
		for i := range attrList {
			attr := &attrList[i]
			if attr.TransformSpec == "" || attr.Key == "*" {
				continue
			}
			row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
		}
	}
}

// TableWriter renders rows as a borderless table of the given attrs. Colors
// apply only when opts.Color is set and w is a terminal.
func TableWriter(rows []map[string]interface{}, attrList attrs.AttrList, opts Options, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color && IsTerminal(w) {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cell := make([]string, 0, len(attrList))
		for _, attr := range attrList {
			cell = append(cell, InterfaceToString(row[attr.OutputKey], "-"))
		}
		cells = append(cells, cell)
	}

	if opts.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Header))
	}

	pad := opts.Padding
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(cells...)

	if opts.Titles {
		headers := make([]string, 0, len(attrList))
		for _, attr := range attrList {
			headers = append(headers, attr.OutputKey)
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if opts.Footer != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Footer))
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec
}

// getColors returns configured color values for table rendering. Defaults
// depend on the terminal background so output stays readable on both light
// and dark themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
