// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/tfctl/offerctl/internal/log"
)

// schemaTag is a document path discovered from a struct's json tags.
type schemaTag struct {
	Name      string
	OmitEmpty bool
}

// NewTag parses a json struct tag value. holder is the path of the enclosing
// struct, if any. A tag of "-" or "" yields a zero schemaTag.
func NewTag(holder string, s string) schemaTag {
	parts := strings.Split(s, ",")
	if parts[0] == "" || parts[0] == "-" {
		return schemaTag{}
	}

	tag := schemaTag{Name: parts[0]}
	if holder != "" {
		tag.Name = holder + "." + parts[0]
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			tag.OmitEmpty = true
		}
	}
	return tag
}

// print renders the tag as an --attrs key.
func (t schemaTag) print() string {
	if t.Name == "" {
		return ""
	}
	return "." + t.Name
}

// maxSchemaDepth limits how far nested structs are walked.
const maxSchemaDepth = 4

// DumpSchema writes the computed columns followed by the sorted document
// paths of typ usable as ".path" attrs. If w is nil, os.Stdout is used.
func DumpSchema(columns []string, typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w, "Columns:")
	for _, c := range columns {
		fmt.Fprintln(w, "  "+c)
	}

	tags := dumpSchemaWalker("", typ, 0)
	if len(tags) == 0 {
		log.Debugf("no tags found: type=%s", typ.Name())
		return
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Offer document paths (slices and segments are indexed from 0):")
	for _, tag := range tags {
		fmt.Fprintln(w, "  "+tag.print())
	}
}

// dumpSchemaWalker walks typ's json tags. Slices of structs are descended
// through their first element.
func dumpSchemaWalker(holder string, typ reflect.Type, depth int) []schemaTag {
	tags := make([]schemaTag, 0)

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tagValue, ok := field.Tag.Lookup("json")
		if !ok {
			continue
		}

		tag := NewTag(holder, tagValue)
		if tag.Name == "" {
			continue
		}

		if depth >= maxSchemaDepth {
			tags = append(tags, tag)
			continue
		}

		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}

		switch {
		case ft.Kind() == reflect.Struct:
			tags = append(tags, dumpSchemaWalker(tag.Name, ft, depth+1)...)
		case ft.Kind() == reflect.Slice && ft.Elem().Kind() == reflect.Struct:
			tags = append(tags, dumpSchemaWalker(tag.Name+".0", ft.Elem(), depth+1)...)
		default:
			tags = append(tags, tag)
		}
	}

	return tags
}
