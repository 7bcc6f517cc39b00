// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Count is the index token that resolves an array to its length.
const Count = "#"

// Driller navigates doc along a dot separated path. Each segment is a key,
// optionally followed by "[N]" to pick an array element or "[#]" to take the
// array's length. A numeric segment indexes the array before it, so
// "slices.0" and "slices[0]" are the same. A bare key naming a one element
// array unwraps it unless the next segment indexes it; longer arrays are
// returned whole. Any segment that cannot be resolved yields an empty result.
func Driller(doc gjson.Result, path string) gjson.Result {
	parts := strings.Split(path, ".")
	current := doc
	for n, p := range parts {
		key, index, ok := parseSegment(p)
		if !ok {
			return gjson.Result{}
		}

		val := current.Get(key)
		if !val.Exists() {
			return gjson.Result{}
		}

		switch {
		case index == Count:
			if !val.IsArray() {
				return gjson.Result{}
			}
			size := len(val.Array())
			val = gjson.Result{Type: gjson.Number, Num: float64(size), Raw: strconv.Itoa(size)}
		case index != "":
			arr := val.Array()
			i, err := strconv.Atoi(index)
			if !val.IsArray() || err != nil || i < 0 || i >= len(arr) {
				return gjson.Result{}
			}
			val = arr[i]
		case val.IsArray() && (n == len(parts)-1 || !isIndex(parts[n+1])):
			if arr := val.Array(); len(arr) == 1 {
				val = arr[0]
			}
		}

		current = val
	}

	return current
}

// parseSegment splits "key[idx]" into key and idx. idx is empty when the
// segment carries no brackets.
func parseSegment(seg string) (string, string, bool) {
	open := strings.IndexByte(seg, '[')
	if open < 0 {
		return seg, "", seg != ""
	}
	if open == 0 || !strings.HasSuffix(seg, "]") {
		return "", "", false
	}

	index := seg[open+1 : len(seg)-1]
	if index == "" || strings.ContainsAny(index, "[]") {
		return "", "", false
	}
	return seg[:open], index, true
}

func isIndex(seg string) bool {
	_, err := strconv.Atoi(seg)
	return err == nil
}
