// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/offerctl/internal/isoduration"
	"github.com/tfctl/offerctl/internal/log"
)

// Attr is one output column. Key names either a computed offer column (id,
// airline, price, ...) or, when Path is set, a driller path into the offer's
// original document.
type Attr struct {
	Key string `yaml:"key" json:"Key"`
	// Path marks Key as a driller path (given as ".path" on the command line).
	Path bool `yaml:"path" json:"Path"`
	// Include is false for columns used only for sorting.
	Include bool `yaml:"include" json:"Include"`
	// OutputKey is the row key and the column title.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
	// TransformSpec is applied to the value before output.
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

var lengthRegex = regexp.MustCompile(`-?\d+`)

// Transform applies the attribute's transform spec to a value and returns the
// transformed result.
//
//	h  group digits of a number, two decimals at most (1234.5 -> 1,234.5)
//	d  render an ISO-8601 duration compactly (PT10H5M -> 10h5m)
//	t  RFC3339 timestamp in local time
//	T  RFC3339 timestamp as time ago
//	l  lower case
//	u  upper case
//	N  truncate to N characters, -N elides the middle
func (a *Attr) Transform(value interface{}) interface{} {
	if strings.Contains(a.TransformSpec, "h") {
		if f, ok := toFloat(value); ok {
			value = humanize.CommafWithDigits(f, 2)
			log.Tracef("number grouped: result=%v", value)
		}
	}

	result, ok := value.(string)
	if !ok {
		log.Tracef("non-string value: value=%v", value)
		return value
	}

	if strings.Contains(a.TransformSpec, "d") {
		if d, err := isoduration.Parse(result); err == nil {
			result = compactDuration(d)
			log.Tracef("duration compact: result=%s", result)
		}
	}

	if strings.ContainsAny(a.TransformSpec, "tT") {
		if t, err := time.Parse(time.RFC3339, result); err == nil {
			local := t.In(time.Local)
			if strings.Contains(a.TransformSpec, "T") {
				result = humanize.Time(local)
			} else {
				result = local.Format("2006-01-02T15:04:05MST")
			}
			log.Tracef("time converted: result=%s", result)
		}
	}

	// The last case letter wins, so a per-column spec overrides a global one
	// prepended by SetGlobalTransformSpec.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	// Same rule for length: the last number wins.
	if match := lengthRegex.FindAllString(a.TransformSpec, -1); len(match) != 0 {
		l, _ := strconv.Atoi(match[len(match)-1])
		abs := int(math.Abs(float64(l)))
		if abs > 0 && len(result) > abs {
			if l < 0 && abs > 4 { //nolint:mnd
				keep := abs/2 - 1
				result = result[:keep] + ".." + result[len(result)-keep:]
			} else {
				result = result[:abs]
			}
			log.Tracef("length applied: result=%s", result)
		}
	}

	return result
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// compactDuration renders d as e.g. "10h5m", dropping zero seconds.
func compactDuration(d time.Duration) string {
	s := d.Round(time.Second).String()
	if strings.HasSuffix(s, "m0s") {
		s = strings.TrimSuffix(s, "0s")
	}
	if strings.HasSuffix(s, "h0m") {
		s = strings.TrimSuffix(s, "0m")
	}
	return s
}

// AttrList is a collection of Attr used to shape output columns.
type AttrList []Attr

// Set parses a --attrs value and merges it into the list.
//
// Each comma separated spec is key[:outputKey[:transform]]. A leading "!"
// hides the column (it still sorts), a leading "." makes the key a gjson path
// into the offer document, and "*" carries a transform for every column.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

	log.Debugf("attrs spec: value=%s", value)
specloop:
	for _, spec := range strings.Split(value, ",") {
		attr := Attr{Include: true}

		fields := strings.Split(spec, ":")
		if len(fields) > transformIdx+1 {
			return fmt.Errorf("invalid attr spec %q: too many fields", spec)
		}

		attr.Key = strings.TrimSpace(fields[keyIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("invalid attr spec %q: empty key", spec)
		}
		if attr.Key == "*" {
			attr.Include = false
		}

		if strings.HasPrefix(attr.Key, ".") {
			attr.Path = true
			attr.Key = attr.Key[1:]
		}

		// The output key defaults to the last segment of a path.
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		} else {
			segments := strings.Split(attr.Key, ".")
			attr.OutputKey = segments[len(segments)-1]
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}

		// Respecifying a column that is already present (a command default,
		// say) updates it in place.
		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				log.Tracef("attr updated: key=%s", attr.Key)
				continue specloop
			}
		}

		*a = append(*a, attr)
		log.Tracef("attr appended: key=%s path=%v", attr.Key, attr.Path)
	}

	return nil
}

// SetGlobalTransformSpec prepends the "*" transform spec, if any, to every
// attr in the list.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""
	for _, attr := range *a {
		if attr.Key == "*" {
			spec = attr.TransformSpec
			break
		}
	}

	if spec == "" {
		return nil
	}
	log.Debugf("global spec: spec=%s", spec)

	for i := range *a {
		if (*a)[i].Key == "*" {
			continue
		}
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}

	return nil
}

// Included returns the attrs that are rendered as columns.
func (a AttrList) Included() AttrList {
	var result AttrList
	for _, attr := range a {
		if attr.Include {
			result = append(result, attr)
		}
	}
	return result
}

// String returns the list in --attrs syntax.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		key := attr.Key
		if attr.Path {
			key = "." + key
		}
		if !attr.Include && attr.Key != "*" {
			key = "!" + key
		}
		result = append(result, fmt.Sprintf("%s:%s:%s", key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Type returns the flag type for use with the flag.Value interface.
func (a *AttrList) Type() string { return "list" }
