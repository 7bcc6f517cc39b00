// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package driller

import (
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

const offerDoc = `{
  "id": "off_1",
  "owner": {"iata_code": "LH", "name": "Lufthansa"},
  "slices": [
    {"duration": "PT7H", "segments": [{"origin": "FRA", "destination": "JFK"}]},
    {"duration": "PT9H", "segments": [{"origin": "JFK", "destination": "ORD"}, {"origin": "ORD", "destination": "FRA"}]}
  ]
}`

type drillerTestCase struct {
	Name        string `yaml:"name"`
	Path        string `yaml:"path"`
	ExpectedStr string `yaml:"expectedStr"`
	IsNil       bool   `yaml:"isNil"`
	IsArray     bool   `yaml:"isArray"`
	IsObject    bool   `yaml:"isObject"`
}

func TestDriller(t *testing.T) {
	data, err := testDataFS.ReadFile("testdata/driller_cases.yaml")
	require.NoError(t, err)

	var tests []drillerTestCase
	require.NoError(t, yaml.Unmarshal(data, &tests))

	doc := gjson.Parse(offerDoc)
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			result := Driller(doc, tt.Path)

			switch {
			case tt.IsNil:
				assert.False(t, result.Exists(), "got %v", result.Value())
			case tt.IsArray:
				assert.True(t, result.IsArray(), "got %v", result.Value())
			case tt.IsObject:
				assert.True(t, result.IsObject(), "got %v", result.Value())
			default:
				assert.Equal(t, tt.ExpectedStr, result.String())
			}
		})
	}
}

func TestDriller_CountIsNumeric(t *testing.T) {
	result := Driller(gjson.Parse(offerDoc), "slices[#]")
	assert.Equal(t, float64(2), result.Value())
}
