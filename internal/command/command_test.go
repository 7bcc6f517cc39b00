// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/tfctl/offerctl/internal/config"
	"github.com/tfctl/offerctl/internal/meta"
	"github.com/tfctl/offerctl/internal/offer"
)

const offersFile = "testdata/offers.json"

// runApp runs offerctl with args against an optional config file body and
// stdin, returning what was written to stdout.
func runApp(t *testing.T, cfg string, stdin string, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "offerctl.yaml")
	if cfg != "" {
		require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	}
	t.Setenv("OFFERCTL_CFG_FILE", cfgPath)
	t.Setenv("OFFERCTL_CACHE_DIR", filepath.Join(dir, "cache"))
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	var out bytes.Buffer
	full := append([]string{"offerctl"}, args...)
	m := meta.Meta{Stdin: strings.NewReader(stdin), Stdout: &out}

	app, err := InitApp(context.Background(), full, m)
	require.NoError(t, err)

	err = app.Run(context.Background(), MoveStdinLast(app, full))
	return out.String(), err
}

func ids(t *testing.T, out string) []string {
	t.Helper()
	require.True(t, gjson.Valid(out), "not json: %s", out)
	var result []string
	for _, r := range gjson.Get(out, "#.id").Array() {
		result = append(result, r.String())
	}
	return result
}

func TestAirlines(t *testing.T) {
	out, err := runApp(t, "", "", "airlines", offersFile, "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"code":"AF","name":"Air France"},
		{"code":"BA","name":"British Airways"},
		{"code":"LH","name":"Lufthansa"}
	]`, out)
}

func TestAirlines_Raw(t *testing.T) {
	out, err := runApp(t, "", "", "airlines", offersFile, "-o", "raw")
	require.NoError(t, err)
	assert.Equal(t, `{"AF":"Air France","BA":"British Airways","LH":"Lufthansa"}`+"\n", out)
}

func TestAirlines_TextWithTitles(t *testing.T) {
	out, err := runApp(t, "", "", "airlines", offersFile, "--titles", "--sort=-code")
	require.NoError(t, err)
	assert.Contains(t, out, "code")
	assert.Contains(t, out, "3 airlines in 4 offers")
	assert.Less(t, strings.Index(out, "Lufthansa"), strings.Index(out, "Air France"))
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "no criteria keeps everything",
			args: nil,
			want: []string{"off_lh_direct", "off_ba_long", "off_af_cheap", "off_lh_one_stop"},
		},
		{
			name: "zero price is no criterion",
			args: []string{"-p", "0"},
			want: []string{"off_lh_direct", "off_ba_long", "off_af_cheap", "off_lh_one_stop"},
		},
		{
			name: "every criterion",
			args: []string{"-A", "LH", "-d", "PT20H", "-n", "0", "-p", "1000"},
			want: []string{"off_lh_direct"},
		},
		{
			name: "airline only",
			args: []string{"--airline", "LH"},
			want: []string{"off_lh_direct", "off_lh_one_stop"},
		},
		{
			name: "airline is case-sensitive",
			args: []string{"--airline", "lh"},
			want: nil,
		},
		{
			name: "zero price is no limit",
			args: []string{"--price", "0"},
			want: []string{"off_lh_direct", "off_ba_long", "off_af_cheap", "off_lh_one_stop"},
		},
		{
			name: "criteria spec",
			args: []string{"--criteria", "stops=0,price=600"},
			want: []string{"off_lh_direct", "off_af_cheap"},
		},
		{
			name: "explicit flag overrides criteria spec",
			args: []string{"-f", "airline=BA,stops=1", "-A", "LH"},
			want: []string{"off_lh_direct", "off_lh_one_stop"},
		},
		{
			name: "sorted by price",
			args: []string{"-s", "price", "-d", "PT15H"},
			want: []string{"off_af_cheap", "off_lh_direct", "off_lh_one_stop"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"filter", offersFile, "-o", "json"}, tt.args...)
			out, err := runApp(t, "", "", args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(t, out))
		})
	}
}

func TestFilter_Count(t *testing.T) {
	doc, err := os.ReadFile(offersFile)
	require.NoError(t, err)

	out, err := runApp(t, "", string(doc), "filter", "-", "--count", "--stops", "0")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestFilter_StdinBeforeFlags(t *testing.T) {
	doc, err := os.ReadFile(offersFile)
	require.NoError(t, err)

	out, err := runApp(t, "", string(doc), "filter", "-", "-o", "json", "--airline", "BA")
	require.NoError(t, err)
	assert.Equal(t, []string{"off_ba_long"}, ids(t, out))
}

func TestFilter_ExtraArguments(t *testing.T) {
	_, err := runApp(t, "", "", "filter", offersFile, "testdata/other.json", "-A", "BA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected at most one source, got 2 arguments")
}

func TestMoveStdinLast(t *testing.T) {
	t.Setenv("OFFERCTL_CFG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	app, err := InitApp(context.Background(), []string{"offerctl", "filter"}, meta.Meta{})
	require.NoError(t, err)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "stdin before flags",
			args: []string{"offerctl", "filter", "-", "--airline", "BA", "--count"},
			want: []string{"offerctl", "filter", "--airline", "BA", "--count", "-"},
		},
		{
			name: "boolean flag before stdin",
			args: []string{"offerctl", "filter", "-t", "-", "-o", "json"},
			want: []string{"offerctl", "filter", "-t", "-o", "json", "-"},
		},
		{
			name: "stdin as flag value",
			args: []string{"offerctl", "filter", "--sort", "-", "-o", "json"},
			want: []string{"offerctl", "filter", "--sort", "-", "-o", "json"},
		},
		{
			name: "already last",
			args: []string{"offerctl", "filter", "-o", "json", "-"},
			want: []string{"offerctl", "filter", "-o", "json", "-"},
		},
		{
			name: "after terminator",
			args: []string{"offerctl", "filter", "--", "-"},
			want: []string{"offerctl", "filter", "--", "-"},
		},
		{
			name: "file source",
			args: []string{"offerctl", "airlines", "offers.json", "-o", "json"},
			want: []string{"offerctl", "airlines", "offers.json", "-o", "json"},
		},
		{
			name: "unknown command",
			args: []string{"offerctl", "nope", "-", "-o", "json"},
			want: []string{"offerctl", "nope", "-", "-o", "json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MoveStdinLast(app, tt.args))
		})
	}
}

func TestFilter_Raw(t *testing.T) {
	out, err := runApp(t, "", "", "filter", offersFile, "-o", "raw", "-A", "BA")
	require.NoError(t, err)
	assert.Equal(t, "1500.00", gjson.Get(out, "0.total_amount").String())
	assert.Equal(t, int64(1), gjson.Get(out, "#").Int())
}

func TestFilter_Attrs(t *testing.T) {
	out, err := runApp(t, "", "", "filter", offersFile, "-o", "json", "-A", "BA",
		"--attrs", "!name,!slices,!currency,!duration,price::h,.slices.0.segments.1.destination.iata_code:to")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"off_ba_long","airline":"BA","price":"1,500","stops":1,"to":"SYD"}]`, out)
}

func TestFilter_AttrsSegmentCount(t *testing.T) {
	out, err := runApp(t, "", "", "filter", offersFile, "-o", "json", "-A", "LH",
		"--attrs", "!airline,!name,!price,!slices,!currency,!stops,!duration,.slices.segments[#]:legs")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"off_lh_direct","legs":1},{"id":"off_lh_one_stop","legs":2}]`, out)
}

func TestFilter_Config(t *testing.T) {
	cfg := `
source: testdata/offers.json
filter:
  price: 600
  output: json
`
	out, err := runApp(t, cfg, "", "filter")
	require.NoError(t, err)
	assert.Equal(t, []string{"off_lh_direct", "off_af_cheap"}, ids(t, out))

	// Flags beat the config file.
	out, err = runApp(t, cfg, "", "filter", "--price", "1000")
	require.NoError(t, err)
	assert.Equal(t, []string{"off_lh_direct", "off_af_cheap", "off_lh_one_stop"}, ids(t, out))
}

func TestFilter_Errors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr string
	}{
		{name: "bad duration flag", args: []string{"filter", offersFile, "-d", "soon"}, wantErr: "ISO-8601"},
		{name: "negative stops", args: []string{"filter", offersFile, "--stops=-1"}, wantErr: "must not be negative"},
		{name: "bad criteria", args: []string{"filter", offersFile, "-f", "seats=2"}, wantErr: "unknown key"},
		{name: "bad output", args: []string{"filter", offersFile, "-o", "xml"}, wantErr: "must be one of"},
		{name: "bad attrs", args: []string{"filter", offersFile, "-a", "id:a:b:c"}, wantErr: "too many fields"},
		{name: "missing file", args: []string{"filter", "testdata/nope.json"}, wantErr: "failed to read source"},
		{name: "bad slice duration", stdin: `[{"owner":{"iata_code":"LH","name":"L"},"total_amount":1,"slices":[{"duration":"an hour","segments":[]}]}]`,
			args: []string{"filter", "-", "-d", "PT1H"}, wantErr: "malformed ISO-8601 duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, "", tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFilter_MalformedRecord(t *testing.T) {
	stdin := `{"data":{"offers":[
		{"owner":{"iata_code":"LH","name":"Lufthansa"},"total_amount":"10","slices":[]},
		{"owner":{"name":"Nobody"},"total_amount":"10","slices":[]}
	]}}`

	_, err := runApp(t, "", stdin, "airlines", "-")
	var mre *offer.MalformedRecordError
	require.ErrorAs(t, err, &mre)
	assert.Equal(t, 1, mre.Index)
	assert.Equal(t, "owner.iata_code", mre.Field)
}

func TestSchema(t *testing.T) {
	out, err := runApp(t, "", "", "filter", "--schema")
	require.NoError(t, err)
	assert.Contains(t, out, "  stops\n")
	assert.Contains(t, out, "  .owner.iata_code\n")
}

func TestCompletion(t *testing.T) {
	out, err := runApp(t, "", "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _offerctl offerctl")

	out, err = runApp(t, "", "", "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "compdef _offerctl offerctl")

	t.Setenv("SHELL", "/bin/fish")
	_, err = runApp(t, "", "", "completion")
	assert.ErrorContains(t, err, "usage: offerctl completion")
}

func TestValidators(t *testing.T) {
	assert.NoError(t, OutputValidator("yaml"))
	assert.Error(t, OutputValidator("csv"))
	assert.NoError(t, DurationValidator(""))
	assert.NoError(t, DurationValidator("P1DT2H"))
	assert.Error(t, DurationValidator("two hours"))
	assert.NoError(t, NonNegativeValidator(0))
	assert.NoError(t, NonNegativeValidator(12.5))
	assert.Error(t, NonNegativeValidator(-1))
	assert.Error(t, NonNegativeValidator(-0.01))
	assert.Error(t, NonNegativeValidator("1"))
	assert.NoError(t, CriteriaValidator("airline=LH"))
	assert.Error(t, CriteriaValidator("airline>LH"))
}
