// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tfctl/offerctl/internal/log"
)

// FileName is the config file looked up in the user config directory.
const FileName = "offerctl.yaml"

// ErrNotFound is returned by getters when a key is absent and no default was
// supplied.
var ErrNotFound = errors.New("config key not found")

// ErrNoConfigFile is returned by Load when there is no config file to read.
var ErrNoConfigFile = errors.New("config file not found")

// Type is the in-memory representation of the loaded configuration.
//
// Fields:
//   - Source: absolute path of the YAML file loaded.
//   - Namespace: optional dot-prefixed keyspace tried before the bare key,
//     normally the subcommand name (e.g. "filter").
//   - Data: raw key/value tree unmarshaled from YAML.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// Config holds the global, lazily-loaded configuration instance.
var Config Type

// Load reads the YAML configuration file and replaces the global Config. The
// namespace of the previous Config is kept. An optional namespace argument
// overrides it.
//
// A missing config file is reported as an error, but callers are free to
// ignore it; getters then fall back to their defaults.
func Load(namespace ...string) (Type, error) {
	ns := Config.Namespace
	if len(namespace) == 1 {
		ns = namespace[0]
	}

	path, err := getConfigFile()
	if err != nil {
		Config = Type{Namespace: ns}
		return Config, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		Config = Type{Namespace: ns}
		return Config, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		Config = Type{Namespace: ns}
		return Config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	Config = Type{
		Source:    path,
		Namespace: ns,
		Data:      data,
	}
	log.Debugf("config loaded: source=%s namespace=%s", path, ns)

	return Config, nil
}

// GetString returns the string value for the given dotted key path. A single
// defaultValue may be provided and is returned when the key is missing.
// Returns an error if the value exists but is not a string.
func GetString(key string, defaultValue ...string) (string, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s: value is not a string", key)
	}
	return s, nil
}

// GetInt returns the integer value for the given dotted key path. YAML numbers
// may decode as int, int64 or float64; all are accepted.
func GetInt(key string, defaultValue ...int) (int, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s: value is not an int", key)
	}
}

// GetFloat returns the float value for the given dotted key path. Integers
// and numeric strings are converted.
func GetFloat(key string, defaultValue ...float64) (float64, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	switch v := val.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%s: value is not a number", key)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%s: value is not a number", key)
	}
}

// GetStringSlice returns the string slice value for the given dotted key path.
// Returns an error if the value exists but is not a list of strings.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return nil, err
	}

	switch v := val.(type) {
	case []string:
		return v, nil
	case []interface{}:
		result := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s: slice element %d is not a string", key, i)
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, fmt.Errorf("%s: value is not a slice", key)
	}
}

// lookup lazily loads the config and resolves key, preferring the namespaced
// form when a namespace is set.
func lookup(key string) (any, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}
	return Config.get(key)
}

// get traverses the configuration tree using a dotted key path (e.g.
// "filter.defaults"). If Namespace is set, Namespace + "." + kspec is tried
// first, then the bare key.
func (cfg *Type) get(kspec string) (any, error) {
	var candidateKeys []string
	if cfg.Namespace != "" {
		candidateKeys = append(candidateKeys, cfg.Namespace+"."+kspec)
	}
	candidateKeys = append(candidateKeys, kspec)

	for _, key := range candidateKeys {
		if val, ok := walk(cfg.Data, strings.Split(key, ".")); ok {
			return val, nil
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrNotFound, candidateKeys)
}

// walk descends through nested maps following keys.
func walk(data map[string]interface{}, keys []string) (any, bool) {
	var current interface{} = data
	for _, key := range keys {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// getConfigFile returns the absolute path to the YAML config file. If
// OFFERCTL_CFG_FILE is set it is used verbatim, otherwise FileName is looked
// up in os.UserConfigDir. The file must exist and not be a directory.
func getConfigFile() (string, error) {
	if cfgPath := os.Getenv("OFFERCTL_CFG_FILE"); cfgPath != "" {
		fileInfo, err := os.Stat(cfgPath)
		if err != nil {
			return "", fmt.Errorf("%w at OFFERCTL_CFG_FILE path: %s", ErrNoConfigFile, cfgPath)
		}
		if fileInfo.IsDir() {
			return "", fmt.Errorf("OFFERCTL_CFG_FILE points to a directory: %s", cfgPath)
		}
		return cfgPath, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	file := filepath.Join(dir, FileName)
	if fileInfo, err := os.Stat(file); err == nil && !fileInfo.IsDir() {
		return file, nil
	}

	return "", fmt.Errorf("%w in standard locations", ErrNoConfigFile)
}
