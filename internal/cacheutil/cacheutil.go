// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cacheutil keeps fetched offer documents on local disk so repeated
// queries against the same remote object skip the download.
package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tfctl/offerctl/internal/log"
)

// Entry represents a cached artifact on disk.
// Key is the clear-text key; EncodedKey is the hashed filename.
type Entry struct {
	Key        string
	EncodedKey string
	Path       string
	Data       []byte
	ModTime    time.Time
}

// Dir resolves the base cache directory.
// Precedence:
//  1. OFFERCTL_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/offerctl
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("OFFERCTL_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "offerctl"), true
	}
	return "", false
}

// Enabled returns true unless OFFERCTL_CACHE explicitly disables it
// ("0"/"false"/"off").
func Enabled() bool {
	switch os.Getenv("OFFERCTL_CACHE") {
	case "0", "false", "off":
		return false
	default:
		return true
	}
}

// EntryPath returns the path where a cache entry would live given namespace
// components and the clear-text key, and whether a file exists there.
func EntryPath(namespace []string, clearKey string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	parts := append([]string{base}, namespace...)
	p := filepath.Join(append(parts, encodeKey(clearKey))...)
	if info, err := os.Stat(p); err == nil && !info.IsDir() {
		return p, true
	}
	return p, false
}

// Read returns the cached entry for clearKey. The second result is false when
// caching is disabled or there is no entry.
func Read(namespace []string, clearKey string) (*Entry, bool) {
	if !Enabled() {
		return nil, false
	}
	p, ok := EntryPath(namespace, clearKey)
	if !ok {
		return nil, false
	}
	info, err := os.Stat(p)
	if err != nil {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		log.WithError(err).Warnf("unreadable cache entry %s", p)
		return nil, false
	}
	log.Debugf("cache hit: key=%s", clearKey)
	return &Entry{
		Key:        clearKey,
		EncodedKey: encodeKey(clearKey),
		Path:       p,
		Data:       b,
		ModTime:    info.ModTime(),
	}, true
}

// Write stores data for clearKey beneath namespace, creating directories as
// needed. The file is written to a temp name and renamed into place so that
// readers never observe a partial entry. A disabled cache is a no-op.
func Write(namespace []string, clearKey string, data []byte) error {
	if !Enabled() {
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}

	dir := filepath.Join(append([]string{base}, namespace...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".entry-*")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck,gosec
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	p := filepath.Join(dir, encodeKey(clearKey))
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s bytes=%d", clearKey, len(data))
	return nil
}

// Purge removes entries older than hours. hours <= 0 disables cleaning.
func Purge(hours int) error {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}

	base, ok := Dir()
	if !ok {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	err := filepath.Walk(base, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if info == nil || info.IsDir() {
			return nil
		}
		if time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err != nil {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			} else {
				log.Debugf("removed cache file %s", path)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

// encodeKey returns the hex sha256 of input.
func encodeKey(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}
