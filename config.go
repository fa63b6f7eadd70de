// config.go: Size/duration parsing and filesystem helpers
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mneme

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Byte size helpers.
const (
	KB int64 = 1024
	MB       = 1024 * KB
	GB       = 1024 * MB
)

var sizeSuffixes = []struct {
	suffix string
	mult   int64
}{
	// two-letter suffixes first so "MB" is not read as "B"
	{"KB", KB}, {"MB", MB}, {"GB", GB}, {"TB", 1024 * GB},
	{"K", KB}, {"M", MB}, {"G", GB}, {"T", 1024 * GB},
	{"B", 1},
}

// ParseSize converts "2MB", "512k" or "4096" to bytes. Units are binary
// and case-insensitive.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty size string")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, errors.Errorf("negative size %q", s)
		}
		return n, nil
	}

	upper := strings.ToUpper(s)
	for _, u := range sizeSuffixes {
		if !strings.HasSuffix(upper, u.suffix) {
			continue
		}
		num := strings.TrimSpace(upper[:len(upper)-len(u.suffix)])
		n, err := strconv.ParseInt(num, 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid size number in %q", s)
		}
		if n < 0 {
			return 0, errors.Errorf("negative size %q", s)
		}
		if n > 0 && n*u.mult/u.mult != n {
			return 0, errors.Errorf("size %q too large", s)
		}
		return n * u.mult, nil
	}
	return 0, errors.Errorf("unknown size suffix in %q (supported: B, KB/K, MB/M, GB/G, TB/T)", s)
}

// ParseDuration accepts Go durations plus d (day) and w (week) suffixes.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty duration string")
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	lower := strings.ToLower(s)
	var unit time.Duration
	switch {
	case strings.HasSuffix(lower, "d"):
		unit = 24 * time.Hour
	case strings.HasSuffix(lower, "w"):
		unit = 7 * 24 * time.Hour
	default:
		return 0, errors.Errorf("unknown duration suffix in %q", s)
	}
	n, err := strconv.ParseInt(lower[:len(lower)-1], 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid duration number in %q", s)
	}
	return time.Duration(n) * unit, nil
}

// SanitizeFilename replaces characters the host OS refuses in file names.
func SanitizeFilename(name string) string {
	if runtime.GOOS != "windows" {
		return strings.ReplaceAll(name, "\x00", "_")
	}
	return strings.Map(func(r rune) rune {
		if r < 32 || strings.ContainsRune(`<>:"|?*`, r) {
			return '_'
		}
		return r
	}, name)
}

// ValidatePathLength rejects paths longer than the OS limit.
func ValidatePathLength(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(err, "invalid path")
	}
	limit := 4096
	if runtime.GOOS == "windows" {
		limit = 260
	}
	if len(abs) > limit {
		return errors.Errorf("path too long: %d characters (limit: %d)", len(abs), limit)
	}
	return nil
}

// cleanLogPath validates a log file path and sanitizes its base name.
// The empty path is valid and disables file output.
func cleanLogPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if err := ValidatePathLength(path); err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(path), SanitizeFilename(filepath.Base(path))), nil
}

// DefaultFileMode is the permission of newly created log files.
const DefaultFileMode os.FileMode = 0644

// RetryFileOperation runs op up to attempts times, sleeping delay between
// failures. attempts <= 0 means a single attempt.
func RetryFileOperation(op func() error, attempts int, delay time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}
	var last error
	for i := 0; i < attempts; i++ {
		if last = op(); last == nil {
			return nil
		}
		if i < attempts-1 && delay > 0 {
			time.Sleep(delay)
		}
	}
	if attempts == 1 {
		return last
	}
	return errors.Wrapf(last, "failed after %d attempts", attempts)
}
