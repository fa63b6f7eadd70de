// config_test.go: Tests for size, duration and path helpers
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mneme

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// TestParseSize_AllBranches tests all branches in ParseSize
func TestParseSize_AllBranches(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		hasError bool
	}{
		{"100", 100, false},
		{"0", 0, false},
		{"512B", 512, false},
		{"1KB", KB, false},
		{"1k", KB, false},
		{"2MB", 2 * MB, false},
		{" 2 mb ", 2 * MB, false},
		{"3G", 3 * GB, false},
		{"1TB", 1024 * GB, false},
		{"", 0, true},
		{"-5", 0, true},
		{"-5MB", 0, true},
		{"1.5MB", 0, true},
		{"10XB", 0, true},
		{"lots", 0, true},
		{"99999999999TB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseSize(tt.input)
			if tt.hasError && err == nil {
				t.Errorf("ParseSize(%q) should return error", tt.input)
			}
			if !tt.hasError && err != nil {
				t.Errorf("ParseSize(%q) should not return error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("ParseSize(%q) = %d, expected %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		hasError bool
	}{
		{"10ms", 10 * time.Millisecond, false},
		{"1h30m", 90 * time.Minute, false},
		{"2d", 48 * time.Hour, false},
		{"1w", 7 * 24 * time.Hour, false},
		{"", 0, true},
		{"soon", 0, true},
		{"xd", 0, true},
	}

	for _, tt := range tests {
		result, err := ParseDuration(tt.input)
		if tt.hasError != (err != nil) {
			t.Errorf("ParseDuration(%q) error = %v, want error %v", tt.input, err, tt.hasError)
		}
		if result != tt.expected {
			t.Errorf("ParseDuration(%q) = %v, expected %v", tt.input, result, tt.expected)
		}
	}
}

// TestRetryFileOperation_AllBranches tests all branches in RetryFileOperation
func TestRetryFileOperation_AllBranches(t *testing.T) {
	// Test successful operation
	successCount := 0
	err := RetryFileOperation(func() error {
		successCount++
		return nil
	}, 3, 1*time.Millisecond)
	if err != nil {
		t.Errorf("RetryFileOperation should succeed: %v", err)
	}
	if successCount != 1 {
		t.Errorf("Expected 1 attempt, got %d", successCount)
	}

	// Test success after retries
	retryCount := 0
	err = RetryFileOperation(func() error {
		retryCount++
		if retryCount < 3 {
			return fmt.Errorf("temporary error %d", retryCount)
		}
		return nil
	}, 3, 1*time.Millisecond)
	if err != nil {
		t.Errorf("RetryFileOperation should succeed after retries: %v", err)
	}
	if retryCount != 3 {
		t.Errorf("Expected 3 attempts, got %d", retryCount)
	}

	// Test permanent failure
	failCount := 0
	err = RetryFileOperation(func() error {
		failCount++
		return fmt.Errorf("permanent error %d", failCount)
	}, 2, 1*time.Millisecond)
	if err == nil {
		t.Error("RetryFileOperation should fail after max retries")
	}
	if failCount != 2 {
		t.Errorf("Expected 2 attempts, got %d", failCount)
	}
	if !strings.Contains(err.Error(), "failed after 2 attempts") {
		t.Errorf("error = %v, want the attempt count", err)
	}

	// Test non-positive attempts
	single := 0
	err = RetryFileOperation(func() error {
		single++
		return fmt.Errorf("once")
	}, 0, 0)
	if single != 1 || err == nil || err.Error() != "once" {
		t.Errorf("attempts 0: calls = %d, err = %v", single, err)
	}
}

// TestSanitizeFilename_AllBranches tests all branches in SanitizeFilename
func TestSanitizeFilename_AllBranches(t *testing.T) {
	if got := SanitizeFilename("app.log"); got != "app.log" {
		t.Errorf("SanitizeFilename(app.log) = %q", got)
	}
	if got := SanitizeFilename("a\x00b.log"); got != "a_b.log" {
		t.Errorf("SanitizeFilename with NUL = %q", got)
	}
	if runtime.GOOS == "windows" {
		if got := SanitizeFilename(`test<>:"|?*.log`); got != "test_______.log" {
			t.Errorf("SanitizeFilename = %q", got)
		}
	}
}

func TestValidatePathLength(t *testing.T) {
	if err := ValidatePathLength("run.log"); err != nil {
		t.Errorf("short path rejected: %v", err)
	}
	if err := ValidatePathLength("/" + strings.Repeat("a", 5000)); err == nil {
		t.Error("overlong path accepted")
	}
}

func TestCleanLogPath(t *testing.T) {
	if p, err := cleanLogPath(""); p != "" || err != nil {
		t.Errorf("cleanLogPath(\"\") = %q, %v", p, err)
	}
	if p, err := cleanLogPath("logs/./run.log"); err != nil || p != filepath.Join("logs", "run.log") {
		t.Errorf("cleanLogPath = %q, %v", p, err)
	}
}
