// level_test.go: Tests for levels and the severity filter
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mneme

import "testing"

func TestEmitsConsole(t *testing.T) {
	tests := []struct {
		flags   Flags
		current Level
		want    bool
	}{
		{MsgError, LevelError, true},
		{MsgWarning, LevelError, false},
		{MsgDebug, LevelTrace, true},
		{MsgTrace, LevelTrace, true},
		{MsgInfo | ToFile, LevelInfo, true},
		{MsgError, LevelSilent, false},
		{MsgSilent, LevelTrace, false},
		{MsgSilent | ToFile, LevelTrace, false},
	}

	for _, tt := range tests {
		if got := EmitsConsole(tt.flags, tt.current); got != tt.want {
			t.Errorf("EmitsConsole(%#x, %v) = %v, want %v", uint8(tt.flags), tt.current, got, tt.want)
		}
	}
}

func TestEmitsFile(t *testing.T) {
	if EmitsFile(MsgTrace) {
		t.Error("message without ToFile should not go to the file")
	}
	for _, f := range []Flags{ToFile, MsgError | ToFile, MsgTrace | ToFile} {
		if !EmitsFile(f) {
			t.Errorf("EmitsFile(%#x) = false", uint8(f))
		}
	}
}

func TestEligible(t *testing.T) {
	if Eligible(MsgDebug, LevelError) {
		t.Error("debug message below an error threshold without ToFile is not eligible")
	}
	if !Eligible(MsgDebug|ToFile, LevelError) {
		t.Error("ToFile message is always eligible")
	}
	if !Eligible(MsgError, LevelDebug) {
		t.Error("error message under a debug threshold is eligible")
	}
	if Eligible(MsgSilent, LevelTrace) {
		t.Error("silent message without ToFile is never eligible")
	}
}

func TestFlags_Accessors(t *testing.T) {
	f := MsgVerbose | ToFile
	if f.Level() != LevelVerbose {
		t.Errorf("Level() = %v, want verbose", f.Level())
	}
	if !f.ToFile() {
		t.Error("ToFile() = false")
	}
	if LevelDebug.Flags() != MsgDebug {
		t.Errorf("LevelDebug.Flags() = %#x", uint8(LevelDebug.Flags()))
	}
	if uint8(ToFile) != 0x80 {
		t.Errorf("ToFile = %#x, want 0x80", uint8(ToFile))
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		hasError bool
	}{
		{"error", LevelError, false},
		{"ERROR", LevelError, false},
		{"err", LevelError, false},
		{"warning", LevelWarning, false},
		{"warn", LevelWarning, false},
		{" info ", LevelInfo, false},
		{"debug", LevelDebug, false},
		{"verbose", LevelVerbose, false},
		{"trace", LevelTrace, false},
		{"silent", LevelSilent, false},
		{"off", LevelSilent, false},
		{"4", LevelDebug, false},
		{"loud", LevelSilent, true},
		{"200", LevelSilent, true},
		{"-1", LevelSilent, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.hasError != (err != nil) {
				t.Fatalf("ParseLevel(%q) error = %v, want error %v", tt.input, err, tt.hasError)
			}
			if got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevel_String(t *testing.T) {
	if LevelWarning.String() != "warning" {
		t.Errorf("LevelWarning.String() = %q", LevelWarning.String())
	}
	if Level(42).String() != "level(42)" {
		t.Errorf("Level(42).String() = %q", Level(42).String())
	}
}
