// level.go: Severity levels, message flags and the console/file filter
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mneme

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Level is the ordinal verbosity of a message or of a logger threshold.
// Higher values are more verbose. LevelSilent never passes the level check.
type Level uint8

const (
	LevelSilent Level = iota
	LevelError
	LevelWarning
	LevelInfo
	LevelDebug
	LevelVerbose
	LevelTrace
)

// Flags combines a message Level (low 7 bits) with the ToFile bit.
type Flags uint8

const (
	// ToFile requests a file write regardless of the current level.
	ToFile Flags = 1 << 7

	levelMask Flags = 0x7F
)

// Message flags, one per level. Combine with ToFile: MsgDebug | ToFile.
const (
	MsgSilent  = Flags(LevelSilent)
	MsgError   = Flags(LevelError)
	MsgWarning = Flags(LevelWarning)
	MsgInfo    = Flags(LevelInfo)
	MsgDebug   = Flags(LevelDebug)
	MsgVerbose = Flags(LevelVerbose)
	MsgTrace   = Flags(LevelTrace)
)

var levelNames = [...]string{
	LevelSilent:  "silent",
	LevelError:   "error",
	LevelWarning: "warning",
	LevelInfo:    "info",
	LevelDebug:   "debug",
	LevelVerbose: "verbose",
	LevelTrace:   "trace",
}

// String returns the lower-case level name, or "level(n)" for unnamed levels.
func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "level(" + strconv.Itoa(int(l)) + ")"
}

// Flags returns the message flags for l without the file bit.
func (l Level) Flags() Flags { return Flags(l) & levelMask }

// Level extracts the message level.
func (f Flags) Level() Level { return Level(f & levelMask) }

// ToFile reports whether the file bit is set.
func (f Flags) ToFile() bool { return f&ToFile != 0 }

// ParseLevel accepts level names (case-insensitive, "warn" and "err" included)
// or their numeric value.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "warn":
		return LevelWarning, nil
	case "err":
		return LevelError, nil
	case "none", "off":
		return LevelSilent, nil
	}
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil || n > uint64(levelMask) {
		return LevelSilent, errors.Errorf("unknown log level %q", s)
	}
	return Level(n), nil
}

// EmitsConsole reports whether a message with flags f is printed on the
// console when the logger threshold is current. A message level of zero is
// never printed, whatever the threshold.
func EmitsConsole(f Flags, current Level) bool {
	lvl := f.Level()
	return lvl != LevelSilent && lvl <= current
}

// EmitsFile reports whether a message with flags f goes to the log file.
// The file bit bypasses the level threshold.
func EmitsFile(f Flags) bool {
	return f.ToFile()
}

// Eligible reports whether a message needs to be rendered at all.
func Eligible(f Flags, current Level) bool {
	return EmitsFile(f) || EmitsConsole(f, current)
}
