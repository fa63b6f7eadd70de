// global.go: Process-wide shared logger
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mneme

import (
	"sync"
	"sync/atomic"
)

var (
	std     atomic.Pointer[Logger]
	stdOnce sync.Once
)

// newDefault builds the shared logger on the process-wide time cache, so it
// starts no ticker of its own.
func newDefault() *Logger {
	s := DefaultSettings()
	s.Clock = sharedClock()
	l, err := NewWithSettings(s)
	if err != nil {
		// default settings always normalize
		panic(err)
	}
	return l
}

// Default returns the shared logger, creating it on first use with level
// Error and module "[ LOGGER ]". It lives for the whole process and owns
// the process-wide guards on os.Stdout.
func Default() *Logger {
	if l := std.Load(); l != nil {
		return l
	}
	stdOnce.Do(func() {
		std.CompareAndSwap(nil, newDefault())
	})
	return std.Load()
}

// SetDefault replaces the shared logger.
//
// Parameters:
//   - l: the new shared logger; nil leaves the current one in place
//
// Returns the previous shared logger, nil if Default was never used. The
// caller decides whether to Close it.
func SetDefault(l *Logger) *Logger {
	if l == nil {
		return Default()
	}
	return std.Swap(l)
}

// Log logs through the shared logger.
func Log(flags Flags, format string, args ...any) {
	Default().log(scope{}, flags, format, args)
}

// Error logs through the shared logger; see Logger.Error.
func Error(format string, args ...any) {
	Default().logError(scope{}, Caller(1), format, args)
}

// SystemError logs through the shared logger; see Logger.SystemError.
func SystemError(err error, format string, args ...any) {
	Default().logSystemError(scope{}, Caller(1), err, format, args)
}

// Warn logs through the shared logger.
func Warn(format string, args ...any) {
	Default().tagged(scope{}, MsgWarning|ToFile, tagWarning, "", format, args)
}

// Info logs through the shared logger.
func Info(format string, args ...any) {
	Default().tagged(scope{}, MsgInfo|ToFile, tagInfo, "", format, args)
}

// HexDump dumps buf through the shared logger.
func HexDump(flags Flags, buf []byte, label string) {
	Default().hexDump(scope{}, flags, buf, label)
}

// SetLevel sets the shared logger's threshold.
func SetLevel(level Level) { Default().SetLevel(level) }

// Init configures level, module name and file output of the shared logger;
// see Logger.Init.
func Init(level Level, module, path string, backups int, maxSize int64) {
	Default().Init(level, module, path, backups, maxSize)
}

// Named returns a Scope of the shared logger.
func Named(module string) *Scope { return Default().Scope(module) }
