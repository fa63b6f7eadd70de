// stats.go: Logger counters for monitoring and tests
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mneme

import "sync/atomic"

type counters struct {
	consoleWrites    atomic.Uint64
	fileWrites       atomic.Uint64
	fileBytes        atomic.Uint64
	rotations        atomic.Uint64
	lockTimeouts     atomic.Uint64
	openFailures     atomic.Uint64
	callbackFailures atomic.Uint64
	errors           atomic.Uint64
}

// Stats is a snapshot of a Logger's activity.
type Stats struct {
	ConsoleWrites uint64 `json:"console_writes"` // messages printed on the console
	FileWrites    uint64 `json:"file_writes"`    // records appended to the log file
	FileBytes     uint64 `json:"file_bytes"`     // bytes appended, markers included

	Rotations        uint64 `json:"rotations"`
	LockTimeouts     uint64 `json:"lock_timeouts"`     // file writes dropped on a busy lock
	OpenFailures     uint64 `json:"open_failures"`     // file writes dropped on open errors
	CallbackFailures uint64 `json:"callback_failures"` // rotation callbacks that failed
	Errors           uint64 `json:"errors"`            // everything passed to the error callback

	BackupIndex int   `json:"backup_index"` // number of the next backup of the current file
	Level       Level `json:"level"`
}

// Stats returns the current counters. Safe to call concurrently.
func (l *Logger) Stats() Stats {
	c := &l.stats
	return Stats{
		ConsoleWrites:    c.consoleWrites.Load(),
		FileWrites:       c.fileWrites.Load(),
		FileBytes:        c.fileBytes.Load(),
		Rotations:        c.rotations.Load(),
		LockTimeouts:     c.lockTimeouts.Load(),
		OpenFailures:     c.openFailures.Load(),
		CallbackFailures: c.callbackFailures.Load(),
		Errors:           c.errors.Load(),
		BackupIndex:      l.sink.BackupIndex(l.FileConfig().Path),
		Level:            l.Level(),
	}
}
