// file.go: Log file sink with size-triggered numbered rotation
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mneme

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// RotatedMarker is written at the top of a freshly rotated log file.
const RotatedMarker = "----- Log file has been rotated -----"

// RotateFunc is called with the log path before backups are shifted.
// It must not log to file: the nested write would wait on the file lock
// held by the rotation and be dropped.
type RotateFunc func(path string) error

// FileConfig is the per-write snapshot of file settings.
type FileConfig struct {
	Path        string
	MaxSize     int64
	MaxBackups  int
	LockTimeout time.Duration
	FileMode    os.FileMode
	RetryCount  int
	RetryDelay  time.Duration
	NoMarker    bool
	OnRotate    RotateFunc
}

// enabled reports whether file logging is configured at all.
func (c FileConfig) enabled() bool {
	return c.Path != "" && c.MaxSize > 0
}

// fileEvents receives the sink's diagnostics. Implemented by Logger.
type fileEvents interface {
	// notice prints a console-only message.
	notice(level Level, format string, args ...any)
	// reportError forwards a failure to the error callback.
	reportError(operation string, err error)
}

// FileSink appends records to a log file, rotating it into numbered backups
// once it reaches the configured size. The file is opened and closed on
// every write; nothing but the backup index survives between calls, and
// that lives on the FileLock.
type FileSink struct {
	lock   *FileLock
	events fileEvents
	stats  *counters
}

func newFileSink(lock *FileLock, events fileEvents, stats *counters) *FileSink {
	return &FileSink{lock: lock, events: events, stats: stats}
}

// Write appends "<stamp> <msg>" to cfg.Path, rotating first when the file
// has reached cfg.MaxSize. It returns the number of bytes written; every
// failure drops the record and returns 0.
func (s *FileSink) Write(stamp, msg string, cfg FileConfig) int {
	if !cfg.enabled() {
		return 0
	}
	if !s.lock.TryLock(cfg.LockTimeout) {
		s.stats.lockTimeouts.Add(1)
		return 0
	}
	defer s.lock.Unlock()

	n, _ := s.writeLocked(stamp, msg, cfg, false)
	return n
}

// rotateLocked rotates regardless of size. The caller holds the file lock.
func (s *FileSink) rotateLocked(stamp string, cfg FileConfig) error {
	_, err := s.writeLocked(stamp, "", cfg, true)
	return err
}

// writeLocked does the work of Write. Errors are already reported when it
// returns them.
func (s *FileSink) writeLocked(stamp, msg string, cfg FileConfig, force bool) (int, error) {
	mode := cfg.FileMode
	if mode == 0 {
		mode = DefaultFileMode
	}

	rotate := force || s.size(cfg.Path) >= cfg.MaxSize
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if rotate {
		s.rotate(cfg)
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}

	var f *os.File
	err := RetryFileOperation(func() error {
		var err error
		f, err = os.OpenFile(cfg.Path, flags, mode) // #nosec G304 -- path sanitized by cleanLogPath
		return err
	}, cfg.RetryCount, cfg.RetryDelay)
	if err != nil {
		err = errors.Wrapf(err, "couldn't open log file %q", cfg.Path)
		s.stats.openFailures.Add(1)
		s.events.reportError("file_open", err)
		return 0, err
	}
	defer f.Close()

	buf := make([]byte, 0, len(stamp)+len(msg)+len(RotatedMarker)+4)
	if rotate && !cfg.NoMarker {
		buf = appendRecord(buf, stamp, RotatedMarker+"\n")
	}
	if msg != "" {
		buf = appendRecord(buf, stamp, msg)
	}

	n, err := f.Write(buf)
	if err != nil {
		err = errors.Wrapf(err, "write to %q", cfg.Path)
		s.events.reportError("file_write", err)
	}
	if n > 0 {
		s.stats.fileWrites.Add(1)
		s.stats.fileBytes.Add(uint64(n)) // #nosec G115 -- n > 0
	}
	return n, err
}

// size returns the current file size; any stat failure counts as empty.
func (s *FileSink) size(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.events.reportError("file_stat", errors.Wrapf(err, "stat %q", path))
		}
		return 0
	}
	return info.Size()
}

// rotate runs the rotation callback and moves the live file to the next
// numbered backup. The caller reopens the file truncated.
func (s *FileSink) rotate(cfg FileConfig) {
	s.stats.rotations.Add(1)
	s.events.notice(LevelVerbose, "------ Rotating '%s' file ------", cfg.Path)

	if cfg.OnRotate != nil {
		if err := runRotateFunc(cfg.OnRotate, cfg.Path); err != nil {
			s.stats.callbackFailures.Add(1)
			s.events.notice(LevelError, "rotation callback failed: %v", err)
			s.events.reportError("rotation_callback", err)
		}
	}

	if cfg.MaxBackups <= 0 {
		return
	}
	index := s.lock.backupIndex(cfg.Path)
	n := int(index.Load())
	if n < 1 || n > cfg.MaxBackups {
		n = 1
	}

	backup := BackupName(cfg.Path, n)
	renamed := false
	err := RetryFileOperation(func() error {
		if runtime.GOOS == "windows" {
			_ = os.Remove(backup)
		}
		err := os.Rename(cfg.Path, backup)
		if os.IsNotExist(err) {
			return nil
		}
		renamed = err == nil
		return err
	}, cfg.RetryCount, cfg.RetryDelay)
	if err != nil {
		s.events.reportError("rotation", errors.Wrapf(err, "rename %q to %q", cfg.Path, backup))
	}
	if !renamed {
		return
	}

	if n >= cfg.MaxBackups {
		n = 1
	} else {
		n++
	}
	index.Store(int64(n))
}

// BackupIndex returns the number the next backup of path will get.
func (s *FileSink) BackupIndex(path string) int {
	if path == "" {
		return 1
	}
	return int(s.lock.backupIndex(path).Load())
}

// BackupName returns the name of backup n of path.
func BackupName(path string, n int) string {
	return path + "." + strconv.Itoa(n)
}

func runRotateFunc(fn RotateFunc, path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic in rotation callback: %v", r)
		}
	}()
	return fn(path)
}

func appendRecord(buf []byte, stamp, msg string) []byte {
	if stamp != "" {
		buf = append(buf, stamp...)
		buf = append(buf, ' ')
	}
	return append(buf, msg...)
}
