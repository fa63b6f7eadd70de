// logger.go: Public API - leveled logger with console and rotating file output
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mneme

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Logger filters messages by level, stamps them and writes them to the
// console and, when asked with ToFile, to a rotating log file.
//
// No logging method returns an error: failures drop the message from one
// sink and are reported through Settings.ErrorCallback.
//
//	logger, err := mneme.NewWithSettings(&mneme.Settings{
//		Level:      mneme.LevelDebug,
//		Module:     "[ NET ]",
//		Filename:   "run.log",
//		MaxBackups: 3,
//		MaxSize:    2 * mneme.MB,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer logger.Close()
//
//	logger.Log(mneme.MsgDebug|mneme.ToFile, "connected to %s", addr)
type Logger struct {
	// config, never held across I/O
	mu            sync.RWMutex
	level         Level
	module        string
	stamp         StampKind
	stampFormat   string
	file          FileConfig
	noColor       bool
	bytesPerLine  int
	errorCallback func(operation string, err error)

	console *Console
	fileMu  *FileLock
	sink    *FileSink
	stamper *Stamper
	clock   *cachedClock // owned time cache, nil with an injected Clock

	stats     counters
	closeOnce sync.Once
}

// New returns a console-only Logger built from DefaultSettings.
//
// Parameters:
//   - level: console threshold; messages above it are not printed
//   - module: name appended to every stamp, e.g. "[ NET ]"
//
// The Logger owns a millisecond time cache whose ticker runs until Close.
// Use Init or Apply to add file output.
//
// Example:
//
//	logger := mneme.New(mneme.LevelDebug, "[ NET ]")
//	defer logger.Close()
func New(level Level, module string) *Logger {
	s := DefaultSettings()
	s.Level = level
	s.Module = module
	l, err := NewWithSettings(s)
	if err != nil {
		// default settings always normalize
		panic(err)
	}
	return l
}

// NewWithSettings returns a Logger configured by s.
//
// Parameters:
//   - s: configuration, usually DefaultSettings() with fields changed;
//     string forms (MaxSizeStr, LockTimeoutStr, RetryDelayStr) win over
//     their typed counterparts
//
// Returns an error when s is nil or invalid: negative sizes or counts,
// unparsable strings, a bad stamp pattern, StampCustom without StampFormat
// or a log path longer than the OS allows. s itself is never modified.
//
// With a nil s.Clock the Logger owns a time cache and must be closed.
func NewWithSettings(s *Settings) (*Logger, error) {
	n, err := s.normalize()
	if err != nil {
		return nil, err
	}

	guards := n.Guards.withDefaults()
	l := &Logger{
		console: guards.Console,
		fileMu:  guards.File,
	}
	l.sink = newFileSink(guards.File, l, &l.stats)

	clock := n.Clock
	if clock == nil {
		l.clock = newCachedClock()
		clock = l.clock
	}
	l.stamper = NewStamper(clock)

	l.apply(n)
	return l, nil
}

// Apply replaces the configuration with s, as NewWithSettings would build
// it. Guards and Clock are fixed at construction and ignored here; nil
// callbacks keep the current ones.
//
// Returns the validation error of s, in which case nothing changes.
func (l *Logger) Apply(s *Settings) error {
	n, err := s.normalize()
	if err != nil {
		return err
	}
	l.apply(n)
	return nil
}

func (l *Logger) apply(s *Settings) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.level = s.Level
	l.module = s.Module
	l.stamp = s.Stamp
	l.stampFormat = s.StampFormat
	l.noColor = s.NoColor
	l.bytesPerLine = s.BytesPerLine

	onRotate := s.RotationCallback
	if onRotate == nil {
		onRotate = l.file.OnRotate
	}
	l.file = FileConfig{
		Path:        s.Filename,
		MaxSize:     s.MaxSize,
		MaxBackups:  s.MaxBackups,
		LockTimeout: s.LockTimeout,
		FileMode:    s.FileMode,
		RetryCount:  s.RetryCount,
		RetryDelay:  s.RetryDelay,
		NoMarker:    s.NoMarker,
		OnRotate:    onRotate,
	}
	if s.ErrorCallback != nil {
		l.errorCallback = s.ErrorCallback
	}
}

// Init sets the level, the module name and the file output in one step.
//
// Parameters:
//   - level: console threshold
//   - module: name appended to every stamp
//   - path: log file; empty disables file output
//   - backups: number of numbered backups kept, <path>.1 to <path>.<backups>;
//     0 truncates the file on rotation
//   - maxSize: size in bytes that triggers rotation; 0 disables file output
//
// An invalid path is reported through the error callback as "init" and
// disables file output. Negative counts are treated as 0.
func (l *Logger) Init(level Level, module, path string, backups int, maxSize int64) {
	clean, err := cleanLogPath(path)
	if err != nil {
		l.reportError("init", errors.Wrapf(err, "log file %q", path))
		clean = ""
	}
	if backups < 0 {
		backups = 0
	}
	if maxSize < 0 {
		maxSize = 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.module = module
	l.file.Path = clean
	l.file.MaxBackups = backups
	l.file.MaxSize = maxSize
}

// SetLevel changes the console threshold.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// Level returns the console threshold.
func (l *Logger) Level() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// SetModule changes the name appended to stamps.
func (l *Logger) SetModule(name string) {
	l.mu.Lock()
	l.module = name
	l.mu.Unlock()
}

// Module returns the name appended to stamps.
func (l *Logger) Module() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.module
}

// SetStamp selects a stamp kind. StampCustom keeps the last pattern set with
// SetStampFormat and is ignored when there is none.
func (l *Logger) SetStamp(kind StampKind) {
	if kind > StampCustom {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if kind == StampCustom && l.stampFormat == "" {
		return
	}
	l.stamp = kind
}

// Stamp returns the configured stamp kind.
func (l *Logger) Stamp() StampKind {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.stamp
}

// SetStampFormat switches to a custom strftime stamp, e.g. "[ %Y-%m-%d %T ]".
//
// Returns an error for an empty pattern or one strftime cannot compile; the
// current stamp is kept in that case.
func (l *Logger) SetStampFormat(pattern string) error {
	if _, err := CompileStampFormat(pattern); err != nil {
		return err
	}
	l.mu.Lock()
	l.stampFormat = pattern
	l.stamp = StampCustom
	l.mu.Unlock()
	return nil
}

// SetRotationCallback installs fn, run with the log path before each
// rotation while the full file is still in place. Errors and panics from fn
// are reported and do not stop the rotation. fn must not log to file: the
// write would wait on the file lock held by the rotation and be dropped.
func (l *Logger) SetRotationCallback(fn RotateFunc) {
	l.mu.Lock()
	l.file.OnRotate = fn
	l.mu.Unlock()
}

// SetErrorCallback installs the receiver of swallowed failures.
func (l *Logger) SetErrorCallback(fn func(operation string, err error)) {
	l.mu.Lock()
	l.errorCallback = fn
	l.mu.Unlock()
}

// FileConfig returns the current file settings.
func (l *Logger) FileConfig() FileConfig {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.file
}

// view is the per-call configuration snapshot.
type view struct {
	level        Level
	module       string
	stamp        StampKind
	stampFormat  string
	file         FileConfig
	noColor      bool
	bytesPerLine int
}

// scope overrides the module name for one call when bound.
type scope struct {
	module string
	bound  bool
}

func (l *Logger) view(sc scope) view {
	l.mu.RLock()
	v := view{
		level:        l.level,
		module:       l.module,
		stamp:        l.stamp,
		stampFormat:  l.stampFormat,
		file:         l.file,
		noColor:      l.noColor,
		bytesPerLine: l.bytesPerLine,
	}
	l.mu.RUnlock()
	if sc.bound {
		v.module = sc.module
	}
	return v
}

func (l *Logger) makeStamp(v view) string {
	return l.stamper.Make(v.stamp, v.module, v.stampFormat)
}

// Log renders format with args and writes it to the sinks.
//
// Parameters:
//   - flags: message level, optionally combined with ToFile
//   - format: fmt format; written verbatim when args is empty
//   - args: format arguments
//
// The console receives the message when its level is non-zero and not above
// the threshold; the log file receives it whenever flags carry ToFile. One
// stamp is computed and used by both sinks. A trailing newline is added when
// missing.
//
// Example:
//
//	logger.Log(mneme.MsgDebug|mneme.ToFile, "peer %s connected", addr)
func (l *Logger) Log(flags Flags, format string, args ...any) {
	l.log(scope{}, flags, format, args)
}

// Printf logs at Info level, for code written against the standard logger.
func (l *Logger) Printf(format string, args ...any) {
	l.log(scope{}, MsgInfo, format, args)
}

func (l *Logger) log(sc scope, flags Flags, format string, args []any) {
	v := l.view(sc)
	if !Eligible(flags, v.level) {
		return
	}
	msg := render(format, args)
	l.emit(v, flags, l.makeStamp(v), msg, msg)
}

// emit sends one logical message to the sinks: console first, then file.
// The same stamp is used for both.
func (l *Logger) emit(v view, flags Flags, stamp, consoleText, fileText string) {
	if EmitsConsole(flags, v.level) {
		l.console.WriteString(joinRecord(stamp, consoleText))
		l.stats.consoleWrites.Add(1)
	}
	if EmitsFile(flags) {
		l.sink.Write(stamp, fileText, v.file)
	}
}

// Rotate rotates the log file now, whatever its size, waiting for the file
// lock until ctx is done.
//
// Returns an error when file output is disabled, when ctx ends before the
// lock is acquired, or when the fresh file cannot be opened.
func (l *Logger) Rotate(ctx context.Context) error {
	v := l.view(scope{})
	if !v.file.enabled() {
		return errors.New("file output is disabled")
	}
	if err := l.fileMu.LockContext(ctx); err != nil {
		return errors.Wrap(err, "acquire log file")
	}
	defer l.fileMu.Unlock()

	return l.sink.rotateLocked(l.makeStamp(v), v.file)
}

// Close stops the time cache owned by the logger, if any. Writes after Close
// still work with a frozen clock. Close is idempotent and always returns nil.
func (l *Logger) Close() error {
	l.closeOnce.Do(func() {
		if l.clock != nil {
			l.clock.Stop()
		}
	})
	return nil
}

// notice prints a console-only message. Used by the file sink.
func (l *Logger) notice(level Level, format string, args ...any) {
	v := l.view(scope{})
	flags := level.Flags()
	if !EmitsConsole(flags, v.level) {
		return
	}
	l.emit(v, flags, l.makeStamp(v), render(format, args), "")
}

// reportError forwards err to the error callback, or prints it as a
// console-only debug message when no callback is installed.
func (l *Logger) reportError(operation string, err error) {
	l.stats.errors.Add(1)

	l.mu.RLock()
	cb := l.errorCallback
	l.mu.RUnlock()

	if cb != nil {
		cb(operation, err)
		return
	}
	l.notice(LevelDebug, "mneme: %s: %v", operation, err)
}

func render(format string, args []any) string {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	return msg
}

func joinRecord(stamp, msg string) string {
	if stamp == "" {
		return msg
	}
	return stamp + " " + msg
}
