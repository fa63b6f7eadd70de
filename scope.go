// scope.go: Per-call-site module names on a shared logger
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mneme

// Scope is a Logger bound to a module name. It shares everything else with
// its Logger (level, stamp kind, file, guards) and never changes the
// Logger's own module name, so scopes on one Logger can be used
// concurrently.
//
//	var log = mneme.Default().Scope("[ NET ]")
//
//	log.Log(mneme.MsgDebug, "dialing %s", addr)
type Scope struct {
	l  *Logger
	sc scope
}

// Scope returns a view of l that stamps messages with module.
//
// Parameters:
//   - module: name used in place of the Logger's module name, e.g. "[ DB ]"
//
// Returns a Scope that is cheap to keep in a package variable; it reads the
// Logger's level, stamp and file settings at every call.
func (l *Logger) Scope(module string) *Scope {
	return &Scope{l: l, sc: scope{module: module, bound: true}}
}

// Logger returns the underlying logger.
func (s *Scope) Logger() *Logger { return s.l }

// Module returns the bound module name.
func (s *Scope) Module() string { return s.sc.module }

// Log is Logger.Log with the scope's module name.
func (s *Scope) Log(flags Flags, format string, args ...any) {
	s.l.log(s.sc, flags, format, args)
}

// Error is Logger.Error with the scope's module name.
func (s *Scope) Error(format string, args ...any) {
	s.l.logError(s.sc, Caller(1), format, args)
}

// SystemError is Logger.SystemError with the scope's module name.
func (s *Scope) SystemError(err error, format string, args ...any) {
	s.l.logSystemError(s.sc, Caller(1), err, format, args)
}

// Exception is Logger.Exception with the scope's module name.
func (s *Scope) Exception(format string, args ...any) {
	s.l.logException(s.sc, Caller(1), format, args)
}

// Warn is Logger.Warn with the scope's module name.
func (s *Scope) Warn(format string, args ...any) {
	s.l.tagged(s.sc, MsgWarning|ToFile, tagWarning, "", format, args)
}

// Info is Logger.Info with the scope's module name.
func (s *Scope) Info(format string, args ...any) {
	s.l.tagged(s.sc, MsgInfo|ToFile, tagInfo, "", format, args)
}

// HexDump is Logger.HexDump with the scope's module name in the header stamp.
func (s *Scope) HexDump(flags Flags, buf []byte, label string) {
	s.l.hexDump(s.sc, flags, buf, label)
}

// HexDumpCanonical is Logger.HexDumpCanonical with the scope's module name.
func (s *Scope) HexDumpCanonical(flags Flags, buf []byte, offset int) {
	s.l.hexDumpCanonical(s.sc, flags, buf, offset)
}
