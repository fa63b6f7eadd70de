// helpers.go: Highlighted error, warning and info messages
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mneme

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Location identifies the source line of a call.
type Location struct {
	File     string // base name
	Function string // short name, "(*Logger).Log" style
	Line     int
}

// Caller returns the location skip frames above its caller; Caller(0) is
// the function calling Caller.
func Caller(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{File: "???", Function: "???"}
	}
	loc := Location{File: filepath.Base(file), Line: line, Function: "???"}
	if fn := runtime.FuncForPC(pc); fn != nil {
		loc.Function = shortFuncName(fn.Name())
	}
	return loc
}

// String renders loc as "file func():line".
func (loc Location) String() string {
	return loc.File + " " + loc.Function + "():" + strconv.Itoa(loc.Line)
}

// shortFuncName strips the import path and package from a runtime name:
// "github.com/x/y.(*T).M" becomes "(*T).M".
func shortFuncName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

type tag struct {
	color string // console highlighting of label
	label string
}

var (
	tagError     = tag{ColorRed + ColorBold, "ERR:"}
	tagSysError  = tag{ColorRed + ColorBold, "PERR:"}
	tagWarning   = tag{ColorYellow + ColorBold, "WARN:"}
	tagInfo      = tag{ColorYellow, "INFO:"}
	tagException = tag{ColorRed, "EX:"}
)

// tagged writes a highlighted message. detail follows the label and is
// highlighted with it on the console; the file copy is never coloured.
func (l *Logger) tagged(sc scope, flags Flags, t tag, detail, format string, args []any) {
	v := l.view(sc)
	if !Eligible(flags, v.level) {
		return
	}
	head := t.label
	if detail != "" {
		head += " " + detail
	}
	msg := render(format, args)
	plain := head + " " + msg

	colored := plain
	if !v.noColor {
		colored = t.color + head + ColorReset + " " + msg
	}
	l.emit(v, flags, l.makeStamp(v), colored, plain)
}

func (l *Logger) logError(sc scope, loc Location, format string, args []any) {
	l.tagged(sc, MsgError|ToFile, tagError, loc.String(), format, args)
}

func (l *Logger) logSystemError(sc scope, loc Location, err error, format string, args []any) {
	msg := strings.TrimRight(render(format, args), "\n")
	if err != nil {
		msg += ": " + err.Error()
	}
	l.tagged(sc, MsgError|ToFile, tagSysError, loc.String(), msg, nil)
}

func (l *Logger) logException(sc scope, loc Location, format string, args []any) {
	l.tagged(sc, MsgError|ToFile, tagException, "(in "+loc.Function+")", format, args)
}

// Error logs at Error level to console and file, prefixed with "ERR:" and
// the calling file, function and line:
//
//	ERR: server.go (*Server).accept():88 accept failed: too many open files
//
// The prefix is highlighted on the console unless NoColor is set.
func (l *Logger) Error(format string, args ...any) {
	l.logError(scope{}, Caller(1), format, args)
}

// SystemError is Error followed by ": " and the text of err, typically a
// syscall.Errno or *os.PathError.
func (l *Logger) SystemError(err error, format string, args ...any) {
	l.logSystemError(scope{}, Caller(1), err, format, args)
}

// Exception logs a recovered failure at Error level, naming the function
// it happened in.
func (l *Logger) Exception(format string, args ...any) {
	l.logException(scope{}, Caller(1), format, args)
}

// Warn logs at Warning level to console and file.
func (l *Logger) Warn(format string, args ...any) {
	l.tagged(scope{}, MsgWarning|ToFile, tagWarning, "", format, args)
}

// Info logs at Info level to console and file.
func (l *Logger) Info(format string, args ...any) {
	l.tagged(scope{}, MsgInfo|ToFile, tagInfo, "", format, args)
}
