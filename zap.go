// zap.go: zapcore.Core backed by a Logger
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mneme

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapCore returns a zapcore.Core that writes through l. Zap levels map to
// Debug, Info, Warning and Error; DPanic and above log as Error. Entries at
// or above fileLevel are also written to the log file. A named zap logger
// logs under the module "[ name ]"; fields are appended as sorted key=value
// pairs.
//
//	core := mneme.NewZapCore(logger, zapcore.WarnLevel)
//	zl := zap.New(core).Named("db")
//	zl.Warn("slow query", zap.Duration("took", d))
func NewZapCore(l *Logger, fileLevel zapcore.Level) zapcore.Core {
	return &zapCore{l: l, fileLevel: fileLevel}
}

// NewZap is zap.New(NewZapCore(l, fileLevel), opts...).
func NewZap(l *Logger, fileLevel zapcore.Level, opts ...zap.Option) *zap.Logger {
	return zap.New(NewZapCore(l, fileLevel), opts...)
}

type zapCore struct {
	l         *Logger
	fileLevel zapcore.Level
	fields    []zapcore.Field
}

func (c *zapCore) flags(lvl zapcore.Level) Flags {
	var f Flags
	switch {
	case lvl < zapcore.InfoLevel:
		f = MsgDebug
	case lvl == zapcore.InfoLevel:
		f = MsgInfo
	case lvl == zapcore.WarnLevel:
		f = MsgWarning
	default:
		f = MsgError
	}
	if lvl >= c.fileLevel {
		f |= ToFile
	}
	return f
}

func (c *zapCore) Enabled(lvl zapcore.Level) bool {
	return Eligible(c.flags(lvl), c.l.Level())
}

func (c *zapCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = make([]zapcore.Field, 0, len(c.fields)+len(fields))
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return &clone
}

func (c *zapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *zapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	var sc scope
	if ent.LoggerName != "" {
		sc = scope{module: "[ " + ent.LoggerName + " ]", bound: true}
	}
	// nil args: the message is written verbatim
	c.l.log(sc, c.flags(ent.Level), ent.Message+encodeFields(enc.Fields), nil)
	return nil
}

// Sync is a no-op; every write reaches its sink before Write returns.
func (c *zapCore) Sync() error { return nil }

func encodeFields(m map[string]any) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, m[k])
	}
	return b.String()
}
