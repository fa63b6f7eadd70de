// stamp.go: Message stamp generation (date, time, module name)
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mneme

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/agilira/go-timecache"
	"github.com/lestrrat-go/strftime"
	"github.com/pkg/errors"
)

// StampKind selects the prefix written in front of every message.
type StampKind uint8

const (
	StampNone StampKind = iota
	StampDateTime
	StampTime
	StampMillis
	StampCustom
)

// StampFailed is returned instead of a stamp when the clock cannot be read
// or the stamp pattern cannot be applied.
const StampFailed = "localtime failed"

// Default strftime patterns of the built-in stamp kinds.
const (
	DateTimePattern = "[ %d.%m.%y %T ]"
	TimePattern     = "[ %T ]"
	millisPattern   = "%d.%m.%y %T"
)

var stampNames = [...]string{
	StampNone:     "none",
	StampDateTime: "datetime",
	StampTime:     "time",
	StampMillis:   "millis",
	StampCustom:   "custom",
}

// String returns the name used in settings files, e.g. "millis".
func (k StampKind) String() string {
	if int(k) < len(stampNames) {
		return stampNames[k]
	}
	return fmt.Sprintf("stamp(%d)", k)
}

// ParseStampKind parses the names returned by StampKind.String.
// "ms" is accepted for StampMillis and "" for StampDateTime.
func ParseStampKind(s string) (StampKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "datetime", "date_time":
		return StampDateTime, nil
	case "none", "no_stamp":
		return StampNone, nil
	case "time", "only_time":
		return StampTime, nil
	case "millis", "ms", "ms_time":
		return StampMillis, nil
	case "custom":
		return StampCustom, nil
	}
	return StampNone, errors.Errorf("unknown stamp kind %q", s)
}

// Clock supplies wall-clock time to the stamp generator. A zero time.Time
// means the clock could not be read.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// cachedClock reads time from a go-timecache ticker at millisecond resolution.
type cachedClock struct {
	tc *timecache.TimeCache
}

func newCachedClock() *cachedClock {
	return &cachedClock{tc: timecache.NewWithResolution(time.Millisecond)}
}

// sharedClock reads the process-wide go-timecache cache. Nothing owns it,
// so it is never stopped.
func sharedClock() Clock {
	return &cachedClock{tc: timecache.DefaultCache()}
}

func (c *cachedClock) Now() time.Time { return c.tc.CachedTime() }

func (c *cachedClock) Stop() { c.tc.Stop() }

// CompileStampFormat validates a custom strftime pattern.
func CompileStampFormat(pattern string) (*strftime.Strftime, error) {
	if pattern == "" {
		return nil, errors.New("empty stamp format")
	}
	f, err := strftime.New(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid stamp format %q", pattern)
	}
	return f, nil
}

var (
	dateTimeFormat = mustCompile(DateTimePattern)
	timeFormat     = mustCompile(TimePattern)
	millisFormat   = mustCompile(millisPattern)
)

func mustCompile(p string) *strftime.Strftime {
	f, err := strftime.New(p)
	if err != nil {
		panic(err)
	}
	return f
}

// Stamper builds message stamps. It is safe for concurrent use.
type Stamper struct {
	clock Clock

	mu     sync.Mutex
	custom map[string]*strftime.Strftime
}

// NewStamper returns a Stamper reading time from clock.
func NewStamper(clock Clock) *Stamper {
	return &Stamper{clock: clock, custom: make(map[string]*strftime.Strftime)}
}

// Make returns the stamp for kind. The clock is read once, and not at all
// for StampNone. format is only used by StampCustom.
func (s *Stamper) Make(kind StampKind, module, format string) string {
	if kind == StampNone {
		return ""
	}

	now := s.clock.Now()
	if now.IsZero() {
		return StampFailed
	}

	switch kind {
	case StampTime:
		return timeFormat.FormatString(now) + module
	case StampMillis:
		ms := now.Nanosecond() / int(time.Millisecond)
		return fmt.Sprintf("[ %s.%03d ]%s", millisFormat.FormatString(now), ms, module)
	case StampCustom:
		f, err := s.pattern(format)
		if err != nil {
			return StampFailed
		}
		return f.FormatString(now) + module
	default:
		return dateTimeFormat.FormatString(now) + module
	}
}

func (s *Stamper) pattern(format string) (*strftime.Strftime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.custom[format]; ok {
		return f, nil
	}
	f, err := CompileStampFormat(format)
	if err != nil {
		return nil, err
	}
	s.custom[format] = f
	return f, nil
}
