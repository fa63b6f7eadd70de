// console.go: Serialized console output
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mneme

import (
	"io"
	"os"
	"sync"
)

// ANSI highlighting used for message prefixes.
const (
	ColorRed     = "\x1b[31m"
	ColorGreen   = "\x1b[32m"
	ColorYellow  = "\x1b[33m"
	ColorBlue    = "\x1b[34m"
	ColorMagenta = "\x1b[35m"
	ColorCyan    = "\x1b[36m"
	ColorGray    = "\x1b[90m"
	ColorReset   = "\x1b[0m"
	ColorBold    = "\x1b[1m"
)

// Console serializes writes to one terminal (or any writer) so that a
// logical message is never interleaved with another one.
//
// Go mutexes are not reentrant: code running inside Do already owns the
// console and must write to the writer it was given instead of calling
// Write or Do again.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole returns a Console writing to w. A nil w means os.Stdout.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{out: w}
}

// Write emits p as one atomic message. Errors from the underlying writer are
// ignored; the returned count is best effort.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	n, _ := c.out.Write(p)
	c.mu.Unlock()
	return n, nil
}

// WriteString is Write for strings.
func (c *Console) WriteString(s string) (int, error) {
	c.mu.Lock()
	n, _ := io.WriteString(c.out, s)
	c.mu.Unlock()
	return n, nil
}

// Do runs fn with the console held, for messages made of several writes.
func (c *Console) Do(fn func(w io.Writer)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.out)
}

// Guards are the two process-wide exclusion primitives: one for the
// terminal, one for log files. Loggers that share a terminal or a file must
// share a Guards value. Loggers writing the same path through one Guards
// also share its backup numbering, so their rotations never overwrite each
// other's fresh backups.
type Guards struct {
	Console *Console
	File    *FileLock
}

// NewGuards returns fresh guards for console output w (nil means os.Stdout).
func NewGuards(w io.Writer) *Guards {
	return &Guards{
		Console: NewConsole(w),
		File:    NewFileLock(),
	}
}

// withDefaults fills nil members.
func (g *Guards) withDefaults() *Guards {
	if g == nil {
		return NewGuards(nil)
	}
	out := *g
	if out.Console == nil {
		out.Console = NewConsole(nil)
	}
	if out.File == nil {
		out.File = NewFileLock()
	}
	return &out
}
