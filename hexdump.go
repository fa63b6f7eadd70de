// hexdump.go: Hex dumps of binary buffers
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mneme

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

const (
	hexDigits = "0123456789ABCDEF"
	hexGroup  = 8 // bytes between the extra separators
)

// HexLines formats buf as uppercase hex, perLine bytes per line, with an
// extra space every 8 bytes. perLine <= 0 means 16.
func HexLines(buf []byte, perLine int) []string {
	if perLine <= 0 {
		perLine = DefaultBytesPerLine
	}
	lines := make([]string, 0, (len(buf)+perLine-1)/perLine)
	var b strings.Builder
	for start := 0; start < len(buf); start += perLine {
		end := min(start+perLine, len(buf))
		b.Reset()
		for i, c := range buf[start:end] {
			if i > 0 {
				b.WriteByte(' ')
				if i%hexGroup == 0 {
					b.WriteByte(' ')
				}
			}
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0x0F])
		}
		lines = append(lines, b.String())
	}
	return lines
}

// CanonicalLines formats buf like "hexdump -C": an offset column, 16 bytes
// split 8+8 and a gutter showing printable bytes in code page 855.
func CanonicalLines(buf []byte, offset int) []string {
	const perLine = 16
	lines := make([]string, 0, (len(buf)+perLine-1)/perLine)
	var b strings.Builder
	for start := 0; start < len(buf); start += perLine {
		end := min(start+perLine, len(buf))
		row := buf[start:end]

		b.Reset()
		fmt.Fprintf(&b, "%08x  ", offset+start)
		for i := 0; i < perLine; i++ {
			if i == hexGroup {
				b.WriteByte(' ')
			}
			if i < len(row) {
				b.WriteByte(hexDigits[row[i]>>4])
				b.WriteByte(hexDigits[row[i]&0x0F])
				b.WriteByte(' ')
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteString(" |")
		for _, c := range row {
			b.WriteRune(printable(c))
		}
		b.WriteByte('|')
		lines = append(lines, b.String())
	}
	return lines
}

// printable maps standard (0x20-0x7E) and extended (0x80-0xFE) characters
// through code page 855 and everything else to '.'.
func printable(c byte) rune {
	if (c > 0x1F && c < 0x7F) || (c >= 0x80 && c < 0xFF) {
		return charmap.CodePage855.DecodeByte(c)
	}
	return '.'
}

// HexDump writes a stamped header line with label followed by buf in hex.
//
// Parameters:
//   - flags: message level, optionally combined with ToFile
//   - buf: bytes to dump
//   - label: header text, e.g. "rx packet:"
//
// Each following line is a tab and BytesPerLine bytes (default 16) as
// uppercase hex, with an extra space every 8 bytes. Only the header carries
// a stamp; the configured stamp kind is left untouched. The whole dump is
// one console message and one file record.
//
// Example:
//
//	logger.HexDump(mneme.MsgDebug, frame, "rx frame:")
func (l *Logger) HexDump(flags Flags, buf []byte, label string) {
	l.hexDump(scope{}, flags, buf, label)
}

func (l *Logger) hexDump(sc scope, flags Flags, buf []byte, label string) {
	v := l.view(sc)
	if !Eligible(flags, v.level) {
		return
	}
	header := strings.TrimRight(label, "\n") + "\n"
	lines := HexLines(buf, v.bytesPerLine)

	stamp := l.makeStamp(v)
	if EmitsConsole(flags, v.level) {
		l.console.Do(func(w io.Writer) {
			io.WriteString(w, joinRecord(stamp, header))
			for _, line := range lines {
				io.WriteString(w, "\t"+line+"\n")
			}
		})
		l.stats.consoleWrites.Add(1)
	}
	if EmitsFile(flags) {
		var b strings.Builder
		b.WriteString(header)
		for _, line := range lines {
			b.WriteString("\t" + line + "\n")
		}
		l.sink.Write(stamp, b.String(), v.file)
	}
}

// HexDumpCanonical writes buf in "hexdump -C" layout, offsets starting at
// offset. Every line carries the stamp.
func (l *Logger) HexDumpCanonical(flags Flags, buf []byte, offset int) {
	l.hexDumpCanonical(scope{}, flags, buf, offset)
}

func (l *Logger) hexDumpCanonical(sc scope, flags Flags, buf []byte, offset int) {
	v := l.view(sc)
	if !Eligible(flags, v.level) || len(buf) == 0 {
		return
	}
	stamp := l.makeStamp(v)

	var b strings.Builder
	for _, line := range CanonicalLines(buf, offset) {
		b.WriteString(joinRecord(stamp, line+"\n"))
	}
	text := b.String()

	l.emit(v, flags, "", text, text)
}
