// mneme_bench_test.go: Benchmarks for the console and file paths
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mneme

import (
	"io"
	"path/filepath"
	"testing"
)

func newBenchLogger(b *testing.B, path string) *Logger {
	b.Helper()
	s := DefaultSettings()
	s.Level = LevelInfo
	s.Filename = path
	s.MaxSize = 64 * MB // large enough to avoid rotation during bench
	s.Guards = NewGuards(io.Discard)
	l, err := NewWithSettings(s)
	if err != nil {
		b.Fatalf("NewWithSettings: %v", err)
	}
	b.Cleanup(func() { _ = l.Close() })
	return l
}

// BenchmarkConsole measures stamped console output
func BenchmarkConsole(b *testing.B) {
	l := newBenchLogger(b, "")

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			l.Log(MsgInfo, "benchmark message %d", 42)
		}
	})
}

// BenchmarkFiltered measures a message rejected by the level check
func BenchmarkFiltered(b *testing.B) {
	l := newBenchLogger(b, "")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Log(MsgTrace, "never rendered %d", i)
	}
}

// BenchmarkFile measures the open-append-close file path
func BenchmarkFile(b *testing.B) {
	l := newBenchLogger(b, filepath.Join(b.TempDir(), "bench.log"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Log(MsgDebug|ToFile, "benchmark message for the file sink")
	}
}

// BenchmarkStamp measures stamp generation
func BenchmarkStamp(b *testing.B) {
	s := NewStamper(fixedClock(testTime))
	for _, kind := range []StampKind{StampDateTime, StampMillis} {
		b.Run(kind.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = s.Make(kind, "[ BENCH ]", "")
			}
		})
	}
}

// BenchmarkHexLines measures hex formatting of a 1KB buffer
func BenchmarkHexLines(b *testing.B) {
	buf := sequence(1024)
	b.SetBytes(int64(len(buf)))
	for i := 0; i < b.N; i++ {
		_ = HexLines(buf, 16)
	}
}
