// filelock.go: Bounded-wait lock guarding log file access
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mneme

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultLockTimeout bounds how long a write waits for the file lock.
const DefaultLockTimeout = 10 * time.Millisecond

// FileLock is a mutual-exclusion lock whose acquisition can give up.
// The zero value is not usable; use NewFileLock.
//
// It also carries the next backup number of every log path written under
// it, so loggers sharing a FileLock continue one rotation sequence per path
// instead of each starting at 1.
type FileLock struct {
	sem chan struct{}

	indexes sync.Map // path -> *atomic.Int64, written only while locked
}

// NewFileLock returns an unlocked FileLock.
func NewFileLock() *FileLock {
	return &FileLock{sem: make(chan struct{}, 1)}
}

// TryLock acquires the lock, waiting at most d. It reports whether the lock
// is now held. d <= 0 makes a single non-blocking attempt.
func (l *FileLock) TryLock(d time.Duration) bool {
	select {
	case l.sem <- struct{}{}:
		return true
	default:
	}
	if d <= 0 {
		return false
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case l.sem <- struct{}{}:
		return true
	case <-timer.C:
		return false
	}
}

// LockContext acquires the lock or returns ctx.Err().
func (l *FileLock) LockContext(ctx context.Context) error {
	select {
	case l.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// backupIndex returns the backup counter of path, starting at 1.
func (l *FileLock) backupIndex(path string) *atomic.Int64 {
	if v, ok := l.indexes.Load(path); ok {
		return v.(*atomic.Int64)
	}
	n := new(atomic.Int64)
	n.Store(1)
	v, _ := l.indexes.LoadOrStore(path, n)
	return v.(*atomic.Int64)
}

// Unlock releases the lock. Unlocking an unlocked FileLock panics.
func (l *FileLock) Unlock() {
	select {
	case <-l.sem:
	default:
		panic("mneme: unlock of unlocked FileLock")
	}
}
