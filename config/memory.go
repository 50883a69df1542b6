package config

import (
	"sync/atomic"

	"github.com/graphalg/acore/errs"
)

// MemoryTracker accounts a single query's allocations against its
// QueryMemCap using an atomic counter so operators running on different
// goroutines can charge it without a mutex.
type MemoryTracker struct {
	cap     int64
	current atomic.Int64
}

// NewMemoryTracker returns a tracker capped at capBytes; 0 means
// unlimited (every Charge succeeds).
func NewMemoryTracker(capBytes int64) *MemoryTracker {
	return &MemoryTracker{cap: capBytes}
}

// Charge accounts n additional bytes, returning errs.MemoryCap if the
// cap would be exceeded. A failed charge is rolled back immediately so
// the tracker never reports usage above its own cap.
func (t *MemoryTracker) Charge(n int64) error {
	if t.cap <= 0 {
		t.current.Add(n)
		return nil
	}
	next := t.current.Add(n)
	if next > t.cap {
		t.current.Add(-n)
		return errs.New(errs.MemoryCap, "query memory cap exceeded: %d > %d", next, t.cap)
	}
	return nil
}

// Release gives back n bytes previously charged, e.g. when an operator
// frees an intermediate matrix.
func (t *MemoryTracker) Release(n int64) { t.current.Add(-n) }

// Current reports the tracker's current accounted usage.
func (t *MemoryTracker) Current() int64 { return t.current.Load() }
