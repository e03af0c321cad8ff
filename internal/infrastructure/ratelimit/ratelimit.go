// Package ratelimit provides per-key fixed-window admission control.
package ratelimit

import (
	"sync"
	"time"
)

type record struct {
	count       int
	windowStart time.Time
}

// FixedWindow admits up to limit requests per key within a fixed wall-clock
// window. The counter resets when a request arrives after the window has
// elapsed, so a burst straddling a window boundary can be admitted up to
// twice the limit. That is the intended semantics, not a defect; callers
// wanting a smoother profile need a different algorithm.
type FixedWindow struct {
	mu      sync.Mutex
	records map[string]*record
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewFixedWindow constructs a limiter admitting up to limit requests per key
// within each window.
func NewFixedWindow(limit int, window time.Duration) *FixedWindow {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Second
	}
	return &FixedWindow{
		records: make(map[string]*record),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Admit records a request for the key and reports whether it is allowed.
// Counting is strictly ordered per key: concurrent calls for the same key
// serialize on the limiter mutex.
func (l *FixedWindow) Admit(key string) bool {
	if key == "" {
		key = "unknown"
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.gcLocked(now)

	rec, ok := l.records[key]
	if !ok || now.Sub(rec.windowStart) > l.window {
		l.records[key] = &record{count: 1, windowStart: now}
		return true
	}

	rec.count++
	return rec.count <= l.limit
}

// gcLocked drops records whose window ended a full window ago. Keeps the map
// bounded by the set of recently active keys.
func (l *FixedWindow) gcLocked(now time.Time) {
	for key, rec := range l.records {
		if now.Sub(rec.windowStart) > 2*l.window {
			delete(l.records, key)
		}
	}
}
