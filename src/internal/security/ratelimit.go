// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package security

import (
	"sync"
	"time"
)

// SlidingWindow admits at most limit events in any trailing window.
// Rejected events are not recorded. It is safe for concurrent use.
type SlidingWindow struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	events []time.Time
	now    func() time.Time
}

// NewSlidingWindow creates a limiter admitting limit events per window.
func NewSlidingWindow(limit int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{limit: limit, window: window, now: time.Now}
}

// Allow records an event and reports whether it fits in the window.
func (s *SlidingWindow) Allow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.prune(now)
	if len(s.events) >= s.limit {
		return false
	}
	s.events = append(s.events, now)
	return true
}

// Used returns the number of events in the current window.
func (s *SlidingWindow) Used() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune(s.now())
	return len(s.events)
}

func (s *SlidingWindow) prune(now time.Time) {
	cutoff := now.Add(-s.window)
	i := 0
	for i < len(s.events) && !s.events[i].After(cutoff) {
		i++
	}
	if i > 0 {
		s.events = append(s.events[:0], s.events[i:]...)
	}
}

// ByteWindow admits at most limit bytes in any trailing window.
// A rejected amount is not recorded. It is safe for concurrent use.
type ByteWindow struct {
	mu      sync.Mutex
	limit   int64
	window  time.Duration
	entries []byteEntry
	total   int64
	now     func() time.Time
}

type byteEntry struct {
	at time.Time
	n  int64
}

// NewByteWindow creates a limiter admitting limit bytes per window.
func NewByteWindow(limit int64, window time.Duration) *ByteWindow {
	return &ByteWindow{limit: limit, window: window, now: time.Now}
}

// Allow records n bytes and reports whether they fit in the window.
func (b *ByteWindow) Allow(n int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.prune(now)
	if b.total+n > b.limit {
		return false
	}
	b.entries = append(b.entries, byteEntry{at: now, n: n})
	b.total += n
	return true
}

// Used returns the number of bytes in the current window.
func (b *ByteWindow) Used() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prune(b.now())
	return b.total
}

func (b *ByteWindow) prune(now time.Time) {
	cutoff := now.Add(-b.window)
	i := 0
	for i < len(b.entries) && !b.entries[i].at.After(cutoff) {
		b.total -= b.entries[i].n
		i++
	}
	if i > 0 {
		b.entries = append(b.entries[:0], b.entries[i:]...)
	}
}
