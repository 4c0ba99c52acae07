package testutil

import (
	"sort"
	"sync"
	"time"
)

// FakeScheduler runs AfterFunc callbacks only when the test advances time.
type FakeScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	nextID  int
	pending []fakeTimer
}

type fakeTimer struct {
	id  int
	due time.Duration
	fn  func()
}

// NewFakeScheduler returns a scheduler at time zero with nothing pending.
func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{}
}

// AfterFunc registers fn to run once the fake time passes d. The returned
// stop function reports whether it prevented the callback from running.
func (s *FakeScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.pending = append(s.pending, fakeTimer{id: id, due: s.now + d, fn: fn})
	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, timer := range s.pending {
			if timer.id == id {
				s.pending = append(s.pending[:i], s.pending[i+1:]...)
				return true
			}
		}
		return false
	}
}

// Advance moves the fake time forward and runs every callback that became due,
// in due order. Callbacks run without the scheduler lock held.
func (s *FakeScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	s.now += d
	var due []fakeTimer
	kept := s.pending[:0]
	for _, timer := range s.pending {
		if timer.due <= s.now {
			due = append(due, timer)
			continue
		}
		kept = append(kept, timer)
	}
	s.pending = kept
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
	for _, timer := range due {
		timer.fn()
	}
	return len(due)
}

// Pending reports how many callbacks are still scheduled.
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
