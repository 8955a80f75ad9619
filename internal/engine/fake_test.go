package engine

import (
	"sort"
	"sync"
	"time"
)

// manualScheduler is a Scheduler driven entirely by the test.
type manualScheduler struct {
	now    time.Time
	nextID int
	frames map[int]func(time.Time)
	timers map[int]manualTimer
}

type manualTimer struct {
	at time.Time
	fn func()
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{
		now:    time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC),
		frames: make(map[int]func(time.Time)),
		timers: make(map[int]manualTimer),
	}
}

func (s *manualScheduler) Now() time.Time { return s.now }

func (s *manualScheduler) RequestFrame(fn func(time.Time)) func() {
	s.nextID++
	id := s.nextID
	s.frames[id] = fn
	return func() { delete(s.frames, id) }
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) func() {
	s.nextID++
	id := s.nextID
	s.timers[id] = manualTimer{at: s.now.Add(d), fn: fn}
	return func() { delete(s.timers, id) }
}

// advance moves the clock and fires every timer that came due.
func (s *manualScheduler) advance(d time.Duration) {
	s.now = s.now.Add(d)
	for {
		id, ok := s.nextDue()
		if !ok {
			return
		}
		t := s.timers[id]
		delete(s.timers, id)
		t.fn()
	}
}

func (s *manualScheduler) nextDue() (int, bool) {
	best, found := 0, false
	for id, t := range s.timers {
		if t.at.After(s.now) {
			continue
		}
		if !found || t.at.Before(s.timers[best].at) || (t.at.Equal(s.timers[best].at) && id < best) {
			best, found = id, true
		}
	}
	return best, found
}

// frame advances by dt and runs the frames pending at that moment.
func (s *manualScheduler) frame(dt time.Duration) {
	s.advance(dt)
	ids := make([]int, 0, len(s.frames))
	for id := range s.frames {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fn, ok := s.frames[id]
		if !ok {
			continue
		}
		delete(s.frames, id)
		fn(s.now)
	}
}

func (s *manualScheduler) pending() int { return len(s.frames) + len(s.timers) }

type countingMetrics struct {
	mu        sync.Mutex
	started   int
	completed int
	canceled  int
	frames    int
	skipped   []string
	dropped   []string
}

func (m *countingMetrics) AnimationStarted()   { m.mu.Lock(); m.started++; m.mu.Unlock() }
func (m *countingMetrics) AnimationCompleted() { m.mu.Lock(); m.completed++; m.mu.Unlock() }
func (m *countingMetrics) AnimationCanceled()  { m.mu.Lock(); m.canceled++; m.mu.Unlock() }
func (m *countingMetrics) FrameObserve(time.Duration) {
	m.mu.Lock()
	m.frames++
	m.mu.Unlock()
}
func (m *countingMetrics) AnimationSkipped(reason string) {
	m.mu.Lock()
	m.skipped = append(m.skipped, reason)
	m.mu.Unlock()
}
func (m *countingMetrics) SegmentDropped(reason string) {
	m.mu.Lock()
	m.dropped = append(m.dropped, reason)
	m.mu.Unlock()
}
