package engine

import (
	"context"
	"sort"
	"time"
)

// Scheduler supplies the frame clock and fixed-delay timers. Callbacks run
// one at a time; a canceled callback never runs.
type Scheduler interface {
	Now() time.Time
	RequestFrame(fn func(now time.Time)) (cancel func())
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// Loop is a single-goroutine Scheduler. Posted events, due timers and frame
// callbacks all execute on the goroutine running Run, so state touched only
// from callbacks needs no locking. RequestFrame, AfterFunc and the cancel
// funcs they return must be called from that goroutine; use Post from
// anywhere else.
type Loop struct {
	frameInterval time.Duration
	events        chan func()
	done          chan struct{}

	nextID uint64
	frames map[uint64]func(time.Time)
}

func NewLoop(frameInterval time.Duration) *Loop {
	if frameInterval <= 0 {
		frameInterval = 16 * time.Millisecond
	}
	return &Loop{
		frameInterval: frameInterval,
		events:        make(chan func(), 256),
		done:          make(chan struct{}),
		frames:        make(map[uint64]func(time.Time)),
	}
}

func (l *Loop) Now() time.Time { return time.Now() }

func (l *Loop) RequestFrame(fn func(now time.Time)) func() {
	l.nextID++
	id := l.nextID
	l.frames[id] = fn
	return func() { delete(l.frames, id) }
}

func (l *Loop) AfterFunc(d time.Duration, fn func()) func() {
	canceled := false
	t := time.AfterFunc(d, func() {
		l.Post(func() {
			if !canceled {
				fn()
			}
		})
	})
	return func() {
		canceled = true
		t.Stop()
	}
}

// Post queues fn to run on the loop goroutine. It reports false once the
// loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.events <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Run processes events and frames until ctx is canceled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	ticker := time.NewTicker(l.frameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.events:
			fn()
		case <-ticker.C:
			l.tick(l.Now())
		}
	}
}

// tick runs the frame callbacks that were pending when it started. Frames
// requested during the tick wait for the next one.
func (l *Loop) tick(now time.Time) {
	if len(l.frames) == 0 {
		return
	}
	ids := make([]uint64, 0, len(l.frames))
	for id := range l.frames {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fn, ok := l.frames[id]
		if !ok {
			continue
		}
		delete(l.frames, id)
		fn(now)
	}
}
