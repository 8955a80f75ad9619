package engine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T) (*Loop, context.CancelFunc, <-chan error) {
	t.Helper()
	l := NewLoop(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()
	t.Cleanup(cancel)
	return l, cancel, errc
}

func TestLoopRunsFramesAndTimers(t *testing.T) {
	l, _, _ := startLoop(t)

	frames := make(chan time.Time, 1)
	fired := make(chan struct{})
	var canceledRan atomic.Bool

	require.True(t, l.Post(func() {
		l.RequestFrame(func(now time.Time) { frames <- now })
		l.AfterFunc(5*time.Millisecond, func() { close(fired) })
		cancel := l.AfterFunc(time.Millisecond, func() { canceledRan.Store(true) })
		cancel()
	}))

	select {
	case now := <-frames:
		assert.False(t, now.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("frame callback never ran")
	}
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}
	time.Sleep(20 * time.Millisecond)
	assert.False(t, canceledRan.Load())
}

func TestLoopCanceledFrameDoesNotRun(t *testing.T) {
	l, _, _ := startLoop(t)

	var ran atomic.Bool
	done := make(chan struct{})
	l.Post(func() {
		cancel := l.RequestFrame(func(time.Time) { ran.Store(true) })
		cancel()
		l.AfterFunc(20*time.Millisecond, func() { close(done) })
	})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}
	assert.False(t, ran.Load())
}

func TestLoopFramesRequestedDuringTickWait(t *testing.T) {
	l := NewLoop(time.Hour)
	var order []int
	l.RequestFrame(func(time.Time) {
		order = append(order, 1)
		l.RequestFrame(func(time.Time) { order = append(order, 3) })
	})
	l.RequestFrame(func(time.Time) { order = append(order, 2) })

	l.tick(time.Now())
	assert.Equal(t, []int{1, 2}, order)
	l.tick(time.Now())
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestLoopStop(t *testing.T) {
	l, cancel, errc := startLoop(t)
	cancel()
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
	assert.False(t, l.Post(func() {}))
}

func TestEaseInOutCubic(t *testing.T) {
	assert.Equal(t, 0.0, EaseInOutCubic(0))
	assert.Equal(t, 1.0, EaseInOutCubic(1))
	assert.InDelta(t, 0.5, EaseInOutCubic(0.5), 1e-12)
	assert.InDelta(t, 0.0625, EaseInOutCubic(0.25), 1e-12)

	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := EaseInOutCubic(float64(i) / 100)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}
