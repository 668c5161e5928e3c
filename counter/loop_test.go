package counter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopTickRunsInRequestOrder(t *testing.T) {
	l := NewLoop(0)
	assert.Equal(t, time.Second/DefaultFrameRate, l.interval)

	var got []int
	for i := 1; i <= 5; i++ {
		l.RequestFrame(func() { got = append(got, i) })
	}
	l.Tick()
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
	assert.Zero(t, l.Pending())
}

func TestLoopRequestDuringTickWaits(t *testing.T) {
	l := NewLoop(30)

	ran := 0
	var again func()
	again = func() {
		ran++
		l.RequestFrame(again)
	}
	l.RequestFrame(again)

	l.Tick()
	assert.Equal(t, 1, ran)
	assert.Equal(t, 1, l.Pending())

	l.Tick()
	assert.Equal(t, 2, ran)
}

func TestLoopCancel(t *testing.T) {
	l := NewLoop(30)

	var got []string
	var second FrameID
	l.RequestFrame(func() {
		got = append(got, "first")
		l.CancelFrame(second)
	})
	second = l.RequestFrame(func() { got = append(got, "second") })
	cancelled := l.RequestFrame(func() { got = append(got, "third") })
	l.CancelFrame(cancelled)

	l.Tick()
	assert.Equal(t, []string{"first"}, got)
	assert.Zero(t, l.Pending())
}

func TestLoopRun(t *testing.T) {
	l := NewLoop(200)
	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	var runErr error
	go func() {
		defer wg.Done()
		runErr = l.Run(ctx)
	}()

	fired := make(chan struct{})
	l.RequestFrame(func() { close(fired) })
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("frame never ran")
	}

	l.RequestFrame(func() {})
	cancel()
	wg.Wait()
	require.ErrorIs(t, runErr, context.Canceled)
}

func TestLoopDrivesCounter(t *testing.T) {
	l := NewLoop(120)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	c := New(64, l, WithDuration(80*time.Millisecond), StartOnView(false))
	c.Mount()

	select {
	case <-c.Done():
	case <-time.After(3 * time.Second):
		t.Fatal("counter did not settle")
	}
	assert.Equal(t, 64.0, c.Value())
	assert.Equal(t, "64", c.Text())
}

func TestLoopUnmountMidAnimation(t *testing.T) {
	l := NewLoop(120)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	c := New(64, l, WithDuration(time.Hour), StartOnView(false))
	c.Mount()
	time.Sleep(50 * time.Millisecond)
	c.Unmount()

	v := c.Value()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, v, c.Value())
	assert.Zero(t, l.Pending())
}
