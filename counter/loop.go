package counter

import (
	"context"
	"sort"
	"sync"
	"time"
)

// DefaultFrameRate is the tick rate of a Loop built with NewLoop(0).
const DefaultFrameRate = 60

// Loop is a ticker-driven Scheduler. Callbacks requested before a tick run on
// that tick, in request order, on the goroutine executing Run. Callbacks
// requested while a tick is running wait for the next one.
type Loop struct {
	interval time.Duration

	mu      sync.Mutex
	nextID  FrameID
	pending map[FrameID]func()
}

// NewLoop returns a loop ticking fps times per second.
func NewLoop(fps int) *Loop {
	if fps <= 0 {
		fps = DefaultFrameRate
	}
	return &Loop{
		interval: time.Second / time.Duration(fps),
		pending:  make(map[FrameID]func()),
	}
}

func (l *Loop) RequestFrame(fn func()) FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	l.pending[l.nextID] = fn
	return l.nextID
}

func (l *Loop) CancelFrame(id FrameID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.pending, id)
}

// Pending returns the number of callbacks waiting for a tick.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Run ticks until ctx is done. Callbacks still pending at that point are
// dropped.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.mu.Lock()
			clear(l.pending)
			l.mu.Unlock()
			return ctx.Err()
		case <-ticker.C:
			l.Tick()
		}
	}
}

// Tick runs one frame's worth of callbacks. Run calls it on every tick; it
// is exported so callers with their own frame source can drive a Loop.
func (l *Loop) Tick() {
	l.mu.Lock()
	ids := make([]FrameID, 0, len(l.pending))
	for id := range l.pending {
		ids = append(ids, id)
	}
	l.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		// Re-check each one: an earlier callback may have cancelled it.
		l.mu.Lock()
		fn, ok := l.pending[id]
		delete(l.pending, id)
		l.mu.Unlock()

		if ok {
			fn()
		}
	}
}

// Animate runs a counter towards end on its own Loop, starting immediately,
// and blocks until it settles or ctx is done. render receives every frame.
func Animate(ctx context.Context, end float64, render func(text string), opts ...Option) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := NewLoop(DefaultFrameRate)
	go loop.Run(ctx)

	opts = append(opts, StartOnView(false), WithRender(render))
	c := New(end, loop, opts...)
	c.Mount()
	defer c.Unmount()

	select {
	case <-c.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
