// Package counter drives animated numeric readouts: a value that eases from
// zero up to a target over a fixed duration, one frame at a time, and then
// stays there.
package counter

import (
	"sync"
	"time"

	"github.com/tanema/gween/ease"
)

// DefaultDuration is used when no WithDuration option is given.
const DefaultDuration = 2000 * time.Millisecond

// State is the lifecycle stage of a Counter.
type State int

const (
	Idle State = iota
	Animating
	Settled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	case Settled:
		return "settled"
	}
	return "unknown"
}

// Clock is the time source frames are measured against.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// FrameID identifies a pending frame request.
type FrameID uint64

// Scheduler runs callbacks before the next frame is drawn.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// Option configures a Counter.
type Option func(*Counter)

// WithDuration sets the animation length. Zero or negative durations make the
// first frame land directly on the target.
func WithDuration(d time.Duration) Option {
	return func(c *Counter) { c.duration = d }
}

func WithPrefix(prefix string) Option {
	return func(c *Counter) { c.prefix = prefix }
}

func WithSuffix(suffix string) Option {
	return func(c *Counter) { c.suffix = suffix }
}

// WithDecimals sets the number of fractional digits shown. Negative values
// are treated as 0.
func WithDecimals(n int) Option {
	return func(c *Counter) {
		if n < 0 {
			n = 0
		}
		c.decimals = n
	}
}

// StartOnView gates the animation on the first SetVisible(true). When false
// the animation starts as soon as the counter is mounted.
func StartOnView(on bool) Option {
	return func(c *Counter) { c.startOnView = on }
}

func WithClock(clock Clock) Option {
	return func(c *Counter) { c.clock = clock }
}

// WithRender registers fn to receive the formatted text every time the
// displayed value changes. fn is called with the counter locked and must not
// call back into it.
func WithRender(fn func(text string)) Option {
	return func(c *Counter) { c.render = fn }
}

// Counter is a one-shot animated number. It is created idle, starts once its
// activation condition holds and settles exactly on its end value.
type Counter struct {
	mu sync.Mutex

	end         float64
	duration    time.Duration
	prefix      string
	suffix      string
	decimals    int
	startOnView bool

	clock  Clock
	sched  Scheduler
	render func(string)

	current   float64
	startTime time.Time
	state     State
	mounted   bool
	visible   bool
	started   bool
	torn      bool

	pending    FrameID
	hasPending bool
	done       chan struct{}
}

// New returns an idle counter animating towards end on sched.
func New(end float64, sched Scheduler, opts ...Option) *Counter {
	c := &Counter{
		end:         end,
		duration:    DefaultDuration,
		startOnView: true,
		clock:       wallClock{},
		sched:       sched,
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mount attaches the counter to its host, renders the initial value and
// starts the animation unless it is waiting for visibility.
func (c *Counter) Mount() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.torn || c.mounted {
		return
	}
	c.mounted = true
	c.emit()
	c.maybeStart()
}

// SetVisible reports the host's viewport visibility. Only the first true
// matters; later signals never restart the animation.
func (c *Counter) SetVisible(visible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !visible || c.visible {
		return
	}
	c.visible = true
	c.maybeStart()
}

// Unmount detaches the counter. Any pending frame is cancelled and the
// counter ignores every later call.
func (c *Counter) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.torn {
		return
	}
	c.torn = true
	if c.hasPending {
		c.sched.CancelFrame(c.pending)
		c.hasPending = false
	}
}

func (c *Counter) maybeStart() {
	if c.started || c.torn || !c.mounted {
		return
	}
	if c.startOnView && !c.visible {
		return
	}
	c.started = true
	c.state = Animating
	c.startTime = c.clock.Now()
	c.schedule()
}

func (c *Counter) schedule() {
	c.pending = c.sched.RequestFrame(c.frame)
	c.hasPending = true
}

func (c *Counter) frame() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hasPending = false
	if c.torn || c.state != Animating {
		return
	}

	p := c.progress()
	if p < 1 {
		// The eased fraction has float32 precision, so intermediate frames of
		// very large targets move in coarse steps. The settled value is exact.
		c.current = c.end * float64(ease.OutQuart(float32(p), 0, 1, 1))
		c.emit()
		c.schedule()
		return
	}

	c.current = c.end
	c.state = Settled
	c.emit()
	close(c.done)
}

func (c *Counter) progress() float64 {
	if c.duration <= 0 {
		return 1
	}
	p := float64(c.clock.Now().Sub(c.startTime)) / float64(c.duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

func (c *Counter) emit() {
	if c.render != nil {
		c.render(c.text())
	}
}

func (c *Counter) text() string {
	return c.prefix + Fixed(c.current, c.decimals) + c.suffix
}

// Value returns the currently displayed number.
func (c *Counter) Value() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Text returns the currently displayed string.
func (c *Counter) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text()
}

// FinalText is the string the counter will show once settled.
func (c *Counter) FinalText() string {
	return c.prefix + Fixed(c.end, c.decimals) + c.suffix
}

func (c *Counter) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Started reports whether the animation has been activated.
func (c *Counter) Started() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started
}

// Done is closed once the counter settles. It is never closed for a counter
// unmounted before settling.
func (c *Counter) Done() <-chan struct{} {
	return c.done
}
