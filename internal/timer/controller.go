// Package timer implements a start/stop/reset counter driven by a
// recurring tick source.
package timer

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"stopwatch/internal/clock"
	"stopwatch/internal/models"
)

// DefaultInterval is the tick period used when none is configured.
const DefaultInterval = time.Second

// Controller owns one TimerState and at most one active tick source.
// Ticks and public calls are serialized by mu; a tick from a canceled
// registration is discarded by comparing generations.
type Controller struct {
	mu       sync.Mutex
	state    models.TimerState
	sched    clock.Scheduler
	interval time.Duration
	limit    int
	handle   clock.Handle
	gen      uint64
	closed   bool

	// pending holds states in transition order; one goroutine at a
	// time drains it into onChange.
	pending    []models.TimerState
	delivering bool

	onChange func(models.TimerState)
	log      *logrus.Entry
}

type Option func(*Controller)

// WithInterval sets the tick period. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithTickLimit stops the timer on the tick that reaches n. Zero means
// no limit.
func WithTickLimit(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.limit = n
		}
	}
}

func WithLogger(log *logrus.Entry) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithOnChange registers fn to receive every new state, in the order the
// transitions happened. fn runs without the controller lock held and may
// call back into the Controller. A notification can be delivered by
// whichever goroutine is already delivering, after the call that caused
// it has returned.
func WithOnChange(fn func(models.TimerState)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

func NewController(sched clock.Scheduler, opts ...Option) *Controller {
	if sched == nil {
		sched = clock.System
	}

	c := &Controller{
		sched:    sched,
		interval: DefaultInterval,
		log:      discardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins ticking. It does nothing if the timer is already running
// or has been closed.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.closed || c.state.IsRunning {
		c.mu.Unlock()
		return
	}

	c.apply(models.EventStart)
	c.gen++
	gen := c.gen
	c.handle = c.sched.Every(c.interval, func() { c.tick(gen) })
	c.log.WithField("ticks", c.state.ElapsedTicks).Debug("timer started")
	c.flushAndUnlock()
}

// Stop cancels the tick source. No tick is applied after Stop returns.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.stopLocked() {
		c.mu.Unlock()
		return
	}
	c.log.WithField("ticks", c.state.ElapsedTicks).Debug("timer stopped")
	c.flushAndUnlock()
}

// Reset stops the timer and clears the tick count.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.cancelLocked()
	c.state = models.Reduce(c.state, models.EventStop)
	c.apply(models.EventReset)
	c.log.Debug("timer reset")
	c.flushAndUnlock()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() models.TimerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Running() bool {
	return c.Snapshot().IsRunning
}

// Elapsed converts the tick count into wall time at the configured interval.
func (c *Controller) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Duration(c.state.ElapsedTicks) * c.interval
}

func (c *Controller) Interval() time.Duration {
	return c.interval
}

// Close releases the tick source. After Close, Start is a no-op. The
// last state stays readable through Snapshot.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopLocked()
	c.log.Debug("timer closed")
	c.flushAndUnlock()
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || !c.state.IsRunning {
		c.mu.Unlock()
		return
	}
	c.apply(models.EventTick)
	c.log.WithField("ticks", c.state.ElapsedTicks).Trace("tick")

	if c.limit > 0 && c.state.ElapsedTicks >= c.limit {
		c.stopLocked()
		c.log.WithField("ticks", c.state.ElapsedTicks).Debug("tick limit reached")
	}
	c.flushAndUnlock()
}

// apply runs ev through Reduce and queues the result. Caller holds mu.
func (c *Controller) apply(ev models.Event) {
	c.state = models.Reduce(c.state, ev)
	if c.onChange != nil {
		c.pending = append(c.pending, c.state)
	}
}

// stopLocked cancels an active tick source and applies Stop. It reports
// whether anything was running.
func (c *Controller) stopLocked() bool {
	if !c.cancelLocked() {
		return false
	}
	c.apply(models.EventStop)
	return true
}

// cancelLocked reports whether a tick source was active.
func (c *Controller) cancelLocked() bool {
	if c.handle == nil {
		return false
	}
	clock.Cancel(c.handle)
	c.handle = nil
	c.gen++
	return true
}

// flushAndUnlock releases mu and delivers queued states unless another
// goroutine is already delivering them.
func (c *Controller) flushAndUnlock() {
	if c.delivering {
		c.mu.Unlock()
		return
	}
	c.delivering = true

	for len(c.pending) > 0 {
		batch := c.pending
		c.pending = nil
		c.mu.Unlock()

		for _, s := range batch {
			c.onChange(s)
		}

		c.mu.Lock()
	}

	c.delivering = false
	c.mu.Unlock()
}

// FormatElapsed renders ticks*interval as mm:ss. Hours roll into minutes.
func FormatElapsed(ticks int, interval time.Duration) string {
	d := time.Duration(ticks) * interval
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
