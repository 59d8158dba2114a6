// Package search turns filter keystrokes into debounced query-string updates.
package search

import (
	"sync"
	"time"

	"github.com/Raymond9734/invoices-dashboard/internal/models"
)

// DefaultDelay is the quiet period before a filter term is applied
const DefaultDelay = 300 * time.Millisecond

// Option configures a Controller
type Option func(*Controller)

// WithDelay sets the debounce quiet period
func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithResetPage makes every applied term send the listing back to page 1
func WithResetPage() Option {
	return func(c *Controller) {
		c.resetPage = true
	}
}

// WithScheduler replaces the runtime timer
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		c.scheduler = s
	}
}

// Controller debounces filter input for one listing path. Only the last term
// of a burst is applied, once, after the input has been quiet for the delay.
type Controller struct {
	nav       Navigator
	scheduler Scheduler
	path      string
	delay     time.Duration
	resetPage bool

	mu      sync.Mutex
	pending Timer
	term    string
	seq     uint64
}

// NewController creates a controller that navigates within path
func NewController(nav Navigator, path string, opts ...Option) *Controller {
	c := &Controller{
		nav:       nav,
		scheduler: ClockScheduler(),
		path:      path,
		delay:     DefaultDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Delay returns the configured quiet period
func (c *Controller) Delay() time.Duration {
	return c.delay
}

// HandleInput records term and restarts the quiet period
func (c *Controller) HandleInput(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		c.pending.Stop()
	}

	c.seq++
	seq := c.seq
	c.term = term
	c.pending = c.scheduler.AfterFunc(c.delay, func() { c.fire(seq) })
}

// Flush applies the pending term immediately. It is a no-op when nothing is pending.
func (c *Controller) Flush() {
	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return
	}
	c.pending.Stop()
	term := c.take()
	c.mu.Unlock()

	c.apply(term)
}

// Stop drops the pending term without navigating
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		c.pending.Stop()
		c.take()
	}
}

func (c *Controller) fire(seq uint64) {
	c.mu.Lock()
	// a timer that lost the race with Stop or a newer input
	if seq != c.seq || c.pending == nil {
		c.mu.Unlock()
		return
	}
	term := c.take()
	c.mu.Unlock()

	c.apply(term)
}

// take clears the pending state and returns its term. Caller holds mu.
func (c *Controller) take() string {
	term := c.term
	c.pending = nil
	c.term = ""
	c.seq++
	return term
}

func (c *Controller) apply(term string) {
	params := cloneValues(c.nav.CurrentParams())

	if term != "" {
		params.Set(models.QueryParam, term)
	} else {
		params.Del(models.QueryParam)
	}
	if c.resetPage {
		params.Set(models.PageParam, "1")
	}

	c.nav.Replace(buildURL(c.path, params))
}
