package defaults

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// ComputeFunc assembles a fresh Context and runs the pipeline. The passed
// context.Context is cancelled when the cycle is superseded, so assembly can
// abandon repository calls early; a compute that ignores cancellation is
// still harmless because its result fails the stale-result guard.
type ComputeFunc func(ctx context.Context) (SmartDefaults, error)

// Controller debounces context changes and guarantees at-most-one live
// result. Every recompute carries a monotonically increasing request id; a
// completed cycle is applied only if its id is still the latest issued,
// otherwise it is discarded silently. Applying is atomic: the whole record
// is replaced in one step, partial field updates are never observable.
type Controller struct {
	compute  ComputeFunc
	debounce time.Duration

	latest atomic.Uint64

	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
	result *SmartDefaults
}

// NewController wires a controller around a compute function. A zero
// debounce makes NoteChange behave like Refresh on the next timer tick.
func NewController(compute ComputeFunc, debounce time.Duration) *Controller {
	return &Controller{compute: compute, debounce: debounce}
}

// NoteChange records that some context-affecting input changed and schedules
// a recompute after the debounce window. A second change arriving inside the
// window resets the window.
func (c *Controller) NoteChange() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, c.Refresh)
}

// Refresh starts a new cycle immediately, superseding any pending debounce
// and any in-flight computation.
func (c *Controller) Refresh() {
	id := c.latest.Add(1)

	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.mu.Unlock()

	go c.run(ctx, id)
}

func (c *Controller) run(ctx context.Context, id uint64) {
	sd, err := c.compute(ctx)
	if err != nil {
		// Failed cycles leave the previous result in place; the engine
		// itself never errors, so this covers cancelled assembly only.
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.latest.Load() {
		return // stale-result guard
	}
	c.result = &sd
}

// Current returns the latest applied result, false if no cycle has
// completed yet.
func (c *Controller) Current() (SmartDefaults, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return SmartDefaults{}, false
	}
	return *c.result, true
}

// Stop cancels any pending debounce and in-flight cycle. The last applied
// result remains readable.
func (c *Controller) Stop() {
	c.latest.Add(1) // invalidate in-flight completions
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
