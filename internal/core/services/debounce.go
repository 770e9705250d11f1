package services

import (
	"context"
	"sync"
	"time"
)

// Debouncer tracks the quiet window before a search and cancels the
// previous call when a new one begins. At most one call is current at any
// time; the host owns the timer.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	cancel context.CancelFunc
	seq    uint64
}

// NewDebouncer creates a debouncer with the given quiet window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// SetWindow changes the quiet window for future calls.
func (d *Debouncer) SetWindow(window time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.window = window
}

// Window returns the quiet window.
func (d *Debouncer) Window() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.window
}

// Begin cancels any running call and returns the context and token for a
// new one. Hosts wait Window, check Current, then run the call with ctx.
func (d *Debouncer) Begin(parent context.Context) (context.Context, uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.seq++
	ctx, cancel := context.WithCancel(parent)
	d.cancel = cancel
	return ctx, d.seq
}

// Current reports whether token belongs to the most recent Begin and has
// not been stopped. Results carrying a stale token must be dropped.
func (d *Debouncer) Current(token uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return token == d.seq && d.cancel != nil
}

// Stop cancels the current call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

func (d *Debouncer) stopLocked() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
