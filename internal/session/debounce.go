// Package session runs as-you-type searches: calls are debounced, and results
// of queries that were superseded while running are dropped.
package session

import (
	"sync"
	"time"
)

// Debouncer delays calls to fn until no new call arrived for delay.
// Only the last argument is passed on. A zero delay calls fn synchronously.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	arg     T
	seq     uint64 // detects timers that fired after being replaced
	stopped bool
}

// NewDebouncer creates a Debouncer for fn.
func NewDebouncer[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Call schedules fn(arg), replacing any pending call.
func (d *Debouncer[T]) Call(arg T) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.delay <= 0 {
		d.mu.Unlock()
		d.fn(arg)
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.pending = true
	d.arg = arg
	d.timer = time.AfterFunc(d.delay, func() {
		if a, ok := d.take(seq); ok {
			d.fn(a)
		}
	})
	d.mu.Unlock()
}

// take claims the pending argument if it still belongs to call seq.
func (d *Debouncer[T]) take(seq uint64) (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var zero T
	if d.stopped || !d.pending || d.seq != seq {
		return zero, false
	}
	arg := d.arg
	d.pending = false
	d.arg = zero
	d.timer = nil
	return arg, true
}

// Flush runs a pending call now instead of waiting for the delay.
// It reports whether a call was pending.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	seq := d.seq
	d.mu.Unlock()

	arg, ok := d.take(seq)
	if ok {
		d.fn(arg)
	}
	return ok
}

// Stop cancels any pending call. Later calls are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
