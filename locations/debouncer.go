package locations

import (
	"sync"
	"time"
)

// Debouncer delivers the last value passed to Trigger once no further
// Trigger has happened for the quiet period. It backs search-as-you-type on
// the location pickers.
type Debouncer[T any] struct {
	quiet time.Duration
	fn    func(T)

	lock    sync.Mutex
	timer   *time.Timer
	pending T
	gen     uint64 // bumped on every Trigger so a stale timer cannot fire
	stopped bool
}

// NewDebouncer creates a Debouncer that calls fn on its own goroutine.
func NewDebouncer[T any](quiet time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{quiet: quiet, fn: fn}
}

// Trigger records value and restarts the quiet period.
func (d *Debouncer[T]) Trigger(value T) {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.stopped {
		return
	}
	d.pending = value
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
	}
	gen := d.gen
	d.timer = time.AfterFunc(d.quiet, func() { d.fire(gen) })
}

// Stop drops any pending value. Later Triggers are ignored.
func (d *Debouncer[T]) Stop() {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.lock.Lock()
	if d.stopped || gen != d.gen {
		d.lock.Unlock()
		return
	}
	value := d.pending
	d.timer = nil
	d.lock.Unlock()

	d.fn(value)
}
