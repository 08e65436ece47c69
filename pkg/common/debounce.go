package common

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period used for search input.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer runs only the last function passed to Debounce, after the quiet
// period elapsed without another call.
type Debouncer struct {
	mu        sync.Mutex
	scheduler Scheduler
	duration  time.Duration
	pending   Handle
	gen       uint64
	stopped   bool
}

func NewDebouncer(duration time.Duration, scheduler Scheduler) *Debouncer {
	if scheduler == nil {
		scheduler = TimerScheduler{}
	}
	return &Debouncer{
		scheduler: scheduler,
		duration:  duration,
	}
}

// Debounce replaces any pending call with fn. Calls after Stop are ignored.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.pending != nil {
		d.pending.Cancel()
	}
	d.gen++
	gen := d.gen
	d.pending = d.scheduler.Schedule(d.duration, func() {
		d.mu.Lock()
		// a timer that already fired can lose the race against a newer call
		if d.stopped || gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.pending = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending call if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

func (d *Debouncer) cancelLocked() {
	if d.pending != nil {
		d.pending.Cancel()
		d.pending = nil
	}
	d.gen++
}

// Stop cancels the pending call and disables the debouncer for good.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}
