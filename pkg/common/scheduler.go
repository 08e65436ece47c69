package common

import (
	"sort"
	"sync"
	"time"
)

// Handle is a scheduled task that can be cancelled before it runs.
type Handle interface {
	// Cancel stops the task, returns false if it already ran or was cancelled.
	Cancel() bool
}

// Scheduler runs delayed work. It is the only source of delayed work in a session.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Handle
}

// TimerScheduler schedules on the runtime timers.
type TimerScheduler struct{}

type timerHandle struct {
	timer *time.Timer
}

func (h *timerHandle) Cancel() bool {
	return h.timer.Stop()
}

func (TimerScheduler) Schedule(delay time.Duration, fn func()) Handle {
	return &timerHandle{timer: time.AfterFunc(delay, fn)}
}

// ManualScheduler is a deterministic scheduler driven by Advance, used in tests
// and anywhere time should not move on its own.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	owner     *ManualScheduler
	due       time.Duration
	seq       int
	fn        func()
	done      bool
	cancelled bool
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Schedule(delay time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTask{owner: s, due: s.now + delay, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

func (t *manualTask) Cancel() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.done || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

// Advance moves the clock forward and runs every task that became due, in due order.
// Tasks run without the scheduler lock held so they may schedule new work.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()
	for {
		s.mu.Lock()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.due
		next.done = true
		s.mu.Unlock()
		next.fn()
	}
}

func (s *ManualScheduler) nextDue(target time.Duration) *manualTask {
	pending := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.done && !t.cancelled {
			pending = append(pending, t)
		}
	}
	s.tasks = pending
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due == s.tasks[j].due {
			return s.tasks[i].seq < s.tasks[j].seq
		}
		return s.tasks[i].due < s.tasks[j].due
	})
	if len(s.tasks) == 0 || s.tasks[0].due > target {
		return nil
	}
	return s.tasks[0]
}

// Pending returns the number of tasks that have neither run nor been cancelled.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.done && !t.cancelled {
			n++
		}
	}
	return n
}
