package retained

import (
	"container/heap"
	"sync/atomic"
	"time"
)

// Scheduler runs callbacks on the single UI queue.
//
// Callbacks scheduled on one Scheduler never run concurrently with each other.
// Skins and transitions only ever see time through Now, so a virtual clock can
// stand in for the wall clock.
type Scheduler interface {
	// Now returns the scheduler's current time.
	Now() time.Time

	// ScheduleRecurring runs fn after delay and then every period until the
	// returned handle is cancelled. A period of zero schedules fn once.
	ScheduleRecurring(fn func(), delay, period time.Duration) Cancelable
}

// Cancelable is a handle to a scheduled callback.
type Cancelable interface {
	// Cancel prevents any further invocation. Cancelling twice is a no-op.
	Cancel()
}

// timer is one scheduled callback.
type timer struct {
	seq       uint64
	due       time.Time
	period    time.Duration
	fn        func()
	cancelled atomic.Bool
}

func (t *timer) Cancel() {
	t.cancelled.Store(true)
}

// timerQueue orders timers by due time, then by scheduling order so callbacks
// due at the same instant run first-in first-out.
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) { *q = append(*q, x.(*timer)) }

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

// peek returns the earliest live timer, discarding cancelled ones.
func (q *timerQueue) peek() *timer {
	for q.Len() > 0 {
		t := (*q)[0]
		if !t.cancelled.Load() {
			return t
		}
		heap.Pop(q)
	}
	return nil
}

// ============================================================================
// ManualScheduler
// ============================================================================

// ManualScheduler is a Scheduler driven by a virtual clock. Time only moves
// when Advance is called, which makes transition timing deterministic.
type ManualScheduler struct {
	now      time.Time
	queue    timerQueue
	seq      uint64
	running  bool
	executed int
}

// NewManualScheduler creates a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now returns the virtual time.
func (s *ManualScheduler) Now() time.Time {
	return s.now
}

// ScheduleRecurring implements Scheduler.
func (s *ManualScheduler) ScheduleRecurring(fn func(), delay, period time.Duration) Cancelable {
	s.seq++
	t := &timer{seq: s.seq, due: s.now.Add(max(delay, 0)), period: period, fn: fn}
	heap.Push(&s.queue, t)
	return t
}

// Advance moves the clock forward by d, running every callback that falls due
// in order. Each callback observes Now equal to its due time. Calling Advance
// from inside a callback does nothing.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.AdvanceTo(s.now.Add(d))
}

// AdvanceTo moves the clock forward to target. Targets in the past are ignored.
func (s *ManualScheduler) AdvanceTo(target time.Time) {
	if s.running || target.Before(s.now) {
		return
	}
	s.running = true
	defer func() { s.running = false }()

	for {
		t := s.queue.peek()
		if t == nil || t.due.After(target) {
			break
		}
		heap.Pop(&s.queue)
		s.now = t.due
		s.executed++
		t.fn()
		if t.period > 0 && !t.cancelled.Load() {
			t.due = t.due.Add(t.period)
			s.seq++
			t.seq = s.seq
			heap.Push(&s.queue, t)
		}
	}
	s.now = target
}

// Pending returns the number of live scheduled callbacks.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.queue {
		if !t.cancelled.Load() {
			n++
		}
	}
	return n
}

// Executed returns how many callbacks have run so far.
func (s *ManualScheduler) Executed() int {
	return s.executed
}
