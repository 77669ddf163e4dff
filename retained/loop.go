package retained

import (
	"container/heap"
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// LoopConfig configures the real-time UI loop.
type LoopConfig struct {
	// TargetFPS caps how often OnFrame runs while repaints are pending (default: 60).
	TargetFPS int

	// QueueSize is the buffer size of the posted-callback queue (default: 256).
	QueueSize int
}

// DefaultLoopConfig returns sensible defaults.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		TargetFPS: 60,
		QueueSize: 256,
	}
}

// Loop is a wall-clock Scheduler that runs every callback on the goroutine
// that called Run. Input handlers are delivered with Post so they interleave
// with transition ticks on the same queue and never run concurrently with them.
type Loop struct {
	config LoopConfig

	mu     sync.Mutex
	timers timerQueue
	seq    uint64

	posted chan func()
	wake   chan struct{}

	onFrame  func(now time.Time)
	frameDue atomic.Bool

	running atomic.Bool

	// Stats
	callbacks atomic.Uint64
	frames    atomic.Uint64
}

// LoopStats contains loop counters.
type LoopStats struct {
	Callbacks uint64
	Frames    uint64
}

// NewLoop creates a loop with the specified configuration.
func NewLoop(config LoopConfig) *Loop {
	if config.TargetFPS < 1 {
		config.TargetFPS = 60
	}
	if config.QueueSize < 1 {
		config.QueueSize = 256
	}
	return &Loop{
		config: config,
		posted: make(chan func(), config.QueueSize),
		wake:   make(chan struct{}, 1),
	}
}

// Now returns the wall-clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// ScheduleRecurring implements Scheduler. It is safe to call from any goroutine.
func (l *Loop) ScheduleRecurring(fn func(), delay, period time.Duration) Cancelable {
	l.mu.Lock()
	l.seq++
	t := &timer{seq: l.seq, due: time.Now().Add(max(delay, 0)), period: period, fn: fn}
	heap.Push(&l.timers, t)
	l.mu.Unlock()
	l.signal()
	return t
}

// Post queues fn to run on the loop goroutine. It blocks when the queue is full.
func (l *Loop) Post(fn func()) {
	l.posted <- fn
}

// OnFrame sets the callback run after a batch of callbacks when RequestFrame
// has been called since the previous frame. Frames are paced to TargetFPS.
func (l *Loop) OnFrame(fn func(now time.Time)) {
	l.onFrame = fn
}

// RequestFrame marks that a repaint is needed.
func (l *Loop) RequestFrame() {
	l.frameDue.Store(true)
	l.signal()
}

// IsRunning returns whether Run is active.
func (l *Loop) IsRunning() bool {
	return l.running.Load()
}

// Stats returns loop statistics.
func (l *Loop) Stats() LoopStats {
	return LoopStats{Callbacks: l.callbacks.Load(), Frames: l.frames.Load()}
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run processes posted callbacks and timers until ctx is done. It returns
// ctx.Err() on shutdown and ErrIllegalState if the loop is already running.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrIllegalState
	}
	defer l.running.Store(false)

	frameTime := time.Second / time.Duration(l.config.TargetFPS)
	var lastFrame time.Time

	idle := time.NewTimer(time.Hour)
	defer idle.Stop()

	for {
		l.runDueTimers(time.Now())

		if l.onFrame != nil && l.frameDue.Load() {
			if now := time.Now(); now.Sub(lastFrame) >= frameTime {
				l.frameDue.Store(false)
				lastFrame = now
				l.frames.Add(1)
				l.onFrame(now)
			}
		}

		wait := l.nextWait(frameTime, lastFrame)
		if !idle.Stop() {
			select {
			case <-idle.C:
			default:
			}
		}
		idle.Reset(wait)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.posted:
			l.callbacks.Add(1)
			fn()
		case <-l.wake:
		case <-idle.C:
		}
	}
}

// runDueTimers runs every timer due at or before now, outside the lock.
func (l *Loop) runDueTimers(now time.Time) {
	for {
		l.mu.Lock()
		t := l.timers.peek()
		if t == nil || t.due.After(now) {
			l.mu.Unlock()
			return
		}
		heap.Pop(&l.timers)
		l.mu.Unlock()

		l.callbacks.Add(1)
		t.fn()

		if t.period > 0 && !t.cancelled.Load() {
			l.mu.Lock()
			t.due = t.due.Add(t.period)
			// A callback slower than its period must not build a backlog.
			if t.due.Before(now) {
				t.due = now.Add(t.period)
			}
			l.seq++
			t.seq = l.seq
			heap.Push(&l.timers, t)
			l.mu.Unlock()
		}
	}
}

// nextWait returns how long Run may sleep before the next timer or frame.
func (l *Loop) nextWait(frameTime time.Duration, lastFrame time.Time) time.Duration {
	wait := time.Hour
	l.mu.Lock()
	if t := l.timers.peek(); t != nil {
		wait = time.Until(t.due)
	}
	l.mu.Unlock()
	if l.onFrame != nil && l.frameDue.Load() {
		wait = min(wait, frameTime-time.Since(lastFrame))
	}
	return max(wait, 0)
}
