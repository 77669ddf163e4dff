package transition

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/agiangrant/skins/internal/log"
	"github.com/agiangrant/skins/retained"
)

// DefaultRate is the tick period used when Options.Rate is not positive.
const DefaultRate = 30 * time.Millisecond

// State is a transition's lifecycle state.
type State uint8

const (
	Idle State = iota
	Running
	Completed
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Options configures a transition.
type Options struct {
	// Name labels the transition in logs.
	Name string

	// Duration is the length of one run. Zero completes on the first tick.
	Duration time.Duration

	// Rate is the tick period (default: DefaultRate).
	Rate time.Duration

	// Repeating transitions wrap around instead of completing.
	Repeating bool

	// Reversed runs the transition from its end state to its start state.
	Reversed bool

	// Log receives lifecycle events at debug level. Nil discards them.
	Log logrus.FieldLogger
}

// Hooks are the skin-specific parts of a transition.
type Hooks struct {
	// Start runs once when the transition starts, before the first Update.
	// Decorators attached here with Attach are detached automatically.
	Start func(t *Transition)

	// Update recomputes interpolated state and repaints. It runs once
	// synchronously from Start, on every tick, and once more from End.
	Update func(t *Transition)

	// Finish runs exactly once when the transition completes or is stopped,
	// after attached resources have been released.
	Finish func(t *Transition)
}

// Transition is a time-bounded, tick-driven animation state machine.
//
// All methods must be called on the scheduler's queue. Stop and End are safe
// to call from the transition's own hooks and completion callback.
type Transition struct {
	name      string
	sched     retained.Scheduler
	duration  time.Duration
	rate      time.Duration
	repeating bool
	reversed  bool
	hooks     Hooks
	log       logrus.FieldLogger

	state       State
	startTime   time.Time
	currentTime time.Time
	handle      retained.Cancelable
	onComplete  func(*Transition)

	releases []func()
	finished bool
	ticking  bool
}

// New creates an idle transition that will tick on sched.
func New(sched retained.Scheduler, opts Options, hooks Hooks) *Transition {
	if opts.Rate <= 0 {
		opts.Rate = DefaultRate
	}
	if opts.Duration < 0 {
		opts.Duration = 0
	}
	return &Transition{
		name:      opts.Name,
		sched:     sched,
		duration:  opts.Duration,
		rate:      opts.Rate,
		repeating: opts.Repeating,
		reversed:  opts.Reversed,
		hooks:     hooks,
		log:       log.OrDiscard(opts.Log).WithField("transition", opts.Name),
	}
}

// Name returns the transition's label.
func (t *Transition) Name() string { return t.name }

// Duration returns the length of one run.
func (t *Transition) Duration() time.Duration { return t.duration }

// Rate returns the tick period.
func (t *Transition) Rate() time.Duration { return t.rate }

// IsRepeating reports whether the transition wraps around.
func (t *Transition) IsRepeating() bool { return t.repeating }

// IsReversed reports the direction flag.
func (t *Transition) IsReversed() bool { return t.reversed }

// State returns the lifecycle state.
func (t *Transition) State() State { return t.state }

// IsRunning reports whether the transition is ticking.
func (t *Transition) IsRunning() bool { return t.state == Running }

// Elapsed returns the time into the current run, clamped to [0, Duration].
func (t *Transition) Elapsed() time.Duration {
	return retained.Clamp(t.currentTime.Sub(t.startTime), 0, t.duration)
}

// Percent returns the fraction of the run completed, in the direction of
// travel: it goes from 1 to 0 when reversed.
func (t *Transition) Percent() float64 {
	p := 1.0
	if t.duration > 0 {
		p = float64(t.Elapsed()) / float64(t.duration)
	}
	if t.reversed {
		p = 1 - p
	}
	return p
}

// Ease returns the eased scale in [0, 1] for the current elapsed time. Forward
// runs ease out from 0 to 1 and reversed runs ease in from 1 to 0, so the
// value is continuous across Reverse.
func (t *Transition) Ease(e Easing) float64 {
	elapsed := float64(t.Elapsed())
	duration := float64(t.duration)
	if t.reversed {
		return e.EaseIn(elapsed, 1, -1, duration)
	}
	return e.EaseOut(elapsed, 0, 1, duration)
}

// Start begins ticking. onComplete runs once when the transition completes
// naturally or via End; it may be nil. Starting a transition that is not idle
// returns ErrIllegalState.
func (t *Transition) Start(onComplete func(*Transition)) error {
	if t.state != Idle {
		return fmt.Errorf("%w: transition %q is %s", retained.ErrIllegalState, t.name, t.state)
	}
	if t.sched == nil {
		return fmt.Errorf("%w: transition %q has no scheduler", retained.ErrIllegalState, t.name)
	}

	now := t.sched.Now()
	t.startTime = now
	t.currentTime = now
	t.onComplete = onComplete
	t.state = Running
	t.handle = t.sched.ScheduleRecurring(t.tick, t.rate, t.rate)

	t.log.WithFields(logrus.Fields{
		"duration": t.duration,
		"rate":     t.rate,
		"reversed": t.reversed,
	}).Debug("transition started")

	t.guard(func() {
		if t.hooks.Start != nil {
			t.hooks.Start(t)
		}
		t.update()
	})
	return nil
}

// Stop cancels a running transition without firing its completion callback.
// Attached decorators are detached. Stopping a transition that is not running
// does nothing.
func (t *Transition) Stop() {
	if t.state != Running {
		return
	}
	t.handle.Cancel()
	t.state = Stopped
	t.log.WithField("elapsed", t.Elapsed()).Debug("transition stopped")
	t.finish()
}

// End jumps a running transition to its final state: one last Update at
// t=Duration, then completion, synchronously. Ending a transition that is not
// running does nothing.
func (t *Transition) End() {
	if t.state != Running {
		return
	}
	t.currentTime = t.startTime.Add(t.duration)
	t.guard(t.update)
	t.complete()
}

// Reverse flips the direction of a running transition. Elapsed time is
// rebased so the interpolated value does not jump.
func (t *Transition) Reverse() error {
	if t.state != Running {
		return fmt.Errorf("%w: cannot reverse %s transition %q", retained.ErrIllegalState, t.state, t.name)
	}
	now := t.sched.Now()
	elapsed := retained.Clamp(now.Sub(t.startTime), 0, t.duration)
	t.startTime = now.Add(-(t.duration - elapsed))
	t.currentTime = now
	t.reversed = !t.reversed
	t.log.WithField("reversed", t.reversed).Debug("transition reversed")
	t.guard(t.update)
	return nil
}

// Attach adds d to w for the rest of the run. It is detached on every exit
// path: completion, Stop and End.
func (t *Transition) Attach(w *retained.Widget, d retained.Decorator) error {
	if t.state != Running {
		return fmt.Errorf("%w: attach on %s transition %q", retained.ErrIllegalState, t.state, t.name)
	}
	if w == nil {
		return fmt.Errorf("%w: nil widget", retained.ErrInvalidArgument)
	}
	if err := w.AddDecorator(d); err != nil {
		return err
	}
	t.releases = append(t.releases, func() { w.RemoveDecorator(d) })
	return nil
}

// Disable disables w for the rest of the run and re-enables it when the
// transition finishes. Widgets that are already disabled are left alone.
func (t *Transition) Disable(w *retained.Widget) {
	if t.state != Running || w == nil || !w.IsEnabled() {
		return
	}
	w.SetEnabled(false)
	t.releases = append(t.releases, func() { w.SetEnabled(true) })
}

func (t *Transition) tick() {
	if t.state != Running || t.ticking {
		return
	}
	t.ticking = true
	defer func() { t.ticking = false }()

	t.currentTime = t.sched.Now()
	end := t.startTime.Add(t.duration)
	done := false
	if !t.currentTime.Before(end) {
		if t.repeating && t.duration > 0 {
			for !t.currentTime.Before(t.startTime.Add(t.duration)) {
				t.startTime = t.startTime.Add(t.duration)
			}
		} else if t.repeating {
			t.startTime = t.currentTime
		} else {
			t.currentTime = end
			done = true
		}
	}

	t.guard(t.update)
	if done {
		t.complete()
	}
}

func (t *Transition) update() {
	if t.hooks.Update != nil {
		t.hooks.Update(t)
	}
}

// complete moves a running transition to Completed and fires the callback.
func (t *Transition) complete() {
	if t.state != Running {
		return
	}
	t.handle.Cancel()
	t.state = Completed
	t.log.Debug("transition completed")
	t.finish()
	if t.onComplete != nil {
		t.onComplete(t)
	}
}

// finish releases attached resources in reverse order and runs the Finish
// hook. It runs at most once.
func (t *Transition) finish() {
	if t.finished {
		return
	}
	t.finished = true
	for i := len(t.releases) - 1; i >= 0; i-- {
		t.releases[i]()
	}
	t.releases = nil
	if t.hooks.Finish != nil {
		t.hooks.Finish(t)
	}
}

// guard runs fn and, if it panics, stops the transition so attached
// decorators are released before the panic propagates.
func (t *Transition) guard(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			t.log.WithField("panic", r).Error("transition hook panicked")
			if t.state == Running {
				t.handle.Cancel()
				t.state = Stopped
			}
			t.finish()
			panic(r)
		}
	}()
	fn()
}
