package transition

import (
	"errors"
	"math"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/agiangrant/skins/retained"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newScheduler() *retained.ManualScheduler {
	return retained.NewManualScheduler(epoch)
}

func TestStartTwice(t *testing.T) {
	tr := New(newScheduler(), Options{Duration: 100 * time.Millisecond}, Hooks{})
	if err := tr.Start(nil); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := tr.Start(nil); !errors.Is(err, retained.ErrIllegalState) {
		t.Errorf("second Start() error = %v, want ErrIllegalState", err)
	}
}

func TestStartWithoutScheduler(t *testing.T) {
	tr := New(nil, Options{Duration: time.Second}, Hooks{})
	if err := tr.Start(nil); !errors.Is(err, retained.ErrIllegalState) {
		t.Errorf("Start() error = %v, want ErrIllegalState", err)
	}
	if tr.State() != Idle {
		t.Errorf("State() = %v, want idle", tr.State())
	}
}

func TestDefaults(t *testing.T) {
	tr := New(newScheduler(), Options{Duration: -time.Second}, Hooks{})
	if tr.Rate() != DefaultRate {
		t.Errorf("Rate() = %v, want %v", tr.Rate(), DefaultRate)
	}
	if tr.Duration() != 0 {
		t.Errorf("Duration() = %v, want 0", tr.Duration())
	}
}

func TestStartRunsUpdateSynchronously(t *testing.T) {
	var calls []string
	tr := New(newScheduler(), Options{Duration: 100 * time.Millisecond}, Hooks{
		Start:  func(*Transition) { calls = append(calls, "start") },
		Update: func(tr *Transition) { calls = append(calls, "update@"+tr.Elapsed().String()) },
	})
	if err := tr.Start(nil); err != nil {
		t.Fatal(err)
	}
	want := []string{"start", "update@0s"}
	if len(calls) != len(want) || calls[0] != want[0] || calls[1] != want[1] {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestMonotonicTime(t *testing.T) {
	s := newScheduler()
	var elapsed []time.Duration
	completions := 0
	var completedAt time.Duration
	tr := New(s, Options{Duration: 250 * time.Millisecond, Rate: 30 * time.Millisecond}, Hooks{
		Update: func(tr *Transition) { elapsed = append(elapsed, tr.Elapsed()) },
	})
	if err := tr.Start(func(tr *Transition) {
		completions++
		completedAt = s.Now().Sub(epoch)
	}); err != nil {
		t.Fatal(err)
	}

	s.Advance(time.Second)

	for i := 1; i < len(elapsed); i++ {
		if elapsed[i] < elapsed[i-1] {
			t.Fatalf("elapsed went backwards: %v", elapsed)
		}
	}
	if completions != 1 {
		t.Errorf("completions = %d, want 1", completions)
	}
	// Ticks land every 30ms; 270ms is the first at or past 250ms.
	if completedAt != 270*time.Millisecond {
		t.Errorf("completed at %v, want 270ms", completedAt)
	}
	if last := elapsed[len(elapsed)-1]; last != 250*time.Millisecond {
		t.Errorf("final elapsed = %v, want 250ms", last)
	}
	if tr.State() != Completed {
		t.Errorf("State() = %v, want completed", tr.State())
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0 after completion", s.Pending())
	}
}

func TestZeroDurationCompletesOnFirstTick(t *testing.T) {
	s := newScheduler()
	done := false
	tr := New(s, Options{Rate: 10 * time.Millisecond}, Hooks{})
	if err := tr.Start(func(*Transition) { done = true }); err != nil {
		t.Fatal(err)
	}
	if done {
		t.Fatal("completed synchronously in Start")
	}
	s.Advance(10 * time.Millisecond)
	if !done {
		t.Error("not completed after first tick")
	}
	if p := tr.Percent(); p != 1 {
		t.Errorf("Percent() = %v, want 1", p)
	}
}

func TestRepeatingWraps(t *testing.T) {
	s := newScheduler()
	done := false
	maxElapsed := time.Duration(0)
	tr := New(s, Options{Duration: 100 * time.Millisecond, Rate: 30 * time.Millisecond, Repeating: true}, Hooks{
		Update: func(tr *Transition) { maxElapsed = max(maxElapsed, tr.Elapsed()) },
	})
	if err := tr.Start(func(*Transition) { done = true }); err != nil {
		t.Fatal(err)
	}
	s.Advance(time.Second)
	if done {
		t.Error("repeating transition completed")
	}
	if !tr.IsRunning() {
		t.Error("repeating transition stopped running")
	}
	if maxElapsed >= 100*time.Millisecond {
		t.Errorf("elapsed reached %v, want < 100ms", maxElapsed)
	}
	tr.Stop()
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0 after Stop", s.Pending())
	}
}

func TestReentrantTickIgnored(t *testing.T) {
	s := newScheduler()
	updates := 0
	var tr *Transition
	tr = New(s, Options{Duration: 100 * time.Millisecond, Rate: 10 * time.Millisecond}, Hooks{
		Update: func(*Transition) {
			updates++
			tr.tick()
		},
	})
	if err := tr.Start(nil); err != nil {
		t.Fatal(err)
	}
	// Start's own update is outside a tick, so its nested tick runs once.
	base := updates
	s.Advance(10 * time.Millisecond)
	if got := updates - base; got != 1 {
		t.Errorf("updates during one tick = %d, want 1", got)
	}
}

func TestReverseRequiresRunning(t *testing.T) {
	tr := New(newScheduler(), Options{Duration: time.Second}, Hooks{})
	if err := tr.Reverse(); !errors.Is(err, retained.ErrIllegalState) {
		t.Errorf("Reverse() on idle = %v, want ErrIllegalState", err)
	}
}

func TestPercent(t *testing.T) {
	s := newScheduler()
	tr := New(s, Options{Duration: 200 * time.Millisecond, Rate: 50 * time.Millisecond}, Hooks{})
	if err := tr.Start(nil); err != nil {
		t.Fatal(err)
	}
	s.Advance(50 * time.Millisecond)
	if got := tr.Percent(); math.Abs(got-0.25) > epsilon {
		t.Errorf("Percent() = %v, want 0.25", got)
	}
	if err := tr.Reverse(); err != nil {
		t.Fatal(err)
	}
	// Rebased to 150ms into a reversed run: 25% of the way back.
	if got := tr.Percent(); math.Abs(got-0.25) > epsilon {
		t.Errorf("Percent() after reverse = %v, want 0.25", got)
	}
}

func TestTransitionScenarios(t *testing.T) {
	Convey("Given a manual scheduler", t, func() {
		s := newScheduler()

		Convey("An expand transition of 250ms at 30ms eases out from 0 to 1", func() {
			var scales []float64
			tr := New(s, Options{Duration: 250 * time.Millisecond, Rate: 30 * time.Millisecond}, Hooks{
				Update: func(tr *Transition) { scales = append(scales, tr.Ease(Quadratic{})) },
			})
			So(tr.Start(nil), ShouldBeNil)
			So(scales[0], ShouldAlmostEqual, 0.0, epsilon)

			s.Advance(250 * time.Millisecond)
			So(tr.IsRunning(), ShouldBeTrue)

			s.Advance(20 * time.Millisecond)
			So(tr.State(), ShouldEqual, Completed)
			So(scales[len(scales)-1], ShouldAlmostEqual, 1.0, epsilon)
		})

		Convey("Stop never fires completion", func() {
			completions := 0
			tr := New(s, Options{Duration: 250 * time.Millisecond, Rate: 30 * time.Millisecond}, Hooks{})
			So(tr.Start(func(*Transition) { completions++ }), ShouldBeNil)
			s.Advance(100 * time.Millisecond)
			tr.Stop()
			tr.Stop()
			s.Advance(time.Second)
			So(completions, ShouldEqual, 0)
			So(tr.State(), ShouldEqual, Stopped)

			Convey("and End after Stop does nothing", func() {
				tr.End()
				So(completions, ShouldEqual, 0)
			})
		})

		Convey("End fires completion exactly once, synchronously", func() {
			completions := 0
			var lastElapsed time.Duration
			tr := New(s, Options{Duration: 250 * time.Millisecond, Rate: 30 * time.Millisecond}, Hooks{
				Update: func(tr *Transition) { lastElapsed = tr.Elapsed() },
			})
			So(tr.Start(func(tr *Transition) {
				completions++
				tr.End()
				tr.Stop()
			}), ShouldBeNil)
			s.Advance(60 * time.Millisecond)
			tr.End()
			So(completions, ShouldEqual, 1)
			So(lastElapsed, ShouldEqual, 250*time.Millisecond)

			tr.End()
			s.Advance(time.Second)
			So(completions, ShouldEqual, 1)
		})

		Convey("Reversing a collapse mid-flight is continuous", func() {
			var scale float64
			tr := New(s, Options{Duration: 250 * time.Millisecond, Rate: 25 * time.Millisecond, Reversed: true}, Hooks{
				Update: func(tr *Transition) { scale = tr.Ease(Quadratic{}) },
			})
			So(tr.Start(nil), ShouldBeNil)
			So(scale, ShouldAlmostEqual, 1.0, epsilon)

			s.Advance(100 * time.Millisecond)
			before := scale
			So(before, ShouldAlmostEqual, 0.84, epsilon)

			So(tr.Reverse(), ShouldBeNil)
			So(tr.IsReversed(), ShouldBeFalse)
			So(scale, ShouldAlmostEqual, before, epsilon)

			Convey("and then expands back to 1", func() {
				s.Advance(150 * time.Millisecond)
				So(tr.State(), ShouldEqual, Completed)
				So(scale, ShouldAlmostEqual, 1.0, epsilon)
			})
		})

		Convey("Reverse is continuous for the quartic curve too", func() {
			var scale float64
			tr := New(s, Options{Duration: 200 * time.Millisecond, Rate: 20 * time.Millisecond}, Hooks{
				Update: func(tr *Transition) { scale = tr.Ease(Quartic{}) },
			})
			So(tr.Start(nil), ShouldBeNil)
			s.Advance(60 * time.Millisecond)
			before := scale
			So(tr.Reverse(), ShouldBeNil)
			So(scale, ShouldAlmostEqual, before, epsilon)
		})
	})
}

func TestDecoratorSymmetry(t *testing.T) {
	Convey("Given a widget and a transition that clips it while running", t, func() {
		s := newScheduler()
		w := retained.NewWidget(retained.KindBox)
		clip := retained.NewClipDecorator(w.Bounds())
		tr := New(s, Options{Duration: 100 * time.Millisecond, Rate: 10 * time.Millisecond}, Hooks{
			Start: func(tr *Transition) {
				So(tr.Attach(w, clip), ShouldBeNil)
				tr.Disable(w)
			},
		})
		So(tr.Start(nil), ShouldBeNil)
		So(w.Decorators(), ShouldHaveLength, 1)
		So(w.IsEnabled(), ShouldBeFalse)

		Convey("natural completion detaches it", func() {
			s.Advance(100 * time.Millisecond)
			So(tr.State(), ShouldEqual, Completed)
			So(w.Decorators(), ShouldBeEmpty)
			So(w.IsEnabled(), ShouldBeTrue)
		})

		Convey("Stop detaches it, even when called twice", func() {
			tr.Stop()
			tr.Stop()
			So(w.Decorators(), ShouldBeEmpty)
			So(w.IsEnabled(), ShouldBeTrue)
		})

		Convey("End detaches it", func() {
			tr.End()
			So(w.Decorators(), ShouldBeEmpty)
			So(w.IsEnabled(), ShouldBeTrue)
		})

		Convey("a decorator the caller added separately survives", func() {
			other := retained.NewFadeDecorator(0.5)
			So(w.AddDecorator(other), ShouldBeNil)
			tr.End()
			So(w.Decorators(), ShouldResemble, []retained.Decorator{other})
		})
	})
}

func TestAttachRequiresRunning(t *testing.T) {
	tr := New(newScheduler(), Options{Duration: time.Second}, Hooks{})
	w := retained.NewWidget(retained.KindBox)
	if err := tr.Attach(w, retained.NewFadeDecorator(1)); !errors.Is(err, retained.ErrIllegalState) {
		t.Errorf("Attach() on idle = %v, want ErrIllegalState", err)
	}
	if len(w.Decorators()) != 0 {
		t.Error("decorator attached by idle transition")
	}
}

func TestDisableLeavesDisabledWidgetAlone(t *testing.T) {
	w := retained.NewWidget(retained.KindBox)
	w.SetEnabled(false)
	tr := New(newScheduler(), Options{Duration: time.Second}, Hooks{
		Start: func(tr *Transition) { tr.Disable(w) },
	})
	if err := tr.Start(nil); err != nil {
		t.Fatal(err)
	}
	tr.End()
	if w.IsEnabled() {
		t.Error("End() enabled a widget that was disabled before the transition")
	}
}

func TestPanicReleasesDecorators(t *testing.T) {
	s := newScheduler()
	w := retained.NewWidget(retained.KindBox)
	finished := 0
	completions := 0
	tr := New(s, Options{Duration: 100 * time.Millisecond, Rate: 10 * time.Millisecond}, Hooks{
		Start: func(tr *Transition) {
			if err := tr.Attach(w, retained.NewTranslationDecorator(0, -10, true)); err != nil {
				t.Fatal(err)
			}
		},
		Update: func(tr *Transition) {
			if tr.Elapsed() > 0 {
				panic("update failed")
			}
		},
		Finish: func(*Transition) { finished++ },
	})
	if err := tr.Start(func(*Transition) { completions++ }); err != nil {
		t.Fatal(err)
	}

	func() {
		defer func() {
			if r := recover(); r != "update failed" {
				t.Errorf("recovered %v, want the update panic", r)
			}
		}()
		s.Advance(10 * time.Millisecond)
	}()

	if len(w.Decorators()) != 0 {
		t.Error("decorator still attached after panicking update")
	}
	if tr.State() != Stopped {
		t.Errorf("State() = %v, want stopped", tr.State())
	}
	if finished != 1 || completions != 0 {
		t.Errorf("finished = %d, completions = %d; want 1, 0", finished, completions)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{Idle, "idle"},
		{Running, "running"},
		{Completed, "completed"},
		{Stopped, "stopped"},
		{State(9), "state(9)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
