package retained

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManualScheduler(t *testing.T) {
	Convey("Given a manual scheduler", t, func() {
		s := NewManualScheduler(epoch)
		var log []string
		record := func(name string) func() {
			return func() { log = append(log, name+"@"+s.Now().Sub(epoch).String()) }
		}

		Convey("Callbacks run in due order and see their due time", func() {
			s.ScheduleRecurring(record("b"), 20*time.Millisecond, 0)
			s.ScheduleRecurring(record("a"), 10*time.Millisecond, 0)
			s.ScheduleRecurring(record("c"), 20*time.Millisecond, 0)
			s.Advance(time.Second)
			So(log, ShouldResemble, []string{"a@10ms", "b@20ms", "c@20ms"})
			So(s.Now(), ShouldEqual, epoch.Add(time.Second))
			So(s.Pending(), ShouldEqual, 0)
			So(s.Executed(), ShouldEqual, 3)
		})

		Convey("Recurring callbacks repeat every period until cancelled", func() {
			h := s.ScheduleRecurring(record("tick"), 30*time.Millisecond, 30*time.Millisecond)
			s.Advance(100 * time.Millisecond)
			So(log, ShouldResemble, []string{"tick@30ms", "tick@60ms", "tick@90ms"})
			So(s.Pending(), ShouldEqual, 1)

			h.Cancel()
			h.Cancel()
			s.Advance(time.Second)
			So(log, ShouldHaveLength, 3)
			So(s.Pending(), ShouldEqual, 0)
		})

		Convey("A callback may cancel itself", func() {
			var h Cancelable
			n := 0
			h = s.ScheduleRecurring(func() {
				n++
				if n == 2 {
					h.Cancel()
				}
			}, 0, 10*time.Millisecond)
			s.Advance(time.Second)
			So(n, ShouldEqual, 2)
		})

		Convey("Callbacks scheduled from a callback run in the same advance when due", func() {
			s.ScheduleRecurring(func() {
				s.ScheduleRecurring(record("nested"), 5*time.Millisecond, 0)
			}, 10*time.Millisecond, 0)
			s.Advance(20 * time.Millisecond)
			So(log, ShouldResemble, []string{"nested@15ms"})
		})

		Convey("Advancing from inside a callback does nothing", func() {
			s.ScheduleRecurring(func() { s.Advance(time.Hour) }, 10*time.Millisecond, 0)
			s.Advance(20 * time.Millisecond)
			So(s.Now(), ShouldEqual, epoch.Add(20*time.Millisecond))
		})

		Convey("Advancing to the past is ignored", func() {
			s.Advance(time.Second)
			s.AdvanceTo(epoch)
			So(s.Now(), ShouldEqual, epoch.Add(time.Second))
		})
	})
}

func TestLoopRunsTimersAndPosts(t *testing.T) {
	l := NewLoop(LoopConfig{TargetFPS: 120})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var ticks atomic.Int32
	var frames atomic.Int32
	done := make(chan struct{})
	l.OnFrame(func(time.Time) { frames.Add(1) })

	var h Cancelable
	h = l.ScheduleRecurring(func() {
		if ticks.Add(1) == 3 {
			h.Cancel()
			l.RequestFrame()
			l.Post(func() { close(done) })
		}
	}, time.Millisecond, time.Millisecond)

	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("loop did not run the posted callback")
	}
	for !l.IsRunning() {
		time.Sleep(time.Millisecond)
	}
	if err := l.Run(ctx); !errors.Is(err, ErrIllegalState) {
		t.Errorf("second Run() error = %v, want ErrIllegalState", err)
	}

	deadline := time.Now().Add(time.Second)
	for frames.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if got := ticks.Load(); got != 3 {
		t.Errorf("ticks = %d, want 3", got)
	}
	if frames.Load() == 0 {
		t.Errorf("no frame ran after RequestFrame")
	}
	if s := l.Stats(); s.Callbacks < 4 {
		t.Errorf("Stats().Callbacks = %d, want at least 4", s.Callbacks)
	}
}
