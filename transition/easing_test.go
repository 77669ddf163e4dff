package transition

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestEasingBoundaries(t *testing.T) {
	easings := []struct {
		name string
		e    Easing
	}{
		{"linear", Linear{}},
		{"quadratic", Quadratic{}},
		{"quartic", Quartic{}},
	}
	ranges := []struct {
		begin, change, duration float64
	}{
		{0, 1, 250},
		{1, -1, 250},
		{10, 90, 1},
		{-5, 3.5, 1000},
		{42, 0, 16},
	}

	for _, ee := range easings {
		for _, r := range ranges {
			fns := map[string]func(t, b, c, d float64) float64{
				"in":    ee.e.EaseIn,
				"out":   ee.e.EaseOut,
				"inout": ee.e.EaseInOut,
			}
			for fname, fn := range fns {
				if got := fn(0, r.begin, r.change, r.duration); math.Abs(got-r.begin) > epsilon {
					t.Errorf("%s.%s(0, %v, %v, %v) = %v, want %v", ee.name, fname, r.begin, r.change, r.duration, got, r.begin)
				}
				want := r.begin + r.change
				if got := fn(r.duration, r.begin, r.change, r.duration); math.Abs(got-want) > epsilon {
					t.Errorf("%s.%s(d, %v, %v, %v) = %v, want %v", ee.name, fname, r.begin, r.change, r.duration, got, want)
				}
			}
		}
	}
}

func TestEasingMonotonic(t *testing.T) {
	for _, e := range []Easing{Quadratic{}, Quartic{}} {
		prevIn, prevOut := -1.0, -1.0
		for ms := 0.0; ms <= 250; ms += 5 {
			in := e.EaseIn(ms, 0, 1, 250)
			out := e.EaseOut(ms, 0, 1, 250)
			if in < prevIn || out < prevOut {
				t.Fatalf("%T not monotonic at t=%v: in %v (prev %v), out %v (prev %v)", e, ms, in, prevIn, out, prevOut)
			}
			prevIn, prevOut = in, out
		}
	}
}

func TestEasingZeroDuration(t *testing.T) {
	for _, e := range []Easing{Linear{}, Quadratic{}, Quartic{}} {
		if got := e.EaseOut(0, 2, 3, 0); got != 5 {
			t.Errorf("%T.EaseOut with zero duration = %v, want 5", e, got)
		}
		if got := e.EaseIn(7, 2, 3, -1); got != 5 {
			t.Errorf("%T.EaseIn with negative duration = %v, want 5", e, got)
		}
		if got := e.EaseInOut(0, 2, 3, 0); got != 5 {
			t.Errorf("%T.EaseInOut with zero duration = %v, want 5", e, got)
		}
	}
}

func TestEasingShape(t *testing.T) {
	// Ease-out covers more ground early, ease-in less.
	if got := (Quadratic{}).EaseOut(50, 0, 1, 100); math.Abs(got-0.75) > epsilon {
		t.Errorf("Quadratic.EaseOut(50%%) = %v, want 0.75", got)
	}
	if got := (Quadratic{}).EaseIn(50, 0, 1, 100); math.Abs(got-0.25) > epsilon {
		t.Errorf("Quadratic.EaseIn(50%%) = %v, want 0.25", got)
	}
	if got := (Quartic{}).EaseOut(50, 0, 1, 100); math.Abs(got-0.9375) > epsilon {
		t.Errorf("Quartic.EaseOut(50%%) = %v, want 0.9375", got)
	}
	if got := (Quartic{}).EaseInOut(50, 0, 1, 100); math.Abs(got-0.5) > epsilon {
		t.Errorf("Quartic.EaseInOut(50%%) = %v, want 0.5", got)
	}
}

func TestEasingByName(t *testing.T) {
	tests := []struct {
		name string
		want Easing
	}{
		{"linear", Linear{}},
		{"quadratic", Quadratic{}},
		{"Quad", Quadratic{}},
		{" quartic ", Quartic{}},
		{"quart", Quartic{}},
		{"bounce", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EasingByName(tt.name); got != tt.want {
				t.Errorf("EasingByName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
