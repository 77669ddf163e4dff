// Package transition provides the easing functions and the tick-driven
// transition engine skins use to animate state changes.
package transition

import "strings"

// Easing maps elapsed time to an interpolated value.
//
// Every function takes the elapsed time t, the starting value begin, the total
// change, and the duration, all in the same time unit. At t=0 the result is
// begin and at t=duration it is begin+change. A non-positive duration is
// treated as already complete.
type Easing interface {
	EaseIn(t, begin, change, duration float64) float64
	EaseOut(t, begin, change, duration float64) float64
	EaseInOut(t, begin, change, duration float64) float64
}

// Linear interpolates at constant speed.
type Linear struct{}

func (Linear) EaseIn(t, begin, change, duration float64) float64 {
	if duration <= 0 {
		return begin + change
	}
	return change*t/duration + begin
}

func (l Linear) EaseOut(t, begin, change, duration float64) float64 {
	return l.EaseIn(t, begin, change, duration)
}

func (l Linear) EaseInOut(t, begin, change, duration float64) float64 {
	return l.EaseIn(t, begin, change, duration)
}

// Quadratic is the degree-2 power curve.
type Quadratic struct{}

// EaseIn accelerates from zero velocity.
func (Quadratic) EaseIn(t, begin, change, duration float64) float64 {
	if duration <= 0 {
		return begin + change
	}
	x := t / duration
	return change*x*x + begin
}

// EaseOut decelerates to zero velocity.
func (Quadratic) EaseOut(t, begin, change, duration float64) float64 {
	if duration <= 0 {
		return begin + change
	}
	x := t / duration
	return -change*x*(x-2) + begin
}

// EaseInOut accelerates until halfway, then decelerates.
func (Quadratic) EaseInOut(t, begin, change, duration float64) float64 {
	if duration <= 0 {
		return begin + change
	}
	x := t / (duration / 2)
	if x < 1 {
		return change/2*x*x + begin
	}
	x--
	return -change/2*(x*(x-2)-1) + begin
}

// Quartic is the degree-4 power curve.
type Quartic struct{}

func (Quartic) EaseIn(t, begin, change, duration float64) float64 {
	if duration <= 0 {
		return begin + change
	}
	x := t / duration
	return change*x*x*x*x + begin
}

func (Quartic) EaseOut(t, begin, change, duration float64) float64 {
	if duration <= 0 {
		return begin + change
	}
	x := t/duration - 1
	return -change*(x*x*x*x-1) + begin
}

func (Quartic) EaseInOut(t, begin, change, duration float64) float64 {
	if duration <= 0 {
		return begin + change
	}
	x := t / (duration / 2)
	if x < 1 {
		return change/2*x*x*x*x + begin
	}
	x -= 2
	return -change/2*(x*x*x*x-2) + begin
}

// EasingByName returns the easing for a given name.
// Returns nil if the name is unknown.
func EasingByName(name string) Easing {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear":
		return Linear{}
	case "quadratic", "quad":
		return Quadratic{}
	case "quartic", "quart":
		return Quartic{}
	default:
		return nil
	}
}
