package retained

import (
	"fmt"
	"image"

	"github.com/samber/mo"
	"golang.org/x/exp/constraints"
)

// Constraint bounds a preferred-size query along one axis.
// Unconstrained asks for the natural size.
type Constraint int

// Unconstrained is the constraint value meaning "no limit".
const Unconstrained Constraint = -1

// Limit returns a constraint of n pixels. Negative values mean Unconstrained.
func Limit(n int) Constraint {
	if n < 0 {
		return Unconstrained
	}
	return Constraint(n)
}

// IsLimited reports whether the constraint carries a pixel limit.
func (c Constraint) IsLimited() bool {
	return c >= 0
}

// Value returns the pixel limit, or fallback when unconstrained.
func (c Constraint) Value(fallback int) int {
	if c < 0 {
		return fallback
	}
	return int(c)
}

// Shrink subtracts n pixels from a limited constraint, never going below zero.
// Unconstrained stays unconstrained.
func (c Constraint) Shrink(n int) Constraint {
	if c < 0 {
		return c
	}
	return Constraint(max(int(c)-n, 0))
}

func (c Constraint) String() string {
	if c < 0 {
		return "unconstrained"
	}
	return fmt.Sprintf("%dpx", int(c))
}

// Baseline is the distance from a component's top edge to its text baseline.
// An absent value means the component has no baseline, which is distinct from
// a baseline at the top edge.
type Baseline = mo.Option[int]

// NoBaseline returns the absent baseline.
func NoBaseline() Baseline {
	return mo.None[int]()
}

// BaselineAt returns a baseline y pixels below the top edge.
func BaselineAt(y int) Baseline {
	return mo.Some(y)
}

// OffsetBaseline shifts a present baseline by dy and leaves an absent one absent.
func OffsetBaseline(b Baseline, dy int) Baseline {
	if y, ok := b.Get(); ok {
		return mo.Some(y + dy)
	}
	return b
}

// Size is a width/height pair in pixels.
type Size struct {
	Width, Height int
}

// Pt converts the size to an image.Point.
func (s Size) Pt() image.Point {
	return image.Pt(s.Width, s.Height)
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Insets are per-edge paddings in pixels.
type Insets struct {
	Top, Left, Bottom, Right int
}

// UniformInsets returns insets of n on every edge.
func UniformInsets(n int) Insets {
	return Insets{Top: n, Left: n, Bottom: n, Right: n}
}

// Horizontal returns Left + Right.
func (i Insets) Horizontal() int { return i.Left + i.Right }

// Vertical returns Top + Bottom.
func (i Insets) Vertical() int { return i.Top + i.Bottom }

// Validate rejects negative insets.
func (i Insets) Validate() error {
	if i.Top < 0 || i.Left < 0 || i.Bottom < 0 || i.Right < 0 {
		return fmt.Errorf("%w: negative insets %+v", ErrInvalidArgument, i)
	}
	return nil
}

// Inset shrinks r by the insets. The result never has negative size.
func (i Insets) Inset(r image.Rectangle) image.Rectangle {
	out := image.Rectangle{
		Min: image.Pt(r.Min.X+i.Left, r.Min.Y+i.Top),
		Max: image.Pt(r.Max.X-i.Right, r.Max.Y-i.Bottom),
	}
	if out.Max.X < out.Min.X {
		out.Max.X = out.Min.X
	}
	if out.Max.Y < out.Min.Y {
		out.Max.Y = out.Min.Y
	}
	return out
}

// Clamp restricts v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
