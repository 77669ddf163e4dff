// Package render defines the drawing surface skins paint onto.
//
// Skins never talk to a windowing system directly. They receive a Graphics
// value and issue primitive drawing operations against it; the caller decides
// whether those operations are recorded (Recorder) or rasterized (Canvas).
package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
)

// Graphics is the drawing surface handed to a skin's Paint method.
//
// Coordinates are in the current local space: Translate shifts the origin and
// ClipRect narrows the drawable region. Push and Pop save and restore the
// translation, clip and opacity state.
type Graphics interface {
	// FillRect fills r with a solid color.
	FillRect(r image.Rectangle, c color.Color)

	// FillGradient fills r with a linear gradient. When vertical is true the
	// gradient runs from the top edge (from) to the bottom edge (to),
	// otherwise from the left edge to the right edge.
	FillGradient(r image.Rectangle, from, to color.Color, vertical bool)

	// StrokeRect draws the outline of r, inset so the stroke stays inside r.
	StrokeRect(r image.Rectangle, c color.Color, thickness int)

	// DrawLine draws a straight line between p0 and p1.
	DrawLine(p0, p1 image.Point, c color.Color, thickness int)

	// FillPolygon fills the closed polygon described by pts.
	FillPolygon(pts []image.Point, c color.Color)

	// DrawText draws s with its baseline origin at dot.
	DrawText(face font.Face, s string, dot image.Point, c color.Color)

	// DrawFocusRect draws a dashed focus indicator along the inside of r.
	DrawFocusRect(r image.Rectangle, c color.Color)

	// Translate moves the origin by (dx, dy).
	Translate(dx, dy int)

	// ClipRect intersects the current clip with r.
	ClipRect(r image.Rectangle)

	// SetOpacity multiplies the current opacity by alpha (0-1).
	SetOpacity(alpha float64)

	// Push saves the current state.
	Push()

	// Pop restores the state saved by the matching Push.
	Pop()
}

// state is the save/restore unit shared by the Graphics implementations.
type state struct {
	dx, dy  int
	clip    image.Rectangle
	opacity float64
}

// stack tracks translation, clip and opacity for a Graphics implementation.
type stack struct {
	cur   state
	saved []state
}

func newStack(bounds image.Rectangle) stack {
	return stack{cur: state{clip: bounds, opacity: 1}}
}

func (s *stack) push() {
	s.saved = append(s.saved, s.cur)
}

func (s *stack) pop() {
	if len(s.saved) == 0 {
		return
	}
	s.cur = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

func (s *stack) translate(dx, dy int) {
	s.cur.dx += dx
	s.cur.dy += dy
}

func (s *stack) clipRect(r image.Rectangle) {
	s.cur.clip = s.cur.clip.Intersect(r.Add(image.Pt(s.cur.dx, s.cur.dy)))
}

func (s *stack) setOpacity(alpha float64) {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	s.cur.opacity *= alpha
}

// toDevice maps a local rectangle into device space.
func (s *stack) toDevice(r image.Rectangle) image.Rectangle {
	return r.Add(image.Pt(s.cur.dx, s.cur.dy))
}

func (s *stack) toDevicePoint(p image.Point) image.Point {
	return p.Add(image.Pt(s.cur.dx, s.cur.dy))
}

// applyOpacity scales the alpha of c by the current opacity.
func applyOpacity(c color.Color, opacity float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if opacity < 1 {
		n.A = uint8(float64(n.A)*opacity + 0.5)
	}
	return n
}

// Lerp blends two colors component-wise in non-premultiplied space.
func Lerp(from, to color.Color, t float64) color.NRGBA {
	a := color.NRGBAModel.Convert(from).(color.NRGBA)
	b := color.NRGBAModel.Convert(to).(color.NRGBA)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
