package skins

import (
	"image"
	"image/color"
	"math"

	"github.com/agiangrant/skins/render"
	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/theme"
)

// part is a sub-component a skin owns and draws itself, such as a spinner
// button or a slider thumb. It answers the same sizing and paint questions as
// a skin, but against bounds its owner chooses.
type part interface {
	preferredSize() retained.Size
	paint(g render.Graphics, bounds image.Rectangle)
}

// bevel is a base color with the lighter and darker shades derived from it.
// The shades are recomputed whenever the base changes.
type bevel struct {
	base   color.NRGBA
	light  color.NRGBA
	shadow color.NRGBA
}

func newBevel(t *theme.Theme, c color.Color) bevel {
	var b bevel
	b.set(t, c)
	return b
}

func (b *bevel) set(t *theme.Theme, c color.Color) {
	b.base = color.NRGBAModel.Convert(c).(color.NRGBA)
	b.light = t.Brighter(b.base)
	b.shadow = t.Darker(b.base)
}

// fill paints r with the raised gradient, or the sunken one when pressed.
func (b bevel) fill(g render.Graphics, r image.Rectangle, pressed bool) {
	if pressed {
		g.FillGradient(r, b.shadow, b.base, true)
		return
	}
	g.FillGradient(r, b.light, b.base, true)
}

// direction is the way an arrow points.
type direction uint8

const (
	up direction = iota
	down
	left
	right
)

// arrowPolygon returns a triangle of the given size centered in r.
func arrowPolygon(r image.Rectangle, dir direction, size int) []image.Point {
	c := image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
	h := size / 2
	switch dir {
	case up:
		return []image.Point{{c.X - size, c.Y + h}, {c.X + size, c.Y + h}, {c.X, c.Y - h}}
	case down:
		return []image.Point{{c.X - size, c.Y - h}, {c.X + size, c.Y - h}, {c.X, c.Y + h}}
	case left:
		return []image.Point{{c.X + h, c.Y - size}, {c.X + h, c.Y + size}, {c.X - h, c.Y}}
	default:
		return []image.Point{{c.X - h, c.Y - size}, {c.X - h, c.Y + size}, {c.X + h, c.Y}}
	}
}

// arrowButton is a small bevelled button with a triangle on it.
type arrowButton struct {
	dir     direction
	face    *bevel
	border  *color.NRGBA
	arrow   *color.NRGBA
	size    int
	pressed bool
}

func (b *arrowButton) preferredSize() retained.Size {
	return retained.Size{Width: b.size*2 + 6, Height: b.size*2 + 4}
}

func (b *arrowButton) paint(g render.Graphics, r image.Rectangle) {
	if r.Empty() {
		return
	}
	b.face.fill(g, r, b.pressed)
	g.StrokeRect(r, *b.border, 1)
	g.FillPolygon(arrowPolygon(r, b.dir, b.size), *b.arrow)
}

// textDot returns the baseline origin that vertically centers a line of f in
// r, starting at r's left edge.
func textDot(f *theme.Font, r image.Rectangle) image.Point {
	return image.Pt(r.Min.X, r.Min.Y+(r.Dy()-f.Height())/2+f.Ascent())
}

// drawText draws s vertically centered in r. When center is set it is also
// centered horizontally.
func drawText(g render.Graphics, f *theme.Font, s string, r image.Rectangle, c color.Color, center bool) {
	if s == "" {
		return
	}
	dot := textDot(f, r)
	if center {
		dot.X += (r.Dx() - f.Measure(s)) / 2
	}
	g.DrawText(f.Face(), s, dot, c)
}

// centeredBaseline is the baseline of a line of f vertically centered in a
// box of the given height with the given insets.
func centeredBaseline(f *theme.Font, height int, in retained.Insets) retained.Baseline {
	inner := height - in.Vertical()
	return retained.BaselineAt(in.Top + (inner-f.Height())/2 + f.Ascent())
}

// scaled returns n multiplied by f, rounded to the nearest pixel.
func scaled(n int, f float64) int {
	return int(math.Round(float64(n) * f))
}
