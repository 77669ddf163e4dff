package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// focusDash is the dash length, in pixels, of focus indicators.
const focusDash = 2

// Canvas rasterizes drawing operations onto an RGBA image.
type Canvas struct {
	dst   *image.RGBA
	stack stack
	z     vector.Rasterizer
}

// NewCanvas creates a canvas backed by a new transparent image of the given size.
func NewCanvas(width, height int) *Canvas {
	return NewCanvasOn(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewCanvasOn creates a canvas that draws into dst.
func NewCanvasOn(dst *image.RGBA) *Canvas {
	return &Canvas{dst: dst, stack: newStack(dst.Bounds())}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.dst
}

// clipped maps r to device space and intersects it with the current clip.
func (c *Canvas) clipped(r image.Rectangle) image.Rectangle {
	return c.stack.toDevice(r).Intersect(c.stack.cur.clip).Intersect(c.dst.Bounds())
}

func (c *Canvas) FillRect(r image.Rectangle, col color.Color) {
	dr := c.clipped(r)
	if dr.Empty() {
		return
	}
	src := image.NewUniform(applyOpacity(col, c.stack.cur.opacity))
	draw.Draw(c.dst, dr, src, image.Point{}, draw.Over)
}

func (c *Canvas) FillGradient(r image.Rectangle, from, to color.Color, vertical bool) {
	dev := c.stack.toDevice(r)
	dr := dev.Intersect(c.stack.cur.clip).Intersect(c.dst.Bounds())
	if dr.Empty() {
		return
	}
	span := dev.Dx() - 1
	if vertical {
		span = dev.Dy() - 1
	}
	at := func(i int) float64 {
		if span <= 0 {
			return 0
		}
		return float64(i) / float64(span)
	}
	if vertical {
		for y := dr.Min.Y; y < dr.Max.Y; y++ {
			col := applyOpacity(Lerp(from, to, at(y-dev.Min.Y)), c.stack.cur.opacity)
			row := image.Rect(dr.Min.X, y, dr.Max.X, y+1)
			draw.Draw(c.dst, row, image.NewUniform(col), image.Point{}, draw.Over)
		}
		return
	}
	for x := dr.Min.X; x < dr.Max.X; x++ {
		col := applyOpacity(Lerp(from, to, at(x-dev.Min.X)), c.stack.cur.opacity)
		column := image.Rect(x, dr.Min.Y, x+1, dr.Max.Y)
		draw.Draw(c.dst, column, image.NewUniform(col), image.Point{}, draw.Over)
	}
}

func (c *Canvas) StrokeRect(r image.Rectangle, col color.Color, thickness int) {
	if thickness <= 0 {
		return
	}
	c.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness), col)
	c.FillRect(image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y), col)
	c.FillRect(image.Rect(r.Min.X, r.Min.Y+thickness, r.Min.X+thickness, r.Max.Y-thickness), col)
	c.FillRect(image.Rect(r.Max.X-thickness, r.Min.Y+thickness, r.Max.X, r.Max.Y-thickness), col)
}

func (c *Canvas) DrawLine(p0, p1 image.Point, col color.Color, thickness int) {
	if thickness <= 0 {
		thickness = 1
	}
	// Axis-aligned lines are the common case and map onto pixel rows exactly.
	if p0.X == p1.X || p0.Y == p1.Y {
		r := image.Rectangle{Min: p0, Max: p1}.Canon()
		if p0.X == p1.X {
			r.Max.X = r.Min.X + thickness
			r.Max.Y++
		} else {
			r.Max.Y = r.Min.Y + thickness
			r.Max.X++
		}
		c.FillRect(r, col)
		return
	}
	half := float32(thickness) / 2
	dx, dy := float32(p1.X-p0.X), float32(p1.Y-p0.Y)
	length := float32(math.Hypot(float64(dx), float64(dy)))
	nx, ny := -dy/length*half, dx/length*half
	c.fillPath([][2]float32{
		{float32(p0.X) + nx, float32(p0.Y) + ny},
		{float32(p1.X) + nx, float32(p1.Y) + ny},
		{float32(p1.X) - nx, float32(p1.Y) - ny},
		{float32(p0.X) - nx, float32(p0.Y) - ny},
	}, col)
}

func (c *Canvas) FillPolygon(pts []image.Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	path := make([][2]float32, len(pts))
	for i, p := range pts {
		path[i] = [2]float32{float32(p.X), float32(p.Y)}
	}
	c.fillPath(path, col)
}

// fillPath rasterizes a closed path given in local coordinates.
func (c *Canvas) fillPath(path [][2]float32, col color.Color) {
	clip := c.stack.cur.clip.Intersect(c.dst.Bounds())
	if clip.Empty() {
		return
	}
	// The rasterizer mask is aligned with the destination rectangle, so the
	// path is shifted into clip-relative space.
	ox := float32(c.stack.cur.dx - clip.Min.X)
	oy := float32(c.stack.cur.dy - clip.Min.Y)
	c.z.Reset(clip.Dx(), clip.Dy())
	c.z.MoveTo(path[0][0]+ox, path[0][1]+oy)
	for _, p := range path[1:] {
		c.z.LineTo(p[0]+ox, p[1]+oy)
	}
	c.z.ClosePath()
	c.z.Draw(c.dst, clip, image.NewUniform(applyOpacity(col, c.stack.cur.opacity)), image.Point{})
}

func (c *Canvas) DrawText(face font.Face, s string, dot image.Point, col color.Color) {
	clip := c.stack.cur.clip.Intersect(c.dst.Bounds())
	if clip.Empty() {
		return
	}
	origin := c.stack.toDevicePoint(dot)
	d := font.Drawer{
		Dst:  clipImage{RGBA: c.dst, clip: clip},
		Src:  image.NewUniform(applyOpacity(col, c.stack.cur.opacity)),
		Face: face,
		Dot:  fixed.P(origin.X, origin.Y),
	}
	d.DrawString(s)
}

func (c *Canvas) DrawFocusRect(r image.Rectangle, col color.Color) {
	for x := r.Min.X; x < r.Max.X; x += focusDash * 2 {
		end := min(x+focusDash, r.Max.X)
		c.FillRect(image.Rect(x, r.Min.Y, end, r.Min.Y+1), col)
		c.FillRect(image.Rect(x, r.Max.Y-1, end, r.Max.Y), col)
	}
	for y := r.Min.Y; y < r.Max.Y; y += focusDash * 2 {
		end := min(y+focusDash, r.Max.Y)
		c.FillRect(image.Rect(r.Min.X, y, r.Min.X+1, end), col)
		c.FillRect(image.Rect(r.Max.X-1, y, r.Max.X, end), col)
	}
}

func (c *Canvas) Translate(dx, dy int)       { c.stack.translate(dx, dy) }
func (c *Canvas) ClipRect(r image.Rectangle) { c.stack.clipRect(r) }
func (c *Canvas) SetOpacity(alpha float64)   { c.stack.setOpacity(alpha) }
func (c *Canvas) Push()                      { c.stack.push() }
func (c *Canvas) Pop()                       { c.stack.pop() }

// clipImage restricts glyph drawing to a clip rectangle.
type clipImage struct {
	*image.RGBA
	clip image.Rectangle
}

func (ci clipImage) Set(x, y int, c color.Color) {
	if image.Pt(x, y).In(ci.clip) {
		ci.RGBA.Set(x, y, c)
	}
}

func (ci clipImage) Bounds() image.Rectangle {
	return ci.clip
}
