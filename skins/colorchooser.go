package skins

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/samber/mo"

	"github.com/agiangrant/skins/render"
	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/widgets"
)

const (
	chooserSquare = 128
	chooserStrip  = 16
	chooserSteps  = 16
)

// ColorChooserSkin draws a saturation/value square for the selected hue next
// to a vertical hue strip.
type ColorChooserSkin struct {
	retained.SkinBase
	env     Env
	chooser *widgets.ColorChooser

	borderColor color.NRGBA
	markerColor color.NRGBA
	background  color.NRGBA
	spacing     int
	padding     retained.Insets
}

// NewColorChooserSkin creates a color chooser skin.
func NewColorChooserSkin(env Env) *ColorChooserSkin {
	env = env.normalized()
	c := env.Theme.Colors
	return &ColorChooserSkin{
		env:         env,
		borderColor: c.Border,
		markerColor: c.Focus,
		background:  c.Background,
		spacing:     4,
		padding:     retained.UniformInsets(4),
	}
}

func (s *ColorChooserSkin) Install(c retained.Component) error {
	cc, err := install[*widgets.ColorChooser](&s.SkinBase, c)
	if err != nil {
		return err
	}
	s.chooser = cc
	return nil
}

func (s *ColorChooserSkin) Uninstall() {
	s.chooser = nil
	s.SkinBase.Uninstall()
}

func (s *ColorChooserSkin) SetBorderColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.borderColor = n
	s.Repaint()
	return nil
}

// SetMarkerColor changes the color of the selection markers.
func (s *ColorChooserSkin) SetMarkerColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.markerColor = n
	s.Repaint()
	return nil
}

func (s *ColorChooserSkin) SetBackgroundColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.background = n
	s.Repaint()
	return nil
}

func (s *ColorChooserSkin) SetPadding(p retained.Insets) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("color chooser padding: %w", err)
	}
	s.padding = p
	s.Invalidate()
	return nil
}

// hsv returns the selected color in HSV space.
func (s *ColorChooserSkin) hsv() (h, sat, v float64) {
	n := s.chooser.Selected()
	c := colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}
	return c.Hsv()
}

func fromHSV(h, sat, v float64, alpha uint8) color.NRGBA {
	r, g, b := colorful.Hsv(h, retained.Clamp(sat, 0, 1), retained.Clamp(v, 0, 1)).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}
}

func (s *ColorChooserSkin) PreferredWidth(height retained.Constraint) int {
	return chooserSquare + s.spacing + chooserStrip + s.padding.Horizontal()
}

func (s *ColorChooserSkin) PreferredHeight(width retained.Constraint) int {
	return chooserSquare + s.padding.Vertical()
}

func (s *ColorChooserSkin) PreferredSize() retained.Size {
	return retained.Size{
		Width:  s.PreferredWidth(retained.Unconstrained),
		Height: s.PreferredHeight(retained.Unconstrained),
	}
}

// SquareBounds returns the saturation/value square.
func (s *ColorChooserSkin) SquareBounds() image.Rectangle {
	inner := s.padding.Inset(image.Rect(0, 0, s.Width(), s.Height()))
	inner.Max.X = max(inner.Max.X-chooserStrip-s.spacing, inner.Min.X)
	return inner
}

// StripBounds returns the hue strip.
func (s *ColorChooserSkin) StripBounds() image.Rectangle {
	inner := s.padding.Inset(image.Rect(0, 0, s.Width(), s.Height()))
	inner.Min.X = max(inner.Max.X-chooserStrip, inner.Min.X)
	return inner
}

// ColorAt returns the color a press at p would select: a new saturation and
// value inside the square, or a new hue inside the strip. Alpha is kept.
func (s *ColorChooserSkin) ColorAt(p image.Point) mo.Option[color.NRGBA] {
	h, sat, v := s.hsv()
	alpha := s.chooser.Selected().A
	square, strip := s.SquareBounds(), s.StripBounds()
	switch {
	case p.In(square):
		sat = float64(p.X-square.Min.X) / float64(max(square.Dx()-1, 1))
		v = 1 - float64(p.Y-square.Min.Y)/float64(max(square.Dy()-1, 1))
	case p.In(strip):
		h = 360 * float64(p.Y-strip.Min.Y) / float64(strip.Dy())
	default:
		return mo.None[color.NRGBA]()
	}
	return mo.Some(fromHSV(h, sat, v, alpha))
}

func (s *ColorChooserSkin) Paint(g render.Graphics) {
	g.FillRect(image.Rect(0, 0, s.Width(), s.Height()), s.background)
	h, sat, v := s.hsv()

	square := s.SquareBounds()
	if !square.Empty() {
		for row := 0; row < chooserSteps; row++ {
			for col := 0; col < chooserSteps; col++ {
				cell := image.Rect(
					square.Min.X+col*square.Dx()/chooserSteps, square.Min.Y+row*square.Dy()/chooserSteps,
					square.Min.X+(col+1)*square.Dx()/chooserSteps, square.Min.Y+(row+1)*square.Dy()/chooserSteps)
				c := fromHSV(h, (float64(col)+0.5)/chooserSteps, 1-(float64(row)+0.5)/chooserSteps, 0xff)
				g.FillRect(cell, c)
			}
		}
		marker := image.Pt(square.Min.X+scaled(square.Dx()-1, sat), square.Min.Y+scaled(square.Dy()-1, 1-v))
		g.StrokeRect(image.Rectangle{Min: marker.Sub(image.Pt(3, 3)), Max: marker.Add(image.Pt(4, 4))}, s.markerColor, 1)
		g.StrokeRect(square, s.borderColor, 1)
	}

	strip := s.StripBounds()
	if !strip.Empty() {
		for i := 0; i < chooserSteps; i++ {
			top := strip.Min.Y + i*strip.Dy()/chooserSteps
			bottom := strip.Min.Y + (i+1)*strip.Dy()/chooserSteps
			from := fromHSV(360*float64(i)/chooserSteps, 1, 1, 0xff)
			to := fromHSV(360*float64(i+1)/chooserSteps, 1, 1, 0xff)
			g.FillGradient(image.Rect(strip.Min.X, top, strip.Max.X, bottom), from, to, true)
		}
		y := strip.Min.Y + scaled(strip.Dy(), h/360)
		g.DrawLine(image.Pt(strip.Min.X, y), image.Pt(strip.Max.X, y), s.markerColor, 2)
		g.StrokeRect(strip, s.borderColor, 1)
	}
}
