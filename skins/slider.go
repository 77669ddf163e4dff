package skins

import (
	"fmt"
	"image"
	"image/color"

	"github.com/agiangrant/skins/render"
	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/widgets"
)

const (
	sliderTrack  = 4
	sliderLength = 120
)

// thumbPart is the draggable knob of a slider.
type thumbPart struct {
	face    *bevel
	border  *color.NRGBA
	long    int
	short   int
	pressed bool
}

func (p *thumbPart) preferredSize() retained.Size {
	return retained.Size{Width: p.short, Height: p.long}
}

func (p *thumbPart) paint(g render.Graphics, r image.Rectangle) {
	if r.Empty() {
		return
	}
	p.face.fill(g, r, p.pressed)
	g.StrokeRect(r, *p.border, 1)
}

// SliderSkin draws a sunken track with a thumb positioned by the slider's
// value. Dragging the thumb is driven through BeginDrag, DragTo and EndDrag.
type SliderSkin struct {
	retained.SkinBase
	env    Env
	slider *widgets.Slider

	track       color.NRGBA
	borderColor color.NRGBA
	face        bevel
	thumb       thumbPart
	padding     retained.Insets

	dragging bool
	grab     int
}

// NewSliderSkin creates a slider skin.
func NewSliderSkin(env Env) *SliderSkin {
	env = env.normalized()
	c := env.Theme.Colors
	s := &SliderSkin{
		env:         env,
		track:       env.Theme.Darker(c.Background),
		borderColor: c.Border,
		face:        newBevel(env.Theme, c.Background),
		padding:     retained.UniformInsets(2),
	}
	s.thumb = thumbPart{face: &s.face, border: &s.borderColor, long: 16, short: 8}
	return s
}

func (s *SliderSkin) Install(c retained.Component) error {
	sl, err := install[*widgets.Slider](&s.SkinBase, c)
	if err != nil {
		return err
	}
	s.slider = sl
	return nil
}

func (s *SliderSkin) Uninstall() {
	s.dragging = false
	s.slider = nil
	s.SkinBase.Uninstall()
}

// SetTrackColor changes the fill of the track.
func (s *SliderSkin) SetTrackColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.track = n
	s.Repaint()
	return nil
}

// SetThumbColor changes the thumb base color. The bevel shades are derived
// from it immediately.
func (s *SliderSkin) SetThumbColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.face.set(s.env.Theme, n)
	s.Repaint()
	return nil
}

// ThumbColors returns the thumb base color and its derived shades.
func (s *SliderSkin) ThumbColors() (base, light, shadow color.NRGBA) {
	return s.face.base, s.face.light, s.face.shadow
}

func (s *SliderSkin) SetBorderColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.borderColor = n
	s.Repaint()
	return nil
}

func (s *SliderSkin) SetPadding(p retained.Insets) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("slider padding: %w", err)
	}
	s.padding = p
	s.Invalidate()
	return nil
}

func (s *SliderSkin) horizontal() bool {
	return s.slider.Orientation() == widgets.Horizontal
}

// thumbSize is the thumb's extent along and across the track.
func (s *SliderSkin) thumbSize() retained.Size {
	t := s.thumb.preferredSize()
	if s.horizontal() {
		return t
	}
	return retained.Size{Width: t.Height, Height: t.Width}
}

func (s *SliderSkin) PreferredWidth(height retained.Constraint) int {
	if s.horizontal() {
		return sliderLength + s.padding.Horizontal()
	}
	return s.thumbSize().Width + s.padding.Horizontal()
}

func (s *SliderSkin) PreferredHeight(width retained.Constraint) int {
	if s.horizontal() {
		return s.thumbSize().Height + s.padding.Vertical()
	}
	return sliderLength + s.padding.Vertical()
}

func (s *SliderSkin) PreferredSize() retained.Size {
	return retained.Size{
		Width:  s.PreferredWidth(retained.Unconstrained),
		Height: s.PreferredHeight(retained.Unconstrained),
	}
}

// travel returns the inner area and the distance the thumb can move in it.
func (s *SliderSkin) travel() (image.Rectangle, int) {
	inner := s.padding.Inset(image.Rect(0, 0, s.Width(), s.Height()))
	t := s.thumbSize()
	if s.horizontal() {
		return inner, max(inner.Dx()-t.Width, 0)
	}
	return inner, max(inner.Dy()-t.Height, 0)
}

// fraction is the value's position in the range, 0 at Min.
func (s *SliderSkin) fraction() float64 {
	span := s.slider.Max() - s.slider.Min()
	if span == 0 {
		return 0
	}
	return float64(s.slider.Value()-s.slider.Min()) / float64(span)
}

// TrackBounds returns the track rectangle.
func (s *SliderSkin) TrackBounds() image.Rectangle {
	inner, _ := s.travel()
	if s.horizontal() {
		y := inner.Min.Y + (inner.Dy()-sliderTrack)/2
		return image.Rect(inner.Min.X, y, inner.Max.X, y+sliderTrack)
	}
	x := inner.Min.X + (inner.Dx()-sliderTrack)/2
	return image.Rect(x, inner.Min.Y, x+sliderTrack, inner.Max.Y)
}

// ThumbBounds returns the thumb rectangle for the current value. Vertical
// sliders put Min at the bottom.
func (s *SliderSkin) ThumbBounds() image.Rectangle {
	inner, length := s.travel()
	t := s.thumbSize()
	offset := scaled(length, s.fraction())
	if s.horizontal() {
		x := inner.Min.X + offset
		y := inner.Min.Y + (inner.Dy()-t.Height)/2
		return image.Rect(x, y, x+t.Width, y+t.Height)
	}
	x := inner.Min.X + (inner.Dx()-t.Width)/2
	y := inner.Min.Y + length - offset
	return image.Rect(x, y, x+t.Width, y+t.Height)
}

// ValueAt returns the value that places the thumb's center nearest p.
func (s *SliderSkin) ValueAt(p image.Point) int {
	inner, length := s.travel()
	t := s.thumbSize()
	if length == 0 {
		return s.slider.Min()
	}
	var f float64
	if s.horizontal() {
		f = float64(p.X-inner.Min.X-t.Width/2) / float64(length)
	} else {
		f = 1 - float64(p.Y-inner.Min.Y-t.Height/2)/float64(length)
	}
	span := s.slider.Max() - s.slider.Min()
	return s.slider.Min() + retained.Clamp(scaled(span, f), 0, span)
}

// IsDragging reports whether a thumb drag is in progress.
func (s *SliderSkin) IsDragging() bool { return s.dragging }

// BeginDrag starts dragging the thumb grabbed at p. Pressing the track
// outside the thumb jumps the value there first.
func (s *SliderSkin) BeginDrag(p image.Point) error {
	if s.slider == nil {
		return fmt.Errorf("%w: slider skin is not installed", retained.ErrIllegalState)
	}
	if s.dragging {
		return fmt.Errorf("%w: slider drag already in progress", retained.ErrIllegalState)
	}
	if s.slider.IsBlocked() {
		return fmt.Errorf("%w: %s is disabled", retained.ErrIllegalState, s.slider)
	}
	thumb := s.ThumbBounds()
	if !p.In(thumb) {
		if err := s.slider.SetValue(s.ValueAt(p)); err != nil {
			return err
		}
		thumb = s.ThumbBounds()
	}
	center := thumb.Min.Add(thumb.Size().Div(2))
	if s.horizontal() {
		s.grab = p.X - center.X
	} else {
		s.grab = p.Y - center.Y
	}
	s.dragging = true
	s.thumb.pressed = true
	s.Repaint()
	return nil
}

// DragTo moves the thumb so the point it was grabbed by follows p.
func (s *SliderSkin) DragTo(p image.Point) error {
	if !s.dragging {
		return fmt.Errorf("%w: no slider drag in progress", retained.ErrIllegalState)
	}
	if s.horizontal() {
		p.X -= s.grab
	} else {
		p.Y -= s.grab
	}
	return s.slider.SetValue(s.ValueAt(p))
}

// EndDrag releases the thumb.
func (s *SliderSkin) EndDrag() {
	if !s.dragging {
		return
	}
	s.dragging = false
	s.thumb.pressed = false
	s.Repaint()
}

func (s *SliderSkin) Paint(g render.Graphics) {
	track := s.TrackBounds()
	g.FillRect(track, s.track)
	g.StrokeRect(track, s.borderColor, 1)
	s.thumb.paint(g, s.ThumbBounds())
}

func (s *SliderSkin) PaintOverlay(g render.Graphics) {
	if s.slider.IsFocused() {
		g.DrawFocusRect(image.Rect(0, 0, s.Width(), s.Height()), s.env.Theme.Colors.Focus)
	}
}
