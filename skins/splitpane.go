package skins

import (
	"fmt"
	"image"
	"image/color"

	"github.com/agiangrant/skins/render"
	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/widgets"
)

// SplitPaneSkin places the two components on either side of a bevelled
// splitter whose position follows the pane's split ratio.
type SplitPaneSkin struct {
	retained.SkinBase
	env  Env
	pane *widgets.SplitPane

	splitter    bevel
	borderColor color.NRGBA
	gripColor   color.NRGBA
	thickness   int

	dragging bool
	grab     int
}

// NewSplitPaneSkin creates a split pane skin.
func NewSplitPaneSkin(env Env) *SplitPaneSkin {
	env = env.normalized()
	c := env.Theme.Colors
	return &SplitPaneSkin{
		env:         env,
		splitter:    newBevel(env.Theme, c.Background),
		borderColor: c.Border,
		gripColor:   env.Theme.Darker(c.Background),
		thickness:   6,
	}
}

func (s *SplitPaneSkin) Install(c retained.Component) error {
	p, err := install[*widgets.SplitPane](&s.SkinBase, c)
	if err != nil {
		return err
	}
	s.pane = p
	return nil
}

func (s *SplitPaneSkin) Uninstall() {
	s.dragging = false
	s.pane = nil
	s.SkinBase.Uninstall()
}

// SetSplitterColor changes the splitter base color. The bevel shades are
// derived from it immediately.
func (s *SplitPaneSkin) SetSplitterColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.splitter.set(s.env.Theme, n)
	s.Repaint()
	return nil
}

// SplitterColors returns the splitter base color and its derived shades.
func (s *SplitPaneSkin) SplitterColors() (base, light, shadow color.NRGBA) {
	return s.splitter.base, s.splitter.light, s.splitter.shadow
}

func (s *SplitPaneSkin) SetBorderColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.borderColor = n
	s.Repaint()
	return nil
}

// SetSplitterThickness changes the width of the splitter.
func (s *SplitPaneSkin) SetSplitterThickness(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: splitter thickness %d", retained.ErrInvalidArgument, n)
	}
	s.thickness = n
	s.Invalidate()
	return nil
}

func (s *SplitPaneSkin) horizontal() bool {
	return s.pane.Orientation() == widgets.Horizontal
}

func preferredOf(w *retained.Widget) retained.Size {
	if w == nil || !w.IsVisible() {
		return retained.Size{}
	}
	return w.PreferredSize()
}

func (s *SplitPaneSkin) PreferredWidth(height retained.Constraint) int {
	first, second := preferredOf(s.pane.First()), preferredOf(s.pane.Second())
	if s.horizontal() {
		return first.Width + s.thickness + second.Width
	}
	return max(first.Width, second.Width)
}

func (s *SplitPaneSkin) PreferredHeight(width retained.Constraint) int {
	first, second := preferredOf(s.pane.First()), preferredOf(s.pane.Second())
	if s.horizontal() {
		return max(first.Height, second.Height)
	}
	return first.Height + s.thickness + second.Height
}

func (s *SplitPaneSkin) PreferredSize() retained.Size {
	return retained.Size{
		Width:  s.PreferredWidth(retained.Unconstrained),
		Height: s.PreferredHeight(retained.Unconstrained),
	}
}

// Baseline is the first component's baseline when the components sit side by
// side.
func (s *SplitPaneSkin) Baseline(width, height int) retained.Baseline {
	first := s.pane.First()
	if !s.horizontal() || first == nil || !first.IsVisible() {
		return retained.NoBaseline()
	}
	r := s.regions(width, height)
	return first.BaselineFor(r[0].Dx(), r[0].Dy())
}

// span is the length of the pane along the split axis.
func (s *SplitPaneSkin) span(width, height int) int {
	if s.horizontal() {
		return width
	}
	return height
}

// regions returns the first component's area, the splitter and the second
// component's area for a pane of the given size.
func (s *SplitPaneSkin) regions(width, height int) [3]image.Rectangle {
	free := max(s.span(width, height)-s.thickness, 0)
	at := scaled(free, s.pane.SplitRatio())
	end := min(at+s.thickness, s.span(width, height))
	if s.horizontal() {
		return [3]image.Rectangle{
			image.Rect(0, 0, at, height),
			image.Rect(at, 0, end, height),
			image.Rect(end, 0, width, height),
		}
	}
	return [3]image.Rectangle{
		image.Rect(0, 0, width, at),
		image.Rect(0, at, width, end),
		image.Rect(0, end, width, height),
	}
}

// SplitterBounds returns the splitter rectangle.
func (s *SplitPaneSkin) SplitterBounds() image.Rectangle {
	return s.regions(s.Width(), s.Height())[1]
}

func (s *SplitPaneSkin) Layout() {
	r := s.regions(s.Width(), s.Height())
	if first := s.pane.First(); first != nil {
		first.SetBounds(r[0])
	}
	if second := s.pane.Second(); second != nil {
		second.SetBounds(r[2])
	}
}

// IsDragging reports whether a splitter drag is in progress.
func (s *SplitPaneSkin) IsDragging() bool { return s.dragging }

// BeginDrag starts dragging the splitter grabbed at p. It fails while the
// splitter is locked or p is not on it.
func (s *SplitPaneSkin) BeginDrag(p image.Point) error {
	switch {
	case s.pane == nil:
		return fmt.Errorf("%w: split pane skin is not installed", retained.ErrIllegalState)
	case s.dragging:
		return fmt.Errorf("%w: splitter drag already in progress", retained.ErrIllegalState)
	case s.pane.IsLocked():
		return fmt.Errorf("%w: splitter is locked", retained.ErrIllegalState)
	case s.pane.IsBlocked():
		return fmt.Errorf("%w: %s is disabled", retained.ErrIllegalState, s.pane)
	}
	splitter := s.SplitterBounds()
	if !p.In(splitter) {
		return fmt.Errorf("%w: %v is not on the splitter %v", retained.ErrInvalidArgument, p, splitter)
	}
	if s.horizontal() {
		s.grab = p.X - splitter.Min.X
	} else {
		s.grab = p.Y - splitter.Min.Y
	}
	s.dragging = true
	return nil
}

// DragTo moves the splitter so the point it was grabbed by follows p. The
// splitter stays inside the pane.
func (s *SplitPaneSkin) DragTo(p image.Point) error {
	if !s.dragging {
		return fmt.Errorf("%w: no splitter drag in progress", retained.ErrIllegalState)
	}
	free := max(s.span(s.Width(), s.Height())-s.thickness, 0)
	if free == 0 {
		return nil
	}
	at := p.X
	if !s.horizontal() {
		at = p.Y
	}
	at = retained.Clamp(at-s.grab, 0, free)
	return s.pane.SetSplitRatio(float64(at) / float64(free))
}

// EndDrag releases the splitter.
func (s *SplitPaneSkin) EndDrag() {
	s.dragging = false
}

func (s *SplitPaneSkin) Paint(g render.Graphics) {
	r := s.SplitterBounds()
	if r.Empty() {
		return
	}
	s.splitter.fill(g, r, s.dragging)
	if s.pane.IsLocked() {
		return
	}
	c := r.Min.Add(r.Size().Div(2))
	for i := -1; i <= 1; i++ {
		if s.horizontal() {
			y := c.Y + i*4
			g.DrawLine(image.Pt(r.Min.X+1, y), image.Pt(r.Max.X-1, y), s.gripColor, 1)
		} else {
			x := c.X + i*4
			g.DrawLine(image.Pt(x, r.Min.Y+1), image.Pt(x, r.Max.Y-1), s.gripColor, 1)
		}
	}
}

func (s *SplitPaneSkin) PaintOverlay(g render.Graphics) {
	g.StrokeRect(s.SplitterBounds(), s.borderColor, 1)
	if s.pane.IsFocused() {
		g.DrawFocusRect(s.SplitterBounds(), s.env.Theme.Colors.Focus)
	}
}
