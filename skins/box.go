package skins

import (
	"fmt"
	"image"

	"github.com/samber/lo"

	"github.com/agiangrant/skins/render"
	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/widgets"
)

// BoxSkin lays children out in a row or a column.
type BoxSkin struct {
	retained.SkinBase
	env Env
	box *widgets.Box

	spacing int
	padding retained.Insets
}

// NewBoxSkin creates a box skin with 4px spacing.
func NewBoxSkin(env Env) *BoxSkin {
	return &BoxSkin{env: env.normalized(), spacing: 4}
}

func (s *BoxSkin) Install(c retained.Component) error {
	b, err := install[*widgets.Box](&s.SkinBase, c)
	if err != nil {
		return err
	}
	s.box = b
	return nil
}

func (s *BoxSkin) Uninstall() {
	s.box = nil
	s.SkinBase.Uninstall()
}

// Spacing returns the gap between children.
func (s *BoxSkin) Spacing() int { return s.spacing }

// SetSpacing changes the gap between children.
func (s *BoxSkin) SetSpacing(spacing int) error {
	if spacing < 0 {
		return fmt.Errorf("%w: box spacing %d", retained.ErrInvalidArgument, spacing)
	}
	s.spacing = spacing
	s.Invalidate()
	return nil
}

// SetPadding changes the space around the children.
func (s *BoxSkin) SetPadding(p retained.Insets) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("box padding: %w", err)
	}
	s.padding = p
	s.Invalidate()
	return nil
}

func visibleChildren(w *retained.Widget) []*retained.Widget {
	return lo.Filter(w.Children(), func(c *retained.Widget, _ int) bool {
		return c.IsVisible()
	})
}

func (s *BoxSkin) gaps(n int) int {
	return max(n-1, 0) * s.spacing
}

func (s *BoxSkin) PreferredWidth(height retained.Constraint) int {
	children := visibleChildren(s.box.Widget)
	inner := height.Shrink(s.padding.Vertical())
	if s.box.Orientation() == widgets.Horizontal {
		if !s.box.Fill() {
			inner = retained.Unconstrained
		}
		return lo.SumBy(children, func(c *retained.Widget) int {
			return c.PreferredWidth(inner)
		}) + s.gaps(len(children)) + s.padding.Horizontal()
	}
	widths := lo.Map(children, func(c *retained.Widget, _ int) int {
		return c.PreferredWidth(retained.Unconstrained)
	})
	return lo.Max(widths) + s.padding.Horizontal()
}

func (s *BoxSkin) PreferredHeight(width retained.Constraint) int {
	children := visibleChildren(s.box.Widget)
	inner := width.Shrink(s.padding.Horizontal())
	if s.box.Orientation() == widgets.Vertical {
		if !s.box.Fill() {
			inner = retained.Unconstrained
		}
		return lo.SumBy(children, func(c *retained.Widget) int {
			return c.PreferredHeight(inner)
		}) + s.gaps(len(children)) + s.padding.Vertical()
	}
	heights := lo.Map(children, func(c *retained.Widget, _ int) int {
		return c.PreferredHeight(retained.Unconstrained)
	})
	return lo.Max(heights) + s.padding.Vertical()
}

func (s *BoxSkin) PreferredSize() retained.Size {
	return retained.Size{
		Width:  s.PreferredWidth(retained.Unconstrained),
		Height: s.PreferredHeight(retained.Unconstrained),
	}
}

// arrange returns the bounds of each visible child for a box of the given
// size.
func (s *BoxSkin) arrange(width, height int) ([]*retained.Widget, []image.Rectangle) {
	children := visibleChildren(s.box.Widget)
	bounds := make([]image.Rectangle, len(children))
	innerWidth := max(width-s.padding.Horizontal(), 0)
	innerHeight := max(height-s.padding.Vertical(), 0)
	x, y := s.padding.Left, s.padding.Top

	for i, c := range children {
		if s.box.Orientation() == widgets.Horizontal {
			h := innerHeight
			if !s.box.Fill() {
				h = min(c.PreferredHeight(retained.Unconstrained), innerHeight)
			}
			w := c.PreferredWidth(retained.Limit(h))
			bounds[i] = image.Rect(x, y, x+w, y+h)
			x += w + s.spacing
			continue
		}
		w := innerWidth
		if !s.box.Fill() {
			w = min(c.PreferredWidth(retained.Unconstrained), innerWidth)
		}
		h := c.PreferredHeight(retained.Limit(w))
		bounds[i] = image.Rect(x, y, x+w, y+h)
		y += h + s.spacing
	}
	return children, bounds
}

// Baseline is the first child baseline found, in box coordinates.
func (s *BoxSkin) Baseline(width, height int) retained.Baseline {
	children, bounds := s.arrange(width, height)
	for i, c := range children {
		r := bounds[i]
		if b := c.BaselineFor(r.Dx(), r.Dy()); b.IsPresent() {
			return retained.OffsetBaseline(b, r.Min.Y)
		}
	}
	return retained.NoBaseline()
}

func (s *BoxSkin) Layout() {
	children, bounds := s.arrange(s.Width(), s.Height())
	for i, c := range children {
		c.SetBounds(bounds[i])
	}
}

func (s *BoxSkin) Paint(g render.Graphics) {}
