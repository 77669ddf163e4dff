package skins

import (
	"fmt"
	"image"
	"image/color"

	"github.com/agiangrant/skins/render"
	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/widgets"
)

// LabelSkin draws a single line of text.
type LabelSkin struct {
	retained.SkinBase
	env   Env
	label *widgets.Label

	color         color.NRGBA
	disabledColor color.NRGBA
	background    color.NRGBA
	padding       retained.Insets
}

// NewLabelSkin creates a label skin.
func NewLabelSkin(env Env) *LabelSkin {
	env = env.normalized()
	return &LabelSkin{
		env:           env,
		color:         env.Theme.Colors.Foreground,
		disabledColor: env.Theme.Colors.DisabledForeground,
	}
}

func (s *LabelSkin) Install(c retained.Component) error {
	l, err := install[*widgets.Label](&s.SkinBase, c)
	if err != nil {
		return err
	}
	s.label = l
	return nil
}

func (s *LabelSkin) Uninstall() {
	s.label = nil
	s.SkinBase.Uninstall()
}

// SetColor changes the text color.
func (s *LabelSkin) SetColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.color = n
	s.Repaint()
	return nil
}

// SetDisabledColor changes the text color used while the label is disabled.
func (s *LabelSkin) SetDisabledColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.disabledColor = n
	s.Repaint()
	return nil
}

// SetBackgroundColor changes the fill behind the text. A fully transparent
// color disables the fill.
func (s *LabelSkin) SetBackgroundColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.background = n
	s.Repaint()
	return nil
}

// Padding returns the space around the text.
func (s *LabelSkin) Padding() retained.Insets { return s.padding }

// SetPadding changes the space around the text.
func (s *LabelSkin) SetPadding(p retained.Insets) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("label padding: %w", err)
	}
	s.padding = p
	s.Invalidate()
	return nil
}

func (s *LabelSkin) PreferredWidth(height retained.Constraint) int {
	return s.env.Theme.Font.Measure(s.label.Text()) + s.padding.Horizontal()
}

func (s *LabelSkin) PreferredHeight(width retained.Constraint) int {
	return s.env.Theme.Font.Height() + s.padding.Vertical()
}

func (s *LabelSkin) PreferredSize() retained.Size {
	return retained.Size{
		Width:  s.PreferredWidth(retained.Unconstrained),
		Height: s.PreferredHeight(retained.Unconstrained),
	}
}

func (s *LabelSkin) Baseline(width, height int) retained.Baseline {
	return centeredBaseline(s.env.Theme.Font, height, s.padding)
}

func (s *LabelSkin) Paint(g render.Graphics) {
	bounds := image.Rect(0, 0, s.Width(), s.Height())
	if s.background.A > 0 {
		g.FillRect(bounds, s.background)
	}
	c := s.color
	if s.label.IsBlocked() {
		c = s.disabledColor
	}
	drawText(g, s.env.Theme.Font, s.label.Text(), s.padding.Inset(bounds), c, false)
}
