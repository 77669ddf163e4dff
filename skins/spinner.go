package skins

import (
	"fmt"
	"image"
	"image/color"

	"github.com/samber/lo"

	"github.com/agiangrant/skins/render"
	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/widgets"
)

// SpinnerSkin draws the selected item in a sunken field with a pair of
// stacked arrow buttons on its right edge.
type SpinnerSkin struct {
	retained.SkinBase
	env     Env
	spinner *widgets.Spinner

	buttonFace    bevel
	field         color.NRGBA
	textColor     color.NRGBA
	disabledColor color.NRGBA
	borderColor   color.NRGBA
	padding       retained.Insets
	// Arrow colors for the enabled and exhausted directions.
	upArrow, downArrow color.NRGBA
	up, down           arrowButton
}

// NewSpinnerSkin creates a spinner skin.
func NewSpinnerSkin(env Env) *SpinnerSkin {
	env = env.normalized()
	c := env.Theme.Colors
	s := &SpinnerSkin{
		env:           env,
		buttonFace:    newBevel(env.Theme, c.Background),
		field:         env.Theme.Brighter(c.Background),
		textColor:     c.Foreground,
		disabledColor: c.DisabledForeground,
		borderColor:   c.Border,
		padding:       retained.Insets{Top: 2, Left: 4, Bottom: 2, Right: 4},
	}
	s.up = arrowButton{dir: up, face: &s.buttonFace, border: &s.borderColor, arrow: &s.upArrow, size: 3}
	s.down = arrowButton{dir: down, face: &s.buttonFace, border: &s.borderColor, arrow: &s.downArrow, size: 3}
	return s
}

func (s *SpinnerSkin) Install(c retained.Component) error {
	sp, err := install[*widgets.Spinner](&s.SkinBase, c)
	if err != nil {
		return err
	}
	s.spinner = sp
	return nil
}

func (s *SpinnerSkin) Uninstall() {
	s.up.pressed, s.down.pressed = false, false
	s.spinner = nil
	s.SkinBase.Uninstall()
}

// SetButtonColor changes the arrow button base color. The bevel shades are
// derived from it immediately.
func (s *SpinnerSkin) SetButtonColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.buttonFace.set(s.env.Theme, n)
	s.Repaint()
	return nil
}

// ButtonColors returns the arrow button base color and its derived shades.
func (s *SpinnerSkin) ButtonColors() (base, light, shadow color.NRGBA) {
	return s.buttonFace.base, s.buttonFace.light, s.buttonFace.shadow
}

// SetFieldColor changes the fill behind the selected item.
func (s *SpinnerSkin) SetFieldColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.field = n
	s.Repaint()
	return nil
}

func (s *SpinnerSkin) SetTextColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.textColor = n
	s.Repaint()
	return nil
}

func (s *SpinnerSkin) SetBorderColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.borderColor = n
	s.Repaint()
	return nil
}

func (s *SpinnerSkin) SetPadding(p retained.Insets) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("spinner padding: %w", err)
	}
	s.padding = p
	s.Invalidate()
	return nil
}

func (s *SpinnerSkin) buttonWidth() int {
	return max(s.up.preferredSize().Width, s.down.preferredSize().Width)
}

func (s *SpinnerSkin) PreferredWidth(height retained.Constraint) int {
	text := lo.Max(lo.Map(s.spinner.Items(), func(item string, _ int) int {
		return s.env.Theme.Font.Measure(item)
	}))
	return text + s.padding.Horizontal() + s.buttonWidth()
}

func (s *SpinnerSkin) PreferredHeight(width retained.Constraint) int {
	text := s.env.Theme.Font.Height() + s.padding.Vertical()
	return max(text, s.up.preferredSize().Height+s.down.preferredSize().Height)
}

func (s *SpinnerSkin) PreferredSize() retained.Size {
	return retained.Size{
		Width:  s.PreferredWidth(retained.Unconstrained),
		Height: s.PreferredHeight(retained.Unconstrained),
	}
}

// Baseline is the baseline of the selected item's text.
func (s *SpinnerSkin) Baseline(width, height int) retained.Baseline {
	return centeredBaseline(s.env.Theme.Font, height, s.padding)
}

// FieldBounds returns the area showing the selected item.
func (s *SpinnerSkin) FieldBounds() image.Rectangle {
	return image.Rect(0, 0, max(s.Width()-s.buttonWidth(), 0), s.Height())
}

// UpButtonBounds returns the rectangle of the button that selects the next
// item.
func (s *SpinnerSkin) UpButtonBounds() image.Rectangle {
	x := max(s.Width()-s.buttonWidth(), 0)
	return image.Rect(x, 0, s.Width(), s.Height()/2)
}

// DownButtonBounds returns the rectangle of the button that selects the
// previous item.
func (s *SpinnerSkin) DownButtonBounds() image.Rectangle {
	x := max(s.Width()-s.buttonWidth(), 0)
	return image.Rect(x, s.Height()/2, s.Width(), s.Height())
}

// ButtonAt returns 1 when p hits the up button, -1 for the down button and 0
// otherwise.
func (s *SpinnerSkin) ButtonAt(p image.Point) int {
	switch {
	case p.In(s.UpButtonBounds()):
		return 1
	case p.In(s.DownButtonBounds()):
		return -1
	}
	return 0
}

// SetPressed draws the button for step pressed in, releasing the other one.
// A step of 0 releases both.
func (s *SpinnerSkin) SetPressed(step int) {
	upPressed, downPressed := step > 0, step < 0
	if upPressed == s.up.pressed && downPressed == s.down.pressed {
		return
	}
	s.up.pressed, s.down.pressed = upPressed, downPressed
	s.Repaint()
}

// canStep reports whether stepping by d would move the selection.
func (s *SpinnerSkin) canStep(d int) bool {
	n := s.spinner.ItemCount()
	if n == 0 || s.spinner.IsBlocked() {
		return false
	}
	if s.spinner.IsCircular() {
		return n > 1
	}
	i := s.spinner.SelectedIndex() + d
	return i >= 0 && i < n
}

func (s *SpinnerSkin) arrowColor(d int) color.NRGBA {
	if s.canStep(d) {
		return s.textColor
	}
	return s.disabledColor
}

func (s *SpinnerSkin) Paint(g render.Graphics) {
	field := s.FieldBounds()
	g.FillRect(field, s.field)
	text := s.textColor
	if s.spinner.IsBlocked() {
		text = s.disabledColor
	}
	drawText(g, s.env.Theme.Font, s.spinner.SelectedItem(), s.padding.Inset(field), text, false)

	s.upArrow, s.downArrow = s.arrowColor(1), s.arrowColor(-1)
	s.up.paint(g, s.UpButtonBounds())
	s.down.paint(g, s.DownButtonBounds())
}

func (s *SpinnerSkin) PaintOverlay(g render.Graphics) {
	g.StrokeRect(image.Rect(0, 0, s.Width(), s.Height()), s.borderColor, 1)
	if s.spinner.IsFocused() {
		g.DrawFocusRect(s.FieldBounds().Inset(2), s.env.Theme.Colors.Focus)
	}
}
