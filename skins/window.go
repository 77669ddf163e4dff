package skins

import (
	"fmt"
	"image"
	"image/color"

	"github.com/agiangrant/skins/render"
	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/theme"
	"github.com/agiangrant/skins/vote"
	"github.com/agiangrant/skins/widgets"
)

// windowChrome is the border, background and padding shared by the window
// skins. Its setters are promoted onto every skin that embeds it.
type windowChrome struct {
	owner      *retained.SkinBase
	border     color.NRGBA
	background color.NRGBA
	padding    retained.Insets
	thickness  int
}

func newWindowChrome(t *theme.Theme, owner *retained.SkinBase) windowChrome {
	return windowChrome{
		owner:      owner,
		border:     t.Colors.Border,
		background: t.Colors.Background,
		padding:    retained.UniformInsets(4),
		thickness:  1,
	}
}

// SetBorderColor changes the window border color.
func (c *windowChrome) SetBorderColor(col color.Color) error {
	n, err := requireColor(col)
	if err != nil {
		return err
	}
	c.border = n
	c.owner.Repaint()
	return nil
}

// SetBackgroundColor changes the window fill.
func (c *windowChrome) SetBackgroundColor(col color.Color) error {
	n, err := requireColor(col)
	if err != nil {
		return err
	}
	c.background = n
	c.owner.Repaint()
	return nil
}

// Padding returns the space between the border and the content.
func (c *windowChrome) Padding() retained.Insets { return c.padding }

// SetPadding changes the space between the border and the content.
func (c *windowChrome) SetPadding(p retained.Insets) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("window padding: %w", err)
	}
	c.padding = p
	c.owner.Invalidate()
	return nil
}

// insets is the padding plus the border on every edge.
func (c *windowChrome) insets() retained.Insets {
	return retained.Insets{
		Top:    c.padding.Top + c.thickness,
		Left:   c.padding.Left + c.thickness,
		Bottom: c.padding.Bottom + c.thickness,
		Right:  c.padding.Right + c.thickness,
	}
}

func (c *windowChrome) preferredWidth(content *retained.Widget, height retained.Constraint) int {
	in := c.insets()
	if content == nil {
		return in.Horizontal()
	}
	return content.PreferredWidth(height.Shrink(in.Vertical())) + in.Horizontal()
}

func (c *windowChrome) preferredHeight(content *retained.Widget, width retained.Constraint) int {
	in := c.insets()
	if content == nil {
		return in.Vertical()
	}
	return content.PreferredHeight(width.Shrink(in.Horizontal())) + in.Vertical()
}

// layout fills area, minus the chrome, with content.
func (c *windowChrome) layout(content *retained.Widget, area image.Rectangle) {
	if content != nil {
		content.SetBounds(c.insets().Inset(area))
	}
}

func (c *windowChrome) paintBackground(g render.Graphics, r image.Rectangle) {
	g.FillRect(r, c.background)
}

func (c *windowChrome) paintBorder(g render.Graphics, r image.Rectangle) {
	g.StrokeRect(r, c.border, c.thickness)
}

// packWindow gives a window that has never been sized its preferred size.
func packWindow(w *retained.Widget) {
	if w.Width() == 0 && w.Height() == 0 {
		size := w.PreferredSize()
		w.SetSize(size.Width, size.Height)
	}
}

// ============================================================================
// PopupSkin
// ============================================================================

// PopupSkin draws a plain popup window: a bordered background around the
// content. Popups are packed to their preferred size when they open.
type PopupSkin struct {
	retained.SkinBase
	windowChrome
	window *widgets.Window
	remove func()
}

// NewPopupSkin creates a popup skin.
func NewPopupSkin(env Env) *PopupSkin {
	env = env.normalized()
	s := &PopupSkin{}
	s.windowChrome = newWindowChrome(env.Theme, &s.SkinBase)
	return s
}

func (s *PopupSkin) Install(c retained.Component) error {
	w, err := install[*widgets.Window](&s.SkinBase, c)
	if err != nil {
		return err
	}
	s.window = w
	s.remove = w.Open.AddListener(vote.Funcs[bool]{
		Change: func(p *vote.Property[bool], _ bool) {
			if p.Get() {
				packWindow(w.Widget)
			}
		},
	})
	return nil
}

func (s *PopupSkin) Uninstall() {
	if s.remove != nil {
		s.remove()
		s.remove = nil
	}
	s.window = nil
	s.SkinBase.Uninstall()
}

func (s *PopupSkin) PreferredWidth(height retained.Constraint) int {
	return s.preferredWidth(s.window.Content(), height)
}

func (s *PopupSkin) PreferredHeight(width retained.Constraint) int {
	return s.preferredHeight(s.window.Content(), width)
}

func (s *PopupSkin) PreferredSize() retained.Size {
	return retained.Size{
		Width:  s.PreferredWidth(retained.Unconstrained),
		Height: s.PreferredHeight(retained.Unconstrained),
	}
}

func (s *PopupSkin) Layout() {
	s.layout(s.window.Content(), image.Rect(0, 0, s.Width(), s.Height()))
}

func (s *PopupSkin) Paint(g render.Graphics) {
	s.paintBackground(g, image.Rect(0, 0, s.Width(), s.Height()))
}

func (s *PopupSkin) PaintOverlay(g render.Graphics) {
	s.paintBorder(g, image.Rect(0, 0, s.Width(), s.Height()))
}

// ============================================================================
// FrameSkin
// ============================================================================

// FrameSkin draws a top-level window with a title bar.
type FrameSkin struct {
	retained.SkinBase
	windowChrome
	env    Env
	frame  *widgets.Frame
	remove func()

	titleBar      bevel
	titleColor    color.NRGBA
	disabledColor color.NRGBA
	titlePadding  retained.Insets
}

// NewFrameSkin creates a frame skin.
func NewFrameSkin(env Env) *FrameSkin {
	env = env.normalized()
	c := env.Theme.Colors
	s := &FrameSkin{
		env:           env,
		titleBar:      newBevel(env.Theme, c.Accent),
		titleColor:    c.SelectionForeground,
		disabledColor: c.DisabledForeground,
		titlePadding:  retained.Insets{Top: 3, Left: 6, Bottom: 3, Right: 6},
	}
	s.windowChrome = newWindowChrome(env.Theme, &s.SkinBase)
	return s
}

func (s *FrameSkin) Install(c retained.Component) error {
	f, err := install[*widgets.Frame](&s.SkinBase, c)
	if err != nil {
		return err
	}
	s.frame = f
	s.remove = f.Open.AddListener(vote.Funcs[bool]{
		Change: func(p *vote.Property[bool], _ bool) {
			if p.Get() {
				packWindow(f.Widget)
			}
		},
	})
	return nil
}

func (s *FrameSkin) Uninstall() {
	if s.remove != nil {
		s.remove()
		s.remove = nil
	}
	s.frame = nil
	s.SkinBase.Uninstall()
}

// SetTitleBarColor changes the title bar base color. The bevel shades are
// derived from it immediately.
func (s *FrameSkin) SetTitleBarColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.titleBar.set(s.env.Theme, n)
	s.Repaint()
	return nil
}

func (s *FrameSkin) SetTitleColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.titleColor = n
	s.Repaint()
	return nil
}

func (s *FrameSkin) titleBarHeight() int {
	return s.env.Theme.Font.Height() + s.titlePadding.Vertical()
}

// TitleBarBounds returns the title bar rectangle in the frame's space.
func (s *FrameSkin) TitleBarBounds() image.Rectangle {
	t := s.thickness
	return image.Rect(t, t, max(s.Width()-t, t), t+s.titleBarHeight())
}

func (s *FrameSkin) PreferredWidth(height retained.Constraint) int {
	title := s.env.Theme.Font.Measure(s.frame.Title()) + s.titlePadding.Horizontal() + 2*s.thickness
	content := s.preferredWidth(s.frame.Content(), height.Shrink(s.titleBarHeight()))
	return max(title, content)
}

func (s *FrameSkin) PreferredHeight(width retained.Constraint) int {
	return s.titleBarHeight() + s.preferredHeight(s.frame.Content(), width)
}

func (s *FrameSkin) PreferredSize() retained.Size {
	return retained.Size{
		Width:  s.PreferredWidth(retained.Unconstrained),
		Height: s.PreferredHeight(retained.Unconstrained),
	}
}

// Baseline is the baseline of the title.
func (s *FrameSkin) Baseline(width, height int) retained.Baseline {
	return retained.OffsetBaseline(
		centeredBaseline(s.env.Theme.Font, s.titleBarHeight(), s.titlePadding), s.thickness)
}

func (s *FrameSkin) Layout() {
	s.layout(s.frame.Content(), image.Rect(0, s.titleBarHeight(), s.Width(), s.Height()))
}

func (s *FrameSkin) Paint(g render.Graphics) {
	s.paintBackground(g, image.Rect(0, 0, s.Width(), s.Height()))
	bar := s.TitleBarBounds()
	s.titleBar.fill(g, bar, false)
	c := s.titleColor
	if s.frame.IsBlocked() {
		c = s.disabledColor
	}
	drawText(g, s.env.Theme.Font, s.frame.Title(), s.titlePadding.Inset(bar), c, false)
}

func (s *FrameSkin) PaintOverlay(g render.Graphics) {
	s.paintBorder(g, image.Rect(0, 0, s.Width(), s.Height()))
	if s.frame.IsFocused() {
		g.DrawFocusRect(s.TitleBarBounds().Inset(1), s.env.Theme.Colors.Focus)
	}
}
