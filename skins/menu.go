package skins

import (
	"fmt"
	"image"
	"image/color"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/agiangrant/skins/render"
	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/vote"
	"github.com/agiangrant/skins/widgets"
)

const menuSeparatorHeight = 7

// MenuSkin draws menu rows top to bottom and highlights the active one.
type MenuSkin struct {
	retained.SkinBase
	env  Env
	menu *widgets.Menu

	textColor       color.NRGBA
	activeColor     color.NRGBA
	activeTextColor color.NRGBA
	disabledColor   color.NRGBA
	separatorColor  color.NRGBA
	background      color.NRGBA
	itemPadding     retained.Insets
}

// NewMenuSkin creates a menu skin.
func NewMenuSkin(env Env) *MenuSkin {
	env = env.normalized()
	c := env.Theme.Colors
	return &MenuSkin{
		env:             env,
		textColor:       c.Foreground,
		activeColor:     c.SelectionBackground,
		activeTextColor: c.SelectionForeground,
		disabledColor:   c.DisabledForeground,
		separatorColor:  c.Border,
		background:      c.Background,
		itemPadding:     retained.Insets{Top: 2, Left: 8, Bottom: 2, Right: 8},
	}
}

func (s *MenuSkin) Install(c retained.Component) error {
	m, err := install[*widgets.Menu](&s.SkinBase, c)
	if err != nil {
		return err
	}
	s.menu = m
	return nil
}

func (s *MenuSkin) Uninstall() {
	s.menu = nil
	s.SkinBase.Uninstall()
}

func (s *MenuSkin) SetTextColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.textColor = n
	s.Repaint()
	return nil
}

// SetActiveColor changes the highlight behind the active row.
func (s *MenuSkin) SetActiveColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.activeColor = n
	s.Repaint()
	return nil
}

func (s *MenuSkin) SetActiveTextColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.activeTextColor = n
	s.Repaint()
	return nil
}

func (s *MenuSkin) SetSeparatorColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.separatorColor = n
	s.Repaint()
	return nil
}

func (s *MenuSkin) SetBackgroundColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.background = n
	s.Repaint()
	return nil
}

// SetItemPadding changes the space around each row's text.
func (s *MenuSkin) SetItemPadding(p retained.Insets) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("menu item padding: %w", err)
	}
	s.itemPadding = p
	s.Invalidate()
	return nil
}

func (s *MenuSkin) rowHeight(item widgets.MenuItem) int {
	if item.Separator {
		return menuSeparatorHeight
	}
	return s.env.Theme.Font.Height() + s.itemPadding.Vertical()
}

func (s *MenuSkin) PreferredWidth(height retained.Constraint) int {
	widths := lo.Map(s.menu.Items(), func(item widgets.MenuItem, _ int) int {
		return s.env.Theme.Font.Measure(item.Text)
	})
	return lo.Max(widths) + s.itemPadding.Horizontal()
}

func (s *MenuSkin) PreferredHeight(width retained.Constraint) int {
	return lo.SumBy(s.menu.Items(), s.rowHeight)
}

func (s *MenuSkin) PreferredSize() retained.Size {
	return retained.Size{
		Width:  s.PreferredWidth(retained.Unconstrained),
		Height: s.PreferredHeight(retained.Unconstrained),
	}
}

// Baseline is the baseline of the first row when it holds text.
func (s *MenuSkin) Baseline(width, height int) retained.Baseline {
	items := s.menu.Items()
	if len(items) == 0 || items[0].Separator {
		return retained.NoBaseline()
	}
	return centeredBaseline(s.env.Theme.Font, s.rowHeight(items[0]), s.itemPadding)
}

func (s *MenuSkin) rows() []image.Rectangle {
	y := 0
	return lo.Map(s.menu.Items(), func(item widgets.MenuItem, _ int) image.Rectangle {
		r := image.Rect(0, y, s.Width(), y+s.rowHeight(item))
		y = r.Max.Y
		return r
	})
}

// ItemBounds returns the rectangle of row i.
func (s *MenuSkin) ItemBounds(i int) (image.Rectangle, error) {
	rows := s.rows()
	if i < 0 || i >= len(rows) {
		return image.Rectangle{}, fmt.Errorf("%w: menu item %d of %d", retained.ErrIndexOutOfBounds, i, len(rows))
	}
	return rows[i], nil
}

// ItemAt returns the selectable row containing p, or -1 for separators and
// points outside the menu.
func (s *MenuSkin) ItemAt(p image.Point) int {
	items := s.menu.Items()
	for i, r := range s.rows() {
		if p.In(r) && !items[i].Separator {
			return i
		}
	}
	return -1
}

func (s *MenuSkin) Paint(g render.Graphics) {
	g.FillRect(image.Rect(0, 0, s.Width(), s.Height()), s.background)
	items := s.menu.Items()
	blocked := s.menu.IsBlocked()
	for i, r := range s.rows() {
		item := items[i]
		if item.Separator {
			y := r.Min.Y + r.Dy()/2
			g.DrawLine(image.Pt(r.Min.X+2, y), image.Pt(r.Max.X-2, y), s.separatorColor, 1)
			continue
		}
		text := s.textColor
		switch {
		case blocked:
			text = s.disabledColor
		case i == s.menu.ActiveIndex():
			g.FillRect(r, s.activeColor)
			text = s.activeTextColor
		}
		drawText(g, s.env.Theme.Font, item.Text, s.itemPadding.Inset(r), text, false)
	}
}

// ============================================================================
// MenuPopupSkin
// ============================================================================

// MenuPopupSkin frames a menu in a popup window that fades out when it
// closes.
type MenuPopupSkin struct {
	retained.SkinBase
	windowChrome
	log    logrus.FieldLogger
	popup  *widgets.MenuPopup
	fader  *windowAnimation
	remove func()
}

// NewMenuPopupSkin creates a menu popup skin.
func NewMenuPopupSkin(env Env) *MenuPopupSkin {
	env = env.normalized()
	s := &MenuPopupSkin{log: env.logger(retained.KindMenuPopup)}
	s.windowChrome = newWindowChrome(env.Theme, &s.SkinBase)
	s.padding = retained.UniformInsets(1)
	s.fader = newCloseFader(env, s.log, "menu-popup-fade")
	return s
}

func (s *MenuPopupSkin) Install(c retained.Component) error {
	m, err := install[*widgets.MenuPopup](&s.SkinBase, c)
	if err != nil {
		return err
	}
	s.popup = m
	s.remove = m.Open.AddListener(vote.Funcs[bool]{
		Change: func(p *vote.Property[bool], _ bool) {
			if p.Get() {
				packWindow(m.Widget)
			}
		},
	})
	s.fader.install(m.Window)
	return nil
}

func (s *MenuPopupSkin) Uninstall() {
	s.fader.uninstall()
	if s.remove != nil {
		s.remove()
		s.remove = nil
	}
	s.popup = nil
	s.SkinBase.Uninstall()
}

// IsAnimating reports whether the popup is fading out.
func (s *MenuPopupSkin) IsAnimating() bool { return s.fader.isAnimating() }

// Opacity is the popup's current opacity.
func (s *MenuPopupSkin) Opacity() float64 { return s.fader.scale() }

func (s *MenuPopupSkin) PreferredWidth(height retained.Constraint) int {
	return s.preferredWidth(s.popup.Content(), height)
}

func (s *MenuPopupSkin) PreferredHeight(width retained.Constraint) int {
	return s.preferredHeight(s.popup.Content(), width)
}

func (s *MenuPopupSkin) PreferredSize() retained.Size {
	return retained.Size{
		Width:  s.PreferredWidth(retained.Unconstrained),
		Height: s.PreferredHeight(retained.Unconstrained),
	}
}

func (s *MenuPopupSkin) Layout() {
	s.layout(s.popup.Content(), image.Rect(0, 0, s.Width(), s.Height()))
}

func (s *MenuPopupSkin) Paint(g render.Graphics) {
	s.paintBackground(g, image.Rect(0, 0, s.Width(), s.Height()))
}

func (s *MenuPopupSkin) PaintOverlay(g render.Graphics) {
	s.paintBorder(g, image.Rect(0, 0, s.Width(), s.Height()))
}
