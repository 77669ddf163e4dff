package skins

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/agiangrant/skins/render"
	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/theme"
	"github.com/agiangrant/skins/vote"
	"github.com/agiangrant/skins/widgets"
)

const popupArrowSize = 4

// textPart draws a line of text supplied by its owner.
type textPart struct {
	font  *theme.Font
	text  func() string
	color func() color.NRGBA
	// Sample sets the minimum width, so the part does not resize as the text
	// changes.
	sample string
}

func (p *textPart) preferredSize() retained.Size {
	w := max(p.font.Measure(p.text()), p.font.Measure(p.sample))
	return retained.Size{Width: w, Height: p.font.Height()}
}

func (p *textPart) paint(g render.Graphics, r image.Rectangle) {
	drawText(g, p.font, p.text(), r, p.color(), false)
}

// swatchPart draws a bordered rectangle of a single color.
type swatchPart struct {
	color  func() color.NRGBA
	border *color.NRGBA
	size   int
}

func (p *swatchPart) preferredSize() retained.Size {
	return retained.Size{Width: p.size * 2, Height: p.size}
}

func (p *swatchPart) paint(g render.Graphics, r image.Rectangle) {
	g.FillRect(r, p.color())
	g.StrokeRect(r, *p.border, 1)
}

// popupButton is the skin shared by buttons that open a popup window: a
// bevelled face showing a content part and a drop-down arrow. The popup fades
// out when it closes.
type popupButton struct {
	retained.SkinBase
	env    Env
	log    logrus.FieldLogger
	button *retained.Widget
	popup  *widgets.Window
	fader  *windowAnimation

	face          bevel
	border        color.NRGBA
	textColor     color.NRGBA
	disabledColor color.NRGBA
	padding       retained.Insets
	content       part
	pressed       bool
}

func newPopupButton(env Env, kind retained.WidgetKind) popupButton {
	env = env.normalized()
	c := env.Theme.Colors
	log := env.logger(kind)
	return popupButton{
		env:           env,
		log:           log,
		fader:         newCloseFader(env, log, string(kind)+"-popup-fade"),
		face:          newBevel(env.Theme, c.Background),
		border:        c.Border,
		textColor:     c.Foreground,
		disabledColor: c.DisabledForeground,
		padding:       retained.Insets{Top: 3, Left: 4, Bottom: 3, Right: 4},
	}
}

func (b *popupButton) installPopup(button *retained.Widget, popup *widgets.Window) {
	b.button = button
	b.popup = popup
	b.fader.install(popup)
}

func (b *popupButton) uninstallPopup() {
	b.fader.uninstall()
	b.button = nil
	b.popup = nil
	b.SkinBase.Uninstall()
}

// OpenPopup shows the popup on the button's display, under the button.
func (b *popupButton) OpenPopup() (vote.Vote, error) {
	t := b.button.Tree()
	if t == nil {
		return vote.Deny, fmt.Errorf("%w: %s is not attached to a display", retained.ErrIllegalState, b.button)
	}
	at := b.button.ToDisplay(image.Pt(0, b.button.Height()))
	b.popup.SetLocation(at.X, at.Y)
	return b.popup.OpenOn(t.Display())
}

// ClosePopup requests that the popup close. The popup fades out first.
func (b *popupButton) ClosePopup() (vote.Vote, error) {
	return b.popup.Close()
}

// IsAnimating reports whether the popup is fading out.
func (b *popupButton) IsAnimating() bool { return b.fader.isAnimating() }

// PopupOpacity is the popup's current opacity.
func (b *popupButton) PopupOpacity() float64 { return b.fader.scale() }

// SetPressed changes whether the face is drawn pressed in.
func (b *popupButton) SetPressed(pressed bool) {
	if pressed != b.pressed {
		b.pressed = pressed
		b.Repaint()
	}
}

// SetButtonColor changes the face base color. The bevel shades are derived
// from it immediately.
func (b *popupButton) SetButtonColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	b.face.set(b.env.Theme, n)
	b.Repaint()
	return nil
}

// ButtonColors returns the face base color and its derived shades.
func (b *popupButton) ButtonColors() (base, light, shadow color.NRGBA) {
	return b.face.base, b.face.light, b.face.shadow
}

func (b *popupButton) SetBorderColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	b.border = n
	b.Repaint()
	return nil
}

func (b *popupButton) SetTextColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	b.textColor = n
	b.Repaint()
	return nil
}

// SetPadding changes the space around the face content.
func (b *popupButton) SetPadding(p retained.Insets) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("button padding: %w", err)
	}
	b.padding = p
	b.Invalidate()
	return nil
}

// arrowWidth is the room reserved on the right for the drop-down arrow.
func (b *popupButton) arrowWidth() int {
	return popupArrowSize*2 + b.padding.Right
}

func (b *popupButton) PreferredWidth(height retained.Constraint) int {
	return b.content.preferredSize().Width + b.padding.Horizontal() + b.arrowWidth()
}

func (b *popupButton) PreferredHeight(width retained.Constraint) int {
	return b.content.preferredSize().Height + b.padding.Vertical()
}

func (b *popupButton) PreferredSize() retained.Size {
	return retained.Size{
		Width:  b.PreferredWidth(retained.Unconstrained),
		Height: b.PreferredHeight(retained.Unconstrained),
	}
}

func (b *popupButton) currentTextColor() color.NRGBA {
	if b.button != nil && b.button.IsBlocked() {
		return b.disabledColor
	}
	return b.textColor
}

func (b *popupButton) Paint(g render.Graphics) {
	bounds := image.Rect(0, 0, b.Width(), b.Height())
	b.face.fill(g, bounds, b.pressed || b.popup.IsOpen())

	inner := b.padding.Inset(bounds)
	arrow := image.Rect(max(inner.Max.X-popupArrowSize*2, inner.Min.X), inner.Min.Y, inner.Max.X, inner.Max.Y)
	inner.Max.X = max(arrow.Min.X-b.padding.Right, inner.Min.X)
	b.content.paint(g, inner)
	g.FillPolygon(arrowPolygon(arrow, down, popupArrowSize), b.currentTextColor())
}

func (b *popupButton) PaintOverlay(g render.Graphics) {
	bounds := image.Rect(0, 0, b.Width(), b.Height())
	g.StrokeRect(bounds, b.border, 1)
	if b.button.IsFocused() {
		g.DrawFocusRect(bounds.Inset(2), b.env.Theme.Colors.Focus)
	}
}

// ============================================================================
// CalendarButtonSkin
// ============================================================================

// CalendarButtonSkin draws the selected date on a drop-down button.
type CalendarButtonSkin struct {
	popupButton
	calendarButton *widgets.CalendarButton
}

// NewCalendarButtonSkin creates a calendar button skin.
func NewCalendarButtonSkin(env Env) *CalendarButtonSkin {
	s := &CalendarButtonSkin{popupButton: newPopupButton(env, retained.KindCalendarButton)}
	s.content = &textPart{
		font:  s.env.Theme.Font,
		text:  func() string { return s.calendarButton.Text() },
		color: s.currentTextColor,
	}
	return s
}

func (s *CalendarButtonSkin) Install(c retained.Component) error {
	b, err := install[*widgets.CalendarButton](&s.SkinBase, c)
	if err != nil {
		return err
	}
	s.calendarButton = b
	s.content.(*textPart).sample = time.Date(2000, time.December, 31, 0, 0, 0, 0, time.UTC).Format(b.Format())
	s.installPopup(b.Widget, b.Popup())
	return nil
}

func (s *CalendarButtonSkin) Uninstall() {
	s.uninstallPopup()
	s.calendarButton = nil
}

// Baseline is the baseline of the date text.
func (s *CalendarButtonSkin) Baseline(width, height int) retained.Baseline {
	return centeredBaseline(s.env.Theme.Font, height, s.padding)
}

// ============================================================================
// ColorChooserButtonSkin
// ============================================================================

// ColorChooserButtonSkin draws a swatch of the selected color on a drop-down
// button.
type ColorChooserButtonSkin struct {
	popupButton
	chooserButton *widgets.ColorChooserButton
}

// NewColorChooserButtonSkin creates a color chooser button skin.
func NewColorChooserButtonSkin(env Env) *ColorChooserButtonSkin {
	s := &ColorChooserButtonSkin{popupButton: newPopupButton(env, retained.KindColorChooserButton)}
	s.content = &swatchPart{
		color:  func() color.NRGBA { return s.chooserButton.Selected() },
		border: &s.border,
		size:   s.env.Theme.Font.Height(),
	}
	return s
}

func (s *ColorChooserButtonSkin) Install(c retained.Component) error {
	b, err := install[*widgets.ColorChooserButton](&s.SkinBase, c)
	if err != nil {
		return err
	}
	s.chooserButton = b
	s.installPopup(b.Widget, b.Popup())
	return nil
}

func (s *ColorChooserButtonSkin) Uninstall() {
	s.uninstallPopup()
	s.chooserButton = nil
}
