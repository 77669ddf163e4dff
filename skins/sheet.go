package skins

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/agiangrant/skins/render"
	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/transition"
	"github.com/agiangrant/skins/vote"
	"github.com/agiangrant/skins/widgets"
)

const sheetGrip = 8

// SheetSkin slides a sheet down out of the top edge of its anchor when it
// opens and back up when it closes. A close requested while the sheet is
// still sliding in reverses the slide.
type SheetSkin struct {
	retained.SkinBase
	windowChrome
	env   Env
	log   logrus.FieldLogger
	sheet *widgets.Sheet
	slide *windowAnimation

	offset       *retained.TranslationDecorator
	removeAlign  func()
	unlinkAnchor func()

	resizing    bool
	resizeStart retained.Size
}

// NewSheetSkin creates a sheet skin.
func NewSheetSkin(env Env) *SheetSkin {
	env = env.normalized()
	s := &SheetSkin{env: env, log: env.logger(retained.KindSheet)}
	s.windowChrome = newWindowChrome(env.Theme, &s.SkinBase)
	s.slide = &windowAnimation{
		name:        "slide",
		timing:      env.Theme.Slide,
		log:         s.log,
		animateOpen: true,
		start:       s.startSlide,
		update:      s.updateSlide,
		finish:      func(*transition.Transition, *widgets.Window) { s.offset = nil },
	}
	return s
}

func (s *SheetSkin) Install(c retained.Component) error {
	sh, err := install[*widgets.Sheet](&s.SkinBase, c)
	if err != nil {
		return err
	}
	s.sheet = sh
	// Alignment is registered before the slide so the sheet has its final
	// bounds when the slide starts.
	s.removeAlign = s.sheet.Open.AddListener(sheetAlignment{s})
	s.slide.install(sh.Window)
	return nil
}

func (s *SheetSkin) Uninstall() {
	s.slide.uninstall()
	s.unlink()
	if s.removeAlign != nil {
		s.removeAlign()
		s.removeAlign = nil
	}
	s.sheet = nil
	s.SkinBase.Uninstall()
}

// IsAnimating reports whether the sheet is sliding.
func (s *SheetSkin) IsAnimating() bool { return s.slide.isAnimating() }

// Scale is the fraction of the sheet slid into view.
func (s *SheetSkin) Scale() float64 { return s.slide.scale() }

// Offset returns the current vertical slide offset, zero when not sliding.
func (s *SheetSkin) Offset() int {
	if s.offset == nil {
		return 0
	}
	return s.offset.Y
}

func (s *SheetSkin) startSlide(t *transition.Transition, w *widgets.Window) {
	s.offset = retained.NewTranslationDecorator(0, 0, true)
	if err := t.Attach(w.Widget, s.offset); err != nil {
		s.log.WithError(err).Warn("failed to translate sheet")
	}
	t.Disable(w.Content())
}

func (s *SheetSkin) updateSlide(_ *transition.Transition, w *widgets.Window) {
	if s.offset != nil {
		s.offset.SetOffset(0, -scaled(w.Height(), 1-s.slide.scale()))
	}
	w.Repaint()
}

// ============================================================================
// Anchor alignment
// ============================================================================

// sheetAlignment keeps an open sheet centered under the top edge of its
// anchor.
type sheetAlignment struct {
	skin *SheetSkin
}

func (a sheetAlignment) PreviewChange(_ *vote.Property[bool], _ bool) vote.Vote {
	return vote.Approve
}

func (a sheetAlignment) ChangeVetoed(*vote.Property[bool], vote.Vote) {}

func (a sheetAlignment) Changed(p *vote.Property[bool], _ bool) {
	s := a.skin
	if !p.Get() {
		s.unlink()
		return
	}
	anchor := s.sheet.Anchor()
	if anchor == nil {
		packWindow(s.sheet.Widget)
		return
	}
	s.unlink()
	s.unlinkAnchor = anchor.AddSizeListener(func(*retained.Widget, retained.Size) { s.align() })
	s.align()
}

func (s *SheetSkin) unlink() {
	if s.unlinkAnchor != nil {
		s.unlinkAnchor()
		s.unlinkAnchor = nil
	}
}

// align sizes the sheet to its preferred size, clamped to the anchor, and
// centers it horizontally on the anchor's top edge.
func (s *SheetSkin) align() {
	anchor := s.sheet.Anchor()
	if anchor == nil {
		return
	}
	pref := s.sheet.PreferredSize()
	width := min(pref.Width, anchor.Width())
	height := min(pref.Height, anchor.Height())
	if s.sheet.IsResizable() && s.sheet.Width() > 0 {
		width, height = min(s.sheet.Width(), anchor.Width()), min(s.sheet.Height(), anchor.Height())
	}
	origin := anchor.ToDisplay(image.Point{})
	if parent := s.sheet.Parent(); parent != nil {
		origin = origin.Sub(parent.ToDisplay(image.Point{}))
	}
	x := origin.X + (anchor.Width()-width)/2
	s.sheet.SetBounds(image.Rect(x, origin.Y, x+width, origin.Y+height))
}

// ============================================================================
// Resize
// ============================================================================

// ResizeHandleBounds returns the grip in the bottom-right corner, or an empty
// rectangle for a sheet that cannot be resized.
func (s *SheetSkin) ResizeHandleBounds() image.Rectangle {
	if !s.sheet.IsResizable() {
		return image.Rectangle{}
	}
	w, h := s.Width(), s.Height()
	return image.Rect(max(w-sheetGrip, 0), max(h-sheetGrip, 0), w, h)
}

// BeginResize starts a resize drag. It fails with ErrIllegalState when the
// sheet is not resizable, is sliding, or is already being resized.
func (s *SheetSkin) BeginResize() error {
	switch {
	case !s.sheet.IsResizable():
		return fmt.Errorf("%w: sheet is not resizable", retained.ErrIllegalState)
	case s.IsAnimating():
		return fmt.Errorf("%w: sheet is sliding", retained.ErrIllegalState)
	case s.resizing:
		return fmt.Errorf("%w: sheet resize already in progress", retained.ErrIllegalState)
	}
	s.resizing = true
	s.resizeStart = s.sheet.Size()
	return nil
}

// ResizeBy sets the sheet size to the size at BeginResize plus (dx, dy),
// never smaller than the preferred size.
func (s *SheetSkin) ResizeBy(dx, dy int) error {
	if !s.resizing {
		return fmt.Errorf("%w: no sheet resize in progress", retained.ErrIllegalState)
	}
	pref := s.sheet.PreferredSize()
	s.sheet.SetSize(max(s.resizeStart.Width+dx, pref.Width), max(s.resizeStart.Height+dy, pref.Height))
	return nil
}

// EndResize finishes a resize drag.
func (s *SheetSkin) EndResize() {
	s.resizing = false
}

// ============================================================================
// Layout and paint
// ============================================================================

func (s *SheetSkin) PreferredWidth(height retained.Constraint) int {
	return s.preferredWidth(s.sheet.Content(), height)
}

func (s *SheetSkin) PreferredHeight(width retained.Constraint) int {
	return s.preferredHeight(s.sheet.Content(), width)
}

func (s *SheetSkin) PreferredSize() retained.Size {
	return retained.Size{
		Width:  s.PreferredWidth(retained.Unconstrained),
		Height: s.PreferredHeight(retained.Unconstrained),
	}
}

func (s *SheetSkin) Layout() {
	s.layout(s.sheet.Content(), image.Rect(0, 0, s.Width(), s.Height()))
}

func (s *SheetSkin) Paint(g render.Graphics) {
	s.paintBackground(g, image.Rect(0, 0, s.Width(), s.Height()))
}

// PaintOverlay draws the border and, for resizable sheets, the grip.
func (s *SheetSkin) PaintOverlay(g render.Graphics) {
	s.paintBorder(g, image.Rect(0, 0, s.Width(), s.Height()))
	grip := s.ResizeHandleBounds()
	for i := 2; i < grip.Dx(); i += 3 {
		g.DrawLine(image.Pt(grip.Max.X-i, grip.Max.Y-1), image.Pt(grip.Max.X-1, grip.Max.Y-i), s.border, 1)
	}
}
