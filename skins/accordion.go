package skins

import (
	"fmt"
	"image"
	"image/color"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/agiangrant/skins/render"
	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/transition"
	"github.com/agiangrant/skins/vote"
	"github.com/agiangrant/skins/widgets"
)

const accordionBorder = 1

// AccordionSkin stacks a header button per panel and shows the selected
// panel between its header and the next. A selection change cross-fades the
// old panel out while the new one grows in.
type AccordionSkin struct {
	retained.SkinBase
	env       Env
	log       logrus.FieldLogger
	accordion *widgets.Accordion
	removes   []func()

	header        bevel
	selection     bevel
	textColor     color.NRGBA
	selectedText  color.NRGBA
	disabledColor color.NRGBA
	borderColor   color.NRGBA
	background    color.NRGBA
	headerPadding retained.Insets
	padding       retained.Insets

	// Selection change state. from and to are panel indices; the transition
	// runs forward towards to and reversed towards from.
	tr       *transition.Transition
	from, to int
	clips    map[*retained.Widget]*retained.ClipDecorator
	ending   bool
}

// NewAccordionSkin creates an accordion skin.
func NewAccordionSkin(env Env) *AccordionSkin {
	env = env.normalized()
	c := env.Theme.Colors
	return &AccordionSkin{
		env:           env,
		log:           env.logger(retained.KindAccordion),
		header:        newBevel(env.Theme, c.Background),
		selection:     newBevel(env.Theme, c.SelectionBackground),
		textColor:     c.Foreground,
		selectedText:  c.SelectionForeground,
		disabledColor: c.DisabledForeground,
		borderColor:   c.Border,
		background:    c.Background,
		headerPadding: retained.Insets{Top: 3, Left: 4, Bottom: 3, Right: 4},
		padding:       retained.UniformInsets(4),
	}
}

func (s *AccordionSkin) Install(c retained.Component) error {
	a, err := install[*widgets.Accordion](&s.SkinBase, c)
	if err != nil {
		return err
	}
	s.accordion = a
	s.removes = []func(){
		a.SelectedIndex.AddListener(vote.Funcs[int]{
			Preview: s.previewSelectedIndexChange,
			Vetoed:  s.selectedIndexChangeVetoed,
			Change:  s.selectedIndexChanged,
		}),
		a.AddListener(accordionStructure{s}),
		a.AddSizeListener(func(*retained.Widget, retained.Size) { s.endTransition() }),
	}
	return nil
}

func (s *AccordionSkin) Uninstall() {
	s.endTransition()
	for _, remove := range s.removes {
		remove()
	}
	s.removes = nil
	s.accordion = nil
	s.SkinBase.Uninstall()
}

// accordionStructure resolves a running cross-fade before the panel indices
// it refers to shift.
type accordionStructure struct {
	skin *AccordionSkin
}

func (l accordionStructure) PanelInserted(*widgets.Accordion, int) {
	l.skin.endTransition()
	l.skin.Invalidate()
}

func (l accordionStructure) PanelRemoving(_ *widgets.Accordion, _ int, panel *retained.Widget) {
	l.skin.endTransition()
	panel.SetVisible(true)
	l.skin.Invalidate()
}

// ============================================================================
// Colors and padding
// ============================================================================

// SetHeaderColor changes the base color of unselected headers.
func (s *AccordionSkin) SetHeaderColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.header.set(s.env.Theme, n)
	s.Repaint()
	return nil
}

// SetSelectionColor changes the base color of the selected header.
func (s *AccordionSkin) SetSelectionColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.selection.set(s.env.Theme, n)
	s.Repaint()
	return nil
}

// HeaderColors returns the unselected header base color and its derived
// shades.
func (s *AccordionSkin) HeaderColors() (base, light, shadow color.NRGBA) {
	return s.header.base, s.header.light, s.header.shadow
}

func (s *AccordionSkin) SetTextColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.textColor = n
	s.Repaint()
	return nil
}

func (s *AccordionSkin) SetSelectedTextColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.selectedText = n
	s.Repaint()
	return nil
}

func (s *AccordionSkin) SetBorderColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.borderColor = n
	s.Repaint()
	return nil
}

func (s *AccordionSkin) SetBackgroundColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.background = n
	s.Repaint()
	return nil
}

// SetPadding changes the space around the selected panel.
func (s *AccordionSkin) SetPadding(p retained.Insets) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("accordion padding: %w", err)
	}
	s.padding = p
	s.Invalidate()
	return nil
}

// ============================================================================
// Selection change
// ============================================================================

// IsAnimating reports whether a selection change is in flight.
func (s *AccordionSkin) IsAnimating() bool {
	return s.tr != nil && s.tr.IsRunning()
}

// Scale is the fraction of the content area given to the incoming panel.
func (s *AccordionSkin) Scale() float64 {
	if !s.IsAnimating() {
		return 1
	}
	return s.tr.Ease(s.env.Theme.Selection.Easing)
}

// heading is the panel the running transition is moving towards.
func (s *AccordionSkin) heading() int {
	if s.tr.IsReversed() {
		return s.from
	}
	return s.to
}

func (s *AccordionSkin) previewSelectedIndexChange(p *vote.Property[int], index int) vote.Vote {
	if s.tr != nil {
		if !s.tr.IsRunning() {
			return vote.Approve
		}
		// Any other panel waits for the running cross-fade to finish.
		if (index == s.from || index == s.to) && index != s.heading() {
			s.reverse()
		}
		return vote.Defer
	}

	from := p.Get()
	if index == from || !s.begin(from, index) {
		return vote.Approve
	}
	return vote.Defer
}

// begin starts a cross-fade from panel from to panel to. It reports false
// when the accordion cannot animate right now.
func (s *AccordionSkin) begin(from, to int) bool {
	timing := s.env.Theme.Selection
	sched := s.Scheduler()
	if from < 0 || to < 0 || !s.IsShowing() || sched == nil || timing.Duration <= 0 {
		return false
	}

	opts := timing.Options("selection")
	opts.Log = s.log
	s.from, s.to = from, to
	s.tr = transition.New(sched, opts, transition.Hooks{
		Start:  s.startSelectionChange,
		Update: s.updateSelectionChange,
		Finish: s.selectionChangeFinished,
	})
	if err := s.tr.Start(s.selectionChangeCompleted); err != nil {
		s.log.WithError(err).Warn("failed to start selection change transition")
		s.tr = nil
		return false
	}
	return true
}

func (s *AccordionSkin) reverse() {
	if err := s.tr.Reverse(); err != nil {
		s.log.WithError(err).Warn("failed to reverse selection change transition")
	}
}

func (s *AccordionSkin) selectedIndexChangeVetoed(p *vote.Property[int], reason vote.Vote) {
	if reason != vote.Deny || s.tr == nil {
		return
	}
	// A denied request that left the deferred change pending heads back to it.
	if pending, ok := p.Pending().Get(); ok && s.tr.IsRunning() {
		if (pending == s.from || pending == s.to) && pending != s.heading() {
			s.reverse()
		}
		return
	}
	tr := s.tr
	s.tr = nil
	tr.Stop()
	s.clips = nil
	s.Invalidate()
	s.Repaint()
}

// selectionChangeFinished drops a transition that stopped on its own, which
// happens when a hook panics, and cancels the change it was deferring.
func (s *AccordionSkin) selectionChangeFinished(t *transition.Transition) {
	if t != s.tr || t.State() != transition.Stopped {
		return
	}
	s.tr = nil
	s.clips = nil
	if err := s.accordion.SelectedIndex.Veto(); err != nil {
		s.log.WithError(err).Warn("failed to cancel selection change")
	}
	s.Invalidate()
	s.Repaint()
}

func (s *AccordionSkin) selectedIndexChanged(*vote.Property[int], int) {
	s.Invalidate()
	s.Repaint()
}

func (s *AccordionSkin) startSelectionChange(*transition.Transition) {
	s.clips = make(map[*retained.Widget]*retained.ClipDecorator, 2)
	s.clipPanel(s.from)
	s.clipPanel(s.to)
}

// clipPanel attaches a clip decorator to panel i for the rest of the
// transition.
func (s *AccordionSkin) clipPanel(i int) {
	panel, err := s.accordion.Panel(i)
	if err != nil {
		s.log.WithError(err).Warn("failed to clip accordion panel")
		return
	}
	if _, ok := s.clips[panel]; ok {
		return
	}
	clip := retained.NewClipDecorator(image.Rectangle{})
	if err := s.tr.Attach(panel, clip); err != nil {
		s.log.WithError(err).Warn("failed to clip accordion panel")
		return
	}
	s.clips[panel] = clip
}

func (s *AccordionSkin) updateSelectionChange(*transition.Transition) {
	s.Invalidate()
	s.Repaint()
}

// selectionChangeCompleted commits the deferred change. When the pending panel
// is not the one the cross-fade arrived at, a second cross-fade carries on
// from there and commits it instead.
func (s *AccordionSkin) selectionChangeCompleted(*transition.Transition) {
	p := s.accordion.SelectedIndex
	arrived := s.heading()
	if v, ok := p.Pending().Get(); ok {
		if !s.ending && v != arrived && s.begin(arrived, v) {
			return
		}
		if _, err := p.Set(v); err != nil {
			s.log.WithError(err).Error("failed to commit selected index")
		}
	}
	s.tr = nil
	s.clips = nil
	s.Invalidate()
	s.Repaint()
}

// endTransition jumps a running cross-fade to its end and commits the pending
// panel without a follow-up cross-fade.
func (s *AccordionSkin) endTransition() {
	if s.tr != nil {
		s.ending = true
		s.tr.End()
		s.ending = false
		s.tr = nil
	}
}

// ============================================================================
// Layout
// ============================================================================

func (s *AccordionSkin) headerHeight() int {
	return s.env.Theme.Font.Height() + s.headerPadding.Vertical()
}

func (s *AccordionSkin) panels() []*retained.Widget {
	return lo.Times(s.accordion.PanelCount(), func(i int) *retained.Widget {
		p, _ := s.accordion.Panel(i)
		return p
	})
}

func (s *AccordionSkin) labels() []string {
	return lo.Times(s.accordion.PanelCount(), func(i int) string {
		l, _ := s.accordion.Label(i)
		return l
	})
}

func (s *AccordionSkin) PreferredWidth(height retained.Constraint) int {
	headers := lo.Map(s.labels(), func(l string, _ int) int {
		return s.env.Theme.Font.Measure(l) + s.headerPadding.Horizontal()
	})
	fixed := 2*accordionBorder + s.accordion.PanelCount()*s.headerHeight() + s.padding.Vertical()
	panels := lo.Map(s.panels(), func(p *retained.Widget, _ int) int {
		return p.PreferredWidth(height.Shrink(fixed)) + s.padding.Horizontal()
	})
	return max(lo.Max(headers), lo.Max(panels)) + 2*accordionBorder
}

// PreferredHeight reserves room for the tallest panel so the accordion does
// not change size with the selection.
func (s *AccordionSkin) PreferredHeight(width retained.Constraint) int {
	n := s.accordion.PanelCount()
	height := 2*accordionBorder + n*s.headerHeight()
	if n > 0 {
		inner := width.Shrink(2*accordionBorder + s.padding.Horizontal())
		panels := lo.Map(s.panels(), func(p *retained.Widget, _ int) int {
			return p.PreferredHeight(inner)
		})
		height += lo.Max(panels) + s.padding.Vertical()
	}
	return height
}

func (s *AccordionSkin) PreferredSize() retained.Size {
	return retained.Size{
		Width:  s.PreferredWidth(retained.Unconstrained),
		Height: s.PreferredHeight(retained.Unconstrained),
	}
}

// Baseline is the baseline of the first header, if there is one.
func (s *AccordionSkin) Baseline(width, height int) retained.Baseline {
	if s.accordion.PanelCount() == 0 {
		return retained.NoBaseline()
	}
	return retained.OffsetBaseline(
		centeredBaseline(s.env.Theme.Font, s.headerHeight(), s.headerPadding), accordionBorder)
}

// regions returns the content height given to each panel: the whole content
// area to the selection, or a split between the outgoing and incoming panels
// while a transition runs.
func (s *AccordionSkin) regions() map[int]int {
	n := s.accordion.PanelCount()
	content := max(s.Height()-2*accordionBorder-n*s.headerHeight(), 0)
	if s.IsAnimating() {
		in := scaled(content, s.Scale())
		return map[int]int{s.from: content - in, s.to: in}
	}
	if sel := s.accordion.SelectedIndex.Get(); sel >= 0 {
		return map[int]int{sel: content}
	}
	return nil
}

// headerBounds computes every header rectangle for the current size.
func (s *AccordionSkin) headerBounds() []image.Rectangle {
	regions := s.regions()
	width := max(s.Width()-accordionBorder, accordionBorder)
	y := accordionBorder
	return lo.Times(s.accordion.PanelCount(), func(i int) image.Rectangle {
		r := image.Rect(accordionBorder, y, width, y+s.headerHeight())
		y = r.Max.Y + regions[i]
		return r
	})
}

// HeaderBounds returns the rectangle of header i.
func (s *AccordionSkin) HeaderBounds(i int) (image.Rectangle, error) {
	bounds := s.headerBounds()
	if i < 0 || i >= len(bounds) {
		return image.Rectangle{}, fmt.Errorf("%w: header %d of %d", retained.ErrIndexOutOfBounds, i, len(bounds))
	}
	return bounds[i], nil
}

// HeaderAt returns the index of the header containing p, or -1.
func (s *AccordionSkin) HeaderAt(p image.Point) int {
	_, i, ok := lo.FindIndexOf(s.headerBounds(), func(r image.Rectangle) bool {
		return p.In(r)
	})
	if !ok {
		return -1
	}
	return i
}

func (s *AccordionSkin) Layout() {
	regions := s.regions()
	headers := s.headerBounds()
	full := max(s.Height()-2*accordionBorder-len(headers)*s.headerHeight(), 0)

	for i, panel := range s.panels() {
		region, shown := regions[i]
		panel.SetVisible(shown)
		if !shown {
			continue
		}
		top := headers[i].Max.Y
		height := region
		if s.IsAnimating() {
			// Panels keep their full size while their clip shrinks or grows.
			height = full
		}
		inner := s.padding.Inset(image.Rect(accordionBorder, top, s.Width()-accordionBorder, top+height))
		panel.SetBounds(inner)
		if clip, ok := s.clips[panel]; ok {
			clip.SetRect(image.Rect(0, 0, inner.Dx(), max(region-s.padding.Top, 0)))
		}
	}
}

// ============================================================================
// Paint
// ============================================================================

func (s *AccordionSkin) Paint(g render.Graphics) {
	g.FillRect(image.Rect(0, 0, s.Width(), s.Height()), s.background)

	selected := s.accordion.SelectedIndex.Get()
	if s.IsAnimating() {
		selected = s.heading()
	}
	blocked := s.accordion.IsBlocked()
	for i, r := range s.headerBounds() {
		label, _ := s.accordion.Label(i)
		face, text := s.header, s.textColor
		if i == selected {
			face, text = s.selection, s.selectedText
		}
		if blocked {
			text = s.disabledColor
		}
		face.fill(g, r, false)
		drawText(g, s.env.Theme.Font, label, s.headerPadding.Inset(r), text, false)
	}
}

// PaintOverlay draws the outer border, header dividers and the focus
// indicator over the panels.
func (s *AccordionSkin) PaintOverlay(g render.Graphics) {
	g.StrokeRect(image.Rect(0, 0, s.Width(), s.Height()), s.borderColor, accordionBorder)
	headers := s.headerBounds()
	for _, r := range headers {
		g.DrawLine(image.Pt(r.Min.X, r.Max.Y), image.Pt(r.Max.X, r.Max.Y), s.borderColor, 1)
	}
	if sel := s.accordion.SelectedIndex.Get(); sel >= 0 && sel < len(headers) && s.accordion.IsFocused() {
		g.DrawFocusRect(headers[sel].Inset(1), s.env.Theme.Colors.Focus)
	}
}
