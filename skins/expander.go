package skins

import (
	"fmt"
	"image"
	"image/color"

	"github.com/sirupsen/logrus"

	"github.com/agiangrant/skins/render"
	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/transition"
	"github.com/agiangrant/skins/vote"
	"github.com/agiangrant/skins/widgets"
)

const (
	expanderBorder     = 1
	expanderButtonSize = 4
)

// ExpanderSkin draws a title bar above the content and animates the content
// in and out when the expander is toggled.
type ExpanderSkin struct {
	retained.SkinBase
	env      Env
	log      logrus.FieldLogger
	expander *widgets.Expander
	remove   func()

	titleBar      bevel
	titleColor    color.NRGBA
	disabledColor color.NRGBA
	borderColor   color.NRGBA
	background    color.NRGBA
	titlePadding  retained.Insets
	padding       retained.Insets

	// Expand/collapse animation state. target is the expanded value the
	// running transition is heading towards.
	tr     *transition.Transition
	clip   *retained.ClipDecorator
	target bool
}

// NewExpanderSkin creates an expander skin.
func NewExpanderSkin(env Env) *ExpanderSkin {
	env = env.normalized()
	c := env.Theme.Colors
	return &ExpanderSkin{
		env:           env,
		log:           env.logger(retained.KindExpander),
		titleBar:      newBevel(env.Theme, c.Background),
		titleColor:    c.Foreground,
		disabledColor: c.DisabledForeground,
		borderColor:   c.Border,
		background:    c.Background,
		titlePadding:  retained.Insets{Top: 3, Left: 4, Bottom: 3, Right: 4},
		padding:       retained.UniformInsets(4),
	}
}

func (s *ExpanderSkin) Install(c retained.Component) error {
	e, err := install[*widgets.Expander](&s.SkinBase, c)
	if err != nil {
		return err
	}
	s.expander = e
	s.remove = e.Expanded.AddListener(vote.Funcs[bool]{
		Preview: s.previewExpandedChange,
		Vetoed:  s.expandedChangeVetoed,
		Change:  s.expandedChanged,
	})
	return nil
}

// Uninstall resolves a running transition before releasing the expander, so
// a pending change is committed rather than lost.
func (s *ExpanderSkin) Uninstall() {
	if s.tr != nil {
		s.tr.End()
		s.tr = nil
	}
	if s.remove != nil {
		s.remove()
		s.remove = nil
	}
	s.expander = nil
	s.SkinBase.Uninstall()
}

// ============================================================================
// Colors and padding
// ============================================================================

// SetTitleBarColor changes the title bar base color. The bevel shades are
// derived from it immediately.
func (s *ExpanderSkin) SetTitleBarColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.titleBar.set(s.env.Theme, n)
	s.Repaint()
	return nil
}

// TitleBarColors returns the title bar base color and its derived light and
// shadow shades.
func (s *ExpanderSkin) TitleBarColors() (base, light, shadow color.NRGBA) {
	return s.titleBar.base, s.titleBar.light, s.titleBar.shadow
}

func (s *ExpanderSkin) SetTitleColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.titleColor = n
	s.Repaint()
	return nil
}

func (s *ExpanderSkin) SetBorderColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.borderColor = n
	s.Repaint()
	return nil
}

func (s *ExpanderSkin) SetBackgroundColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.background = n
	s.Repaint()
	return nil
}

// Padding returns the space around the content.
func (s *ExpanderSkin) Padding() retained.Insets { return s.padding }

// SetPadding changes the space around the content.
func (s *ExpanderSkin) SetPadding(p retained.Insets) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("expander padding: %w", err)
	}
	s.padding = p
	s.Invalidate()
	return nil
}

// ============================================================================
// Animation
// ============================================================================

// IsAnimating reports whether an expand or collapse is in flight.
func (s *ExpanderSkin) IsAnimating() bool {
	return s.tr != nil && s.tr.IsRunning()
}

// Scale is the fraction of the content currently shown: the eased
// transition value while animating, otherwise 1 or 0.
func (s *ExpanderSkin) Scale() float64 {
	if s.IsAnimating() {
		return s.tr.Ease(s.env.Theme.Expand.Easing)
	}
	if s.expander.Expanded.Get() {
		return 1
	}
	return 0
}

func (s *ExpanderSkin) previewExpandedChange(p *vote.Property[bool], expanded bool) vote.Vote {
	if s.tr != nil {
		// A stopped or completed transition is committing its own change.
		if !s.tr.IsRunning() {
			return vote.Approve
		}
		if expanded != s.target {
			s.target = expanded
			if err := s.tr.Reverse(); err != nil {
				s.log.WithError(err).Warn("failed to reverse expand transition")
			}
		}
		return vote.Defer
	}
	if expanded == p.Get() {
		return vote.Approve
	}

	timing := s.env.Theme.Expand
	sched := s.Scheduler()
	if !s.IsShowing() || sched == nil || timing.Duration <= 0 || s.expander.Content() == nil {
		return vote.Approve
	}

	opts := timing.Options("expand")
	opts.Reversed = !expanded
	opts.Log = s.log
	s.target = expanded
	s.tr = transition.New(sched, opts, transition.Hooks{
		Start:  s.startExpand,
		Update: s.updateExpand,
		Finish: s.expandFinished,
	})
	if err := s.tr.Start(s.expandCompleted); err != nil {
		s.log.WithError(err).Warn("failed to start expand transition")
		s.tr = nil
		return vote.Approve
	}
	return vote.Defer
}

func (s *ExpanderSkin) expandedChangeVetoed(p *vote.Property[bool], reason vote.Vote) {
	if reason != vote.Deny || s.tr == nil {
		return
	}
	// A denied request that left the deferred change pending heads back to it.
	if pending, ok := p.Pending().Get(); ok && s.tr.IsRunning() {
		if pending != s.target {
			s.target = pending
			if err := s.tr.Reverse(); err != nil {
				s.log.WithError(err).Warn("failed to reverse expand transition")
			}
		}
		return
	}
	tr := s.tr
	s.tr = nil
	tr.Stop()
	s.clip = nil
	s.Invalidate()
	s.Repaint()
}

// expandFinished drops a transition that stopped on its own, which happens
// when a hook panics, and cancels the change it was deferring.
func (s *ExpanderSkin) expandFinished(t *transition.Transition) {
	if t != s.tr || t.State() != transition.Stopped {
		return
	}
	s.tr = nil
	s.clip = nil
	if err := s.expander.Expanded.Veto(); err != nil {
		s.log.WithError(err).Warn("failed to cancel expanded change")
	}
	s.Invalidate()
	s.Repaint()
}

func (s *ExpanderSkin) expandedChanged(*vote.Property[bool], bool) {
	s.Invalidate()
	s.Repaint()
}

func (s *ExpanderSkin) startExpand(t *transition.Transition) {
	content := s.expander.Content()
	s.clip = retained.NewClipDecorator(image.Rectangle{})
	if err := t.Attach(content, s.clip); err != nil {
		s.log.WithError(err).Warn("failed to clip expander content")
	}
}

func (s *ExpanderSkin) updateExpand(*transition.Transition) {
	s.updateClip()
	s.Invalidate()
	s.Repaint()
}

// expandCompleted commits the deferred change, then drops the transition.
func (s *ExpanderSkin) expandCompleted(*transition.Transition) {
	p := s.expander.Expanded
	if v, ok := p.Pending().Get(); ok {
		if _, err := p.Set(v); err != nil {
			s.log.WithError(err).Error("failed to commit expanded state")
		}
	}
	s.tr = nil
	s.clip = nil
	s.Invalidate()
	s.Repaint()
}

// updateClip sizes the clip to the visible fraction of the content.
func (s *ExpanderSkin) updateClip() {
	content := s.expander.Content()
	if s.clip == nil || content == nil {
		return
	}
	s.clip.SetRect(image.Rect(0, 0, content.Width(), scaled(content.Height(), s.Scale())))
}

// ============================================================================
// Layout
// ============================================================================

func (s *ExpanderSkin) titleBarHeight() int {
	return max(s.env.Theme.Font.Height(), expanderButtonSize*2) + s.titlePadding.Vertical()
}

// contentShown reports whether the content takes part in layout.
func (s *ExpanderSkin) contentShown() bool {
	return s.expander.Content() != nil && (s.expander.Expanded.Get() || s.IsAnimating())
}

func (s *ExpanderSkin) PreferredWidth(height retained.Constraint) int {
	title := s.env.Theme.Font.Measure(s.expander.Title()) + s.titlePadding.Horizontal() + s.titleBarHeight()
	width := title
	if s.contentShown() {
		fixed := 2*expanderBorder + s.titleBarHeight() + s.padding.Vertical()
		width = max(width, s.expander.Content().PreferredWidth(height.Shrink(fixed))+s.padding.Horizontal())
	}
	return width + 2*expanderBorder
}

func (s *ExpanderSkin) PreferredHeight(width retained.Constraint) int {
	height := 2*expanderBorder + s.titleBarHeight()
	if s.contentShown() {
		inner := width.Shrink(2*expanderBorder + s.padding.Horizontal())
		content := s.expander.Content().PreferredHeight(inner) + s.padding.Vertical()
		height += scaled(content, s.Scale())
	}
	return height
}

func (s *ExpanderSkin) PreferredSize() retained.Size {
	return retained.Size{
		Width:  s.PreferredWidth(retained.Unconstrained),
		Height: s.PreferredHeight(retained.Unconstrained),
	}
}

// Baseline is the baseline of the title text.
func (s *ExpanderSkin) Baseline(width, height int) retained.Baseline {
	return retained.OffsetBaseline(
		centeredBaseline(s.env.Theme.Font, s.titleBarHeight(), s.titlePadding), expanderBorder)
}

// TitleBarBounds returns the title bar rectangle in the expander's space.
func (s *ExpanderSkin) TitleBarBounds() image.Rectangle {
	return image.Rect(expanderBorder, expanderBorder,
		max(s.Width()-expanderBorder, expanderBorder), expanderBorder+s.titleBarHeight())
}

// ButtonBounds returns the expand/collapse button rectangle.
func (s *ExpanderSkin) ButtonBounds() image.Rectangle {
	bar := s.TitleBarBounds()
	size := bar.Dy()
	return image.Rect(max(bar.Max.X-size, bar.Min.X), bar.Min.Y, bar.Max.X, bar.Max.Y)
}

// TitleBarContains reports whether p, in the expander's space, hits the
// title bar.
func (s *ExpanderSkin) TitleBarContains(p image.Point) bool {
	return p.In(s.TitleBarBounds())
}

func (s *ExpanderSkin) Layout() {
	content := s.expander.Content()
	if content == nil {
		return
	}
	shown := s.contentShown()
	content.SetVisible(shown)
	if !shown {
		return
	}

	x := expanderBorder + s.padding.Left
	y := expanderBorder + s.titleBarHeight() + s.padding.Top
	width := max(s.Width()-2*expanderBorder-s.padding.Horizontal(), 0)

	var height int
	if s.IsAnimating() {
		// The content keeps its full size while the clip reveals it.
		height = content.PreferredHeight(retained.Limit(width))
	} else {
		height = max(s.Height()-y-expanderBorder-s.padding.Bottom, 0)
	}
	content.SetBounds(image.Rect(x, y, x+width, y+height))
	s.updateClip()
}

// ============================================================================
// Paint
// ============================================================================

func (s *ExpanderSkin) Paint(g render.Graphics) {
	g.FillRect(image.Rect(0, 0, s.Width(), s.Height()), s.background)

	bar := s.TitleBarBounds()
	s.titleBar.fill(g, bar, false)

	c := s.titleColor
	if s.expander.IsBlocked() {
		c = s.disabledColor
	}
	text := s.titlePadding.Inset(bar)
	text.Max.X = s.ButtonBounds().Min.X
	drawText(g, s.env.Theme.Font, s.expander.Title(), text, c, false)

	if s.expander.IsCollapsible() {
		expanded := s.expander.Expanded.Get()
		if s.IsAnimating() {
			expanded = s.target
		}
		dir := right
		if expanded {
			dir = down
		}
		g.FillPolygon(arrowPolygon(s.ButtonBounds(), dir, expanderButtonSize), c)
	}
}

// PaintOverlay draws the border and the title bar separator over the
// content, then the focus indicator.
func (s *ExpanderSkin) PaintOverlay(g render.Graphics) {
	bounds := image.Rect(0, 0, s.Width(), s.Height())
	g.StrokeRect(bounds, s.borderColor, expanderBorder)

	bar := s.TitleBarBounds()
	if s.contentShown() {
		g.DrawLine(image.Pt(bar.Min.X, bar.Max.Y), image.Pt(bar.Max.X, bar.Max.Y), s.borderColor, 1)
	}
	if s.expander.IsFocused() {
		g.DrawFocusRect(bar.Inset(1), s.env.Theme.Colors.Focus)
	}
}
