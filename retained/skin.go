package retained

import (
	"fmt"

	"github.com/agiangrant/skins/render"
)

// Skin is the pluggable layout and paint delegate bound 1:1 to a widget.
//
// Size queries are pure functions of the widget's current state. Layout
// positions children from the widget's size and model state and must produce
// identical bounds when called twice without an intervening change. Paint
// draws background and content; it never mutates model state.
type Skin interface {
	// Install binds the skin to c. A skin is installed on at most one widget.
	Install(c Component) error

	// Uninstall releases listeners and resolves any running transition.
	Uninstall()

	// PreferredWidth returns the width wanted for the given height.
	PreferredWidth(height Constraint) int

	// PreferredHeight returns the height wanted for the given width.
	PreferredHeight(width Constraint) int

	// PreferredSize returns the unconstrained preferred size. It must equal
	// (PreferredWidth(Unconstrained), PreferredHeight(Unconstrained)).
	PreferredSize() Size

	// Baseline returns the text baseline for a widget of the given size.
	Baseline(width, height int) Baseline

	// Layout positions and sizes the widget's children.
	Layout()

	// Paint draws background and content. Children are painted by the widget
	// after Paint returns.
	Paint(g render.Graphics)
}

// OverlayPainter is implemented by skins that draw on top of their children,
// such as borders and focus indicators.
type OverlayPainter interface {
	PaintOverlay(g render.Graphics)
}

// SkinBase holds the widget reference shared by every skin. Concrete skins
// embed it and override what they need.
type SkinBase struct {
	component *Widget
}

// Install records the widget. Installing an installed skin is an error.
func (b *SkinBase) Install(c Component) error {
	if c == nil {
		return fmt.Errorf("%w: nil component", ErrInvalidArgument)
	}
	if b.component != nil {
		return fmt.Errorf("%w: skin already installed on %s", ErrIllegalState, b.component)
	}
	b.component = c.Base()
	return nil
}

// Uninstall forgets the widget.
func (b *SkinBase) Uninstall() {
	b.component = nil
}

// Component returns the widget, or nil when uninstalled.
func (b *SkinBase) Component() *Widget { return b.component }

// Width returns the widget's width.
func (b *SkinBase) Width() int {
	if b.component == nil {
		return 0
	}
	return b.component.Width()
}

// Height returns the widget's height.
func (b *SkinBase) Height() int {
	if b.component == nil {
		return 0
	}
	return b.component.Height()
}

// Invalidate schedules a layout pass for the widget.
func (b *SkinBase) Invalidate() {
	if b.component != nil {
		b.component.Invalidate()
	}
}

// Repaint requests a repaint of the widget.
func (b *SkinBase) Repaint() {
	if b.component != nil {
		b.component.Repaint()
	}
}

// IsShowing reports whether the widget is installed and showing.
func (b *SkinBase) IsShowing() bool {
	return b.component != nil && b.component.IsShowing()
}

// Scheduler returns the scheduler of the widget's tree, or nil.
func (b *SkinBase) Scheduler() Scheduler {
	if b.component == nil {
		return nil
	}
	if t := b.component.Tree(); t != nil {
		return t.Scheduler()
	}
	return nil
}

// Baseline reports no baseline.
func (b *SkinBase) Baseline(width, height int) Baseline {
	return NoBaseline()
}

// Layout does nothing.
func (b *SkinBase) Layout() {}
