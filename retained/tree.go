package retained

import (
	"github.com/agiangrant/skins/render"
)

// Tree is the root of a widget hierarchy: the display that windows are added
// to, the scheduler their skins animate on, and the keyboard focus owner.
type Tree struct {
	display *Widget
	sched   Scheduler
	focused *Widget

	repaintPending bool
	onRepaint      func()
}

// NewTree creates a tree with an empty display of the given size.
func NewTree(sched Scheduler, width, height int) *Tree {
	t := &Tree{sched: sched, display: NewWidget(KindDisplay)}
	t.display.tree = t
	t.display.SetSize(width, height)
	return t
}

// Display returns the root widget.
func (t *Tree) Display() *Widget { return t.display }

// Scheduler returns the scheduler driving this tree.
func (t *Tree) Scheduler() Scheduler { return t.sched }

// OnRepaint sets a callback run whenever a widget in the tree requests a
// repaint. The real-time loop wires this to RequestFrame.
func (t *Tree) OnRepaint(fn func()) {
	t.onRepaint = fn
}

func (t *Tree) requestRepaint() {
	t.repaintPending = true
	if t.onRepaint != nil {
		t.onRepaint()
	}
}

// RepaintPending reports whether a repaint was requested since the last Paint.
func (t *Tree) RepaintPending() bool { return t.repaintPending }

// Validate lays out every invalid widget.
func (t *Tree) Validate() {
	t.display.Validate()
}

// Paint validates the tree and paints the display.
func (t *Tree) Paint(g render.Graphics) {
	t.Validate()
	t.display.Paint(g)
	t.repaintPending = false
}

// Focused returns the widget holding keyboard focus, or nil.
func (t *Tree) Focused() *Widget { return t.focused }

// Focus moves keyboard focus to w. Passing nil clears focus. Focus is only
// granted to showing, unblocked widgets.
func (t *Tree) Focus(w *Widget) bool {
	if w != nil && (w.Tree() != t || !w.IsShowing() || w.IsBlocked()) {
		return false
	}
	prev := t.focused
	t.focused = w
	if prev != nil {
		prev.Repaint()
	}
	if w != nil {
		w.Repaint()
	}
	return true
}
