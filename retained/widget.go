// Package retained provides the retained-mode component tree that skins lay
// out and paint.
//
// A Widget holds geometry, visibility and decorator state. Everything about
// how it looks and how its children are arranged is delegated to its Skin.
// Widgets are not safe for concurrent use: all access happens on the single
// UI queue driven by a Scheduler.
package retained

import (
	"fmt"
	"image"
	"slices"
	"sync/atomic"

	"github.com/agiangrant/skins/render"
)

// WidgetID uniquely identifies a widget in the tree.
type WidgetID uint64

var nextWidgetID atomic.Uint64

func newWidgetID() WidgetID {
	return WidgetID(nextWidgetID.Add(1))
}

// WidgetKind identifies the widget family, and so the skin installed for it.
type WidgetKind string

const (
	KindBox                WidgetKind = "box"
	KindLabel              WidgetKind = "label"
	KindDisplay            WidgetKind = "display"
	KindExpander           WidgetKind = "expander"
	KindAccordion          WidgetKind = "accordion"
	KindSheet              WidgetKind = "sheet"
	KindMenu               WidgetKind = "menu"
	KindMenuPopup          WidgetKind = "menu_popup"
	KindPopup              WidgetKind = "popup"
	KindCalendar           WidgetKind = "calendar"
	KindCalendarButton     WidgetKind = "calendar_button"
	KindColorChooser       WidgetKind = "color_chooser"
	KindColorChooserButton WidgetKind = "color_chooser_button"
	KindFrame              WidgetKind = "frame"
	KindSlider             WidgetKind = "slider"
	KindSpinner            WidgetKind = "spinner"
	KindSplitPane          WidgetKind = "split_pane"
	KindTableHeader        WidgetKind = "table_header"
)

// Component is implemented by every widget model. Models embed *Widget, so
// Base is promoted from it.
type Component interface {
	Base() *Widget
}

// SizeListener is notified after a widget's size changes.
type SizeListener func(w *Widget, previous Size)

// Widget represents a UI element in the retained tree.
type Widget struct {
	id       WidgetID
	kind     WidgetKind
	owner    Component
	parent   *Widget
	children []*Widget
	tree     *Tree // Set on the root only

	// Geometry, in the parent's coordinate space
	x, y          int
	width, height int

	// Explicit preferred size; -1 means "ask the skin"
	preferredWidth  int
	preferredHeight int

	visible bool
	enabled bool

	decorators []Decorator
	skin       Skin

	layoutValid bool
	repaints    int

	sizeListeners map[int]SizeListener
	nextListener  int
}

// NewWidget creates a widget of the given kind. The widget is its own owner
// until a model claims it with SetOwner.
func NewWidget(kind WidgetKind) *Widget {
	w := &Widget{
		id:              newWidgetID(),
		kind:            kind,
		preferredWidth:  -1,
		preferredHeight: -1,
		visible:         true,
		enabled:         true,
	}
	w.owner = w
	return w
}

// Base returns w. It lets *Widget satisfy Component.
func (w *Widget) Base() *Widget { return w }

// ID returns the widget's unique identifier.
func (w *Widget) ID() WidgetID { return w.id }

// Kind returns the widget family.
func (w *Widget) Kind() WidgetKind { return w.kind }

// Owner returns the model that embeds this widget.
func (w *Widget) Owner() Component { return w.owner }

// SetOwner records the model that embeds this widget. Skins receive the owner
// on install, so models call this from their constructors.
func (w *Widget) SetOwner(c Component) {
	if c == nil {
		c = w
	}
	w.owner = c
}

func (w *Widget) String() string {
	return fmt.Sprintf("%s#%d", w.kind, w.id)
}

// ============================================================================
// Hierarchy
// ============================================================================

// Parent returns the parent widget, or nil.
func (w *Widget) Parent() *Widget { return w.parent }

// Children returns a copy of the child list.
func (w *Widget) Children() []*Widget {
	return slices.Clone(w.children)
}

// ChildCount returns the number of children.
func (w *Widget) ChildCount() int { return len(w.children) }

// ChildAt returns the child at index i.
func (w *Widget) ChildAt(i int) (*Widget, error) {
	if i < 0 || i >= len(w.children) {
		return nil, fmt.Errorf("%w: child %d of %d", ErrIndexOutOfBounds, i, len(w.children))
	}
	return w.children[i], nil
}

// IndexOf returns the index of child, or -1.
func (w *Widget) IndexOf(child *Widget) int {
	return slices.Index(w.children, child)
}

// Add appends child.
func (w *Widget) Add(child *Widget) error {
	return w.Insert(len(w.children), child)
}

// Insert places child at index i.
func (w *Widget) Insert(i int, child *Widget) error {
	if child == nil {
		return fmt.Errorf("%w: nil child", ErrInvalidArgument)
	}
	if i < 0 || i > len(w.children) {
		return fmt.Errorf("%w: insert at %d of %d", ErrIndexOutOfBounds, i, len(w.children))
	}
	if child.parent != nil {
		return fmt.Errorf("%w: %s already has parent %s", ErrIllegalState, child, child.parent)
	}
	for p := w; p != nil; p = p.parent {
		if p == child {
			return fmt.Errorf("%w: %s cannot contain itself", ErrInvalidArgument, child)
		}
	}
	w.children = slices.Insert(w.children, i, child)
	child.parent = w
	w.Invalidate()
	w.Repaint()
	return nil
}

// Remove detaches child. It returns false if child is not a child of w.
func (w *Widget) Remove(child *Widget) bool {
	i := w.IndexOf(child)
	if i < 0 {
		return false
	}
	_, err := w.RemoveAt(i)
	return err == nil
}

// RemoveAt detaches and returns the child at index i.
func (w *Widget) RemoveAt(i int) (*Widget, error) {
	if i < 0 || i >= len(w.children) {
		return nil, fmt.Errorf("%w: remove %d of %d", ErrIndexOutOfBounds, i, len(w.children))
	}
	child := w.children[i]
	w.children = slices.Delete(w.children, i, i+1)
	child.parent = nil
	w.Invalidate()
	w.Repaint()
	return child, nil
}

// Tree returns the tree this widget is attached to, or nil.
func (w *Widget) Tree() *Tree {
	root := w
	for root.parent != nil {
		root = root.parent
	}
	return root.tree
}

// IsShowing reports whether the widget and all of its ancestors are visible
// and attached to a tree.
func (w *Widget) IsShowing() bool {
	for p := w; p != nil; p = p.parent {
		if !p.visible {
			return false
		}
		if p.parent == nil {
			return p.tree != nil
		}
	}
	return false
}

// ============================================================================
// Geometry
// ============================================================================

// X returns the horizontal location in the parent's space.
func (w *Widget) X() int { return w.x }

// Y returns the vertical location in the parent's space.
func (w *Widget) Y() int { return w.y }

// Width returns the current width.
func (w *Widget) Width() int { return w.width }

// Height returns the current height.
func (w *Widget) Height() int { return w.height }

// Size returns the current size.
func (w *Widget) Size() Size { return Size{Width: w.width, Height: w.height} }

// Location returns the top-left corner in the parent's space.
func (w *Widget) Location() image.Point { return image.Pt(w.x, w.y) }

// Bounds returns the widget rectangle in the parent's space.
func (w *Widget) Bounds() image.Rectangle {
	return image.Rect(w.x, w.y, w.x+w.width, w.y+w.height)
}

// SetLocation moves the widget within its parent.
func (w *Widget) SetLocation(x, y int) {
	if x == w.x && y == w.y {
		return
	}
	w.x, w.y = x, y
	if w.parent != nil {
		w.parent.Repaint()
	}
}

// SetSize resizes the widget. Negative dimensions are clamped to zero. A size
// change invalidates the widget's layout and notifies size listeners.
func (w *Widget) SetSize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == w.width && height == w.height {
		return
	}
	previous := w.Size()
	w.width, w.height = width, height
	w.layoutValid = false
	w.Repaint()
	for _, id := range w.listenerOrder() {
		w.sizeListeners[id](w, previous)
	}
}

// SetBounds sets location and size together.
func (w *Widget) SetBounds(r image.Rectangle) {
	w.SetLocation(r.Min.X, r.Min.Y)
	w.SetSize(r.Dx(), r.Dy())
}

// AddSizeListener registers fn and returns a function that removes it.
func (w *Widget) AddSizeListener(fn SizeListener) (remove func()) {
	if w.sizeListeners == nil {
		w.sizeListeners = make(map[int]SizeListener)
	}
	id := w.nextListener
	w.nextListener++
	w.sizeListeners[id] = fn
	return func() { delete(w.sizeListeners, id) }
}

func (w *Widget) listenerOrder() []int {
	ids := make([]int, 0, len(w.sizeListeners))
	for id := range w.sizeListeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ToDisplay converts a point in w's local space to the root's space.
func (w *Widget) ToDisplay(p image.Point) image.Point {
	for c := w; c != nil; c = c.parent {
		p = p.Add(c.Location())
	}
	return p
}

// ============================================================================
// Preferred size and baseline
// ============================================================================

// SetPreferredSize fixes the preferred width and/or height. Pass -1 to defer
// to the skin.
func (w *Widget) SetPreferredSize(width, height int) {
	w.preferredWidth, w.preferredHeight = max(width, -1), max(height, -1)
	w.Invalidate()
}

// PreferredWidth returns the width the widget wants for the given height.
func (w *Widget) PreferredWidth(height Constraint) int {
	if w.preferredWidth >= 0 {
		return w.preferredWidth
	}
	if w.skin == nil {
		return 0
	}
	if w.preferredHeight >= 0 {
		height = Limit(w.preferredHeight)
	}
	return w.skin.PreferredWidth(height)
}

// PreferredHeight returns the height the widget wants for the given width.
func (w *Widget) PreferredHeight(width Constraint) int {
	if w.preferredHeight >= 0 {
		return w.preferredHeight
	}
	if w.skin == nil {
		return 0
	}
	if w.preferredWidth >= 0 {
		width = Limit(w.preferredWidth)
	}
	return w.skin.PreferredHeight(width)
}

// PreferredSize returns the unconstrained preferred size.
func (w *Widget) PreferredSize() Size {
	switch {
	case w.preferredWidth >= 0 && w.preferredHeight >= 0:
		return Size{Width: w.preferredWidth, Height: w.preferredHeight}
	case w.preferredWidth >= 0:
		return Size{Width: w.preferredWidth, Height: w.PreferredHeight(Limit(w.preferredWidth))}
	case w.preferredHeight >= 0:
		return Size{Width: w.PreferredWidth(Limit(w.preferredHeight)), Height: w.preferredHeight}
	case w.skin == nil:
		return Size{}
	default:
		return w.skin.PreferredSize()
	}
}

// Baseline returns the baseline for the widget's current size.
func (w *Widget) Baseline() Baseline {
	return w.BaselineFor(w.width, w.height)
}

// BaselineFor returns the baseline the widget would have at the given size.
func (w *Widget) BaselineFor(width, height int) Baseline {
	if w.skin == nil {
		return NoBaseline()
	}
	return w.skin.Baseline(width, height)
}

// ============================================================================
// State
// ============================================================================

// IsVisible returns the visible flag.
func (w *Widget) IsVisible() bool { return w.visible }

// SetVisible shows or hides the widget.
func (w *Widget) SetVisible(visible bool) {
	if visible == w.visible {
		return
	}
	w.visible = visible
	if w.parent != nil {
		w.parent.Invalidate()
		w.parent.Repaint()
	}
}

// IsEnabled returns the enabled flag.
func (w *Widget) IsEnabled() bool { return w.enabled }

// SetEnabled enables or disables interaction.
func (w *Widget) SetEnabled(enabled bool) {
	if enabled == w.enabled {
		return
	}
	w.enabled = enabled
	w.Repaint()
}

// IsBlocked reports whether the widget or any ancestor is disabled.
func (w *Widget) IsBlocked() bool {
	for p := w; p != nil; p = p.parent {
		if !p.enabled {
			return true
		}
	}
	return false
}

// IsFocused reports whether the widget holds keyboard focus in its tree.
func (w *Widget) IsFocused() bool {
	t := w.Tree()
	return t != nil && t.Focused() == w
}

// ============================================================================
// Decorators
// ============================================================================

// Decorators returns a copy of the decorator list.
func (w *Widget) Decorators() []Decorator {
	return slices.Clone(w.decorators)
}

// AddDecorator attaches d. Decorators apply in attachment order.
func (w *Widget) AddDecorator(d Decorator) error {
	if d == nil {
		return fmt.Errorf("%w: nil decorator", ErrInvalidArgument)
	}
	w.decorators = append(w.decorators, d)
	w.Repaint()
	return nil
}

// RemoveDecorator detaches d. It returns false if d was not attached.
func (w *Widget) RemoveDecorator(d Decorator) bool {
	i := slices.Index(w.decorators, d)
	if i < 0 {
		return false
	}
	w.decorators = slices.Delete(w.decorators, i, i+1)
	w.Repaint()
	return true
}

// ============================================================================
// Skin, layout and paint
// ============================================================================

// Skin returns the installed skin, or nil.
func (w *Widget) Skin() Skin { return w.skin }

// SetSkin uninstalls the current skin and installs s. Passing nil removes the
// skin. If s fails to install, the widget is left without a skin.
func (w *Widget) SetSkin(s Skin) error {
	if w.skin != nil {
		w.skin.Uninstall()
		w.skin = nil
	}
	if s != nil {
		if err := s.Install(w.owner); err != nil {
			return fmt.Errorf("install skin on %s: %w", w, err)
		}
		w.skin = s
	}
	w.Invalidate()
	w.Repaint()
	return nil
}

// Dispose uninstalls the skin and detaches the widget from its parent. A skin
// never outlives its widget.
func (w *Widget) Dispose() {
	if w.skin != nil {
		w.skin.Uninstall()
		w.skin = nil
	}
	if w.parent != nil {
		w.parent.Remove(w)
	}
}

// IsValid reports whether the widget's layout is current.
func (w *Widget) IsValid() bool { return w.layoutValid }

// Invalidate marks the widget and its ancestors as needing layout.
func (w *Widget) Invalidate() {
	for p := w; p != nil; p = p.parent {
		p.layoutValid = false
	}
}

// Validate lays out the widget if needed, then validates visible children.
func (w *Widget) Validate() {
	if !w.layoutValid {
		if w.skin != nil {
			w.skin.Layout()
		}
		w.layoutValid = true
	}
	for _, c := range w.children {
		if c.visible {
			c.Validate()
		}
	}
}

// Repaint records that the widget needs to be painted again and forwards the
// request to its tree.
func (w *Widget) Repaint() {
	w.repaints++
	if t := w.Tree(); t != nil {
		t.requestRepaint()
	}
}

// RepaintCount returns how many repaints have been requested.
func (w *Widget) RepaintCount() int { return w.repaints }

// Paint draws the widget and its children in local coordinates: decorators
// first, then the skin, then children, then the skin's overlay.
func (w *Widget) Paint(g render.Graphics) {
	if !w.visible {
		return
	}
	g.Push()
	defer g.Pop()

	for _, d := range w.decorators {
		d.Prepare(w, g)
	}
	g.ClipRect(image.Rect(0, 0, w.width, w.height))

	if w.skin != nil {
		w.skin.Paint(g)
	}
	for _, c := range w.children {
		if !c.visible {
			continue
		}
		g.Push()
		g.Translate(c.x, c.y)
		c.Paint(g)
		g.Pop()
	}
	if o, ok := w.skin.(OverlayPainter); ok {
		o.PaintOverlay(g)
	}
}

// ComponentAt returns the topmost visible child containing p (in w's local
// space), or nil.
func (w *Widget) ComponentAt(p image.Point) *Widget {
	for i := len(w.children) - 1; i >= 0; i-- {
		c := w.children[i]
		if c.visible && p.In(c.Bounds()) {
			return c
		}
	}
	return nil
}

// DescendantAt returns the deepest visible widget containing p, which may be w.
func (w *Widget) DescendantAt(p image.Point) *Widget {
	if c := w.ComponentAt(p); c != nil {
		return c.DescendantAt(p.Sub(c.Location()))
	}
	return w
}
