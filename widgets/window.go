package widgets

import (
	"fmt"

	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/vote"
)

// Window is a top-level container shown on a display. Popups, sheets and
// menu popups are windows.
type Window struct {
	*retained.Widget
	content *retained.Widget
	display *retained.Widget

	// Open is previewed before the window is shown or hidden. Skins defer a
	// close while they animate the window out.
	Open *vote.Property[bool]
}

func newWindow(kind retained.WidgetKind) *Window {
	w := &Window{
		Widget: retained.NewWidget(kind),
		Open:   vote.NewProperty("open", false),
	}
	w.SetOwner(w)
	w.Open.AddListener(vote.Funcs[bool]{Change: w.openChanged})
	return w
}

// NewPopup creates a closed popup window around content.
func NewPopup(content retained.Component) (*Window, error) {
	w := newWindow(retained.KindPopup)
	if err := w.SetContent(content); err != nil {
		return nil, err
	}
	return w, nil
}

// Content returns the content component, or nil.
func (w *Window) Content() *retained.Widget { return w.content }

// SetContent replaces the content component.
func (w *Window) SetContent(c retained.Component) error {
	cw := componentBase(c)
	if err := replaceChild(w.Widget, w.content, cw); err != nil {
		return err
	}
	w.content = cw
	return nil
}

// Display returns the display the window was last opened on, or nil.
func (w *Window) Display() *retained.Widget { return w.display }

// IsOpen reports whether the window is committed as open.
func (w *Window) IsOpen() bool { return w.Open.Get() }

// OpenOn requests that the window be shown on display. Requesting it while a
// close is pending asks the skin to undo the close.
func (w *Window) OpenOn(display *retained.Widget) (vote.Vote, error) {
	if display == nil {
		return vote.Deny, fmt.Errorf("%w: nil display", retained.ErrInvalidArgument)
	}
	if w.IsOpen() {
		if display != w.display {
			return vote.Deny, fmt.Errorf("%w: %s is open on another display", retained.ErrIllegalState, w)
		}
		if w.Open.Pending().IsAbsent() {
			return vote.Approve, nil
		}
	} else if w.Parent() != nil {
		return vote.Deny, fmt.Errorf("%w: %s already has parent %s", retained.ErrIllegalState, w, w.Parent())
	}
	w.display = display
	return w.Open.Set(true)
}

// Close requests that the window be hidden.
func (w *Window) Close() (vote.Vote, error) {
	return w.Open.Set(false)
}

func (w *Window) openChanged(p *vote.Property[bool], _ bool) {
	if p.Get() {
		if w.display != nil && w.Parent() == nil {
			w.display.Add(w.Widget)
		}
		return
	}
	if parent := w.Parent(); parent != nil {
		parent.Remove(w.Widget)
	}
}

// Sheet is a window that slides out of the top edge of another window.
type Sheet struct {
	*Window
	anchor    *retained.Widget
	resizable bool
}

// NewSheet creates a closed sheet around content.
func NewSheet(content retained.Component) (*Sheet, error) {
	s := &Sheet{Window: newWindow(retained.KindSheet)}
	s.SetOwner(s)
	if err := s.SetContent(content); err != nil {
		return nil, err
	}
	return s, nil
}

// Anchor returns the window the sheet is attached to, or nil.
func (s *Sheet) Anchor() *retained.Widget { return s.anchor }

// IsResizable reports whether the user may resize the sheet.
func (s *Sheet) IsResizable() bool { return s.resizable }

// SetResizable sets whether the user may resize the sheet.
func (s *Sheet) SetResizable(resizable bool) {
	if resizable == s.resizable {
		return
	}
	s.resizable = resizable
	s.Repaint()
}

// OpenOver requests that the sheet be shown over anchor, which must be
// attached to a tree.
func (s *Sheet) OpenOver(anchor retained.Component) (vote.Vote, error) {
	if anchor == nil {
		return vote.Deny, fmt.Errorf("%w: nil anchor", retained.ErrInvalidArgument)
	}
	a := anchor.Base()
	t := a.Tree()
	if t == nil {
		return vote.Deny, fmt.Errorf("%w: anchor %s is not attached to a display", retained.ErrIllegalState, a)
	}
	s.anchor = a
	return s.OpenOn(t.Display())
}

// MenuPopup is a window showing a menu.
type MenuPopup struct {
	*Window
	menu *Menu
}

// NewMenuPopup creates a closed popup for menu.
func NewMenuPopup(menu *Menu) (*MenuPopup, error) {
	if menu == nil {
		return nil, fmt.Errorf("%w: nil menu", retained.ErrInvalidArgument)
	}
	m := &MenuPopup{Window: newWindow(retained.KindMenuPopup), menu: menu}
	m.SetOwner(m)
	if err := m.SetContent(menu); err != nil {
		return nil, err
	}
	return m, nil
}

// Menu returns the popup's menu.
func (m *MenuPopup) Menu() *Menu { return m.menu }

// OpenAt requests that the popup be shown on display with its top-left
// corner at (x, y).
func (m *MenuPopup) OpenAt(display *retained.Widget, x, y int) (vote.Vote, error) {
	m.SetLocation(x, y)
	return m.OpenOn(display)
}
