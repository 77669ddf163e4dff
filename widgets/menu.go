package widgets

import (
	"fmt"

	"github.com/agiangrant/skins/retained"
)

// MenuItem is one row of a menu.
type MenuItem struct {
	Text      string
	Separator bool
}

// Menu is a vertical list of selectable items.
type Menu struct {
	*retained.Widget
	items    []MenuItem
	active   int
	onSelect func(m *Menu, index int)
}

// NewMenu creates a menu with the given item texts.
func NewMenu(items ...string) *Menu {
	m := &Menu{Widget: retained.NewWidget(retained.KindMenu), active: -1}
	m.SetOwner(m)
	for _, text := range items {
		m.items = append(m.items, MenuItem{Text: text})
	}
	return m
}

// AddItem appends a selectable item.
func (m *Menu) AddItem(text string) {
	m.items = append(m.items, MenuItem{Text: text})
	changed(m.Widget)
}

// AddSeparator appends a separator row.
func (m *Menu) AddSeparator() {
	m.items = append(m.items, MenuItem{Separator: true})
	changed(m.Widget)
}

// ItemCount returns the number of rows, separators included.
func (m *Menu) ItemCount() int { return len(m.items) }

// Item returns row i.
func (m *Menu) Item(i int) (MenuItem, error) {
	if i < 0 || i >= len(m.items) {
		return MenuItem{}, fmt.Errorf("%w: menu item %d of %d", retained.ErrIndexOutOfBounds, i, len(m.items))
	}
	return m.items[i], nil
}

// Items returns a copy of the rows.
func (m *Menu) Items() []MenuItem {
	return append([]MenuItem(nil), m.items...)
}

// ActiveIndex returns the highlighted row, or -1.
func (m *Menu) ActiveIndex() int { return m.active }

// SetActiveIndex highlights row i. Separators cannot be highlighted.
func (m *Menu) SetActiveIndex(i int) error {
	if i < -1 || i >= len(m.items) {
		return fmt.Errorf("%w: menu item %d of %d", retained.ErrIndexOutOfBounds, i, len(m.items))
	}
	if i >= 0 && m.items[i].Separator {
		return fmt.Errorf("%w: menu item %d is a separator", retained.ErrInvalidArgument, i)
	}
	if i != m.active {
		m.active = i
		m.Repaint()
	}
	return nil
}

// OnSelect sets the callback run when an item is chosen.
func (m *Menu) OnSelect(fn func(m *Menu, index int)) {
	m.onSelect = fn
}

// Choose highlights row i and reports it to the OnSelect callback.
func (m *Menu) Choose(i int) error {
	if err := m.SetActiveIndex(i); err != nil {
		return err
	}
	if i >= 0 && m.onSelect != nil {
		m.onSelect(m, i)
	}
	return nil
}
