package widgets

import (
	"fmt"

	"github.com/agiangrant/skins/retained"
)

// Spinner steps through a list of items with up and down buttons.
type Spinner struct {
	*retained.Widget
	items    []string
	selected int
	circular bool
}

// NewSpinner creates a spinner over items with the first one selected.
func NewSpinner(items ...string) *Spinner {
	s := &Spinner{
		Widget:   retained.NewWidget(retained.KindSpinner),
		items:    append([]string(nil), items...),
		selected: -1,
	}
	s.SetOwner(s)
	if len(items) > 0 {
		s.selected = 0
	}
	return s
}

// Items returns a copy of the items.
func (s *Spinner) Items() []string { return append([]string(nil), s.items...) }

// ItemCount returns the number of items.
func (s *Spinner) ItemCount() int { return len(s.items) }

// SelectedIndex returns the selected item, or -1.
func (s *Spinner) SelectedIndex() int { return s.selected }

// SelectedItem returns the selected item text, or "".
func (s *Spinner) SelectedItem() string {
	if s.selected < 0 {
		return ""
	}
	return s.items[s.selected]
}

// SetSelectedIndex selects item i; -1 clears the selection.
func (s *Spinner) SetSelectedIndex(i int) error {
	if i < -1 || i >= len(s.items) {
		return fmt.Errorf("%w: spinner item %d of %d", retained.ErrIndexOutOfBounds, i, len(s.items))
	}
	if i != s.selected {
		s.selected = i
		s.Repaint()
	}
	return nil
}

// IsCircular reports whether stepping past either end wraps around.
func (s *Spinner) IsCircular() bool { return s.circular }

// SetCircular sets whether stepping wraps around.
func (s *Spinner) SetCircular(circular bool) { s.circular = circular }

// Next selects the following item. It reports whether the selection moved.
func (s *Spinner) Next() bool { return s.step(1) }

// Previous selects the preceding item. It reports whether the selection moved.
func (s *Spinner) Previous() bool { return s.step(-1) }

func (s *Spinner) step(d int) bool {
	n := len(s.items)
	if n == 0 {
		return false
	}
	previous := s.selected
	i := previous + d
	switch {
	case i >= n && s.circular:
		i = 0
	case i < 0 && s.circular:
		i = n - 1
	case i >= n || i < 0:
		return false
	}
	if err := s.SetSelectedIndex(i); err != nil {
		return false
	}
	return s.selected != previous
}
