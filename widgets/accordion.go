package widgets

import (
	"fmt"
	"slices"

	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/vote"
)

// AccordionListener is notified of structural changes to an accordion's
// panels. Skins use it to resolve animations that assume the old structure.
type AccordionListener interface {
	// PanelInserted is called after a panel is inserted at index, before the
	// selection is shifted to follow its panel.
	PanelInserted(a *Accordion, index int)

	// PanelRemoving is called while panel is still at index.
	PanelRemoving(a *Accordion, index int, panel *retained.Widget)
}

// Accordion stacks panels behind header buttons and shows one at a time.
type Accordion struct {
	*retained.Widget
	panels    []*retained.Widget
	labels    []string
	listeners []AccordionListener

	// SelectedIndex is -1 when no panel is shown.
	SelectedIndex *vote.Property[int]
}

// NewAccordion creates an empty accordion.
func NewAccordion() *Accordion {
	a := &Accordion{
		Widget:        retained.NewWidget(retained.KindAccordion),
		SelectedIndex: vote.NewProperty("selectedIndex", -1),
	}
	a.SetOwner(a)
	a.SelectedIndex.SetValidator(indexValidator(a.PanelCount))
	a.SelectedIndex.AddListener(vote.Funcs[int]{
		Change: func(*vote.Property[int], int) { changed(a.Widget) },
	})
	return a
}

// AddListener registers l and returns a function that removes it.
func (a *Accordion) AddListener(l AccordionListener) (remove func()) {
	a.listeners = append(a.listeners, l)
	return func() {
		if i := slices.Index(a.listeners, l); i >= 0 {
			a.listeners = slices.Delete(a.listeners, i, i+1)
		}
	}
}

// PanelCount returns the number of panels.
func (a *Accordion) PanelCount() int { return len(a.panels) }

// Panel returns the panel at index i.
func (a *Accordion) Panel(i int) (*retained.Widget, error) {
	if i < 0 || i >= len(a.panels) {
		return nil, fmt.Errorf("%w: panel %d of %d", retained.ErrIndexOutOfBounds, i, len(a.panels))
	}
	return a.panels[i], nil
}

// Label returns the header text of panel i.
func (a *Accordion) Label(i int) (string, error) {
	if i < 0 || i >= len(a.labels) {
		return "", fmt.Errorf("%w: panel %d of %d", retained.ErrIndexOutOfBounds, i, len(a.labels))
	}
	return a.labels[i], nil
}

// AddPanel appends a panel.
func (a *Accordion) AddPanel(label string, panel retained.Component) error {
	return a.InsertPanel(len(a.panels), label, panel)
}

// InsertPanel inserts a panel at index i. The first panel added becomes
// selected, and a selection at or after i follows its panel.
func (a *Accordion) InsertPanel(i int, label string, panel retained.Component) error {
	if panel == nil {
		return fmt.Errorf("%w: nil panel", retained.ErrInvalidArgument)
	}
	if i < 0 || i > len(a.panels) {
		return fmt.Errorf("%w: insert panel %d of %d", retained.ErrIndexOutOfBounds, i, len(a.panels))
	}
	w := panel.Base()
	if err := a.Add(w); err != nil {
		return err
	}
	a.panels = slices.Insert(a.panels, i, w)
	a.labels = slices.Insert(a.labels, i, label)

	for _, l := range slices.Clone(a.listeners) {
		l.PanelInserted(a, i)
	}

	selected := a.SelectedIndex.Get()
	switch {
	case selected == -1 && len(a.panels) == 1:
		return a.SelectedIndex.Reset(0)
	case selected >= i:
		return a.SelectedIndex.Reset(selected + 1)
	}
	return nil
}

// RemovePanel removes and returns the panel at index i. The selection moves
// to the nearest remaining panel.
func (a *Accordion) RemovePanel(i int) (*retained.Widget, error) {
	if i < 0 || i >= len(a.panels) {
		return nil, fmt.Errorf("%w: remove panel %d of %d", retained.ErrIndexOutOfBounds, i, len(a.panels))
	}
	w := a.panels[i]
	for _, l := range slices.Clone(a.listeners) {
		l.PanelRemoving(a, i, w)
	}

	a.panels = slices.Delete(a.panels, i, i+1)
	a.labels = slices.Delete(a.labels, i, i+1)
	a.Remove(w)

	selected := a.SelectedIndex.Get()
	switch {
	case i < selected:
		selected--
	case i == selected && selected >= len(a.panels):
		selected = len(a.panels) - 1
	}
	if err := a.SelectedIndex.Reset(selected); err != nil {
		return w, err
	}
	changed(a.Widget)
	return w, nil
}

// Select requests a change of the shown panel.
func (a *Accordion) Select(i int) (vote.Vote, error) {
	return a.SelectedIndex.Set(i)
}
