package widgets

import (
	"fmt"
	"slices"

	"github.com/agiangrant/skins/retained"
)

// SortDirection is a column's sort state.
type SortDirection uint8

const (
	Unsorted SortDirection = iota
	Ascending
	Descending
)

func (d SortDirection) String() string {
	switch d {
	case Unsorted:
		return "unsorted"
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return fmt.Sprintf("sort(%d)", uint8(d))
	}
}

// Column describes one table column.
type Column struct {
	Name      string
	Width     int
	MinWidth  int
	Resizable bool
	Sort      SortDirection
}

// TableHeader is the row of column headings above a table.
type TableHeader struct {
	*retained.Widget
	columns []Column
	pressed int
}

// NewTableHeader creates a header for columns.
func NewTableHeader(columns ...Column) (*TableHeader, error) {
	h := &TableHeader{Widget: retained.NewWidget(retained.KindTableHeader), pressed: -1}
	h.SetOwner(h)
	for _, c := range columns {
		if err := h.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// ColumnCount returns the number of columns.
func (h *TableHeader) ColumnCount() int { return len(h.columns) }

// Columns returns a copy of the columns.
func (h *TableHeader) Columns() []Column { return slices.Clone(h.columns) }

// Column returns column i.
func (h *TableHeader) Column(i int) (Column, error) {
	if i < 0 || i >= len(h.columns) {
		return Column{}, fmt.Errorf("%w: column %d of %d", retained.ErrIndexOutOfBounds, i, len(h.columns))
	}
	return h.columns[i], nil
}

// AddColumn appends c.
func (h *TableHeader) AddColumn(c Column) error {
	if c.Width < 0 || c.MinWidth < 0 {
		return fmt.Errorf("%w: column %q has negative width", retained.ErrInvalidArgument, c.Name)
	}
	c.Width = max(c.Width, c.MinWidth)
	h.columns = append(h.columns, c)
	changed(h.Widget)
	return nil
}

// RemoveColumn removes column i.
func (h *TableHeader) RemoveColumn(i int) error {
	if i < 0 || i >= len(h.columns) {
		return fmt.Errorf("%w: column %d of %d", retained.ErrIndexOutOfBounds, i, len(h.columns))
	}
	h.columns = slices.Delete(h.columns, i, i+1)
	if h.pressed >= len(h.columns) {
		h.pressed = -1
	}
	changed(h.Widget)
	return nil
}

// SetColumnWidth resizes column i, respecting its minimum width.
func (h *TableHeader) SetColumnWidth(i, width int) error {
	if i < 0 || i >= len(h.columns) {
		return fmt.Errorf("%w: column %d of %d", retained.ErrIndexOutOfBounds, i, len(h.columns))
	}
	if width < 0 {
		return fmt.Errorf("%w: width %d", retained.ErrInvalidArgument, width)
	}
	width = max(width, h.columns[i].MinWidth)
	if width != h.columns[i].Width {
		h.columns[i].Width = width
		changed(h.Widget)
	}
	return nil
}

// SetSort sets the sort direction of column i and clears every other column.
func (h *TableHeader) SetSort(i int, d SortDirection) error {
	if i < 0 || i >= len(h.columns) {
		return fmt.Errorf("%w: column %d of %d", retained.ErrIndexOutOfBounds, i, len(h.columns))
	}
	for j := range h.columns {
		h.columns[j].Sort = Unsorted
	}
	h.columns[i].Sort = d
	h.Repaint()
	return nil
}

// ToggleSort cycles column i through ascending and descending.
func (h *TableHeader) ToggleSort(i int) error {
	c, err := h.Column(i)
	if err != nil {
		return err
	}
	d := Ascending
	if c.Sort == Ascending {
		d = Descending
	}
	return h.SetSort(i, d)
}

// PressedIndex returns the column drawn pressed, or -1.
func (h *TableHeader) PressedIndex() int { return h.pressed }

// SetPressedIndex draws column i pressed; -1 releases it.
func (h *TableHeader) SetPressedIndex(i int) error {
	if i < -1 || i >= len(h.columns) {
		return fmt.Errorf("%w: column %d of %d", retained.ErrIndexOutOfBounds, i, len(h.columns))
	}
	if i != h.pressed {
		h.pressed = i
		h.Repaint()
	}
	return nil
}
