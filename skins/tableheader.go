package skins

import (
	"fmt"
	"image"
	"image/color"

	"github.com/samber/lo"

	"github.com/agiangrant/skins/render"
	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/widgets"
)

const (
	sortArrowSize = 3
	// resizeSlop is how far from a column's right edge a press still grabs
	// the edge.
	resizeSlop = 2
)

// TableHeaderSkin draws a bevelled cell per column with its name and sort
// indicator. Column edges of resizable columns can be dragged.
type TableHeaderSkin struct {
	retained.SkinBase
	env    Env
	header *widgets.TableHeader

	face          bevel
	textColor     color.NRGBA
	disabledColor color.NRGBA
	borderColor   color.NRGBA
	padding       retained.Insets

	resizing int
	grab     int
}

// NewTableHeaderSkin creates a table header skin.
func NewTableHeaderSkin(env Env) *TableHeaderSkin {
	env = env.normalized()
	c := env.Theme.Colors
	return &TableHeaderSkin{
		env:           env,
		face:          newBevel(env.Theme, c.Background),
		textColor:     c.Foreground,
		disabledColor: c.DisabledForeground,
		borderColor:   c.Border,
		padding:       retained.Insets{Top: 2, Left: 4, Bottom: 2, Right: 4},
		resizing:      -1,
	}
}

func (s *TableHeaderSkin) Install(c retained.Component) error {
	h, err := install[*widgets.TableHeader](&s.SkinBase, c)
	if err != nil {
		return err
	}
	s.header = h
	return nil
}

func (s *TableHeaderSkin) Uninstall() {
	s.resizing = -1
	s.header = nil
	s.SkinBase.Uninstall()
}

// SetHeaderColor changes the cell base color. The bevel shades are derived
// from it immediately.
func (s *TableHeaderSkin) SetHeaderColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.face.set(s.env.Theme, n)
	s.Repaint()
	return nil
}

// HeaderColors returns the cell base color and its derived shades.
func (s *TableHeaderSkin) HeaderColors() (base, light, shadow color.NRGBA) {
	return s.face.base, s.face.light, s.face.shadow
}

func (s *TableHeaderSkin) SetTextColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.textColor = n
	s.Repaint()
	return nil
}

func (s *TableHeaderSkin) SetBorderColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.borderColor = n
	s.Repaint()
	return nil
}

func (s *TableHeaderSkin) SetPadding(p retained.Insets) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("table header padding: %w", err)
	}
	s.padding = p
	s.Invalidate()
	return nil
}

func (s *TableHeaderSkin) PreferredWidth(height retained.Constraint) int {
	return lo.SumBy(s.header.Columns(), func(c widgets.Column) int { return c.Width })
}

func (s *TableHeaderSkin) PreferredHeight(width retained.Constraint) int {
	return s.env.Theme.Font.Height() + s.padding.Vertical()
}

func (s *TableHeaderSkin) PreferredSize() retained.Size {
	return retained.Size{
		Width:  s.PreferredWidth(retained.Unconstrained),
		Height: s.PreferredHeight(retained.Unconstrained),
	}
}

// Baseline is the baseline of the column names.
func (s *TableHeaderSkin) Baseline(width, height int) retained.Baseline {
	if s.header.ColumnCount() == 0 {
		return retained.NoBaseline()
	}
	return centeredBaseline(s.env.Theme.Font, height, s.padding)
}

func (s *TableHeaderSkin) cells() []image.Rectangle {
	x := 0
	return lo.Map(s.header.Columns(), func(c widgets.Column, _ int) image.Rectangle {
		r := image.Rect(x, 0, x+c.Width, s.Height())
		x = r.Max.X
		return r
	})
}

// ColumnBounds returns the cell of column i.
func (s *TableHeaderSkin) ColumnBounds(i int) (image.Rectangle, error) {
	cells := s.cells()
	if i < 0 || i >= len(cells) {
		return image.Rectangle{}, fmt.Errorf("%w: column %d of %d", retained.ErrIndexOutOfBounds, i, len(cells))
	}
	return cells[i], nil
}

// ColumnAt returns the column whose cell spans x, or -1.
func (s *TableHeaderSkin) ColumnAt(x int) int {
	_, i, ok := lo.FindIndexOf(s.cells(), func(r image.Rectangle) bool {
		return x >= r.Min.X && x < r.Max.X
	})
	if !ok {
		return -1
	}
	return i
}

// ResizeHandleAt returns the resizable column whose right edge is within
// reach of x, or -1.
func (s *TableHeaderSkin) ResizeHandleAt(x int) int {
	columns := s.header.Columns()
	for i, r := range s.cells() {
		if columns[i].Resizable && x >= r.Max.X-resizeSlop && x <= r.Max.X+resizeSlop {
			return i
		}
	}
	return -1
}

// ResizingColumn returns the column being resized, or -1.
func (s *TableHeaderSkin) ResizingColumn() int { return s.resizing }

// BeginResize starts dragging the right edge of the column under x.
func (s *TableHeaderSkin) BeginResize(x int) error {
	switch {
	case s.header == nil:
		return fmt.Errorf("%w: table header skin is not installed", retained.ErrIllegalState)
	case s.resizing >= 0:
		return fmt.Errorf("%w: column %d is already being resized", retained.ErrIllegalState, s.resizing)
	case s.header.IsBlocked():
		return fmt.Errorf("%w: %s is disabled", retained.ErrIllegalState, s.header)
	}
	i := s.ResizeHandleAt(x)
	if i < 0 {
		return fmt.Errorf("%w: no resizable column edge at x=%d", retained.ErrInvalidArgument, x)
	}
	r, _ := s.ColumnBounds(i)
	s.resizing = i
	s.grab = x - r.Max.X
	return nil
}

// ResizeTo moves the grabbed edge to x. The column keeps its minimum width.
func (s *TableHeaderSkin) ResizeTo(x int) error {
	if s.resizing < 0 {
		return fmt.Errorf("%w: no column resize in progress", retained.ErrIllegalState)
	}
	r, err := s.ColumnBounds(s.resizing)
	if err != nil {
		return err
	}
	return s.header.SetColumnWidth(s.resizing, max(x-s.grab-r.Min.X, 0))
}

// EndResize releases the grabbed edge.
func (s *TableHeaderSkin) EndResize() {
	s.resizing = -1
}

func (s *TableHeaderSkin) Paint(g render.Graphics) {
	f := s.env.Theme.Font
	text := s.textColor
	if s.header.IsBlocked() {
		text = s.disabledColor
	}
	columns := s.header.Columns()
	for i, r := range s.cells() {
		c := columns[i]
		s.face.fill(g, r, i == s.header.PressedIndex())
		inner := s.padding.Inset(r)
		if c.Sort != widgets.Unsorted {
			arrow := image.Rect(max(inner.Max.X-sortArrowSize*2, inner.Min.X), inner.Min.Y, inner.Max.X, inner.Max.Y)
			dir := up
			if c.Sort == widgets.Descending {
				dir = down
			}
			g.FillPolygon(arrowPolygon(arrow, dir, sortArrowSize), text)
			inner.Max.X = max(arrow.Min.X-s.padding.Right, inner.Min.X)
		}
		g.Push()
		g.ClipRect(inner)
		drawText(g, f, c.Name, inner, text, false)
		g.Pop()
	}
}

func (s *TableHeaderSkin) PaintOverlay(g render.Graphics) {
	for _, r := range s.cells() {
		g.StrokeRect(r, s.borderColor, 1)
	}
	if s.header.IsFocused() {
		g.DrawFocusRect(image.Rect(0, 0, s.Width(), s.Height()).Inset(1), s.env.Theme.Colors.Focus)
	}
}
