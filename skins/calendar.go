package skins

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/agiangrant/skins/render"
	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/widgets"
)

const (
	calendarColumns = 7
	calendarRows    = 6
)

// CalendarSkin draws a month header with previous/next buttons, a row of
// weekday names and a six-week grid of days.
type CalendarSkin struct {
	retained.SkinBase
	env      Env
	calendar *widgets.Calendar

	header         bevel
	textColor      color.NRGBA
	disabledColor  color.NRGBA
	selection      color.NRGBA
	selectionText  color.NRGBA
	borderColor    color.NRGBA
	background     color.NRGBA
	cellPadding    retained.Insets
	previous, next arrowButton
}

// NewCalendarSkin creates a calendar skin.
func NewCalendarSkin(env Env) *CalendarSkin {
	env = env.normalized()
	c := env.Theme.Colors
	s := &CalendarSkin{
		env:           env,
		header:        newBevel(env.Theme, c.Background),
		textColor:     c.Foreground,
		disabledColor: c.DisabledForeground,
		selection:     c.SelectionBackground,
		selectionText: c.SelectionForeground,
		borderColor:   c.Border,
		background:    c.Background,
		cellPadding:   retained.Insets{Top: 2, Left: 3, Bottom: 2, Right: 3},
	}
	s.previous = arrowButton{dir: left, face: &s.header, border: &s.borderColor, arrow: &s.textColor, size: 3}
	s.next = arrowButton{dir: right, face: &s.header, border: &s.borderColor, arrow: &s.textColor, size: 3}
	return s
}

func (s *CalendarSkin) Install(c retained.Component) error {
	cal, err := install[*widgets.Calendar](&s.SkinBase, c)
	if err != nil {
		return err
	}
	s.calendar = cal
	return nil
}

func (s *CalendarSkin) Uninstall() {
	s.calendar = nil
	s.SkinBase.Uninstall()
}

// SetHeaderColor changes the month header base color. The bevel shades used
// by the header and its buttons are derived from it immediately.
func (s *CalendarSkin) SetHeaderColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.header.set(s.env.Theme, n)
	s.Repaint()
	return nil
}

func (s *CalendarSkin) SetTextColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.textColor = n
	s.Repaint()
	return nil
}

// SetSelectionColor changes the fill behind the selected day.
func (s *CalendarSkin) SetSelectionColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.selection = n
	s.Repaint()
	return nil
}

func (s *CalendarSkin) SetBorderColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.borderColor = n
	s.Repaint()
	return nil
}

func (s *CalendarSkin) SetBackgroundColor(c color.Color) error {
	n, err := requireColor(c)
	if err != nil {
		return err
	}
	s.background = n
	s.Repaint()
	return nil
}

// SetCellPadding changes the space around each day number.
func (s *CalendarSkin) SetCellPadding(p retained.Insets) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("calendar cell padding: %w", err)
	}
	s.cellPadding = p
	s.Invalidate()
	return nil
}

// ============================================================================
// Geometry
// ============================================================================

func (s *CalendarSkin) title() string {
	return fmt.Sprintf("%s %d", s.calendar.Month(), s.calendar.Year())
}

func (s *CalendarSkin) cellSize() retained.Size {
	f := s.env.Theme.Font
	return retained.Size{
		Width:  f.Measure("00") + s.cellPadding.Horizontal(),
		Height: f.Height() + s.cellPadding.Vertical(),
	}
}

func (s *CalendarSkin) headerHeight() int {
	return max(s.cellSize().Height, s.previous.preferredSize().Height)
}

func (s *CalendarSkin) PreferredWidth(height retained.Constraint) int {
	grid := calendarColumns * s.cellSize().Width
	arrows := s.previous.preferredSize().Width + s.next.preferredSize().Width
	header := s.env.Theme.Font.Measure(fmt.Sprintf("%s 0000", time.September)) + arrows
	return max(grid, header) + 2
}

func (s *CalendarSkin) PreferredHeight(width retained.Constraint) int {
	return s.headerHeight() + (calendarRows+1)*s.cellSize().Height + 2
}

func (s *CalendarSkin) PreferredSize() retained.Size {
	return retained.Size{
		Width:  s.PreferredWidth(retained.Unconstrained),
		Height: s.PreferredHeight(retained.Unconstrained),
	}
}

// Baseline is the baseline of the month title.
func (s *CalendarSkin) Baseline(width, height int) retained.Baseline {
	f := s.env.Theme.Font
	return retained.BaselineAt(1 + (s.headerHeight()-f.Height())/2 + f.Ascent())
}

func (s *CalendarSkin) headerBounds() image.Rectangle {
	return image.Rect(1, 1, max(s.Width()-1, 1), 1+s.headerHeight())
}

// PreviousButtonBounds returns the rectangle of the previous-month button.
func (s *CalendarSkin) PreviousButtonBounds() image.Rectangle {
	h := s.headerBounds()
	return image.Rectangle{Min: h.Min, Max: h.Min.Add(s.previous.preferredSize().Pt())}
}

// NextButtonBounds returns the rectangle of the next-month button.
func (s *CalendarSkin) NextButtonBounds() image.Rectangle {
	h := s.headerBounds()
	size := s.next.preferredSize()
	return image.Rect(h.Max.X-size.Width, h.Min.Y, h.Max.X, h.Min.Y+size.Height)
}

// MonthStepAt returns -1 when p hits the previous-month button, 1 for the
// next-month button and 0 otherwise.
func (s *CalendarSkin) MonthStepAt(p image.Point) int {
	switch {
	case p.In(s.PreviousButtonBounds()):
		return -1
	case p.In(s.NextButtonBounds()):
		return 1
	}
	return 0
}

// grid returns the area below the weekday row and the size of one cell.
func (s *CalendarSkin) grid() (image.Rectangle, retained.Size) {
	top := 1 + s.headerHeight()
	area := image.Rect(1, top, max(s.Width()-1, 1), max(s.Height()-1, top))
	cell := retained.Size{Width: area.Dx() / calendarColumns, Height: area.Dy() / (calendarRows + 1)}
	area.Min.Y += cell.Height
	return area, cell
}

// leading is the number of blank cells before the first of the month.
func (s *CalendarSkin) leading() int {
	first := widgets.Date{Year: s.calendar.Year(), Month: s.calendar.Month(), Day: 1}
	return int(first.Weekday())
}

// DayBounds returns the cell of day in the shown month.
func (s *CalendarSkin) DayBounds(day int) (image.Rectangle, error) {
	days := widgets.DaysIn(s.calendar.Year(), s.calendar.Month())
	if day < 1 || day > days {
		return image.Rectangle{}, fmt.Errorf("%w: day %d of %d", retained.ErrIndexOutOfBounds, day, days)
	}
	area, cell := s.grid()
	i := s.leading() + day - 1
	x := area.Min.X + (i%calendarColumns)*cell.Width
	y := area.Min.Y + (i/calendarColumns)*cell.Height
	return image.Rect(x, y, x+cell.Width, y+cell.Height), nil
}

// DateAt returns the day of the shown month under p, if any.
func (s *CalendarSkin) DateAt(p image.Point) mo.Option[widgets.Date] {
	area, cell := s.grid()
	if !p.In(area) || cell.Width == 0 || cell.Height == 0 {
		return mo.None[widgets.Date]()
	}
	col := (p.X - area.Min.X) / cell.Width
	row := (p.Y - area.Min.Y) / cell.Height
	if col >= calendarColumns || row >= calendarRows {
		return mo.None[widgets.Date]()
	}
	d := widgets.Date{Year: s.calendar.Year(), Month: s.calendar.Month(), Day: row*calendarColumns + col - s.leading() + 1}
	if !d.IsValid() {
		return mo.None[widgets.Date]()
	}
	return mo.Some(d)
}

// ============================================================================
// Paint
// ============================================================================

func (s *CalendarSkin) Paint(g render.Graphics) {
	f := s.env.Theme.Font
	g.FillRect(image.Rect(0, 0, s.Width(), s.Height()), s.background)

	text := s.textColor
	if s.calendar.IsBlocked() {
		text = s.disabledColor
	}

	header := s.headerBounds()
	s.header.fill(g, header, false)
	s.previous.paint(g, s.PreviousButtonBounds())
	s.next.paint(g, s.NextButtonBounds())
	drawText(g, f, s.title(), header, text, true)

	area, cell := s.grid()
	for i, name := range lo.Times(calendarColumns, func(i int) string { return time.Weekday(i).String()[:2] }) {
		r := image.Rect(area.Min.X+i*cell.Width, area.Min.Y-cell.Height, area.Min.X+(i+1)*cell.Width, area.Min.Y)
		drawText(g, f, name, r, s.borderColor, true)
	}

	selected, hasSelection := s.calendar.Selected().Get()
	days := widgets.DaysIn(s.calendar.Year(), s.calendar.Month())
	for day := 1; day <= days; day++ {
		r, _ := s.DayBounds(day)
		c := text
		if hasSelection && selected == (widgets.Date{Year: s.calendar.Year(), Month: s.calendar.Month(), Day: day}) {
			g.FillRect(r, s.selection)
			c = s.selectionText
		}
		drawText(g, f, fmt.Sprint(day), r, c, true)
	}
}

func (s *CalendarSkin) PaintOverlay(g render.Graphics) {
	g.StrokeRect(image.Rect(0, 0, s.Width(), s.Height()), s.borderColor, 1)
	if s.calendar.IsFocused() {
		g.DrawFocusRect(s.headerBounds().Inset(1), s.env.Theme.Colors.Focus)
	}
}
