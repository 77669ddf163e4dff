package widgets

import (
	"fmt"
	"time"

	"github.com/samber/mo"

	"github.com/agiangrant/skins/retained"
)

// Date is a calendar day without a time or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsValid reports whether d names a real day.
func (d Date) IsValid() bool {
	return d.Month >= time.January && d.Month <= time.December &&
		d.Day >= 1 && d.Day <= DaysIn(d.Year, d.Month)
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Calendar shows one month and an optional selected day.
type Calendar struct {
	*retained.Widget
	year     int
	month    time.Month
	selected mo.Option[Date]
	onSelect func(c *Calendar, d Date)
}

// NewCalendar creates a calendar showing the given month.
func NewCalendar(year int, month time.Month) (*Calendar, error) {
	c := &Calendar{Widget: retained.NewWidget(retained.KindCalendar)}
	c.SetOwner(c)
	if err := c.SetMonth(year, month); err != nil {
		return nil, err
	}
	return c, nil
}

// Year returns the shown year.
func (c *Calendar) Year() int { return c.year }

// Month returns the shown month.
func (c *Calendar) Month() time.Month { return c.month }

// SetMonth changes the shown month.
func (c *Calendar) SetMonth(year int, month time.Month) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("%w: month %d", retained.ErrInvalidArgument, int(month))
	}
	if year == c.year && month == c.month {
		return nil
	}
	c.year, c.month = year, month
	changed(c.Widget)
	return nil
}

// NextMonth shows the following month.
func (c *Calendar) NextMonth() {
	t := time.Date(c.year, c.month+1, 1, 0, 0, 0, 0, time.UTC)
	c.SetMonth(t.Year(), t.Month())
}

// PreviousMonth shows the preceding month.
func (c *Calendar) PreviousMonth() {
	t := time.Date(c.year, c.month-1, 1, 0, 0, 0, 0, time.UTC)
	c.SetMonth(t.Year(), t.Month())
}

// Selected returns the selected day, if any.
func (c *Calendar) Selected() mo.Option[Date] { return c.selected }

// Select marks d as the selected day and reports it to the OnSelect callback.
func (c *Calendar) Select(d Date) error {
	if !d.IsValid() {
		return fmt.Errorf("%w: date %s", retained.ErrInvalidArgument, d)
	}
	c.selected = mo.Some(d)
	c.Repaint()
	if c.onSelect != nil {
		c.onSelect(c, d)
	}
	return nil
}

// ClearSelection removes the selected day.
func (c *Calendar) ClearSelection() {
	if c.selected.IsPresent() {
		c.selected = mo.None[Date]()
		c.Repaint()
	}
}

// OnSelect sets the callback run when a day is selected.
func (c *Calendar) OnSelect(fn func(c *Calendar, d Date)) {
	c.onSelect = fn
}

// CalendarButton shows the selected date and opens a calendar popup.
type CalendarButton struct {
	*retained.Widget
	calendar *Calendar
	popup    *Window
	format   string
}

// NewCalendarButton creates a button whose popup shows the given month.
func NewCalendarButton(year int, month time.Month) (*CalendarButton, error) {
	cal, err := NewCalendar(year, month)
	if err != nil {
		return nil, err
	}
	popup, err := NewPopup(cal)
	if err != nil {
		return nil, err
	}
	b := &CalendarButton{
		Widget:   retained.NewWidget(retained.KindCalendarButton),
		calendar: cal,
		popup:    popup,
		format:   "2006-01-02",
	}
	b.SetOwner(b)
	cal.OnSelect(func(*Calendar, Date) {
		changed(b.Widget)
		b.popup.Close()
	})
	return b, nil
}

// Calendar returns the popup's calendar.
func (b *CalendarButton) Calendar() *Calendar { return b.calendar }

// Popup returns the popup window.
func (b *CalendarButton) Popup() *Window { return b.popup }

// Text returns the selected date formatted for the button face, or "".
func (b *CalendarButton) Text() string {
	d, ok := b.calendar.Selected().Get()
	if !ok {
		return ""
	}
	return d.Time().Format(b.format)
}

// Format returns the time layout used for the button face.
func (b *CalendarButton) Format() string { return b.format }

// SetFormat changes the time layout used for the button face.
func (b *CalendarButton) SetFormat(layout string) error {
	if layout == "" {
		return fmt.Errorf("%w: empty date format", retained.ErrInvalidArgument)
	}
	b.format = layout
	changed(b.Widget)
	return nil
}
