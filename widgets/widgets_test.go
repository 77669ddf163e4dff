package widgets

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/vote"
)

// recordingListener records accordion structure notifications.
type recordingListener struct {
	events []string
	counts []int
}

func (r *recordingListener) PanelInserted(a *Accordion, index int) {
	r.events = append(r.events, "inserted")
	r.counts = append(r.counts, a.PanelCount())
}

func (r *recordingListener) PanelRemoving(a *Accordion, index int, panel *retained.Widget) {
	r.events = append(r.events, "removing")
	r.counts = append(r.counts, a.PanelCount())
}

func TestAccordionSelectionFollowsPanels(t *testing.T) {
	Convey("Given an empty accordion", t, func() {
		a := NewAccordion()
		l := &recordingListener{}
		remove := a.AddListener(l)
		So(a.SelectedIndex.Get(), ShouldEqual, -1)

		Convey("The first panel becomes selected", func() {
			So(a.AddPanel("One", NewLabel("1")), ShouldBeNil)
			So(a.SelectedIndex.Get(), ShouldEqual, 0)
			So(a.ChildCount(), ShouldEqual, 1)
			So(l.events, ShouldResemble, []string{"inserted"})
			So(l.counts, ShouldResemble, []int{1})
		})

		Convey("With three panels and the second selected", func() {
			for _, label := range []string{"One", "Two", "Three"} {
				So(a.AddPanel(label, NewLabel(label)), ShouldBeNil)
			}
			v, err := a.Select(1)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, vote.Approve)
			two := lo.Must(a.Panel(1))

			Convey("Inserting before it shifts the selection", func() {
				So(a.InsertPanel(0, "Zero", NewLabel("0")), ShouldBeNil)
				So(a.SelectedIndex.Get(), ShouldEqual, 2)
				So(lo.Must(a.Panel(2)), ShouldEqual, two)
				So(lo.Must(a.Label(0)), ShouldEqual, "Zero")
			})

			Convey("Inserting after it leaves the selection", func() {
				So(a.InsertPanel(3, "Four", NewLabel("4")), ShouldBeNil)
				So(a.SelectedIndex.Get(), ShouldEqual, 1)
			})

			Convey("Removing a panel before it shifts the selection", func() {
				w, err := a.RemovePanel(0)
				So(err, ShouldBeNil)
				So(w.Parent(), ShouldBeNil)
				So(a.SelectedIndex.Get(), ShouldEqual, 0)
				So(lo.Must(a.Panel(0)), ShouldEqual, two)
				So(l.counts[len(l.counts)-1], ShouldEqual, 3)
			})

			Convey("Removing the selected panel selects the next one", func() {
				_, err := a.RemovePanel(1)
				So(err, ShouldBeNil)
				So(a.SelectedIndex.Get(), ShouldEqual, 1)
				So(lo.Must(a.Label(1)), ShouldEqual, "Three")
			})

			Convey("Removing the last selected panel selects the new last one", func() {
				_, err := a.Select(2)
				So(err, ShouldBeNil)
				_, err = a.RemovePanel(2)
				So(err, ShouldBeNil)
				So(a.SelectedIndex.Get(), ShouldEqual, 1)
			})

			Convey("Removing every panel clears the selection", func() {
				for a.PanelCount() > 0 {
					_, err := a.RemovePanel(0)
					So(err, ShouldBeNil)
				}
				So(a.SelectedIndex.Get(), ShouldEqual, -1)
			})

			Convey("A removed listener is not notified", func() {
				remove()
				So(a.AddPanel("Four", NewLabel("4")), ShouldBeNil)
				So(l.events, ShouldHaveLength, 3)
			})
		})
	})
}

func TestAccordionErrors(t *testing.T) {
	a := NewAccordion()
	if err := a.AddPanel("nil", nil); !errors.Is(err, retained.ErrInvalidArgument) {
		t.Errorf("AddPanel(nil) error = %v, want ErrInvalidArgument", err)
	}
	if err := a.InsertPanel(2, "far", NewLabel("x")); !errors.Is(err, retained.ErrIndexOutOfBounds) {
		t.Errorf("InsertPanel(2) error = %v, want ErrIndexOutOfBounds", err)
	}
	if _, err := a.RemovePanel(0); !errors.Is(err, retained.ErrIndexOutOfBounds) {
		t.Errorf("RemovePanel(0) error = %v, want ErrIndexOutOfBounds", err)
	}
	if _, err := a.Select(0); !errors.Is(err, retained.ErrIndexOutOfBounds) {
		t.Errorf("Select(0) on empty accordion error = %v, want ErrIndexOutOfBounds", err)
	}
	if _, err := a.Label(0); !errors.Is(err, retained.ErrIndexOutOfBounds) {
		t.Errorf("Label(0) error = %v, want ErrIndexOutOfBounds", err)
	}

	label := NewLabel("owned")
	other := NewAccordion()
	if err := other.AddPanel("owned", label); err != nil {
		t.Fatal(err)
	}
	if err := a.AddPanel("owned", label); !errors.Is(err, retained.ErrIllegalState) {
		t.Errorf("AddPanel(child of another) error = %v, want ErrIllegalState", err)
	}
}

func TestExpanderToggle(t *testing.T) {
	e := NewExpander("Title")
	if !e.Expanded.Get() || !e.IsCollapsible() {
		t.Fatalf("new expander should be expanded and collapsible")
	}
	if v, err := e.Toggle(); err != nil || v != vote.Approve || e.Expanded.Get() {
		t.Errorf("Toggle() = %v, %v, expanded %v; want approve and collapsed", v, err, e.Expanded.Get())
	}

	// A pending collapse is toggled back to expanded.
	e.Expanded.Reset(true)
	remove := e.Expanded.AddListener(vote.Funcs[bool]{
		Preview: func(*vote.Property[bool], bool) vote.Vote { return vote.Defer },
	})
	if v, _ := e.Toggle(); v != vote.Defer || e.Expanded.Pending().OrElse(true) {
		t.Fatalf("deferred Toggle() = %v, pending %v", v, e.Expanded.Pending())
	}
	if v, _ := e.Toggle(); v != vote.Defer || !e.Expanded.Pending().OrElse(false) {
		t.Errorf("second Toggle() should request expanded, pending %v", e.Expanded.Pending())
	}
	remove()

	e.SetCollapsible(false)
	if v, err := e.Toggle(); err != nil || v != vote.Deny {
		t.Errorf("Toggle() on a fixed expander = %v, %v, want deny", v, err)
	}
}

func TestReplaceContent(t *testing.T) {
	e := NewExpander("Title")
	first, second := NewLabel("first"), NewLabel("second")
	if err := e.SetContent(first); err != nil {
		t.Fatal(err)
	}
	if err := e.SetContent(second); err != nil {
		t.Fatal(err)
	}
	if first.Parent() != nil || second.Parent() != e.Widget || e.ChildCount() != 1 {
		t.Errorf("content not replaced: first parent %v, second parent %v, %d children",
			first.Parent(), second.Parent(), e.ChildCount())
	}
	if err := e.SetContent(nil); err != nil || e.Content() != nil || e.ChildCount() != 0 {
		t.Errorf("SetContent(nil) = %v, content %v", err, e.Content())
	}
}

func TestWindowOpenClose(t *testing.T) {
	Convey("Given a popup and a display", t, func() {
		tree := retained.NewTree(retained.NewManualScheduler(time.Unix(0, 0)), 320, 240)
		popup := lo.Must(NewPopup(NewLabel("content")))
		So(popup.IsOpen(), ShouldBeFalse)

		Convey("Opening it adds it to the display", func() {
			v, err := popup.OpenOn(tree.Display())
			So(err, ShouldBeNil)
			So(v, ShouldEqual, vote.Approve)
			So(popup.Parent(), ShouldEqual, tree.Display())
			So(popup.Display(), ShouldEqual, tree.Display())

			Convey("Opening it again does nothing", func() {
				v, err := popup.OpenOn(tree.Display())
				So(err, ShouldBeNil)
				So(v, ShouldEqual, vote.Approve)
				So(tree.Display().ChildCount(), ShouldEqual, 1)
			})

			Convey("Closing it removes it", func() {
				v, err := popup.Close()
				So(err, ShouldBeNil)
				So(v, ShouldEqual, vote.Approve)
				So(popup.Parent(), ShouldBeNil)
				So(popup.IsOpen(), ShouldBeFalse)
			})
		})

		Convey("A nil display is rejected", func() {
			_, err := popup.OpenOn(nil)
			So(errors.Is(err, retained.ErrInvalidArgument), ShouldBeTrue)
		})

		Convey("A window placed elsewhere cannot open", func() {
			So(tree.Display().Add(popup.Widget), ShouldBeNil)
			_, err := popup.OpenOn(tree.Display())
			So(errors.Is(err, retained.ErrIllegalState), ShouldBeTrue)
		})
	})
}

func TestMenuPopupRequiresMenu(t *testing.T) {
	if _, err := NewMenuPopup(nil); !errors.Is(err, retained.ErrInvalidArgument) {
		t.Errorf("NewMenuPopup(nil) error = %v, want ErrInvalidArgument", err)
	}
	m := NewMenu("Cut")
	p := lo.Must(NewMenuPopup(m))
	if p.Menu() != m || p.Content() != m.Widget {
		t.Errorf("menu popup does not hold its menu")
	}
}

func TestMenu(t *testing.T) {
	m := NewMenu("Open", "Save")
	m.AddSeparator()
	m.AddItem("Quit")
	var chosen []int
	m.OnSelect(func(_ *Menu, i int) { chosen = append(chosen, i) })

	tests := []struct {
		name    string
		index   int
		wantErr error
	}{
		{"item", 1, nil},
		{"separator", 2, retained.ErrInvalidArgument},
		{"out of range", 4, retained.ErrIndexOutOfBounds},
		{"none", -1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Choose(tt.index)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Choose(%d) error = %v, want %v", tt.index, err, tt.wantErr)
			}
		})
	}
	if len(chosen) != 1 || chosen[0] != 1 {
		t.Errorf("OnSelect saw %v, want [1]", chosen)
	}
	if m.ActiveIndex() != -1 {
		t.Errorf("ActiveIndex() = %d, want -1", m.ActiveIndex())
	}
}

func TestSlider(t *testing.T) {
	if _, err := NewSlider(10, 0); !errors.Is(err, retained.ErrInvalidArgument) {
		t.Errorf("NewSlider(10, 0) error = %v, want ErrInvalidArgument", err)
	}
	s := lo.Must(NewSlider(0, 10))
	var previous []int
	s.OnChange(func(_ *Slider, p int) { previous = append(previous, p) })
	if err := s.SetValue(7); err != nil {
		t.Fatal(err)
	}
	if err := s.SetValue(11); !errors.Is(err, retained.ErrInvalidArgument) {
		t.Errorf("SetValue(11) error = %v, want ErrInvalidArgument", err)
	}
	if err := s.SetRange(0, 5); err != nil {
		t.Fatal(err)
	}
	if s.Value() != 5 {
		t.Errorf("Value() after narrowing the range = %d, want 5", s.Value())
	}
	if len(previous) != 2 || previous[0] != 0 || previous[1] != 7 {
		t.Errorf("OnChange previous values = %v, want [0 7]", previous)
	}
}

func TestSpinnerStep(t *testing.T) {
	tests := []struct {
		name     string
		circular bool
		start    int
		step     int
		wantOK   bool
		wantNext int
	}{
		{"next", false, 0, 1, true, 1},
		{"past the end", false, 2, 1, false, 2},
		{"before the start", false, 0, -1, false, 0},
		{"wraps forward", true, 2, 1, true, 0},
		{"wraps backward", true, 0, -1, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSpinner("a", "b", "c")
			s.SetCircular(tt.circular)
			if err := s.SetSelectedIndex(tt.start); err != nil {
				t.Fatal(err)
			}
			var ok bool
			if tt.step > 0 {
				ok = s.Next()
			} else {
				ok = s.Previous()
			}
			if ok != tt.wantOK || s.SelectedIndex() != tt.wantNext {
				t.Errorf("step = %v, selected %d; want %v, %d", ok, s.SelectedIndex(), tt.wantOK, tt.wantNext)
			}
		})
	}

	empty := NewSpinner()
	if empty.Next() || empty.SelectedIndex() != -1 || empty.SelectedItem() != "" {
		t.Errorf("empty spinner stepped")
	}
}

func TestSplitPane(t *testing.T) {
	p := NewSplitPane(Horizontal)
	for _, r := range []float64{-0.1, 1.1} {
		if err := p.SetSplitRatio(r); !errors.Is(err, retained.ErrInvalidArgument) {
			t.Errorf("SetSplitRatio(%v) error = %v, want ErrInvalidArgument", r, err)
		}
	}
	first, second := NewLabel("a"), NewLabel("b")
	if err := p.SetSecond(second); err != nil {
		t.Fatal(err)
	}
	if err := p.SetFirst(first); err != nil {
		t.Fatal(err)
	}
	if p.ChildCount() != 2 || p.First() != first.Widget || p.Second() != second.Widget {
		t.Errorf("split pane children not set")
	}
}

func TestTableHeader(t *testing.T) {
	if _, err := NewTableHeader(Column{Name: "bad", Width: -1}); !errors.Is(err, retained.ErrInvalidArgument) {
		t.Errorf("negative width error = %v, want ErrInvalidArgument", err)
	}
	h := lo.Must(NewTableHeader(
		Column{Name: "Name", Width: 10, MinWidth: 40},
		Column{Name: "Size", Width: 40},
	))
	if c := lo.Must(h.Column(0)); c.Width != 40 {
		t.Errorf("column width = %d, want the minimum 40", c.Width)
	}

	if err := h.ToggleSort(1); err != nil {
		t.Fatal(err)
	}
	if err := h.ToggleSort(1); err != nil {
		t.Fatal(err)
	}
	if c := lo.Must(h.Column(1)); c.Sort != Descending {
		t.Errorf("sort after two toggles = %v, want descending", c.Sort)
	}
	if err := h.ToggleSort(0); err != nil {
		t.Fatal(err)
	}
	if c := lo.Must(h.Column(1)); c.Sort != Unsorted {
		t.Errorf("sorting another column left %v", c.Sort)
	}

	if err := h.SetPressedIndex(1); err != nil {
		t.Fatal(err)
	}
	if err := h.RemoveColumn(1); err != nil {
		t.Fatal(err)
	}
	if h.PressedIndex() != -1 {
		t.Errorf("PressedIndex() after removing the pressed column = %d, want -1", h.PressedIndex())
	}
}

func TestCalendar(t *testing.T) {
	c := lo.Must(NewCalendar(2024, time.December))
	c.NextMonth()
	if c.Year() != 2025 || c.Month() != time.January {
		t.Errorf("NextMonth() = %d-%v, want 2025-January", c.Year(), c.Month())
	}
	c.PreviousMonth()
	c.PreviousMonth()
	if c.Year() != 2024 || c.Month() != time.November {
		t.Errorf("PreviousMonth() twice = %d-%v, want 2024-November", c.Year(), c.Month())
	}
	if err := c.SetMonth(2024, 13); !errors.Is(err, retained.ErrInvalidArgument) {
		t.Errorf("SetMonth(13) error = %v, want ErrInvalidArgument", err)
	}

	tests := []struct {
		d    Date
		want bool
	}{
		{Date{2024, time.February, 29}, true},
		{Date{2023, time.February, 29}, false},
		{Date{2024, time.April, 31}, false},
		{Date{2024, 0, 1}, false},
	}
	for _, tt := range tests {
		if got := tt.d.IsValid(); got != tt.want {
			t.Errorf("%v.IsValid() = %v, want %v", tt.d, got, tt.want)
		}
	}
	if err := c.Select(Date{2023, time.February, 29}); !errors.Is(err, retained.ErrInvalidArgument) {
		t.Errorf("Select(invalid) error = %v, want ErrInvalidArgument", err)
	}
}

func TestCalendarButtonText(t *testing.T) {
	b := lo.Must(NewCalendarButton(2024, time.March))
	if b.Text() != "" {
		t.Errorf("Text() with no selection = %q, want empty", b.Text())
	}
	if err := b.Calendar().Select(Date{2024, time.March, 5}); err != nil {
		t.Fatal(err)
	}
	if err := b.SetFormat("Jan 2"); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "Mar 5" {
		t.Errorf("Text() = %q, want %q", b.Text(), "Mar 5")
	}
	if err := b.SetFormat(""); !errors.Is(err, retained.ErrInvalidArgument) {
		t.Errorf("SetFormat(\"\") error = %v, want ErrInvalidArgument", err)
	}
}

func TestColorChooserButtonClosesOnSelect(t *testing.T) {
	tree := retained.NewTree(retained.NewManualScheduler(time.Unix(0, 0)), 320, 240)
	b := lo.Must(NewColorChooserButton(color.White))
	lo.Must(b.Popup().OpenOn(tree.Display()))
	if err := b.Chooser().Select(color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}); err != nil {
		t.Fatal(err)
	}
	if b.Popup().IsOpen() {
		t.Errorf("popup still open after a color was chosen")
	}
	if want := (color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}); b.Selected() != want {
		t.Errorf("Selected() = %v, want %v", b.Selected(), want)
	}
	if err := b.Chooser().Select(nil); !errors.Is(err, retained.ErrInvalidArgument) {
		t.Errorf("Select(nil) error = %v, want ErrInvalidArgument", err)
	}
}
