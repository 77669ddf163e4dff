package skins

import (
	"errors"
	"image"
	"image/color"
	"slices"
	"testing"
	"time"

	"github.com/samber/lo"

	"github.com/agiangrant/skins/render"
	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/theme"
	"github.com/agiangrant/skins/widgets"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const epsilon = 1e-6

func testEnv() Env { return NewEnv(theme.Default(), nil) }

func check(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// showOn adds w to the display of a new tree driven by a manual scheduler
// and gives it bounds.
func showOn(t *testing.T, w retained.Component, bounds image.Rectangle) (*retained.Tree, *retained.ManualScheduler) {
	t.Helper()
	sched := retained.NewManualScheduler(epoch)
	tree := retained.NewTree(sched, 640, 480)
	check(t, tree.Display().Add(w.Base()))
	w.Base().SetBounds(bounds)
	return tree, sched
}

// installAll skins w and everything under it with the built-in skins.
func installAll(t *testing.T, w retained.Component) {
	t.Helper()
	check(t, NewRegistry(testEnv()).InstallTree(w))
}

// samples builds one unskinned widget of every built-in kind.
func samples(t *testing.T) map[retained.WidgetKind]retained.Component {
	t.Helper()

	box := lo.Must(widgets.NewBox(widgets.Vertical, widgets.NewLabel("first"), widgets.NewLabel("second")))

	expander := widgets.NewExpander("Details")
	check(t, expander.SetContent(widgets.NewLabel("Hidden content")))

	accordion := widgets.NewAccordion()
	check(t, accordion.AddPanel("One", widgets.NewLabel("first panel")))
	check(t, accordion.AddPanel("Two", widgets.NewLabel("second panel")))

	menu := widgets.NewMenu("Open", "Save")
	menu.AddSeparator()
	menu.AddItem("Quit")

	split := widgets.NewSplitPane(widgets.Horizontal)
	check(t, split.SetFirst(widgets.NewLabel("left")))
	check(t, split.SetSecond(widgets.NewLabel("right")))

	return map[retained.WidgetKind]retained.Component{
		retained.KindLabel:              widgets.NewLabel("Label"),
		retained.KindBox:                box,
		retained.KindExpander:           expander,
		retained.KindAccordion:          accordion,
		retained.KindPopup:              lo.Must(widgets.NewPopup(widgets.NewLabel("popup"))),
		retained.KindSheet:              lo.Must(widgets.NewSheet(widgets.NewLabel("sheet"))),
		retained.KindFrame:              lo.Must(widgets.NewFrame("Title", widgets.NewLabel("frame"))),
		retained.KindMenu:               menu,
		retained.KindMenuPopup:          lo.Must(widgets.NewMenuPopup(widgets.NewMenu("Cut", "Copy"))),
		retained.KindCalendar:           lo.Must(widgets.NewCalendar(2024, time.February)),
		retained.KindCalendarButton:     lo.Must(widgets.NewCalendarButton(2024, time.February)),
		retained.KindColorChooser:       lo.Must(widgets.NewColorChooser(color.NRGBA{R: 0x20, G: 0x60, B: 0xa0, A: 0xff})),
		retained.KindColorChooserButton: lo.Must(widgets.NewColorChooserButton(color.NRGBA{R: 0xff, A: 0xff})),
		retained.KindSlider:             lo.Must(widgets.NewSlider(0, 100)),
		retained.KindSpinner:            widgets.NewSpinner("a", "bb", "ccc"),
		retained.KindSplitPane:          split,
		retained.KindTableHeader: lo.Must(widgets.NewTableHeader(
			widgets.Column{Name: "Name", Width: 80, Resizable: true},
			widgets.Column{Name: "Size", Width: 40, MinWidth: 20},
		)),
	}
}

// descendantBounds returns the bounds of every widget under w, depth first.
func descendantBounds(w *retained.Widget) []image.Rectangle {
	var out []image.Rectangle
	for _, c := range w.Children() {
		out = append(out, c.Bounds())
		out = append(out, descendantBounds(c)...)
	}
	return out
}

// ============================================================================
// Registry
// ============================================================================

func TestRegistryKinds(t *testing.T) {
	r := NewRegistry(testEnv())
	want := lo.Keys(samples(t))
	slices.Sort(want)
	if got := r.Kinds(); !slices.Equal(got, want) {
		t.Errorf("Kinds() = %v, want %v", got, want)
	}
}

func TestRegistryErrors(t *testing.T) {
	r := NewRegistry(Env{})
	if _, err := r.New("knob"); !errors.Is(err, retained.ErrInvalidArgument) {
		t.Errorf("New(knob) error = %v, want ErrInvalidArgument", err)
	}
	if err := r.Register("", func(Env) retained.Skin { return nil }); !errors.Is(err, retained.ErrInvalidArgument) {
		t.Errorf("Register(\"\") error = %v, want ErrInvalidArgument", err)
	}
	if err := r.Register("knob", nil); !errors.Is(err, retained.ErrInvalidArgument) {
		t.Errorf("Register(nil) error = %v, want ErrInvalidArgument", err)
	}
	if err := r.Install(retained.NewWidget("knob")); !errors.Is(err, retained.ErrInvalidArgument) {
		t.Errorf("Install(knob) error = %v, want ErrInvalidArgument", err)
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	r := NewRegistry(testEnv())
	var created *LabelSkin
	check(t, r.Register(retained.KindLabel, func(e Env) retained.Skin {
		created = NewLabelSkin(e)
		return created
	}))
	l := widgets.NewLabel("x")
	check(t, r.Install(l))
	if created == nil || l.Skin() != created {
		t.Errorf("Skin() = %v, want the registered factory's skin", l.Skin())
	}
}

func TestInstallTree(t *testing.T) {
	tree := retained.NewTree(retained.NewManualScheduler(epoch), 640, 480)
	label := widgets.NewLabel("keep")
	own := NewLabelSkin(testEnv())
	check(t, label.SetSkin(own))
	button := lo.Must(widgets.NewCalendarButton(2024, time.March))
	box := lo.Must(widgets.NewBox(widgets.Horizontal, label, button))
	check(t, tree.Display().Add(box.Widget))

	check(t, NewRegistry(testEnv()).InstallTree(tree.Display()))

	if tree.Display().Skin() != nil {
		t.Errorf("display skin = %T, want none", tree.Display().Skin())
	}
	if label.Skin() != own {
		t.Errorf("label skin was replaced")
	}
	if _, ok := box.Skin().(*BoxSkin); !ok {
		t.Errorf("box skin = %T, want *BoxSkin", box.Skin())
	}
	if _, ok := button.Skin().(*CalendarButtonSkin); !ok {
		t.Errorf("button skin = %T, want *CalendarButtonSkin", button.Skin())
	}
	if _, ok := button.Popup().Skin().(*PopupSkin); !ok {
		t.Errorf("popup skin = %T, want *PopupSkin", button.Popup().Skin())
	}
	if _, ok := button.Calendar().Skin().(*CalendarSkin); !ok {
		t.Errorf("calendar skin = %T, want *CalendarSkin", button.Calendar().Skin())
	}
}

// ============================================================================
// Contract properties shared by every skin
// ============================================================================

func TestPreferredSizeConsistency(t *testing.T) {
	for kind, w := range samples(t) {
		t.Run(string(kind), func(t *testing.T) {
			installAll(t, w)
			s := w.Base().Skin()
			want := retained.Size{
				Width:  s.PreferredWidth(retained.Unconstrained),
				Height: s.PreferredHeight(retained.Unconstrained),
			}
			if got := s.PreferredSize(); got != want {
				t.Errorf("PreferredSize() = %v, want %v", got, want)
			}
			if want.Width <= 0 || want.Height <= 0 {
				t.Errorf("preferred size %v is empty", want)
			}
		})
	}
}

func TestLayoutIdempotent(t *testing.T) {
	for kind, w := range samples(t) {
		t.Run(string(kind), func(t *testing.T) {
			installAll(t, w)
			base := w.Base()
			size := base.PreferredSize()
			base.SetBounds(image.Rect(0, 0, size.Width+20, size.Height+10))

			base.Skin().Layout()
			first := descendantBounds(base)
			base.Skin().Layout()
			second := descendantBounds(base)
			if !slices.Equal(first, second) {
				t.Errorf("second Layout() = %v, want %v", second, first)
			}
		})
	}
}

func TestInstallRejectsOtherModels(t *testing.T) {
	s := NewSliderSkin(testEnv())
	if err := s.Install(widgets.NewSpinner("a")); !errors.Is(err, retained.ErrInvalidArgument) {
		t.Errorf("Install(spinner) error = %v, want ErrInvalidArgument", err)
	}
	if s.Component() != nil {
		t.Errorf("Component() = %v after failed install, want nil", s.Component())
	}

	l := NewLabelSkin(testEnv())
	check(t, l.Install(widgets.NewLabel("a")))
	if err := l.Install(widgets.NewLabel("b")); !errors.Is(err, retained.ErrIllegalState) {
		t.Errorf("second Install() error = %v, want ErrIllegalState", err)
	}
}

func TestNilColorRejected(t *testing.T) {
	env := testEnv()
	expander := NewExpanderSkin(env)
	spinner := NewSpinnerSkin(env)
	header := NewTableHeaderSkin(env)
	split := NewSplitPaneSkin(env)
	button := NewColorChooserButtonSkin(env)

	tests := []struct {
		name  string
		set   func(color.Color) error
		state func() color.NRGBA
	}{
		{"expander title bar", expander.SetTitleBarColor, func() color.NRGBA { c, _, _ := expander.TitleBarColors(); return c }},
		{"spinner button", spinner.SetButtonColor, func() color.NRGBA { c, _, _ := spinner.ButtonColors(); return c }},
		{"table header", header.SetHeaderColor, func() color.NRGBA { c, _, _ := header.HeaderColors(); return c }},
		{"splitter", split.SetSplitterColor, func() color.NRGBA { c, _, _ := split.SplitterColors(); return c }},
		{"popup button", button.SetButtonColor, func() color.NRGBA { c, _, _ := button.ButtonColors(); return c }},
		{"label", NewLabelSkin(env).SetColor, nil},
		{"accordion header", NewAccordionSkin(env).SetHeaderColor, nil},
		{"menu active", NewMenuSkin(env).SetActiveColor, nil},
		{"calendar header", NewCalendarSkin(env).SetHeaderColor, nil},
		{"color chooser marker", NewColorChooserSkin(env).SetMarkerColor, nil},
		{"slider thumb", NewSliderSkin(env).SetThumbColor, nil},
		{"frame title bar", NewFrameSkin(env).SetTitleBarColor, nil},
		{"sheet border", NewSheetSkin(env).SetBorderColor, nil},
		{"menu popup background", NewMenuPopupSkin(env).SetBackgroundColor, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var before color.NRGBA
			if tt.state != nil {
				before = tt.state()
			}
			if err := tt.set(nil); !errors.Is(err, retained.ErrInvalidArgument) {
				t.Errorf("set(nil) error = %v, want ErrInvalidArgument", err)
			}
			if tt.state != nil && tt.state() != before {
				t.Errorf("state changed to %v after rejected set, want %v", tt.state(), before)
			}
		})
	}
}

func TestDerivedShadesFollowBase(t *testing.T) {
	env := testEnv()
	s := NewExpanderSkin(env)
	c := color.NRGBA{R: 0x40, G: 0x80, B: 0xc0, A: 0xff}
	check(t, s.SetTitleBarColor(c))
	base, light, shadow := s.TitleBarColors()
	if base != c {
		t.Errorf("base = %v, want %v", base, c)
	}
	if want := env.Theme.Brighter(c); light != want {
		t.Errorf("light = %v, want %v", light, want)
	}
	if want := env.Theme.Darker(c); shadow != want {
		t.Errorf("shadow = %v, want %v", shadow, want)
	}
}

func TestNegativePaddingRejected(t *testing.T) {
	env := testEnv()
	bad := retained.Insets{Top: 1, Left: -1}
	tests := map[string]func(retained.Insets) error{
		"expander":     NewExpanderSkin(env).SetPadding,
		"accordion":    NewAccordionSkin(env).SetPadding,
		"menu":         NewMenuSkin(env).SetItemPadding,
		"calendar":     NewCalendarSkin(env).SetCellPadding,
		"color":        NewColorChooserSkin(env).SetPadding,
		"slider":       NewSliderSkin(env).SetPadding,
		"spinner":      NewSpinnerSkin(env).SetPadding,
		"table header": NewTableHeaderSkin(env).SetPadding,
		"popup":        NewPopupSkin(env).SetPadding,
		"button":       NewCalendarButtonSkin(env).SetPadding,
	}
	for name, set := range tests {
		if err := set(bad); !errors.Is(err, retained.ErrInvalidArgument) {
			t.Errorf("%s: SetPadding(%v) error = %v, want ErrInvalidArgument", name, bad, err)
		}
	}

	s := NewExpanderSkin(env)
	before := s.Padding()
	_ = s.SetPadding(bad)
	if s.Padding() != before {
		t.Errorf("Padding() = %v after rejected set, want %v", s.Padding(), before)
	}
}

func TestPaintOrder(t *testing.T) {
	e := widgets.NewExpander("Details")
	check(t, e.SetContent(widgets.NewLabel("Hidden content")))
	installAll(t, e)
	tree, _ := showOn(t, e, image.Rect(10, 10, 210, 110))

	rec := render.NewRecorder(image.Rect(0, 0, 640, 480))
	tree.Paint(rec)
	cmds := rec.Commands()

	background := slices.IndexFunc(cmds, func(c render.Command) bool {
		return c.Op == render.OpFillRect && c.Rect == image.Rect(10, 10, 210, 110)
	})
	title := slices.IndexFunc(cmds, func(c render.Command) bool { return c.Op == render.OpText && c.Text == "Details" })
	content := slices.IndexFunc(cmds, func(c render.Command) bool {
		return c.Op == render.OpText && c.Text == "Hidden content"
	})
	border := slices.IndexFunc(cmds, func(c render.Command) bool {
		return c.Op == render.OpStrokeRect && c.Rect == image.Rect(10, 10, 210, 110)
	})
	if background < 0 || title < 0 || content < 0 || border < 0 {
		t.Fatalf("missing commands: background=%d title=%d content=%d border=%d in %v",
			background, title, content, border, cmds)
	}
	if !(background < title && title < content && content < border) {
		t.Errorf("paint order background=%d title=%d content=%d border=%d, want increasing",
			background, title, content, border)
	}
}
