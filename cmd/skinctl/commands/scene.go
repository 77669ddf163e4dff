package commands

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/skins"
	"github.com/agiangrant/skins/vote"
	"github.com/agiangrant/skins/widgets"
)

// sceneMargin is the offset of the sample widget from the display corner.
const sceneMargin = 10

// settleTime is long enough for every themed transition to finish.
const settleTime = 2 * time.Second

// scene is a sample widget shown on its own display, driven by a virtual
// clock so commands get the same frames on every run.
type scene struct {
	sched  *retained.ManualScheduler
	tree   *retained.Tree
	target retained.Component
}

// sample builds a demo model for kind. Windows are returned closed.
func sample(kind retained.WidgetKind) (retained.Component, error) {
	switch kind {
	case retained.KindLabel:
		return widgets.NewLabel("Hello, skins"), nil
	case retained.KindBox:
		return widgets.NewBox(widgets.Vertical, widgets.NewLabel("First"), widgets.NewLabel("Second"))
	case retained.KindExpander:
		e := widgets.NewExpander("Details")
		if err := e.SetContent(widgets.NewLabel("Expanded content")); err != nil {
			return nil, err
		}
		return e, nil
	case retained.KindAccordion:
		a := widgets.NewAccordion()
		for _, name := range []string{"General", "Advanced", "About"} {
			if err := a.AddPanel(name, widgets.NewLabel(name+" settings")); err != nil {
				return nil, err
			}
		}
		if _, err := a.Select(0); err != nil {
			return nil, err
		}
		return a, nil
	case retained.KindPopup:
		return widgets.NewPopup(widgets.NewLabel("Popup content"))
	case retained.KindSheet:
		return widgets.NewSheet(widgets.NewLabel("Save changes?"))
	case retained.KindFrame:
		return widgets.NewFrame("Untitled", widgets.NewLabel("Frame content"))
	case retained.KindMenu:
		m := widgets.NewMenu("Open", "Save")
		m.AddSeparator()
		m.AddItem("Quit")
		return m, nil
	case retained.KindMenuPopup:
		return widgets.NewMenuPopup(widgets.NewMenu("Cut", "Copy", "Paste"))
	case retained.KindCalendar:
		return widgets.NewCalendar(2024, time.February)
	case retained.KindCalendarButton:
		return widgets.NewCalendarButton(2024, time.February)
	case retained.KindColorChooser:
		return widgets.NewColorChooser(color.NRGBA{R: 0x14, G: 0x53, B: 0x8b, A: 0xff})
	case retained.KindColorChooserButton:
		return widgets.NewColorChooserButton(color.NRGBA{R: 0x14, G: 0x53, B: 0x8b, A: 0xff})
	case retained.KindSlider:
		s, err := widgets.NewSlider(0, 100)
		if err != nil {
			return nil, err
		}
		return s, s.SetValue(40)
	case retained.KindSpinner:
		return widgets.NewSpinner("Red", "Green", "Blue"), nil
	case retained.KindSplitPane:
		p := widgets.NewSplitPane(widgets.Horizontal)
		if err := p.SetFirst(widgets.NewLabel("Left")); err != nil {
			return nil, err
		}
		return p, p.SetSecond(widgets.NewLabel("Right"))
	case retained.KindTableHeader:
		return widgets.NewTableHeader(
			widgets.Column{Name: "Name", Width: 80, Resizable: true, Sort: widgets.Ascending},
			widgets.Column{Name: "Size", Width: 40},
			widgets.Column{Name: "Kind", Width: 60, MinWidth: 30, Resizable: true},
		)
	default:
		return nil, fmt.Errorf("%w: no sample for widget kind %q", retained.ErrInvalidArgument, kind)
	}
}

// newScene skins a sample of kind and shows it on a display of the given
// size. Windows are opened; everything else is placed at its preferred size.
// Opening transitions are left running so callers can step through them.
func newScene(reg *skins.Registry, kind retained.WidgetKind, width, height int) (*scene, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: display size %dx%d", retained.ErrInvalidArgument, width, height)
	}
	target, err := sample(kind)
	if err != nil {
		return nil, err
	}
	sched := retained.NewManualScheduler(time.Unix(0, 0).UTC())
	s := &scene{sched: sched, tree: retained.NewTree(sched, width, height), target: target}
	display := s.tree.Display()

	if err := reg.InstallTree(target); err != nil {
		return nil, fmt.Errorf("failed to skin %s: %w", kind, err)
	}

	var v vote.Vote
	switch m := target.(type) {
	case *widgets.Sheet:
		anchor, err := widgets.NewFrame("Document", widgets.NewLabel("The sheet slides out of this window"))
		if err != nil {
			return nil, err
		}
		if err := reg.InstallTree(anchor); err != nil {
			return nil, err
		}
		anchor.SetLocation(sceneMargin, sceneMargin)
		if _, err := anchor.OpenOn(display); err != nil {
			return nil, err
		}
		v, err = m.OpenOver(anchor)
		if err != nil {
			return nil, err
		}
	case *widgets.MenuPopup:
		v, err = m.OpenAt(display, sceneMargin, sceneMargin)
	case interface {
		retained.Component
		OpenOn(*retained.Widget) (vote.Vote, error)
	}:
		target.Base().SetLocation(sceneMargin, sceneMargin)
		v, err = m.OpenOn(display)
	default:
		w := target.Base()
		if err = display.Add(w); err == nil {
			p := w.PreferredSize()
			w.SetBounds(image.Rect(sceneMargin, sceneMargin, sceneMargin+p.Width, sceneMargin+p.Height))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to show %s: %w", kind, err)
	}
	if v == vote.Deny {
		return nil, fmt.Errorf("%w: opening %s was denied", retained.ErrIllegalState, kind)
	}
	s.tree.Validate()
	return s, nil
}

// settle runs every pending transition to completion.
func (s *scene) settle() {
	s.sched.Advance(settleTime)
	s.tree.Validate()
}
