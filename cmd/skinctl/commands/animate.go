package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/skins"
	"github.com/agiangrant/skins/vote"
	"github.com/agiangrant/skins/widgets"
)

// animationStep is one sampled frame of a transition.
type animationStep struct {
	At    time.Duration
	Value float64
}

// probe starts a transition on a scene and reports how to sample it.
type probe struct {
	name      string
	trigger   func() (vote.Vote, error)
	value     func() float64
	animating func() bool
}

// probeFor picks the transition skinctl demonstrates for the scene's widget.
func probeFor(s *scene) (probe, error) {
	switch m := s.target.(type) {
	case *widgets.Expander:
		skin := m.Skin().(*skins.ExpanderSkin)
		return probe{"collapse", m.Toggle, skin.Scale, skin.IsAnimating}, nil
	case *widgets.Accordion:
		skin := m.Skin().(*skins.AccordionSkin)
		return probe{"select panel 1", func() (vote.Vote, error) { return m.Select(1) }, skin.Scale, skin.IsAnimating}, nil
	case *widgets.Sheet:
		skin := m.Skin().(*skins.SheetSkin)
		return probe{"slide open", nil, skin.Scale, skin.IsAnimating}, nil
	case *widgets.MenuPopup:
		skin := m.Skin().(*skins.MenuPopupSkin)
		return probe{"fade out", m.Close, skin.Opacity, skin.IsAnimating}, nil
	case *widgets.CalendarButton:
		return popupProbe(s, m.Skin().(*skins.CalendarButtonSkin))
	case *widgets.ColorChooserButton:
		return popupProbe(s, m.Skin().(*skins.ColorChooserButtonSkin))
	default:
		return probe{}, fmt.Errorf("%w: %s has no transition", retained.ErrInvalidArgument, s.target.Base().Kind())
	}
}

type popupButtonSkin interface {
	OpenPopup() (vote.Vote, error)
	ClosePopup() (vote.Vote, error)
	PopupOpacity() float64
	IsAnimating() bool
}

func popupProbe(s *scene, skin popupButtonSkin) (probe, error) {
	if _, err := skin.OpenPopup(); err != nil {
		return probe{}, err
	}
	s.settle()
	return probe{"popup fade out", skin.ClosePopup, skin.PopupOpacity, skin.IsAnimating}, nil
}

// runProbe triggers p and samples it once per step until it stops animating
// or limit has passed.
func runProbe(s *scene, p probe, step, limit time.Duration) ([]animationStep, error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: step %v", retained.ErrInvalidArgument, step)
	}
	if p.trigger != nil {
		v, err := p.trigger()
		if err != nil {
			return nil, err
		}
		if v == vote.Deny {
			return nil, fmt.Errorf("%w: %s was denied", retained.ErrIllegalState, p.name)
		}
	}
	steps := []animationStep{{At: 0, Value: p.value()}}
	for at := step; at <= limit && p.animating(); at += step {
		s.sched.Advance(step)
		steps = append(steps, animationStep{At: at, Value: p.value()})
	}
	return steps, nil
}

func (a *app) newAnimateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "animate <kind>",
		Short:             "Step through a sample widget's transition on a virtual clock",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			step := lo.Must(cmd.Flags().GetDuration("step"))

			s, err := a.scene(args[0])
			if err != nil {
				return err
			}
			p, err := probeFor(s)
			if err != nil {
				return err
			}
			steps, err := runProbe(s, p, step, settleTime)
			if err != nil {
				return err
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(mutedStyle).
				Headers("T", "VALUE", "").
				StyleFunc(cellStyle)
			for _, st := range steps {
				t.Row(st.At.String(), strconv.FormatFloat(st.Value, 'f', 3, 64), bar(st.Value, 20))
			}
			fmt.Fprintln(a.out, titleStyle.Render(args[0]+": "+p.name))
			fmt.Fprintln(a.out, t.Render())
			return nil
		},
	}
	cmd.Flags().Duration("step", 30*time.Millisecond, "Virtual time between samples")
	return cmd
}
