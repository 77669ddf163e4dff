package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/agiangrant/skins/retained"
)

// layoutRow describes one widget of an inspected subtree.
type layoutRow struct {
	Depth     int
	Widget    *retained.Widget
	Preferred retained.Size
	Baseline  retained.Baseline
}

// inspect walks the subtree under w depth first.
func inspect(w *retained.Widget) []layoutRow {
	var rows []layoutRow
	var walk func(w *retained.Widget, depth int)
	walk = func(w *retained.Widget, depth int) {
		rows = append(rows, layoutRow{
			Depth:     depth,
			Widget:    w,
			Preferred: w.PreferredSize(),
			Baseline:  w.Baseline(),
		})
		for _, c := range w.Children() {
			walk(c, depth+1)
		}
	}
	walk(w, 0)
	return rows
}

func (a *app) newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "inspect <kind>",
		Short:             "Print the laid-out bounds, preferred sizes and baselines of a sample widget",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.scene(args[0])
			if err != nil {
				return err
			}
			s.settle()

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(mutedStyle).
				Headers("WIDGET", "BOUNDS", "PREFERRED", "BASELINE", "SKIN").
				StyleFunc(cellStyle)
			for _, r := range inspect(s.target.Base()) {
				baseline := "-"
				if y, ok := r.Baseline.Get(); ok {
					baseline = strconv.Itoa(y)
				}
				skin := "-"
				if r.Widget.Skin() != nil {
					skin = fmt.Sprintf("%T", r.Widget.Skin())
				}
				indent := lipgloss.NewStyle().PaddingLeft(2 * r.Depth).Render(r.Widget.String())
				t.Row(indent, r.Widget.Bounds().String(), r.Preferred.String(), baseline, skin)
			}
			fmt.Fprintln(a.out, t.Render())
			return nil
		},
	}
}

func (a *app) newKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the widget kinds with a built-in skin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			for _, k := range reg.Kinds() {
				fmt.Fprintln(a.out, k)
			}
			return nil
		},
	}
}
