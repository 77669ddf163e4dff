package commands

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/agiangrant/skins/theme"
	"github.com/agiangrant/skins/transition"
)

func (a *app) newThemeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Create or show theme files",
	}
	cmd.AddCommand(a.newThemeInitCommand(), a.newThemeShowCommand())
	return cmd
}

func (a *app) newThemeInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the built-in theme to a TOML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "theme.toml"
			if len(args) == 1 {
				path = args[0]
			}
			exists, err := afero.Exists(a.fs, path)
			if err != nil {
				return fmt.Errorf("failed to check %s: %w", path, err)
			}
			if exists && !lo.Must(cmd.Flags().GetBool("force")) {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := theme.SaveConfig(a.fs, path, theme.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")
	return cmd
}

func (a *app) newThemeShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved palette and transition timings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.theme()
			if err != nil {
				return err
			}

			colors := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(mutedStyle).
				Headers("COLOR", "BASE", "BRIGHTER", "DARKER").
				StyleFunc(cellStyle)
			p := t.Colors
			for _, c := range []struct {
				name  string
				value color.NRGBA
			}{
				{"background", p.Background},
				{"foreground", p.Foreground},
				{"border", p.Border},
				{"accent", p.Accent},
				{"selection background", p.SelectionBackground},
				{"selection foreground", p.SelectionForeground},
				{"disabled foreground", p.DisabledForeground},
				{"focus", p.Focus},
			} {
				colors.Row(c.name, swatch(c.value), swatch(t.Brighter(c.value)), swatch(t.Darker(c.value)))
			}

			timings := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(mutedStyle).
				Headers("TRANSITION", "DURATION", "RATE", "EASING").
				StyleFunc(cellStyle)
			for _, tm := range []struct {
				name   string
				timing theme.Timing
			}{
				{"expand", t.Expand},
				{"selection", t.Selection},
				{"slide", t.Slide},
				{"fade", t.Fade},
			} {
				timings.Row(tm.name, tm.timing.Duration.String(), tm.timing.Rate.String(), easingName(tm.timing.Easing))
			}

			fmt.Fprintln(a.out, titleStyle.Render("Font: "+t.Font.Name()))
			fmt.Fprintln(a.out, colors.Render())
			fmt.Fprintln(a.out, timings.Render())
			return nil
		},
	}
}

// swatch renders c as a colored block followed by its hex value.
func swatch(c color.Color) string {
	hex := theme.FormatColor(c)
	block := lipgloss.NewStyle().Background(lipgloss.Color(hex[:7])).Render("  ")
	return block + " " + hex
}

func easingName(e transition.Easing) string {
	return strings.ToLower(strings.TrimPrefix(fmt.Sprintf("%T", e), "transition."))
}
