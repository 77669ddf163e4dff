package commands

import (
	"fmt"
	"image/png"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/agiangrant/skins/render"
)

func (a *app) newRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "render <kind>",
		Short:             "Paint a sample widget to a PNG file",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := lo.Must(cmd.Flags().GetString("output"))
			if out == "" {
				out = args[0] + ".png"
			}
			at := lo.Must(cmd.Flags().GetDuration("at"))

			s, err := a.scene(args[0])
			if err != nil {
				return err
			}
			if at > 0 {
				s.sched.Advance(at)
				s.tree.Validate()
			} else {
				s.settle()
			}
			return a.writePNG(s, out)
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output file (default <kind>.png)")
	cmd.Flags().Duration("at", 0, "Capture this far into the opening transition instead of after it settles")
	return cmd
}

// writePNG paints the scene's display and encodes it to path.
func (a *app) writePNG(s *scene, path string) error {
	size := s.tree.Display().Size()
	canvas := render.NewCanvas(size.Width, size.Height)
	s.tree.Paint(canvas)

	if dir := filepath.Dir(path); dir != "." {
		if err := a.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	f, err := a.fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, canvas.Image()); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	a.log.WithField("path", path).Info("wrote image")
	fmt.Fprintf(a.out, "Wrote %s (%dx%d)\n", path, size.Width, size.Height)
	return nil
}
