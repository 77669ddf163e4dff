package theme

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"

	"github.com/agiangrant/skins/retained"
)

// Font pairs a font face with the metrics skins lay text out by.
type Font struct {
	name string
	face font.Face
}

// NewFont wraps face. A nil face is rejected.
func NewFont(name string, face font.Face) (*Font, error) {
	if face == nil {
		return nil, fmt.Errorf("%w: nil font face", retained.ErrInvalidArgument)
	}
	return &Font{name: name, face: face}, nil
}

// FontByName returns one of the built-in bitmap fonts: "basic",
// "inconsolata" or "inconsolata-bold".
func FontByName(name string) (*Font, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "basic":
		return &Font{name: "basic", face: basicfont.Face7x13}, nil
	case "inconsolata":
		return &Font{name: "inconsolata", face: inconsolata.Regular8x16}, nil
	case "inconsolata-bold":
		return &Font{name: "inconsolata-bold", face: inconsolata.Bold8x16}, nil
	default:
		return nil, fmt.Errorf("%w: unknown font %q", retained.ErrInvalidArgument, name)
	}
}

// Name returns the font's name.
func (f *Font) Name() string { return f.name }

// Face returns the underlying face.
func (f *Font) Face() font.Face { return f.face }

// Measure returns the advance width of s in pixels.
func (f *Font) Measure(s string) int {
	return font.MeasureString(f.face, s).Ceil()
}

// Height returns the line height in pixels.
func (f *Font) Height() int {
	return f.face.Metrics().Height.Ceil()
}

// Ascent returns the distance from the top of a line to its baseline.
func (f *Font) Ascent() int {
	return f.face.Metrics().Ascent.Ceil()
}

// Descent returns the distance from the baseline to the bottom of a line.
func (f *Font) Descent() int {
	return f.face.Metrics().Descent.Ceil()
}
