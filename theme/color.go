package theme

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/agiangrant/skins/retained"
)

// DefaultDelta is the brightness adjustment used for derived colors.
const DefaultDelta = 0.1

// Brighten raises the HSB brightness of c by the factor (1 + delta), clamped
// to full brightness. Hue, saturation and alpha are preserved.
func Brighten(c color.Color, delta float64) color.NRGBA {
	return adjustBrightness(c, 1+delta)
}

// Darken lowers the HSB brightness of c by the factor (1 - delta).
func Darken(c color.Color, delta float64) color.NRGBA {
	return adjustBrightness(c, 1-delta)
}

func adjustBrightness(c color.Color, factor float64) color.NRGBA {
	n := toNRGBA(c)
	cf := colorful.Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
	}
	h, s, v := cf.Hsv()
	v = retained.Clamp(v*factor, 0, 1)
	r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: n.A}
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	alpha := uint8(0xff)
	if len(s) == 9 && strings.HasPrefix(s, "#") {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: color %q: bad alpha", retained.ErrInvalidArgument, s)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: color %q: %v", retained.ErrInvalidArgument, s, err)
	}
	r, g, b := cf.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// FormatColor renders c as "#rrggbb", or "#rrggbbaa" when translucent.
func FormatColor(c color.Color) string {
	n := toNRGBA(c)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
