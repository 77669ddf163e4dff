// Package theme supplies the colors, font and animation timings skins are
// constructed with. A Theme is built once per session and is read-only
// afterwards.
package theme

import (
	"fmt"
	"image/color"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/agiangrant/skins/transition"
)

// Config represents a theme.toml file.
type Config struct {
	Colors      ColorConfig       `toml:"colors"`
	Font        FontConfig        `toml:"font"`
	Transitions TransitionsConfig `toml:"transitions"`

	// Multiplicative HSB brightness step for derived colors
	BrightnessDelta float64 `toml:"brightness_delta"`
}

// ColorConfig holds the base palette as hex strings.
type ColorConfig struct {
	Background          string `toml:"background"`
	Foreground          string `toml:"foreground"`
	Border              string `toml:"border"`
	Accent              string `toml:"accent"`
	SelectionBackground string `toml:"selection_background"`
	SelectionForeground string `toml:"selection_foreground"`
	DisabledForeground  string `toml:"disabled_foreground"`
	Focus               string `toml:"focus"`
}

type FontConfig struct {
	// basic, inconsolata or inconsolata-bold
	Face string `toml:"face"`
}

// TimingConfig describes one kind of transition.
type TimingConfig struct {
	DurationMS int    `toml:"duration_ms"`
	RateMS     int    `toml:"rate_ms"`
	Easing     string `toml:"easing"`
}

type TransitionsConfig struct {
	// Expander expand/collapse
	Expand TimingConfig `toml:"expand"`
	// Accordion selection cross-fade
	Selection TimingConfig `toml:"selection"`
	// Sheet slide in/out
	Slide TimingConfig `toml:"slide"`
	// Popup close fade
	Fade TimingConfig `toml:"fade"`
}

// DefaultConfig returns the built-in theme.
func DefaultConfig() Config {
	return Config{
		Colors: ColorConfig{
			Background:          "#ebedef",
			Foreground:          "#000000",
			Border:              "#999999",
			Accent:              "#14538b",
			SelectionBackground: "#14538b",
			SelectionForeground: "#ffffff",
			DisabledForeground:  "#999999",
			Focus:               "#000000",
		},
		Font: FontConfig{Face: "basic"},
		Transitions: TransitionsConfig{
			Expand:    TimingConfig{DurationMS: 250, RateMS: 30, Easing: "quadratic"},
			Selection: TimingConfig{DurationMS: 250, RateMS: 30, Easing: "quadratic"},
			Slide:     TimingConfig{DurationMS: 300, RateMS: 30, Easing: "quartic"},
			Fade:      TimingConfig{DurationMS: 250, RateMS: 30, Easing: "linear"},
		},
		BrightnessDelta: DefaultDelta,
	}
}

// Palette is the resolved base palette.
type Palette struct {
	Background          color.NRGBA
	Foreground          color.NRGBA
	Border              color.NRGBA
	Accent              color.NRGBA
	SelectionBackground color.NRGBA
	SelectionForeground color.NRGBA
	DisabledForeground  color.NRGBA
	Focus               color.NRGBA
}

// Timing is a resolved transition timing.
type Timing struct {
	Duration time.Duration
	Rate     time.Duration
	Easing   transition.Easing
}

// Options returns transition options for this timing.
func (t Timing) Options(name string) transition.Options {
	return transition.Options{Name: name, Duration: t.Duration, Rate: t.Rate}
}

// Theme is a resolved, read-only theme.
type Theme struct {
	Colors    Palette
	Font      *Font
	Expand    Timing
	Selection Timing
	Slide     Timing
	Fade      Timing
	Delta     float64
}

// Brighter returns c brightened by the theme's delta.
func (t *Theme) Brighter(c color.Color) color.NRGBA {
	return Brighten(c, t.Delta)
}

// Darker returns c darkened by the theme's delta.
func (t *Theme) Darker(c color.Color) color.NRGBA {
	return Darken(c, t.Delta)
}

// Resolve parses every color, font and easing name in the config.
func (c Config) Resolve() (*Theme, error) {
	t := &Theme{Delta: c.BrightnessDelta}
	if t.Delta < 0 || t.Delta >= 1 {
		return nil, fmt.Errorf("brightness_delta %v out of range [0, 1)", t.Delta)
	}

	colors := []struct {
		name string
		src  string
		dst  *color.NRGBA
	}{
		{"background", c.Colors.Background, &t.Colors.Background},
		{"foreground", c.Colors.Foreground, &t.Colors.Foreground},
		{"border", c.Colors.Border, &t.Colors.Border},
		{"accent", c.Colors.Accent, &t.Colors.Accent},
		{"selection_background", c.Colors.SelectionBackground, &t.Colors.SelectionBackground},
		{"selection_foreground", c.Colors.SelectionForeground, &t.Colors.SelectionForeground},
		{"disabled_foreground", c.Colors.DisabledForeground, &t.Colors.DisabledForeground},
		{"focus", c.Colors.Focus, &t.Colors.Focus},
	}
	for _, col := range colors {
		parsed, err := ParseColor(col.src)
		if err != nil {
			return nil, fmt.Errorf("colors.%s: %w", col.name, err)
		}
		*col.dst = parsed
	}

	font, err := FontByName(c.Font.Face)
	if err != nil {
		return nil, fmt.Errorf("font.face: %w", err)
	}
	t.Font = font

	timings := []struct {
		name string
		src  TimingConfig
		dst  *Timing
	}{
		{"expand", c.Transitions.Expand, &t.Expand},
		{"selection", c.Transitions.Selection, &t.Selection},
		{"slide", c.Transitions.Slide, &t.Slide},
		{"fade", c.Transitions.Fade, &t.Fade},
	}
	for _, tm := range timings {
		resolved, err := tm.src.resolve()
		if err != nil {
			return nil, fmt.Errorf("transitions.%s: %w", tm.name, err)
		}
		*tm.dst = resolved
	}

	return t, nil
}

func (c TimingConfig) resolve() (Timing, error) {
	if c.DurationMS < 0 {
		return Timing{}, fmt.Errorf("negative duration_ms %d", c.DurationMS)
	}
	if c.RateMS <= 0 {
		return Timing{}, fmt.Errorf("rate_ms must be positive, got %d", c.RateMS)
	}
	easing := transition.EasingByName(c.Easing)
	if easing == nil {
		return Timing{}, fmt.Errorf("unknown easing %q", c.Easing)
	}
	return Timing{
		Duration: time.Duration(c.DurationMS) * time.Millisecond,
		Rate:     time.Duration(c.RateMS) * time.Millisecond,
		Easing:   easing,
	}, nil
}

// Default returns the built-in theme.
func Default() *Theme {
	t, err := DefaultConfig().Resolve()
	if err != nil {
		panic(fmt.Sprintf("theme: built-in config is invalid: %v", err))
	}
	return t
}

// LoadConfig reads a theme file from fs. Keys missing from the file keep
// their built-in values.
func LoadConfig(fs afero.Fs, path string) (Config, error) {
	config := DefaultConfig()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return config, nil
}

// Load reads and resolves a theme file. Skins cannot render without their
// colors, so callers treat a failure as fatal.
func Load(fs afero.Fs, path string) (*Theme, error) {
	config, err := LoadConfig(fs, path)
	if err != nil {
		return nil, err
	}
	t, err := config.Resolve()
	if err != nil {
		return nil, fmt.Errorf("invalid theme %s: %w", path, err)
	}
	return t, nil
}

// SaveConfig writes config to path on fs.
func SaveConfig(fs afero.Fs, path string, config Config) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal theme: %w", err)
	}

	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
