package retained

import (
	"image"

	"github.com/agiangrant/skins/render"
)

// Decorator is a transient visual modifier applied before a widget paints.
// Transitions attach decorators for their duration and detach them on every
// exit path.
type Decorator interface {
	// Prepare adjusts g before w and its children paint. The caller brackets
	// the call with Push and Pop.
	Prepare(w *Widget, g render.Graphics)
}

// ClipDecorator limits painting to a rectangle in the widget's local space.
type ClipDecorator struct {
	rect image.Rectangle
}

// NewClipDecorator creates a clip decorator showing r.
func NewClipDecorator(r image.Rectangle) *ClipDecorator {
	return &ClipDecorator{rect: r}
}

// Rect returns the visible rectangle.
func (d *ClipDecorator) Rect() image.Rectangle { return d.rect }

// SetRect changes the visible rectangle.
func (d *ClipDecorator) SetRect(r image.Rectangle) { d.rect = r }

func (d *ClipDecorator) Prepare(w *Widget, g render.Graphics) {
	g.ClipRect(d.rect)
}

// TranslationDecorator offsets a widget's painting by (X, Y) pixels. When
// Clip is set, painting is confined to the widget's untranslated bounds so the
// content appears to slide out from behind its own edge.
type TranslationDecorator struct {
	X, Y int
	Clip bool
}

// NewTranslationDecorator creates a translation decorator.
func NewTranslationDecorator(x, y int, clip bool) *TranslationDecorator {
	return &TranslationDecorator{X: x, Y: y, Clip: clip}
}

// SetOffset changes the translation.
func (d *TranslationDecorator) SetOffset(x, y int) {
	d.X, d.Y = x, y
}

func (d *TranslationDecorator) Prepare(w *Widget, g render.Graphics) {
	if d.Clip {
		g.ClipRect(image.Rect(0, 0, w.Width(), w.Height()))
	}
	g.Translate(d.X, d.Y)
}

// FadeDecorator multiplies a widget's opacity.
type FadeDecorator struct {
	opacity float64
}

// NewFadeDecorator creates a fade decorator with the given opacity (0-1).
func NewFadeDecorator(opacity float64) *FadeDecorator {
	return &FadeDecorator{opacity: Clamp(opacity, 0, 1)}
}

// Opacity returns the current opacity.
func (d *FadeDecorator) Opacity() float64 { return d.opacity }

// SetOpacity changes the opacity, clamped to 0-1.
func (d *FadeDecorator) SetOpacity(opacity float64) {
	d.opacity = Clamp(opacity, 0, 1)
}

func (d *FadeDecorator) Prepare(w *Widget, g render.Graphics) {
	g.SetOpacity(d.opacity)
}
