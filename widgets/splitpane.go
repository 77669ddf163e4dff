package widgets

import (
	"fmt"
	"math"

	"github.com/agiangrant/skins/retained"
)

// SplitPane divides its area between two components with a draggable
// splitter.
type SplitPane struct {
	*retained.Widget
	first, second *retained.Widget
	orientation   Orientation
	ratio         float64
	locked        bool
}

// NewSplitPane creates a split pane with the splitter in the middle.
func NewSplitPane(orientation Orientation) *SplitPane {
	p := &SplitPane{
		Widget:      retained.NewWidget(retained.KindSplitPane),
		orientation: orientation,
		ratio:       0.5,
	}
	p.SetOwner(p)
	return p
}

// First returns the left or top component, or nil.
func (p *SplitPane) First() *retained.Widget { return p.first }

// SetFirst replaces the left or top component.
func (p *SplitPane) SetFirst(c retained.Component) error {
	w := componentBase(c)
	if err := replaceChild(p.Widget, p.first, w); err != nil {
		return err
	}
	p.first = w
	return nil
}

// Second returns the right or bottom component, or nil.
func (p *SplitPane) Second() *retained.Widget { return p.second }

// SetSecond replaces the right or bottom component.
func (p *SplitPane) SetSecond(c retained.Component) error {
	w := componentBase(c)
	if err := replaceChild(p.Widget, p.second, w); err != nil {
		return err
	}
	p.second = w
	return nil
}

// Orientation returns the split direction: Horizontal places the components
// side by side.
func (p *SplitPane) Orientation() Orientation { return p.orientation }

// SetOrientation changes the split direction.
func (p *SplitPane) SetOrientation(o Orientation) {
	if o == p.orientation {
		return
	}
	p.orientation = o
	changed(p.Widget)
}

// SplitRatio returns the fraction of the area given to the first component.
func (p *SplitPane) SplitRatio() float64 { return p.ratio }

// SetSplitRatio moves the splitter. The ratio must be within [0, 1].
func (p *SplitPane) SetSplitRatio(ratio float64) error {
	if math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
		return fmt.Errorf("%w: split ratio %v", retained.ErrInvalidArgument, ratio)
	}
	if ratio == p.ratio {
		return nil
	}
	p.ratio = ratio
	changed(p.Widget)
	return nil
}

// IsLocked reports whether the splitter is fixed in place.
func (p *SplitPane) IsLocked() bool { return p.locked }

// SetLocked fixes or frees the splitter.
func (p *SplitPane) SetLocked(locked bool) {
	if locked == p.locked {
		return
	}
	p.locked = locked
	p.Repaint()
}
