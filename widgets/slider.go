package widgets

import (
	"fmt"

	"github.com/agiangrant/skins/retained"
)

// Slider selects an integer value in [Min, Max] by dragging a thumb.
type Slider struct {
	*retained.Widget
	min, max    int
	value       int
	orientation Orientation
	onChange    func(s *Slider, previous int)
}

// NewSlider creates a horizontal slider over [min, max] at min.
func NewSlider(min, max int) (*Slider, error) {
	s := &Slider{Widget: retained.NewWidget(retained.KindSlider)}
	s.SetOwner(s)
	if err := s.SetRange(min, max); err != nil {
		return nil, err
	}
	return s, nil
}

// Min returns the lower bound.
func (s *Slider) Min() int { return s.min }

// Max returns the upper bound.
func (s *Slider) Max() int { return s.max }

// Value returns the current value.
func (s *Slider) Value() int { return s.value }

// SetRange changes the bounds, clamping the value into them.
func (s *Slider) SetRange(min, max int) error {
	if min > max {
		return fmt.Errorf("%w: slider range [%d, %d]", retained.ErrInvalidArgument, min, max)
	}
	s.min, s.max = min, max
	s.setValue(retained.Clamp(s.value, min, max))
	changed(s.Widget)
	return nil
}

// SetValue changes the value. Values outside the range are rejected.
func (s *Slider) SetValue(v int) error {
	if v < s.min || v > s.max {
		return fmt.Errorf("%w: value %d outside [%d, %d]", retained.ErrInvalidArgument, v, s.min, s.max)
	}
	s.setValue(v)
	return nil
}

func (s *Slider) setValue(v int) {
	if v == s.value {
		return
	}
	previous := s.value
	s.value = v
	changed(s.Widget)
	if s.onChange != nil {
		s.onChange(s, previous)
	}
}

// Orientation returns the track direction.
func (s *Slider) Orientation() Orientation { return s.orientation }

// SetOrientation changes the track direction.
func (s *Slider) SetOrientation(o Orientation) {
	if o == s.orientation {
		return
	}
	s.orientation = o
	changed(s.Widget)
}

// OnChange sets the callback run after the value changes.
func (s *Slider) OnChange(fn func(s *Slider, previous int)) {
	s.onChange = fn
}
