package widgets

import "github.com/agiangrant/skins/retained"

// Box arranges its children in a row or column.
type Box struct {
	*retained.Widget
	orientation Orientation
	fill        bool
}

// NewBox creates a box with the given children.
func NewBox(orientation Orientation, children ...retained.Component) (*Box, error) {
	b := &Box{Widget: retained.NewWidget(retained.KindBox), orientation: orientation}
	b.SetOwner(b)
	for _, c := range children {
		if err := b.Add(c.Base()); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Orientation returns the main axis.
func (b *Box) Orientation() Orientation { return b.orientation }

// SetOrientation changes the main axis.
func (b *Box) SetOrientation(o Orientation) {
	if o == b.orientation {
		return
	}
	b.orientation = o
	changed(b.Widget)
}

// Fill reports whether children are stretched across the cross axis.
func (b *Box) Fill() bool { return b.fill }

// SetFill sets whether children are stretched across the cross axis.
func (b *Box) SetFill(fill bool) {
	if fill == b.fill {
		return
	}
	b.fill = fill
	changed(b.Widget)
}
