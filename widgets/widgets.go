// Package widgets holds the widget models skins render: the state accessors
// and mutation entry points of each widget family.
//
// Every model embeds *retained.Widget and registers itself as the widget's
// owner, so the skin installed on it receives the model. Changes a skin may
// want to animate are exposed as vote.Property fields; everything else
// invalidates and repaints the widget directly.
package widgets

import (
	"fmt"

	"github.com/agiangrant/skins/retained"
)

// Orientation selects the main axis of a directional widget.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("orientation(%d)", uint8(o))
	}
}

// changed asks for a new layout and paint after a model change.
func changed(w *retained.Widget) {
	w.Invalidate()
	w.Repaint()
}

// indexValidator accepts -1 (no selection) and indices into a collection of
// size n().
func indexValidator(n func() int) func(int) error {
	return func(i int) error {
		if i < -1 || i >= n() {
			return fmt.Errorf("%w: index %d of %d", retained.ErrIndexOutOfBounds, i, n())
		}
		return nil
	}
}

func componentBase(c retained.Component) *retained.Widget {
	if c == nil {
		return nil
	}
	return c.Base()
}

// replaceChild swaps old for replacement in parent, keeping its position.
func replaceChild(parent, old, replacement *retained.Widget) error {
	if old == replacement {
		return nil
	}
	if replacement != nil && replacement.Parent() != nil {
		return fmt.Errorf("%w: %s already has parent %s", retained.ErrIllegalState, replacement, replacement.Parent())
	}
	i := parent.ChildCount()
	if old != nil {
		if j := parent.IndexOf(old); j >= 0 {
			parent.RemoveAt(j)
			i = j
		}
	}
	if replacement == nil {
		return nil
	}
	return parent.Insert(i, replacement)
}
