package widgets

import (
	"fmt"
	"image/color"

	"github.com/agiangrant/skins/retained"
)

// ColorChooser lets the user pick a color from a hue strip and a
// saturation/value square.
type ColorChooser struct {
	*retained.Widget
	selected color.NRGBA
	onSelect func(c *ColorChooser, col color.NRGBA)
}

// NewColorChooser creates a chooser with c selected.
func NewColorChooser(c color.Color) (*ColorChooser, error) {
	cc := &ColorChooser{Widget: retained.NewWidget(retained.KindColorChooser)}
	cc.SetOwner(cc)
	if err := cc.setSelected(c); err != nil {
		return nil, err
	}
	return cc, nil
}

// Selected returns the selected color.
func (cc *ColorChooser) Selected() color.NRGBA { return cc.selected }

// Select changes the selected color and reports it to the OnSelect callback.
func (cc *ColorChooser) Select(c color.Color) error {
	if err := cc.setSelected(c); err != nil {
		return err
	}
	if cc.onSelect != nil {
		cc.onSelect(cc, cc.selected)
	}
	return nil
}

func (cc *ColorChooser) setSelected(c color.Color) error {
	if c == nil {
		return fmt.Errorf("%w: nil color", retained.ErrInvalidArgument)
	}
	cc.selected = color.NRGBAModel.Convert(c).(color.NRGBA)
	cc.Repaint()
	return nil
}

// OnSelect sets the callback run when a color is selected.
func (cc *ColorChooser) OnSelect(fn func(c *ColorChooser, col color.NRGBA)) {
	cc.onSelect = fn
}

// ColorChooserButton shows a color swatch and opens a chooser popup.
type ColorChooserButton struct {
	*retained.Widget
	chooser *ColorChooser
	popup   *Window
}

// NewColorChooserButton creates a button with c selected.
func NewColorChooserButton(c color.Color) (*ColorChooserButton, error) {
	chooser, err := NewColorChooser(c)
	if err != nil {
		return nil, err
	}
	popup, err := NewPopup(chooser)
	if err != nil {
		return nil, err
	}
	b := &ColorChooserButton{
		Widget:  retained.NewWidget(retained.KindColorChooserButton),
		chooser: chooser,
		popup:   popup,
	}
	b.SetOwner(b)
	chooser.OnSelect(func(*ColorChooser, color.NRGBA) {
		b.Repaint()
		b.popup.Close()
	})
	return b, nil
}

// Chooser returns the popup's color chooser.
func (b *ColorChooserButton) Chooser() *ColorChooser { return b.chooser }

// Popup returns the popup window.
func (b *ColorChooserButton) Popup() *Window { return b.popup }

// Selected returns the selected color.
func (b *ColorChooserButton) Selected() color.NRGBA { return b.chooser.Selected() }
