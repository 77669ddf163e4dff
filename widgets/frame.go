package widgets

import "github.com/agiangrant/skins/retained"

// Frame is a decorated window with a title bar.
type Frame struct {
	*Window
	title string
}

// NewFrame creates a frame around content.
func NewFrame(title string, content retained.Component) (*Frame, error) {
	w := newWindow(retained.KindFrame)
	f := &Frame{Window: w, title: title}
	f.SetOwner(f)
	if err := f.SetContent(content); err != nil {
		return nil, err
	}
	return f, nil
}

// Title returns the title bar text.
func (f *Frame) Title() string { return f.title }

// SetTitle changes the title bar text.
func (f *Frame) SetTitle(title string) {
	if title == f.title {
		return
	}
	f.title = title
	changed(f.Widget)
}
