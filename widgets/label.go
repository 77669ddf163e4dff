package widgets

import "github.com/agiangrant/skins/retained"

// Label displays a single line of text.
type Label struct {
	*retained.Widget
	text string
}

// NewLabel creates a label.
func NewLabel(text string) *Label {
	l := &Label{Widget: retained.NewWidget(retained.KindLabel), text: text}
	l.SetOwner(l)
	return l
}

// Text returns the label text.
func (l *Label) Text() string { return l.text }

// SetText changes the label text.
func (l *Label) SetText(text string) {
	if text == l.text {
		return
	}
	l.text = text
	changed(l.Widget)
}
