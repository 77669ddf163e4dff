package widgets

import (
	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/vote"
)

// Expander shows a title bar and a content component that can be collapsed
// out of view.
type Expander struct {
	*retained.Widget
	title       string
	content     *retained.Widget
	collapsible bool

	// Expanded is previewed by the skin, which defers the change while it
	// animates the content in or out.
	Expanded *vote.Property[bool]
}

// NewExpander creates an expanded, collapsible expander.
func NewExpander(title string) *Expander {
	e := &Expander{
		Widget:      retained.NewWidget(retained.KindExpander),
		title:       title,
		collapsible: true,
		Expanded:    vote.NewProperty("expanded", true),
	}
	e.SetOwner(e)
	e.Expanded.AddListener(vote.Funcs[bool]{
		Change: func(*vote.Property[bool], bool) { changed(e.Widget) },
	})
	return e
}

// Title returns the title bar text.
func (e *Expander) Title() string { return e.title }

// SetTitle changes the title bar text.
func (e *Expander) SetTitle(title string) {
	if title == e.title {
		return
	}
	e.title = title
	changed(e.Widget)
}

// Content returns the content component, or nil.
func (e *Expander) Content() *retained.Widget { return e.content }

// SetContent replaces the content component.
func (e *Expander) SetContent(c retained.Component) error {
	w := componentBase(c)
	if err := replaceChild(e.Widget, e.content, w); err != nil {
		return err
	}
	e.content = w
	return nil
}

// IsCollapsible reports whether the user may collapse the expander.
func (e *Expander) IsCollapsible() bool { return e.collapsible }

// SetCollapsible sets whether the user may collapse the expander.
func (e *Expander) SetCollapsible(collapsible bool) {
	if collapsible == e.collapsible {
		return
	}
	e.collapsible = collapsible
	changed(e.Widget)
}

// Toggle requests the opposite of the committed expanded state, or the
// reverse of a pending one. Non-collapsible expanders ignore the request.
func (e *Expander) Toggle() (vote.Vote, error) {
	if !e.collapsible {
		return vote.Deny, nil
	}
	return e.Expanded.Set(!e.Expanded.Pending().OrElse(e.Expanded.Get()))
}
