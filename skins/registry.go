package skins

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/widgets"
)

// Factory creates a fresh skin. A skin instance is installed on at most one
// widget, so a registry calls its factory once per widget.
type Factory func(env Env) retained.Skin

// Registry maps widget kinds to skin factories.
type Registry struct {
	env       Env
	factories map[retained.WidgetKind]Factory
}

// NewRegistry returns a registry holding every built-in skin, built with env.
func NewRegistry(env Env) *Registry {
	r := &Registry{env: env.normalized(), factories: make(map[retained.WidgetKind]Factory)}
	builtins := map[retained.WidgetKind]Factory{
		retained.KindLabel:              func(e Env) retained.Skin { return NewLabelSkin(e) },
		retained.KindBox:                func(e Env) retained.Skin { return NewBoxSkin(e) },
		retained.KindExpander:           func(e Env) retained.Skin { return NewExpanderSkin(e) },
		retained.KindAccordion:          func(e Env) retained.Skin { return NewAccordionSkin(e) },
		retained.KindPopup:              func(e Env) retained.Skin { return NewPopupSkin(e) },
		retained.KindSheet:              func(e Env) retained.Skin { return NewSheetSkin(e) },
		retained.KindFrame:              func(e Env) retained.Skin { return NewFrameSkin(e) },
		retained.KindMenu:               func(e Env) retained.Skin { return NewMenuSkin(e) },
		retained.KindMenuPopup:          func(e Env) retained.Skin { return NewMenuPopupSkin(e) },
		retained.KindCalendar:           func(e Env) retained.Skin { return NewCalendarSkin(e) },
		retained.KindCalendarButton:     func(e Env) retained.Skin { return NewCalendarButtonSkin(e) },
		retained.KindColorChooser:       func(e Env) retained.Skin { return NewColorChooserSkin(e) },
		retained.KindColorChooserButton: func(e Env) retained.Skin { return NewColorChooserButtonSkin(e) },
		retained.KindSlider:             func(e Env) retained.Skin { return NewSliderSkin(e) },
		retained.KindSpinner:            func(e Env) retained.Skin { return NewSpinnerSkin(e) },
		retained.KindSplitPane:          func(e Env) retained.Skin { return NewSplitPaneSkin(e) },
		retained.KindTableHeader:        func(e Env) retained.Skin { return NewTableHeaderSkin(e) },
	}
	for kind, f := range builtins {
		r.factories[kind] = f
	}
	return r
}

// Env returns the environment skins are created with.
func (r *Registry) Env() Env { return r.env }

// Register sets the factory for kind, replacing any built-in one.
func (r *Registry) Register(kind retained.WidgetKind, f Factory) error {
	if kind == "" {
		return fmt.Errorf("%w: empty widget kind", retained.ErrInvalidArgument)
	}
	if f == nil {
		return fmt.Errorf("%w: nil factory for %q", retained.ErrInvalidArgument, kind)
	}
	r.factories[kind] = f
	return nil
}

// Kinds returns the registered widget kinds in sorted order.
func (r *Registry) Kinds() []retained.WidgetKind {
	kinds := lo.Keys(r.factories)
	slices.Sort(kinds)
	return kinds
}

// New creates a skin for kind.
func (r *Registry) New(kind retained.WidgetKind) (retained.Skin, error) {
	f, ok := r.factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no skin registered for %q", retained.ErrInvalidArgument, kind)
	}
	return f(r.env), nil
}

// Install creates a skin for w's kind and installs it, replacing any skin w
// already has.
func (r *Registry) Install(w retained.Component) error {
	base := w.Base()
	s, err := r.New(base.Kind())
	if err != nil {
		return err
	}
	return base.SetSkin(s)
}

// popupOwner is implemented by widgets whose popup window lives outside the
// widget tree until it opens.
type popupOwner interface {
	Popup() *widgets.Window
}

// InstallTree installs a skin on every unskinned widget under root, root
// included, and on the popup windows those widgets own. Displays are skipped.
func (r *Registry) InstallTree(root retained.Component) error {
	w := root.Base()
	if w.Kind() != retained.KindDisplay && w.Skin() == nil {
		if err := r.Install(w); err != nil {
			return err
		}
	}
	if p, ok := w.Owner().(popupOwner); ok && p.Popup() != nil {
		if err := r.InstallTree(p.Popup()); err != nil {
			return err
		}
	}
	for _, child := range w.Children() {
		if err := r.InstallTree(child); err != nil {
			return err
		}
	}
	return nil
}
