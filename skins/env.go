// Package skins implements the layout and paint delegates for every widget
// family in package widgets.
//
// Skins are created from an Env, which carries the theme and logger they are
// built with, and are bound to a widget with retained.Widget.SetSkin or a
// Registry. Animated skins preview their widget's vetoable properties, defer
// the change while a transition runs, and commit it from the transition's
// completion callback.
package skins

import (
	"fmt"
	"image/color"

	"github.com/sirupsen/logrus"

	"github.com/agiangrant/skins/internal/log"
	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/theme"
)

// Env is the explicitly passed resource provider every skin is built with.
type Env struct {
	Theme *theme.Theme
	Log   logrus.FieldLogger
}

// NewEnv returns an Env, substituting the built-in theme and a discarding
// logger for nil arguments.
func NewEnv(t *theme.Theme, l logrus.FieldLogger) Env {
	if t == nil {
		t = theme.Default()
	}
	return Env{Theme: t, Log: log.OrDiscard(l)}
}

// normalized fills in defaults for a zero Env.
func (e Env) normalized() Env {
	return NewEnv(e.Theme, e.Log)
}

func (e Env) logger(kind retained.WidgetKind) logrus.FieldLogger {
	return e.Log.WithField("skin", string(kind))
}

// requireColor converts c, rejecting nil.
func requireColor(c color.Color) (color.NRGBA, error) {
	if c == nil {
		return color.NRGBA{}, fmt.Errorf("%w: nil color", retained.ErrInvalidArgument)
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA), nil
}

// install binds base to c after checking that c is the model type T.
func install[T retained.Component](base *retained.SkinBase, c retained.Component) (T, error) {
	var zero T
	m, ok := c.(T)
	if !ok {
		return zero, fmt.Errorf("%w: skin for %T cannot be installed on %T", retained.ErrInvalidArgument, zero, c)
	}
	if err := base.Install(c); err != nil {
		return zero, err
	}
	return m, nil
}
