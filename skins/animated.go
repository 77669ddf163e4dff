package skins

import (
	"github.com/sirupsen/logrus"

	"github.com/agiangrant/skins/retained"
	"github.com/agiangrant/skins/theme"
	"github.com/agiangrant/skins/transition"
	"github.com/agiangrant/skins/vote"
	"github.com/agiangrant/skins/widgets"
)

// windowAnimation animates a window's Open property. A close is always
// deferred while the window animates out; an open is approved at once and,
// when animateOpen is set, animated in after it commits. Requesting the
// opposite state mid-flight reverses the running transition.
//
// The owner supplies the visual side through start, update and an optional
// finish.
type windowAnimation struct {
	name        string
	timing      theme.Timing
	log         logrus.FieldLogger
	animateOpen bool
	start       func(t *transition.Transition, w *widgets.Window)
	update      func(t *transition.Transition, w *widgets.Window)
	finish      func(t *transition.Transition, w *widgets.Window)

	window *widgets.Window
	remove func()
	tr     *transition.Transition
}

func (a *windowAnimation) install(w *widgets.Window) {
	a.window = w
	a.remove = w.Open.AddListener(vote.Funcs[bool]{
		Preview: a.previewOpenChange,
		Vetoed:  a.openChangeVetoed,
		Change:  a.openChanged,
	})
}

// uninstall resolves a running transition and stops listening.
func (a *windowAnimation) uninstall() {
	a.end()
	if a.remove != nil {
		a.remove()
		a.remove = nil
	}
	a.window = nil
}

func (a *windowAnimation) isAnimating() bool {
	return a.tr != nil && a.tr.IsRunning()
}

// scale is 1 for a fully shown window and 0 for a hidden one.
func (a *windowAnimation) scale() float64 {
	if a.isAnimating() {
		return a.tr.Ease(a.timing.Easing)
	}
	if a.window != nil && a.window.IsOpen() {
		return 1
	}
	return 0
}

func (a *windowAnimation) end() {
	if a.tr != nil {
		a.tr.End()
		a.tr = nil
	}
}

func (a *windowAnimation) previewOpenChange(p *vote.Property[bool], open bool) vote.Vote {
	if a.tr != nil {
		if !a.tr.IsRunning() {
			return vote.Approve
		}
		// Forward runs show the window, reversed runs hide it.
		if open == a.tr.IsReversed() {
			if err := a.tr.Reverse(); err != nil {
				a.log.WithError(err).Warn("failed to reverse window transition")
			}
		}
		return vote.Defer
	}
	if open || !p.Get() {
		return vote.Approve
	}
	if a.begin(true) {
		return vote.Defer
	}
	return vote.Approve
}

func (a *windowAnimation) openChangeVetoed(p *vote.Property[bool], reason vote.Vote) {
	if reason != vote.Deny || a.tr == nil {
		return
	}
	// A denied request that left the deferred change pending heads back to it.
	if open, ok := p.Pending().Get(); ok && a.tr.IsRunning() {
		if open == a.tr.IsReversed() {
			if err := a.tr.Reverse(); err != nil {
				a.log.WithError(err).Warn("failed to reverse window transition")
			}
		}
		return
	}
	tr := a.tr
	a.tr = nil
	tr.Stop()
	a.window.Repaint()
}

// stopped drops a transition that stopped on its own, which happens when a
// hook panics, and cancels the change it was deferring.
func (a *windowAnimation) stopped(t *transition.Transition) {
	if t != a.tr || t.State() != transition.Stopped {
		return
	}
	a.tr = nil
	if w := a.window; w != nil {
		if err := w.Open.Veto(); err != nil {
			a.log.WithError(err).Warn("failed to cancel window change")
		}
		w.Repaint()
	}
}

func (a *windowAnimation) openChanged(p *vote.Property[bool], _ bool) {
	if p.Get() && a.animateOpen && a.tr == nil {
		a.begin(false)
	}
}

// begin starts a transition in the given direction. It reports false when
// the window cannot animate right now.
func (a *windowAnimation) begin(reversed bool) bool {
	w := a.window
	tree := w.Tree()
	if !w.IsShowing() || tree == nil || tree.Scheduler() == nil || a.timing.Duration <= 0 {
		return false
	}
	opts := a.timing.Options(a.name)
	opts.Reversed = reversed
	opts.Log = a.log
	a.tr = transition.New(tree.Scheduler(), opts, transition.Hooks{
		Start:  func(t *transition.Transition) { a.start(t, w) },
		Update: func(t *transition.Transition) { a.update(t, w) },
		Finish: func(t *transition.Transition) {
			if a.finish != nil {
				a.finish(t, w)
			}
			a.stopped(t)
		},
	})
	if err := a.tr.Start(a.completed); err != nil {
		a.log.WithError(err).Warn("failed to start window transition")
		a.tr = nil
		return false
	}
	return true
}

// completed commits a deferred open or close.
func (a *windowAnimation) completed(*transition.Transition) {
	w := a.window
	if w != nil {
		if v, ok := w.Open.Pending().Get(); ok {
			if _, err := w.Open.Set(v); err != nil {
				a.log.WithError(err).Error("failed to commit window state")
			}
		}
		w.Invalidate()
		w.Repaint()
	}
	a.tr = nil
}

// newCloseFader returns a window animation that fades a window out when it
// closes.
func newCloseFader(env Env, log logrus.FieldLogger, name string) *windowAnimation {
	a := &windowAnimation{name: name, timing: env.Theme.Fade, log: log}
	var fade *retained.FadeDecorator
	a.start = func(t *transition.Transition, w *widgets.Window) {
		fade = retained.NewFadeDecorator(1)
		if err := t.Attach(w.Widget, fade); err != nil {
			a.log.WithError(err).Warn("failed to fade window")
		}
	}
	a.update = func(t *transition.Transition, w *widgets.Window) {
		fade.SetOpacity(a.scale())
		w.Repaint()
	}
	return a
}
