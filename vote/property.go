package vote

import (
	"fmt"

	"github.com/samber/mo"

	"github.com/agiangrant/skins/retained"
)

// Listener observes a vetoable property.
type Listener[T comparable] interface {
	// PreviewChange is called before value is committed.
	PreviewChange(p *Property[T], value T) Vote

	// ChangeVetoed is called on every listener when the tally was not
	// Approve. reason is the aggregate vote.
	ChangeVetoed(p *Property[T], reason Vote)

	// Changed is called after the value actually changed.
	Changed(p *Property[T], previous T)
}

// Funcs adapts plain functions to Listener. Nil fields approve and ignore.
type Funcs[T comparable] struct {
	Preview func(p *Property[T], value T) Vote
	Vetoed  func(p *Property[T], reason Vote)
	Change  func(p *Property[T], previous T)
}

func (f Funcs[T]) PreviewChange(p *Property[T], value T) Vote {
	if f.Preview == nil {
		return Approve
	}
	return f.Preview(p, value)
}

func (f Funcs[T]) ChangeVetoed(p *Property[T], reason Vote) {
	if f.Vetoed != nil {
		f.Vetoed(p, reason)
	}
}

func (f Funcs[T]) Changed(p *Property[T], previous T) {
	if f.Change != nil {
		f.Change(p, previous)
	}
}

type listenerEntry[T comparable] struct {
	id int
	l  Listener[T]
}

// Property is a value whose changes are previewed by listeners before they
// are committed.
//
// Set previews the new value with every listener and tallies the votes. On
// Approve the value is committed and Changed fires. Otherwise ChangeVetoed
// fires with the aggregate vote, and a Defer leaves the value pending until a
// listener commits it with another Set or cancels it with Veto.
type Property[T comparable] struct {
	name      string
	value     T
	pending   mo.Option[T]
	validate  func(T) error
	listeners []listenerEntry[T]
	nextID    int
	busy      bool
}

// NewProperty creates a property holding initial.
func NewProperty[T comparable](name string, initial T) *Property[T] {
	return &Property[T]{name: name, value: initial, pending: mo.None[T]()}
}

// Name returns the property's label.
func (p *Property[T]) Name() string { return p.name }

// Get returns the committed value.
func (p *Property[T]) Get() T { return p.value }

// Pending returns the value of a deferred change, if one is outstanding.
func (p *Property[T]) Pending() mo.Option[T] { return p.pending }

// SetValidator installs a check run by Set before any listener is consulted.
// A failing value leaves the property unchanged.
func (p *Property[T]) SetValidator(fn func(T) error) {
	p.validate = fn
}

// AddListener registers l and returns a function that removes it. Listeners
// are notified in registration order.
func (p *Property[T]) AddListener(l Listener[T]) (remove func()) {
	id := p.nextID
	p.nextID++
	p.listeners = append(p.listeners, listenerEntry[T]{id: id, l: l})
	return func() {
		for i, e := range p.listeners {
			if e.id == id {
				p.listeners = append(p.listeners[:i:i], p.listeners[i+1:]...)
				return
			}
		}
	}
}

// Set requests a change to value and returns the aggregate vote.
//
// Setting the committed value while a deferred change is pending asks
// listeners to undo that change; on Approve the pending value is dropped and
// Changed does not fire. Setting the committed value with nothing pending does
// nothing. A denied request for some other value leaves an outstanding
// deferred change pending. Calling Set from a listener of the same property
// returns ErrIllegalState.
func (p *Property[T]) Set(value T) (Vote, error) {
	if p.busy {
		return Deny, fmt.Errorf("%w: %s set while notifying listeners", retained.ErrIllegalState, p.name)
	}
	if p.validate != nil {
		if err := p.validate(value); err != nil {
			return Deny, fmt.Errorf("set %s: %w", p.name, err)
		}
	}
	if value == p.value && p.pending.IsAbsent() {
		return Approve, nil
	}

	p.busy = true
	defer func() { p.busy = false }()

	listeners := p.snapshot()
	votes := make([]Vote, len(listeners))
	for i, l := range listeners {
		votes[i] = l.PreviewChange(p, value)
	}
	result := Tally(votes...)

	if result != Approve {
		if result == Defer {
			p.pending = mo.Some(value)
		} else if pending, ok := p.pending.Get(); ok && pending == value {
			p.pending = mo.None[T]()
		}
		for _, l := range listeners {
			l.ChangeVetoed(p, result)
		}
		return result, nil
	}

	p.pending = mo.None[T]()
	if value == p.value {
		return Approve, nil
	}
	previous := p.value
	p.value = value
	for _, l := range listeners {
		l.Changed(p, previous)
	}
	return Approve, nil
}

// Reset commits value without consulting listeners and drops any pending
// change. Models use it for bookkeeping that is not a requested change, such
// as shifting a selection index after an insert. No listener is notified.
func (p *Property[T]) Reset(value T) error {
	if p.busy {
		return fmt.Errorf("%w: %s reset while notifying listeners", retained.ErrIllegalState, p.name)
	}
	if p.validate != nil {
		if err := p.validate(value); err != nil {
			return fmt.Errorf("reset %s: %w", p.name, err)
		}
	}
	p.value = value
	p.pending = mo.None[T]()
	return nil
}

// Veto cancels an outstanding deferred change by notifying every listener
// with Deny. It does nothing when no change is pending.
func (p *Property[T]) Veto() error {
	if p.busy {
		return fmt.Errorf("%w: %s vetoed while notifying listeners", retained.ErrIllegalState, p.name)
	}
	if p.pending.IsAbsent() {
		return nil
	}
	p.busy = true
	defer func() { p.busy = false }()

	p.pending = mo.None[T]()
	for _, l := range p.snapshot() {
		l.ChangeVetoed(p, Deny)
	}
	return nil
}

func (p *Property[T]) snapshot() []Listener[T] {
	out := make([]Listener[T], len(p.listeners))
	for i, e := range p.listeners {
		out[i] = e.l
	}
	return out
}
