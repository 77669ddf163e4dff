// Package vote implements the preview/veto protocol skins use to intercept
// model changes and run an animation before the change is committed.
package vote

import (
	"fmt"

	"github.com/samber/lo"
)

// Vote is a listener's answer to a previewed change.
type Vote uint8

// Votes are ordered by precedence: a single Deny beats any number of Defers,
// and a single Defer beats any number of Approves.
const (
	// Approve lets the change proceed immediately.
	Approve Vote = iota

	// Defer postpones the change; the listener takes responsibility for
	// committing it later, usually from a transition's completion callback.
	Defer

	// Deny rejects the change.
	Deny
)

func (v Vote) String() string {
	switch v {
	case Approve:
		return "approve"
	case Defer:
		return "defer"
	case Deny:
		return "deny"
	default:
		return fmt.Sprintf("vote(%d)", uint8(v))
	}
}

// Tally reduces votes to the aggregate result: Deny if any listener denied,
// else Defer if any deferred, else Approve. No votes is unanimous approval.
func Tally(votes ...Vote) Vote {
	return lo.Reduce(votes, func(agg Vote, v Vote, _ int) Vote {
		return max(agg, v)
	}, Approve)
}
