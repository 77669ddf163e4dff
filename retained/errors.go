package retained

import "errors"

// Sentinel errors returned across the skin library. Callers match them with
// errors.Is; concrete errors wrap them with context.
var (
	// ErrInvalidArgument reports a nil or out-of-range argument to a setter.
	// The receiver's state is left unchanged.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIndexOutOfBounds reports an index outside a child or item collection.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrIllegalState reports an operation that is not allowed in the
	// receiver's current state, such as starting a running transition.
	ErrIllegalState = errors.New("illegal state")
)
