package field

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors: the live state or the save names something this build
	// does not know.
	ErrUnregistered      = errors.New("reference not in registry")
	ErrUnknownName       = errors.New("name not found in registry")
	ErrTypeMismatch      = errors.New("registered value has the wrong type")
	ErrForeignRef        = errors.New("reference does not belong to the session")
	ErrIntRange          = errors.New("integer out of range")
	ErrNoResolver        = errors.New("no reference resolver configured")
	ErrInvalidDescriptor = errors.New("invalid field descriptor")

	// Corruption errors.
	ErrIndexRange    = errors.New("reference index out of range")
	ErrPayloadLength = errors.New("bad payload length")
)

// Error locates a marshalling failure.
type Error struct {
	Record string
	Field  string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Record, e.Field, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
