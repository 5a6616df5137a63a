package tuple

import "github.com/pkg/errors"

// Common errors.
var (
	ErrArityMismatch   = errors.New("arity mismatch")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNegativeValue   = errors.New("tuple elements must be non-negative")
	ErrNotCongruent    = errors.New("tuples are not congruent")
)
