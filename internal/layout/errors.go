package layout

import (
	"github.com/born-ml/cute/internal/tuple"
	"github.com/pkg/errors"
)

// Common errors. Arity and index failures are shared with package tuple so a
// single errors.Is check works across both layers.
var (
	ErrArityMismatch           = tuple.ErrArityMismatch
	ErrIndexOutOfRange         = tuple.ErrIndexOutOfRange
	ErrIncompatibleLayouts     = errors.New("incompatible layouts")
	ErrNonComplementableLayout = errors.New("layout is not complementable")
	ErrNonDivisibleTiling      = errors.New("tile shape does not evenly divide layout shape")
)
