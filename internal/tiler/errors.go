package tiler

import (
	"github.com/born-ml/cute/internal/layout"
	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrTileIndexOutOfRange = errors.New("tile index out of range")
	ErrNonDivisibleTiling  = layout.ErrNonDivisibleTiling
	ErrArityMismatch       = layout.ErrArityMismatch
)
