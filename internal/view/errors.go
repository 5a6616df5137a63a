package view

import (
	"github.com/born-ml/cute/internal/layout"
	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrOutOfBounds     = errors.New("offset out of bounds")
	ErrSizeMismatch    = errors.New("view sizes differ")
	ErrIndexOutOfRange = layout.ErrIndexOutOfRange
	ErrArityMismatch   = layout.ErrArityMismatch
)
