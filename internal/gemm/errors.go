package gemm

import (
	"github.com/born-ml/cute/internal/layout"
	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrNotDense           = errors.New("layout is not a dense matrix")
	ErrShapeMismatch      = errors.New("matrix shapes do not conform")
	ErrOverlappingTiles   = errors.New("output tiles overlap")
	ErrNonDivisibleTiling = layout.ErrNonDivisibleTiling
)
