package navigation

import "errors"

var (
	ErrInvalidWorldSize    = errors.New("navigation: world size must be positive and finite")
	ErrInvalidCellSize     = errors.New("navigation: cell size must be positive and finite")
	ErrNoSources           = errors.New("navigation: at least one source cell is required")
	ErrSourceOutOfBounds   = errors.New("navigation: source cell outside grid")
	ErrUnknownPropagation  = errors.New("navigation: unknown propagation mode")
	ErrUnknownNeighborRule = errors.New("navigation: unknown flow neighbor rule")
)
