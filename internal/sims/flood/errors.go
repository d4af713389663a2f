package flood

import "errors"

var (
	// ErrInvalidSize indicates a grid was requested with N <= 0.
	ErrInvalidSize = errors.New("flood: grid size must be positive")
	// ErrOutOfRange indicates a cell access outside [0, N+1].
	ErrOutOfRange = errors.New("flood: cell index out of range")
	// ErrInvalidConfig indicates a configuration value outside its allowed range.
	ErrInvalidConfig = errors.New("flood: invalid configuration")
	// ErrNotInitialized indicates an operation that needs an initialized driver.
	ErrNotInitialized = errors.New("flood: simulation not initialized")
	// ErrSizeMismatch indicates an input field whose dimensions differ from the grid.
	ErrSizeMismatch = errors.New("flood: field size does not match grid")
)
