package sparse

import "errors"

var (
	// ErrOutOfRange indicates a row or column index outside the matrix bounds.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrDuplicateEntry is returned when a coordinate list holds the same
	// (row, col) position more than once.
	ErrDuplicateEntry = errors.New("sparse: duplicate entry")
)
