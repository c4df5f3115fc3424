package kpm

import "errors"

// Error taxonomy shared by every backend. Errors returned by engines wrap
// one of these; match with errors.Is.
var (
	// ErrInvalidMatrix is returned for non-square or empty input, duplicate
	// entries, or a diagonal rescale target missing from the pattern.
	ErrInvalidMatrix = errors.New("kpm: invalid matrix")

	// ErrDimensionMismatch is returned when Hs and R disagree on the number
	// of rows, or an output pattern does not match the matrix dimension.
	ErrDimensionMismatch = errors.New("kpm: dimension mismatch")

	// ErrInvalidArgument is returned for invalid sizes, group labels,
	// coefficient vectors or energy scales.
	ErrInvalidArgument = errors.New("kpm: invalid argument")

	// ErrDeviceUnavailable is returned by accelerator constructors when no
	// usable device exists. The engine factory recovers from it by falling
	// back to the host backend.
	ErrDeviceUnavailable = errors.New("kpm: accelerator unavailable")

	// ErrDeviceFault is wrapped by the panic raised when an accelerator call
	// fails after initialization.
	ErrDeviceFault = errors.New("kpm: accelerator fault")
)
