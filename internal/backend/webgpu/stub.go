//go:build !windows

// Package webgpu implements the accelerator backend of the KPM engine.
// The go-webgpu bindings are only wired on windows; elsewhere New reports
// that no device is available and callers fall back to the host backend.
package webgpu

import (
	"fmt"
	"runtime"

	"github.com/born-ml/kpm/internal/backend/cpu"
	"github.com/born-ml/kpm/internal/kpm"
	"github.com/born-ml/kpm/internal/tensor"
)

// Engine is never constructed on this platform.
type Engine[T tensor.Scalar] struct {
	*cpu.Engine[T]
}

// New always fails with kpm.ErrDeviceUnavailable on this platform.
func New[T tensor.Scalar](_ ...kpm.Option) (*Engine[T], error) {
	return nil, fmt.Errorf("%w: webgpu: not supported on %s", kpm.ErrDeviceUnavailable, runtime.GOOS)
}

// IsAvailable reports false on this platform.
func IsAvailable() bool {
	return false
}
