// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU accelerator backend of the KPM engine.
//
// The backend runs the Chebyshev recurrence in single precision on the
// device and keeps a double-precision host mirror for exact first moments
// and for AutodiffMatrix. Device bindings are built on windows; on other
// platforms New reports ErrDeviceUnavailable.
//
// Example:
//
//	if webgpu.IsAvailable() {
//	    gpu, err := webgpu.New[complex128]()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//	}
//
// Most callers should use engine.New, which falls back to the host backend
// automatically.
package webgpu

import (
	internalwebgpu "github.com/born-ml/kpm/internal/backend/webgpu"
	"github.com/born-ml/kpm/internal/kpm"
	"github.com/born-ml/kpm/tensor"
)

// Engine is the WebGPU implementation of the KPM engine.
type Engine[T tensor.Scalar] = internalwebgpu.Engine[T]

// New initializes a WebGPU device and returns an engine on it. Call
// Release when done to free device resources.
//
// Returns an error wrapping ErrDeviceUnavailable if no compatible adapter
// is present.
func New[T tensor.Scalar](opts ...kpm.Option) (*Engine[T], error) {
	return internalwebgpu.New[T](opts...)
}

// IsAvailable checks if WebGPU is available on the current system.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
