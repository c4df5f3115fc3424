// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/kpm/internal/backend/cpu"
	"github.com/born-ml/kpm/internal/kpm"
	"github.com/born-ml/kpm/tensor"
)

// Engine is the host implementation of the KPM engine.
type Engine[T tensor.Scalar] = internalcpu.Engine[T]

// Compile-time check that Engine implements kpm.Engine.
var _ kpm.Engine[complex128] = (*Engine[complex128])(nil)

// New creates a host engine. Options are the ones defined in package engine.
func New[T tensor.Scalar](opts ...kpm.Option) *Engine[T] {
	return internalcpu.New[T](opts...)
}
