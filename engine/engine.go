// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package engine

import (
	"log/slog"
	"os"
	"strings"

	"github.com/born-ml/kpm/backend/cpu"
	"github.com/born-ml/kpm/backend/webgpu"
	"github.com/born-ml/kpm/internal/kpm"
	"github.com/born-ml/kpm/sparse"
	"github.com/born-ml/kpm/tensor"
)

// EnvBackend names the environment variable that overrides the backend
// preference. The only recognized value is "cpu".
const EnvBackend = "KPM_BACKEND"

// Engine is the KPM engine contract implemented by every backend.
type Engine[T tensor.Scalar] = kpm.Engine[T]

// EnergyScale maps [Avg-Mag, Avg+Mag] onto [-1, 1].
type EnergyScale = kpm.EnergyScale

// Backend selects the engine implementation.
type Backend = kpm.Backend

// Backend preferences.
const (
	BackendAuto = kpm.BackendAuto
	BackendCPU  = kpm.BackendCPU
)

// Option configures an engine.
type Option = kpm.Option

// Options.
var (
	WithLogger   = kpm.WithLogger
	WithParallel = kpm.WithParallel
	WithBackend  = kpm.WithBackend
)

// Errors returned by engines. Match with errors.Is.
var (
	ErrInvalidMatrix     = kpm.ErrInvalidMatrix
	ErrDimensionMismatch = kpm.ErrDimensionMismatch
	ErrInvalidArgument   = kpm.ErrInvalidArgument
	ErrDeviceUnavailable = kpm.ErrDeviceUnavailable
	ErrDeviceFault       = kpm.ErrDeviceFault
)

// NewEnergyScale returns the scale covering [lo, hi].
func NewEnergyScale(lo, hi float64) EnergyScale {
	return kpm.NewEnergyScale(lo, hi)
}

// GershgorinScale returns a scale containing every Gershgorin disc of h,
// widened by the factor 1+extend.
func GershgorinScale[T tensor.Scalar](h *sparse.Coo[T], extend float64) (EnergyScale, error) {
	return kpm.GershgorinScale(h, extend)
}

// New returns an engine for element type T. With BackendAuto it tries the
// WebGPU backend and falls back to the host backend, logging the reason at
// Warn. It never fails for lack of an accelerator.
func New[T tensor.Scalar](opts ...Option) Engine[T] {
	cfg := kpm.NewConfig(opts...)
	logger := cfg.Logger

	backend := cfg.Backend
	if v := os.Getenv(EnvBackend); strings.EqualFold(strings.TrimSpace(v), "cpu") {
		backend = BackendCPU
	}

	if backend == BackendAuto {
		gpu, err := webgpu.New[T](opts...)
		if err == nil {
			logger.Info("kpm engine created", slog.String("backend", gpu.Name()))
			return gpu
		}
		logger.Warn("accelerator unavailable, using host backend", slog.Any("error", err))
	}

	host := cpu.New[T](opts...)
	logger.Info("kpm engine created", slog.String("backend", host.Name()))
	return host
}
