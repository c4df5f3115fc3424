// Package kpm defines the Kernel Polynomial Method engine contract shared by
// the host and accelerator backends: the Engine interface, the energy scale,
// the error taxonomy and the Chebyshev recurrence core.
package kpm

import (
	"github.com/born-ml/kpm/internal/probe"
	"github.com/born-ml/kpm/internal/sparse"
	"github.com/born-ml/kpm/internal/tensor"
)

// Syncer is implemented by backends that mirror engine state off the host.
// TransferH runs after every successful SetH, TransferR after every SetR*.
type Syncer interface {
	TransferH()
	TransferR()
}

// NopSyncer is the Syncer of backends that compute directly on host state.
type NopSyncer struct{}

// TransferH does nothing.
func (NopSyncer) TransferH() {}

// TransferR does nothing.
func (NopSyncer) TransferR() {}

// Engine estimates spectral quantities of a rescaled sparse matrix Hs with
// stochastic Chebyshev expansions.
//
// An Engine is not safe for concurrent use. Distinct engines share no state.
type Engine[T tensor.Scalar] interface {
	Syncer

	// SetH stores es and rebuilds Hs = (H - es.Avg·I)/es.Mag.
	SetH(h *sparse.Coo[T], es EnergyScale) error

	// SetRUncorrelated replaces R with n×s independent random phases / sqrt(s).
	SetRUncorrelated(n, s int, rng probe.Source) error

	// SetRCorrelated replaces R with one random phase per row, placed in the
	// column given by the row's group label.
	SetRCorrelated(groups []int, rng probe.Source) error

	// SetRIdentity replaces R with the n×n identity.
	SetRIdentity(n int) error

	// Moments returns mu[0..m-1]; mu[0] and mu[1] are exact.
	Moments(m int) ([]float64, error)

	// StochMatrix overwrites the values of d with the stochastic estimate of
	// Σ c[m]·T_m(Hs) on d's pattern.
	StochMatrix(c []float64, d *sparse.Csr[T]) error

	// AutodiffMatrix overwrites the values of d with the derivative of
	// Σ c[m]·mu[m] with respect to the original (unscaled) matrix entries.
	AutodiffMatrix(c []float64, d *sparse.Csr[T]) error

	// EnergyScale returns the scale passed to the last successful SetH.
	EnergyScale() EnergyScale

	// Name identifies the backend.
	Name() string

	// Release frees backend resources. The engine must not be used afterwards.
	Release()
}
