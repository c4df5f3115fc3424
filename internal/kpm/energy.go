package kpm

import (
	"fmt"
	"math"

	"github.com/born-ml/kpm/internal/sparse"
	"github.com/born-ml/kpm/internal/tensor"
)

// EnergyScale maps the spectrum [Avg-Mag, Avg+Mag] affinely onto [-1, 1].
type EnergyScale struct {
	Avg float64 // spectral center
	Mag float64 // spectral half-width, must be > 0
}

// NewEnergyScale returns the scale covering [lo, hi].
func NewEnergyScale(lo, hi float64) EnergyScale {
	return EnergyScale{Avg: (hi + lo) / 2, Mag: (hi - lo) / 2}
}

// Validate reports whether Mag is finite and positive and Avg is finite.
func (es EnergyScale) Validate() error {
	if !(es.Mag > 0) || math.IsInf(es.Mag, 0) || math.IsNaN(es.Avg) || math.IsInf(es.Avg, 0) {
		return fmt.Errorf("%w: energy scale avg=%g mag=%g", ErrInvalidArgument, es.Avg, es.Mag)
	}
	return nil
}

// Lo returns the lower spectral bound.
func (es EnergyScale) Lo() float64 { return es.Avg - es.Mag }

// Hi returns the upper spectral bound.
func (es EnergyScale) Hi() float64 { return es.Avg + es.Mag }

// Scale maps an energy x to the rescaled interval.
func (es EnergyScale) Scale(x float64) float64 {
	return (x - es.Avg) / es.Mag
}

// Unscale maps a rescaled value back to an energy.
func (es EnergyScale) Unscale(x float64) float64 {
	return x*es.Mag + es.Avg
}

// String implements fmt.Stringer.
func (es EnergyScale) String() string {
	return fmt.Sprintf("EnergyScale{lo=%g, hi=%g}", es.Lo(), es.Hi())
}

// GershgorinScale bounds the spectrum of a Hermitian matrix by its Gershgorin
// discs and widens the interval by the factor 1+extend. The result satisfies
// the containment precondition of SetH for any Hermitian input. A matrix
// whose discs collapse to a single point gets Mag = 1.
func GershgorinScale[T tensor.Scalar](h *sparse.Coo[T], extend float64) (EnergyScale, error) {
	if !h.IsSquare() || h.NRows == 0 {
		return EnergyScale{}, fmt.Errorf("%w: %dx%d", ErrInvalidMatrix, h.NRows, h.NCols)
	}
	n := h.NRows
	center := make([]float64, n)
	radius := make([]float64, n)
	for k := 0; k < h.Size(); k++ {
		i, j, v := h.Entry(k)
		if i == j {
			center[i] += tensor.Real(v)
		} else {
			radius[i] += tensor.Abs(v)
		}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		lo = min(lo, center[i]-radius[i])
		hi = max(hi, center[i]+radius[i])
	}

	es := NewEnergyScale(lo, hi)
	es.Mag *= 1 + extend
	if es.Mag == 0 {
		es.Mag = 1
	}
	return es, nil
}
