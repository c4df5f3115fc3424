package cpu

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/born-ml/kpm/internal/kpm"
	"github.com/born-ml/kpm/internal/parallel"
	"github.com/born-ml/kpm/internal/sparse"
	"github.com/born-ml/kpm/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hermitianChain returns a disordered periodic chain with every diagonal
// entry stored. For complex T each hopping carries a site-dependent phase,
// so H is Hermitian but not real. n must be at least 3.
func hermitianChain[T tensor.Scalar](n int) *sparse.Coo[T] {
	h := sparse.NewCoo[T](n, n)
	for i := 0; i < n; i++ {
		h.Add(i, i, tensor.FromReal[T](0.3*math.Sin(float64(3*i+1))))
		amp := -1 + 0.1*math.Cos(float64(i))
		hop := complex(amp, 0) * cmplx.Exp(complex(0, 0.7*float64(i)+0.3))
		j := (i + 1) % n
		h.Add(i, j, tensor.FromComplex[T](hop))
		h.Add(j, i, tensor.FromComplex[T](cmplx.Conj(hop)))
	}
	return h
}

// perturbedPair copies h with delta added at (pi, pj) and conj(delta) at
// (pj, pi), so a Hermitian h stays Hermitian. On the diagonal only the real
// part of delta is added.
func perturbedPair[T tensor.Scalar](h *sparse.Coo[T], pi, pj int, delta complex128) *sparse.Coo[T] {
	out := sparse.NewCoo[T](h.NRows, h.NCols)
	for k := 0; k < h.Size(); k++ {
		i, j, v := h.Entry(k)
		switch {
		case pi == pj && i == pi && j == pj:
			v += tensor.FromReal[T](real(delta))
		case i == pi && j == pj:
			v += tensor.FromComplex[T](delta)
		case i == pj && j == pi:
			v += tensor.FromComplex[T](cmplx.Conj(delta))
		}
		out.Add(i, j, v)
	}
	return out
}

func imagPart[T tensor.Scalar](x T) float64 {
	if v, ok := any(x).(complex128); ok {
		return imag(v)
	}
	return 0
}

func newScalarEngine[T tensor.Scalar]() *Engine[T] {
	return New[T](kpm.WithParallel(parallel.Config{Enabled: true, NumWorkers: 3, MinChunkSize: 2}))
}

func forBothScalars(t *testing.T, float func(t *testing.T), cplx func(t *testing.T)) {
	t.Helper()
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{"float64", float},
		{"complex128", cplx},
	}
	for _, tt := range tests {
		t.Run(tt.name, tt.run)
	}
}

func TestEngine_StochMatrixVarianceShrinks(t *testing.T) {
	forBothScalars(t, stochMatrixVarianceShrinks[float64], stochMatrixVarianceShrinks[complex128])
}

func stochMatrixVarianceShrinks[T tensor.Scalar](t *testing.T) {
	const n, trials = 24, 100
	h := hermitianChain[T](n)
	es := kpm.NewEnergyScale(-2.6, 2.6)
	c := []float64{0.3, -0.2, 0.5, 0.1, -0.05, 0.02}

	exact := newScalarEngine[T]()
	require.NoError(t, exact.SetH(h, es))
	require.NoError(t, exact.SetRIdentity(n))
	want, err := sparse.Build(h)
	require.NoError(t, err)
	require.NoError(t, exact.StochMatrix(c, want))

	variance := func(s int) float64 {
		e := newScalarEngine[T]()
		require.NoError(t, e.SetH(h, es))
		d := want.Clone()
		rng := rand.New(rand.NewPCG(uint64(s), 17))
		var sum float64
		for trial := 0; trial < trials; trial++ {
			require.NoError(t, e.SetRUncorrelated(n, s, rng))
			require.NoError(t, e.StochMatrix(c, d))
			for k := range d.Val {
				diff := tensor.Abs(d.Val[k] - want.Val[k])
				sum += diff * diff
			}
		}
		return sum / trials
	}

	v1, v16 := variance(1), variance(16)
	assert.Positive(t, v1)
	assert.Less(t, v16, v1/4)
}

func TestEngine_StochMatrixIsHermitian(t *testing.T) {
	forBothScalars(t, stochMatrixIsHermitian[float64], stochMatrixIsHermitian[complex128])
}

func stochMatrixIsHermitian[T tensor.Scalar](t *testing.T) {
	const n = 20
	h := hermitianChain[T](n)
	e := newScalarEngine[T]()
	require.NoError(t, e.SetH(h, kpm.NewEnergyScale(-2.6, 2.6)))
	require.NoError(t, e.SetRUncorrelated(n, 3, rand.New(rand.NewPCG(5, 6))))

	d, err := sparse.Build(h)
	require.NoError(t, err)
	require.NoError(t, e.StochMatrix([]float64{1, 0.5, 0.25, 0.125}, d))

	for i := 0; i < d.NRows; i++ {
		for k := d.RowPtr[i]; k < d.RowPtr[i+1]; k++ {
			j := d.ColIdx[k]
			got := d.Val[k] - tensor.Conj(d.At(j, i))
			assert.InDelta(t, 0.0, tensor.Abs(got), 1e-12, "entry (%d, %d)", i, j)
		}
	}
}

func TestEngine_AutodiffUncorrelatedR(t *testing.T) {
	forBothScalars(t, autodiffUncorrelatedR[float64], autodiffUncorrelatedR[complex128])
}

// autodiffUncorrelatedR compares AutodiffMatrix against central differences of
// Σ c[m]·mu[m] along Hermitian perturbations, with one uncorrelated R held
// fixed. For δH_ij = δH_ji = ε the slope is Re(D_ij + D_ji); for δH_ii = ε it
// is Re D_ii; for δH_ij = iε, δH_ji = -iε it is Im D_ij - Im D_ji.
func autodiffUncorrelatedR[T tensor.Scalar](t *testing.T) {
	const n, s, eps = 8, 3, 1e-5
	h := hermitianChain[T](n)
	es := kpm.NewEnergyScale(-2.7, 2.9)
	c := []float64{0.2, 0.7, -0.4, 0.3, 0.25, -0.1, 0.05}

	e := New[T](kpm.WithParallel(parallel.Sequential()))
	require.NoError(t, e.SetH(h, es))
	require.NoError(t, e.SetRUncorrelated(n, s, rand.New(rand.NewPCG(4, 2))))
	d, err := sparse.Build(h)
	require.NoError(t, err)
	require.NoError(t, e.AutodiffMatrix(c, d))

	// SetH leaves R untouched, so every evaluation sees the same R.
	objective := func(i, j int, delta complex128) float64 {
		require.NoError(t, e.SetH(perturbedPair(h, i, j, delta), es))
		mu, err := e.Moments(len(c))
		require.NoError(t, err)
		var f float64
		for k := range c {
			f += c[k] * mu[k]
		}
		return f
	}
	slope := func(i, j int, dir complex128) float64 {
		return (objective(i, j, dir*eps) - objective(i, j, -dir*eps)) / (2 * eps)
	}

	for i := 0; i < n; i++ {
		for k := d.RowPtr[i]; k < d.RowPtr[i+1]; k++ {
			j := d.ColIdx[k]
			if j < i {
				continue
			}
			if j == i {
				assert.InDelta(t, tensor.Real(d.Val[k]), slope(i, j, 1), 1e-6, "diagonal %d", i)
				continue
			}
			dij, dji := d.Val[k], d.At(j, i)
			assert.InDelta(t, tensor.Real(dij)+tensor.Real(dji), slope(i, j, 1), 1e-6,
				"real pair (%d, %d)", i, j)
			if tensor.IsComplex[T]() {
				assert.InDelta(t, imagPart(dij)-imagPart(dji), slope(i, j, 1i), 1e-6,
					"imaginary pair (%d, %d)", i, j)
			}
		}
	}
}
