// Package cpu implements the host reference backend of the KPM engine.
// Dense blocks use gonum BLAS kernels; sparse products run row-parallel.
package cpu

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/born-ml/kpm/internal/kpm"
	"github.com/born-ml/kpm/internal/parallel"
	"github.com/born-ml/kpm/internal/probe"
	"github.com/born-ml/kpm/internal/sparse"
	"github.com/born-ml/kpm/internal/tensor"
)

// Engine is the host reference implementation of kpm.Engine. All state lives
// in ordinary Go memory; sparse products and contractions are split across
// goroutines according to the parallel configuration.
type Engine[T tensor.Scalar] struct {
	cfg      kpm.Config
	logger   *slog.Logger
	syncer   kpm.Syncer
	features string

	es kpm.EnergyScale
	hs *sparse.Csr[T]
	r  *tensor.Dense[T]
}

// Compile-time check that Engine implements kpm.Engine.
var _ kpm.Engine[float64] = (*Engine[float64])(nil)

// New creates a host engine.
func New[T tensor.Scalar](opts ...kpm.Option) *Engine[T] {
	cfg := kpm.NewConfig(opts...)
	f := features()
	cfg.Logger.Debug("host backend",
		slog.String("dtype", tensor.DataTypeOf[T]().String()),
		slog.String("features", f))
	return &Engine[T]{
		cfg:      cfg,
		logger:   cfg.Logger,
		syncer:   kpm.NopSyncer{},
		features: f,
	}
}

// SetSyncer installs the hooks fired after SetH and SetR*. Accelerator
// backends that reuse the host state use it to mirror that state on device.
func (e *Engine[T]) SetSyncer(s kpm.Syncer) {
	e.syncer = s
}

// Name returns the backend name.
func (e *Engine[T]) Name() string {
	if e.features != "" {
		return "CPU (" + e.features + ")"
	}
	return "CPU"
}

// Config returns the configuration the engine was built with.
func (e *Engine[T]) Config() kpm.Config {
	return e.cfg
}

// Hs returns the rescaled matrix, or nil before the first SetH.
func (e *Engine[T]) Hs() *sparse.Csr[T] {
	return e.hs
}

// R returns the probe matrix, or nil before the first SetR*.
func (e *Engine[T]) R() *tensor.Dense[T] {
	return e.r
}

// EnergyScale returns the scale of the current Hs.
func (e *Engine[T]) EnergyScale() kpm.EnergyScale {
	return e.es
}

// TransferH is a no-op on the host.
func (e *Engine[T]) TransferH() {}

// TransferR is a no-op on the host.
func (e *Engine[T]) TransferR() {}

// Release drops the engine state.
func (e *Engine[T]) Release() {
	e.hs = nil
	e.r = nil
}

// SetH builds Hs = (H - es.Avg·I)/es.Mag. No structural nonzero is inserted,
// so every diagonal entry must already be in the pattern, even when zero.
// On error the previous state is kept.
func (e *Engine[T]) SetH(h *sparse.Coo[T], es kpm.EnergyScale) error {
	if !h.IsSquare() || h.NRows == 0 {
		return fmt.Errorf("kpm: set H: %w: %dx%d matrix", kpm.ErrInvalidMatrix, h.NRows, h.NCols)
	}
	if err := es.Validate(); err != nil {
		return fmt.Errorf("kpm: set H: %w", err)
	}

	hs, err := sparse.Build(h)
	if err != nil {
		return fmt.Errorf("kpm: set H: %w: %w", kpm.ErrInvalidMatrix, err)
	}

	avg := tensor.FromReal[T](es.Avg)
	for i := 0; i < hs.NRows; i++ {
		k := hs.Find(i, i)
		if k < 0 {
			return fmt.Errorf("kpm: set H: %w: diagonal entry (%d, %d) missing from pattern",
				kpm.ErrInvalidMatrix, i, i)
		}
		hs.Val[k] -= avg
	}
	mag := tensor.FromReal[T](es.Mag)
	for k := range hs.Val {
		hs.Val[k] /= mag
	}

	e.hs = hs
	e.es = es
	e.logger.Debug("hamiltonian set",
		slog.Int("n", hs.NRows),
		slog.Int("nnz", hs.Size()),
		slog.Float64("avg", es.Avg),
		slog.Float64("mag", es.Mag))
	e.syncer.TransferH()
	return nil
}

// SetRUncorrelated replaces R with n×s random phases scaled by 1/sqrt(s).
func (e *Engine[T]) SetRUncorrelated(n, s int, rng probe.Source) error {
	r, err := probe.Uncorrelated[T](n, s, rng)
	if err != nil {
		return fmt.Errorf("kpm: set R: %w: %w", kpm.ErrInvalidArgument, err)
	}
	e.setR(r, "uncorrelated")
	return nil
}

// SetRCorrelated replaces R with one unit phase per row, in the column of
// the row's group. Group labels must cover 0..max.
func (e *Engine[T]) SetRCorrelated(groups []int, rng probe.Source) error {
	r, err := probe.Correlated[T](groups, rng)
	if err != nil {
		return fmt.Errorf("kpm: set R: %w: %w", kpm.ErrInvalidArgument, err)
	}
	e.setR(r, "correlated")
	return nil
}

// SetRIdentity replaces R with the n×n identity.
func (e *Engine[T]) SetRIdentity(n int) error {
	r, err := probe.Identity[T](n)
	if err != nil {
		return fmt.Errorf("kpm: set R: %w: %w", kpm.ErrInvalidArgument, err)
	}
	e.setR(r, "identity")
	return nil
}

func (e *Engine[T]) setR(r *tensor.Dense[T], policy string) {
	e.r = r
	e.logger.Debug("probe vectors set",
		slog.String("policy", policy),
		slog.Int("n", r.Rows()),
		slog.Int("s", r.Cols()))
	e.syncer.TransferR()
}

// Moments returns the Chebyshev moments mu[0..m-1] of Hs.
func (e *Engine[T]) Moments(m int) ([]float64, error) {
	if m < 1 {
		return nil, fmt.Errorf("kpm: moments: %w: %d moments requested", kpm.ErrInvalidArgument, m)
	}
	n, err := e.CheckDims()
	if err != nil {
		return nil, fmt.Errorf("kpm: moments: %w", err)
	}

	mu := make([]float64, m)
	mu[0] = float64(n)
	if m == 1 {
		return mu, nil
	}
	mu[1] = e.HsTrace()

	if m > 2 {
		p := kpm.NewPair(e.recurrence(), e.r)
		for k := 2; k < m; k++ {
			p.Advance()
			mu[k] = tensor.Real(tensor.Dotc(e.r, p.Hi))
		}
	}
	return mu, nil
}

// StochMatrix sets every structural entry of d to the stochastic estimate of
// [Σ c[m]·T_m(Hs)]_ij.
func (e *Engine[T]) StochMatrix(c []float64, d *sparse.Csr[T]) error {
	if err := e.CheckCall(c, d); err != nil {
		return fmt.Errorf("kpm: stoch matrix: %w", err)
	}

	p := kpm.NewPair(e.recurrence(), e.r)
	xi := tensor.NewDense[T](e.r.Rows(), e.r.Cols())
	xi.Axpy(c[0], p.Lo)
	xi.Axpy(c[1], p.Hi)
	for m := 2; m < len(c); m++ {
		p.Advance()
		xi.Axpy(c[m], p.Hi)
	}

	Contract(d, e.r, xi, e.cfg.Parallel)
	return nil
}

// AutodiffMatrix sets every structural entry (i, j) of d to the derivative of
// Σ c[m]·mu[m] with respect to H_ij, where mu are the moments Moments would
// return for the current R.
//
// The forward pass keeps only the last two Chebyshev terms; the backward pass
// regenerates earlier terms by running the recurrence in reverse, so memory
// stays at six n×s blocks regardless of len(c).
func (e *Engine[T]) AutodiffMatrix(c []float64, d *sparse.Csr[T]) error {
	if err := e.CheckCall(c, d); err != nil {
		return fmt.Errorf("kpm: autodiff matrix: %w", err)
	}
	m := len(c)
	rec := e.recurrence()

	// alpha_{M-2}, alpha_{M-1}
	fwd := kpm.NewPair(rec, e.r)
	for k := 2; k < m; k++ {
		fwd.Advance()
	}

	// mu[1] is the exact trace, its derivative is c[1] on the diagonal.
	cp := slices.Clone(c)
	cp[1] = 0
	c1 := tensor.FromReal[T](c[1])
	for i := 0; i < d.NRows; i++ {
		for k := d.RowPtr[i]; k < d.RowPtr[i+1]; k++ {
			if d.ColIdx[k] == i {
				d.Val[k] = c1
			} else {
				d.Val[k] = 0
			}
		}
	}

	// beta_{M-1}, beta_M. The seed takes cp rather than c: when M = 2 the
	// order-1 term is already on the diagonal and must not be added twice.
	b := e.r.Clone()
	b.Scale(cp[m-1])
	adj := kpm.NewPairFrom(rec, b, tensor.NewDense[T](e.r.Rows(), e.r.Cols()))

	for k := m - 2; k >= 0; k-- {
		// fwd.Lo = alpha_k, adj.Lo = beta_{k+1}
		w := 2.0
		if k == 0 {
			w = 1
		}
		Accumulate(d, adj.Lo, fwd.Lo, w, e.cfg.Parallel)
		if k == 0 {
			break
		}
		fwd.Retreat()
		adj.Retreat()
		adj.Lo.Axpy(cp[k], e.r)
	}

	mag := tensor.FromReal[T](e.es.Mag)
	parallel.For(len(d.Val), func(k int) {
		d.Val[k] /= mag
	}, e.cfg.Parallel)
	return nil
}

// HsTrace returns Re Tr(Hs), the exact first moment.
func (e *Engine[T]) HsTrace() float64 {
	if e.hs == nil {
		return 0
	}
	return tensor.Real(e.hs.Trace())
}

// CheckDims returns the matrix dimension n after verifying that Hs and R
// agree on it.
func (e *Engine[T]) CheckDims() (int, error) {
	var hn, rn int
	if e.hs != nil {
		hn = e.hs.NRows
	}
	if e.r != nil {
		rn = e.r.Rows()
	}
	if e.hs == nil || e.r == nil || hn != rn {
		return 0, fmt.Errorf("%w: Hs has %d rows, R has %d", kpm.ErrDimensionMismatch, hn, rn)
	}
	return hn, nil
}

// CheckPattern verifies that d is an n×n pattern.
func CheckPattern[T tensor.Scalar](d *sparse.Csr[T], n int) error {
	if d.NRows != n || d.NCols != n {
		return fmt.Errorf("%w: output pattern is %dx%d, matrix is %dx%d",
			kpm.ErrDimensionMismatch, d.NRows, d.NCols, n, n)
	}
	return nil
}

// CheckCall validates the arguments of StochMatrix and AutodiffMatrix.
func (e *Engine[T]) CheckCall(c []float64, d *sparse.Csr[T]) error {
	if len(c) < 2 {
		return fmt.Errorf("%w: need at least 2 coefficients, got %d", kpm.ErrInvalidArgument, len(c))
	}
	n, err := e.CheckDims()
	if err != nil {
		return err
	}
	return CheckPattern(d, n)
}

func (e *Engine[T]) recurrence() kpm.Recurrence[T] {
	return kpm.Recurrence[T]{H: e.hs, Parallel: e.cfg.Parallel}
}
