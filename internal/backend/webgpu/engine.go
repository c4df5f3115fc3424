//go:build windows

package webgpu

import (
	"fmt"
	"log/slog"

	"github.com/born-ml/kpm/internal/backend/cpu"
	"github.com/born-ml/kpm/internal/kpm"
	"github.com/born-ml/kpm/internal/sparse"
	"github.com/born-ml/kpm/internal/tensor"
)

// Engine runs the Chebyshev recurrence of Moments and StochMatrix on a
// WebGPU device in single precision. Host state (Hs, R, the energy scale)
// is owned by an embedded cpu.Engine and mirrored to the device through
// the TransferH and TransferR hooks. AutodiffMatrix runs on the host.
type Engine[T tensor.Scalar] struct {
	*cpu.Engine[T]

	dev    *Device
	logger *slog.Logger
	comp   int

	hsTrace float64
	n, s    int

	rowPtr, colIdx, hVal deviceBuffer
	r, a0, a1, a2, xi    deviceBuffer
	partial              deviceBuffer

	flt []float32
	raw []byte
}

// Compile-time check that Engine implements kpm.Engine.
var _ kpm.Engine[complex128] = (*Engine[complex128])(nil)

// New creates a WebGPU engine. It fails with kpm.ErrDeviceUnavailable when
// no adapter or device can be obtained.
func New[T tensor.Scalar](opts ...kpm.Option) (*Engine[T], error) {
	dev, err := newDevice()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kpm.ErrDeviceUnavailable, err)
	}

	host := cpu.New[T](opts...)
	e := &Engine[T]{
		Engine: host,
		dev:    dev,
		logger: host.Config().Logger,
		comp:   tensor.DataTypeOf[T]().Components(),
	}
	host.SetSyncer(e)
	e.logger.Info("webgpu engine ready", slog.String("dtype", tensor.DataTypeOf[T]().String()))
	return e, nil
}

// Name returns the backend name.
func (e *Engine[T]) Name() string {
	return "WebGPU (f32)"
}

// Stats returns the device buffer counters.
func (e *Engine[T]) Stats() Stats {
	return e.dev.stats
}

// Release frees all device buffers and the device itself.
func (e *Engine[T]) Release() {
	for _, b := range []*deviceBuffer{&e.rowPtr, &e.colIdx, &e.hVal, &e.r, &e.a0, &e.a1, &e.a2, &e.xi, &e.partial} {
		e.dev.free(b)
	}
	e.dev.Release()
	e.Engine.Release()
}

// TransferH mirrors Hs to the device. The host copy is kept for
// AutodiffMatrix and for the exact first moment.
func (e *Engine[T]) TransferH() {
	hs := e.Hs()
	e.n = hs.NRows
	e.hsTrace = e.HsTrace()

	before := e.dev.stats.Allocations
	e.raw = uint32Bytes(hs.RowPtr, e.raw)
	e.dev.upload(&e.rowPtr, e.raw)
	e.raw = uint32Bytes(hs.ColIdx, e.raw)
	e.dev.upload(&e.colIdx, e.raw)
	e.flt = tensor.ToFloat32(hs.Val, e.flt)
	e.raw = float32Bytes(e.flt, e.raw)
	e.dev.upload(&e.hVal, e.raw)

	if e.dev.stats.Allocations != before {
		e.logger.Debug("device matrix buffers reallocated",
			slog.Int("n", e.n),
			slog.Int("nnz", hs.Size()))
	}
}

// TransferR mirrors R to the device and sizes the work blocks to match.
func (e *Engine[T]) TransferR() {
	r := e.R()
	e.s = r.Cols()

	before := e.dev.stats.Allocations
	size := uint64(4 * r.Size() * e.comp) //nolint:gosec // G115: size is non-negative
	for _, b := range []*deviceBuffer{&e.a0, &e.a1, &e.a2, &e.xi} {
		e.dev.ensure(b, size)
	}
	e.flt = tensor.ToFloat32(r.Data(), e.flt)
	e.raw = float32Bytes(e.flt, e.raw)
	e.dev.upload(&e.r, e.raw)

	if e.dev.stats.Allocations != before {
		e.logger.Debug("device probe buffers reallocated",
			slog.Int("n", r.Rows()),
			slog.Int("s", e.s))
	}
}

// Moments returns the Chebyshev moments mu[0..m-1] of Hs. The whole
// recurrence is recorded in one submission; the per-step partial sums are
// read back once and reduced in float64.
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
	mu[1] = e.hsTrace
	if m == 2 {
		return mu, nil
	}

	wg := int(workgroups(e.blockLen()))
	e.dev.ensure(&e.partial, uint64(4*wg*(m-2))) //nolint:gosec // G115: size is non-negative

	a := [3]*deviceBuffer{&e.a0, &e.a1, &e.a2}
	batch := e.dev.NewBatch()
	batch.Copy(a[0], &e.r)
	e.spmm(batch, 1, &e.r, 0, a[1])
	for k := 2; k < m; k++ {
		batch.Copy(a[2], a[0])
		e.spmm(batch, 2, a[1], -1, a[2])
		e.dot(batch, &e.r, a[2], (k-2)*wg)
		a[0], a[1], a[2] = a[1], a[2], a[0]
	}
	batch.Submit()

	partials := make([]float32, wg*(m-2))
	e.dev.readFloat32(e.partial.buf, partials)
	for k := 2; k < m; k++ {
		var sum float64
		for _, p := range partials[(k-2)*wg : (k-1)*wg] {
			sum += float64(p)
		}
		mu[k] = sum
	}
	return mu, nil
}

// StochMatrix accumulates xi = Σ c[m]·T_m(Hs)·R on the device, reads it back
// once, and contracts it with R on the host.
func (e *Engine[T]) StochMatrix(c []float64, d *sparse.Csr[T]) error {
	if err := e.CheckCall(c, d); err != nil {
		return fmt.Errorf("kpm: stoch matrix: %w", err)
	}

	a := [3]*deviceBuffer{&e.a0, &e.a1, &e.a2}
	batch := e.dev.NewBatch()
	batch.Copy(a[0], &e.r)
	e.spmm(batch, 1, &e.r, 0, a[1])
	e.axpby(batch, float32(c[0]), a[0], 0, &e.xi)
	e.axpby(batch, float32(c[1]), a[1], 1, &e.xi)
	for m := 2; m < len(c); m++ {
		batch.Copy(a[2], a[0])
		e.spmm(batch, 2, a[1], -1, a[2])
		e.axpby(batch, float32(c[m]), a[2], 1, &e.xi)
		a[0], a[1], a[2] = a[1], a[2], a[0]
	}
	batch.Submit()

	e.flt = growFloat32(e.flt, e.blockLen())
	e.dev.readFloat32(e.xi.buf, e.flt)
	r := e.R()
	xi := tensor.NewDense[T](r.Rows(), r.Cols())
	tensor.FromFloat32(e.flt, xi.Data())

	cpu.Contract(d, r, xi, e.Config().Parallel)
	return nil
}

func growFloat32(buf []float32, n int) []float32 {
	if cap(buf) < n {
		return make([]float32, n)
	}
	return buf[:n]
}
