//go:build windows

package webgpu

// spmm records dst = alpha*Hs*src + beta*dst. src and dst must differ.
func (e *Engine[T]) spmm(batch *CommandBatch, alpha float32, src *deviceBuffer, beta float32, dst *deviceBuffer) {
	name, code := "spmm_real", spmmRealShader
	if e.comp == 2 {
		name, code = "spmm_complex", spmmComplexShader
	}
	//nolint:gosec // G115: dimensions are validated to fit in u32
	batch.Dispatch(name, code, e.n*e.s,
		spmmParams(uint32(e.n), uint32(e.s), alpha, beta),
		e.rowPtr.binding(0),
		e.colIdx.binding(1),
		e.hVal.binding(2),
		src.binding(3),
		dst.binding(4),
	)
}

// axpby records y = alpha*x + beta*y over all components of a block.
func (e *Engine[T]) axpby(batch *CommandBatch, alpha float32, x *deviceBuffer, beta float32, y *deviceBuffer) {
	size := e.blockLen()
	//nolint:gosec // G115: size fits in u32
	batch.Dispatch("axpby", axpbyShader, size,
		axpbyParams(uint32(size), alpha, beta),
		x.binding(0),
		y.binding(1),
	)
}

// dot records the workgroup partial sums of Re⟨x, y⟩ at partial[offset:].
// It returns the number of partials written.
func (e *Engine[T]) dot(batch *CommandBatch, x, y *deviceBuffer, offset int) int {
	size := e.blockLen()
	//nolint:gosec // G115: size and offset fit in u32
	wg := batch.Dispatch("dot", dotShader, size,
		dotParams(uint32(size), uint32(offset)),
		x.binding(0),
		y.binding(1),
		e.partial.binding(2),
	)
	return int(wg)
}

// blockLen is the number of float32 values in one n×s block.
func (e *Engine[T]) blockLen() int {
	return e.n * e.s * e.comp
}
