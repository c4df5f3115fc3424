package cpu

import (
	"github.com/born-ml/kpm/internal/parallel"
	"github.com/born-ml/kpm/internal/sparse"
	"github.com/born-ml/kpm/internal/tensor"
)

// Contract sets, for every structural (i, j) of d,
//
//	d_ij = ½(⟨R_j, xi_i⟩ + ⟨xi_j, R_i⟩)
//
// where X_i is row i of X and ⟨x, y⟩ = Σ conj(x)·y. Symmetrizing the two
// cross terms keeps the estimate Hermitian for Hermitian targets.
func Contract[T tensor.Scalar](d *sparse.Csr[T], r, xi *tensor.Dense[T], cfg parallel.Config) {
	half := tensor.FromReal[T](0.5)
	parallel.ForRange(d.NRows, func(start, end int) {
		for i := start; i < end; i++ {
			for k := d.RowPtr[i]; k < d.RowPtr[i+1]; k++ {
				j := d.ColIdx[k]
				x1 := tensor.DotcSlice(r.Row(j), xi.Row(i))
				x2 := tensor.DotcSlice(xi.Row(j), r.Row(i))
				d.Val[k] = half * (x1 + x2)
			}
		}
	}, cfg)
}

// Accumulate adds w·⟨b_j, a_i⟩ to every structural (i, j) of d.
func Accumulate[T tensor.Scalar](d *sparse.Csr[T], b, a *tensor.Dense[T], w float64, cfg parallel.Config) {
	wt := tensor.FromReal[T](w)
	parallel.ForRange(d.NRows, func(start, end int) {
		for i := start; i < end; i++ {
			for k := d.RowPtr[i]; k < d.RowPtr[i+1]; k++ {
				d.Val[k] += wt * tensor.DotcSlice(b.Row(d.ColIdx[k]), a.Row(i))
			}
		}
	}, cfg)
}
