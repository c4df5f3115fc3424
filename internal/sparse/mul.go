package sparse

import (
	"fmt"

	"github.com/born-ml/kpm/internal/parallel"
	"github.com/born-ml/kpm/internal/tensor"
)

// MulDense computes dst = alpha*m*b + beta*dst, where b and dst are dense
// row-major matrices with the same number of columns. dst must not alias b.
// Rows of dst are computed in parallel according to cfg.
func (m *Csr[T]) MulDense(dst *tensor.Dense[T], alpha float64, b *tensor.Dense[T], beta float64, cfg parallel.Config) {
	if b.Rows() != m.NCols || dst.Rows() != m.NRows || dst.Cols() != b.Cols() {
		panic(fmt.Sprintf("sparse: mul shape mismatch [%d,%d] @ [%d,%d] -> [%d,%d]",
			m.NRows, m.NCols, b.Rows(), b.Cols(), dst.Rows(), dst.Cols()))
	}
	if dst == b {
		panic("sparse: mul destination aliases operand")
	}

	s := b.Cols()
	a := tensor.FromReal[T](alpha)
	bt := tensor.FromReal[T](beta)

	parallel.ForRange(m.NRows, func(start, end int) {
		for i := start; i < end; i++ {
			out := dst.Row(i)
			switch beta {
			case 0:
				clear(out)
			case 1:
			default:
				for c := range out {
					out[c] *= bt
				}
			}
			for k := m.RowPtr[i]; k < m.RowPtr[i+1]; k++ {
				h := a * m.Val[k]
				in := b.Row(m.ColIdx[k])
				for c := 0; c < s; c++ {
					out[c] += h * in[c]
				}
			}
		}
	}, cfg)
}
