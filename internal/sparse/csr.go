package sparse

import (
	"fmt"
	"slices"

	"github.com/born-ml/kpm/internal/tensor"
)

// Csr is a compressed sparse row matrix. Within each row, entries are sorted
// by column. The pattern (RowPtr, ColIdx) is fixed after Build; only Val is
// expected to change.
type Csr[T tensor.Scalar] struct {
	NRows, NCols int

	RowPtr []int // len NRows+1
	ColIdx []int // len nnz
	Val    []T   // len nnz
}

// Build converts a coordinate matrix to CSR form. It returns
// ErrDuplicateEntry if any position appears twice.
func Build[T tensor.Scalar](m *Coo[T]) (*Csr[T], error) {
	n := m.NRows
	rowPtr := make([]int, n+1)
	for _, e := range m.data {
		rowPtr[e.i+1]++
	}
	for i := 0; i < n; i++ {
		rowPtr[i+1] += rowPtr[i]
	}

	nnz := len(m.data)
	order := make([]int, nnz)
	next := slices.Clone(rowPtr[:n])
	for k, e := range m.data {
		order[next[e.i]] = k
		next[e.i]++
	}

	colIdx := make([]int, nnz)
	val := make([]T, nnz)
	for i := 0; i < n; i++ {
		row := order[rowPtr[i]:rowPtr[i+1]]
		slices.SortStableFunc(row, func(a, b int) int {
			return m.data[a].j - m.data[b].j
		})
		for p, k := range row {
			idx := rowPtr[i] + p
			colIdx[idx] = m.data[k].j
			val[idx] = m.data[k].v
			if p > 0 && colIdx[idx] == colIdx[idx-1] {
				return nil, fmt.Errorf("%w: (%d, %d)", ErrDuplicateEntry, i, colIdx[idx])
			}
		}
	}

	return &Csr[T]{
		NRows:  n,
		NCols:  m.NCols,
		RowPtr: rowPtr,
		ColIdx: colIdx,
		Val:    val,
	}, nil
}

// Dims returns the matrix dimensions.
func (m *Csr[T]) Dims() (r, c int) {
	return m.NRows, m.NCols
}

// Size returns the number of structural nonzeros.
func (m *Csr[T]) Size() int {
	return len(m.Val)
}

// Find returns the storage index of (i, j), or -1 if the position is not in
// the pattern.
func (m *Csr[T]) Find(i, j int) int {
	if i < 0 || i >= m.NRows || j < 0 || j >= m.NCols {
		return -1
	}
	lo, hi := m.RowPtr[i], m.RowPtr[i+1]
	k, ok := slices.BinarySearch(m.ColIdx[lo:hi], j)
	if !ok {
		return -1
	}
	return lo + k
}

// At returns the value at (i, j); positions outside the pattern read as zero.
func (m *Csr[T]) At(i, j int) T {
	if k := m.Find(i, j); k >= 0 {
		return m.Val[k]
	}
	var zero T
	return zero
}

// Set overwrites the value at a structural position. It returns
// ErrOutOfRange if (i, j) is not in the pattern.
func (m *Csr[T]) Set(i, j int, v T) error {
	k := m.Find(i, j)
	if k < 0 {
		return fmt.Errorf("%w: (%d, %d) not in pattern", ErrOutOfRange, i, j)
	}
	m.Val[k] = v
	return nil
}

// Trace returns the sum of the structural diagonal entries.
func (m *Csr[T]) Trace() T {
	var t T
	for i := 0; i < min(m.NRows, m.NCols); i++ {
		if k := m.Find(i, i); k >= 0 {
			t += m.Val[k]
		}
	}
	return t
}

// Scale multiplies every stored value by alpha.
func (m *Csr[T]) Scale(alpha T) {
	for k := range m.Val {
		m.Val[k] *= alpha
	}
}

// Clone returns a deep copy of m.
func (m *Csr[T]) Clone() *Csr[T] {
	return &Csr[T]{
		NRows:  m.NRows,
		NCols:  m.NCols,
		RowPtr: slices.Clone(m.RowPtr),
		ColIdx: slices.Clone(m.ColIdx),
		Val:    slices.Clone(m.Val),
	}
}

// ToCoo returns the coordinate form, entries in row-major order.
func (m *Csr[T]) ToCoo() *Coo[T] {
	c := NewCoo[T](m.NRows, m.NCols)
	c.data = make([]triplet[T], 0, m.Size())
	for i := 0; i < m.NRows; i++ {
		for k := m.RowPtr[i]; k < m.RowPtr[i+1]; k++ {
			c.data = append(c.data, triplet[T]{i, m.ColIdx[k], m.Val[k]})
		}
	}
	return c
}

// ToDense expands m into a dense matrix. Intended for small matrices and
// reference checks.
func (m *Csr[T]) ToDense() *tensor.Dense[T] {
	d := tensor.NewDense[T](m.NRows, m.NCols)
	for i := 0; i < m.NRows; i++ {
		for k := m.RowPtr[i]; k < m.RowPtr[i+1]; k++ {
			d.Set(i, m.ColIdx[k], m.Val[k])
		}
	}
	return d
}
