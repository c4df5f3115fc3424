// Package sparse implements the coordinate-list and compressed-row matrix
// forms consumed by the KPM engine.
package sparse

import (
	"fmt"

	"github.com/born-ml/kpm/internal/tensor"
)

type triplet[T tensor.Scalar] struct {
	i, j int
	v    T
}

// Coo is a coordinate-list (triplet) matrix. Entries are kept in insertion
// order; positions must be unique.
type Coo[T tensor.Scalar] struct {
	NRows, NCols int

	data []triplet[T]
}

// NewCoo creates an empty r×c coordinate matrix.
func NewCoo[T tensor.Scalar](r, c int) *Coo[T] {
	if r < 0 || c < 0 {
		panic(fmt.Sprintf("sparse: invalid shape %dx%d", r, c))
	}
	return &Coo[T]{NRows: r, NCols: c}
}

// Dims returns the matrix dimensions.
func (m *Coo[T]) Dims() (r, c int) {
	return m.NRows, m.NCols
}

// IsSquare reports whether NRows == NCols.
func (m *Coo[T]) IsSquare() bool {
	return m.NRows == m.NCols
}

// Size returns the number of stored entries.
func (m *Coo[T]) Size() int {
	return len(m.data)
}

// Add appends the entry (i, j, v).
func (m *Coo[T]) Add(i, j int, v T) {
	if i < 0 || m.NRows <= i {
		panic("sparse: row index out of range")
	}
	if j < 0 || m.NCols <= j {
		panic("sparse: column index out of range")
	}
	m.data = append(m.data, triplet[T]{i, j, v})
}

// Clear removes every entry, keeping the dimensions.
func (m *Coo[T]) Clear() {
	m.data = m.data[:0]
}

// Entry returns the k-th stored entry.
func (m *Coo[T]) Entry(k int) (i, j int, v T) {
	e := m.data[k]
	return e.i, e.j, e.v
}

// Scale multiplies every stored value by alpha.
func (m *Coo[T]) Scale(alpha T) {
	for k := range m.data {
		m.data[k].v *= alpha
	}
}

// ToCsr builds the compressed-row form. See Build.
func (m *Coo[T]) ToCsr() (*Csr[T], error) {
	return Build(m)
}
