package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/blas/cblas128"
)

// Dense is a row-major rows×cols matrix. Probe matrices and Chebyshev work
// vectors are stored this way so that a matrix row (one site across all
// probe vectors) is contiguous.
type Dense[T Scalar] struct {
	rows, cols int
	data       []T
}

// NewDense creates a zero-filled rows×cols matrix.
func NewDense[T Scalar](rows, cols int) *Dense[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("tensor: invalid shape %dx%d", rows, cols))
	}
	return &Dense[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
}

// NewDenseFrom wraps data (row-major, len rows*cols) without copying.
func NewDenseFrom[T Scalar](rows, cols int, data []T) *Dense[T] {
	if len(data) != rows*cols {
		panic(fmt.Sprintf("tensor: data length %d does not match shape %dx%d", len(data), rows, cols))
	}
	return &Dense[T]{rows: rows, cols: cols, data: data}
}

// Identity returns the n×n identity matrix.
func Identity[T Scalar](n int) *Dense[T] {
	d := NewDense[T](n, n)
	one := FromReal[T](1)
	for i := 0; i < n; i++ {
		d.data[i*n+i] = one
	}
	return d
}

// Rows returns the number of rows.
func (d *Dense[T]) Rows() int { return d.rows }

// Cols returns the number of columns.
func (d *Dense[T]) Cols() int { return d.cols }

// Size returns rows*cols.
func (d *Dense[T]) Size() int { return len(d.data) }

// Data returns the underlying row-major storage.
func (d *Dense[T]) Data() []T { return d.data }

// At returns element (i, j).
func (d *Dense[T]) At(i, j int) T { return d.data[i*d.cols+j] }

// Set sets element (i, j).
func (d *Dense[T]) Set(i, j int, v T) { d.data[i*d.cols+j] = v }

// Row returns row i as a slice view.
func (d *Dense[T]) Row(i int) []T {
	return d.data[i*d.cols : (i+1)*d.cols]
}

// SameShape reports whether d and o have identical dimensions.
func (d *Dense[T]) SameShape(o *Dense[T]) bool {
	return d.rows == o.rows && d.cols == o.cols
}

// Zero sets every element to zero.
func (d *Dense[T]) Zero() {
	clear(d.data)
}

// CopyFrom copies src into d. Shapes must match.
func (d *Dense[T]) CopyFrom(src *Dense[T]) {
	if !d.SameShape(src) {
		panic(fmt.Sprintf("tensor: copy shape mismatch %dx%d <- %dx%d", d.rows, d.cols, src.rows, src.cols))
	}
	copy(d.data, src.data)
}

// Clone returns a deep copy of d.
func (d *Dense[T]) Clone() *Dense[T] {
	c := NewDense[T](d.rows, d.cols)
	copy(c.data, d.data)
	return c
}

// Axpy computes d += alpha*x.
func (d *Dense[T]) Axpy(alpha float64, x *Dense[T]) {
	if !d.SameShape(x) {
		panic(fmt.Sprintf("tensor: axpy shape mismatch %dx%d += %dx%d", d.rows, d.cols, x.rows, x.cols))
	}
	if alpha == 0 {
		return
	}
	switch y := any(d.data).(type) {
	case []float64:
		blas64.Implementation().Daxpy(len(y), alpha, any(x.data).([]float64), 1, y, 1)
	case []complex128:
		cblas128.Implementation().Zaxpy(len(y), complex(alpha, 0), any(x.data).([]complex128), 1, y, 1)
	}
}

// Scale computes d *= alpha.
func (d *Dense[T]) Scale(alpha float64) {
	switch y := any(d.data).(type) {
	case []float64:
		blas64.Implementation().Dscal(len(y), alpha, y, 1)
	case []complex128:
		cblas128.Implementation().Zdscal(len(y), alpha, y, 1)
	}
}

// Dotc returns the Frobenius inner product Σ conj(a)·b over all elements.
func Dotc[T Scalar](a, b *Dense[T]) T {
	if !a.SameShape(b) {
		panic(fmt.Sprintf("tensor: dot shape mismatch %dx%d . %dx%d", a.rows, a.cols, b.rows, b.cols))
	}
	return DotcSlice(a.data, b.data)
}

// DotcSlice returns Σ conj(x[k])·y[k]. Lengths must match.
func DotcSlice[T Scalar](x, y []T) T {
	if len(x) != len(y) {
		panic(fmt.Sprintf("tensor: dot length mismatch %d vs %d", len(x), len(y)))
	}
	var r T
	switch xs := any(x).(type) {
	case []float64:
		v := blas64.Implementation().Ddot(len(xs), xs, 1, any(y).([]float64), 1)
		r = any(v).(T)
	case []complex128:
		v := cblas128.Implementation().Zdotc(len(xs), xs, 1, any(y).([]complex128), 1)
		r = any(v).(T)
	}
	return r
}
