// Package tensor provides the dense matrix types and scalar helpers shared by
// the KPM backends.
package tensor

import "math/cmplx"

// Scalar is a constraint for supported matrix element types.
// Real matrices use float64, complex (Hermitian) matrices use complex128.
type Scalar interface {
	float64 | complex128
}

// DataType represents runtime type information for matrices.
type DataType int

// Supported data types.
const (
	Float64 DataType = iota
	Complex128
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float64:
		return 8
	case Complex128:
		return 16
	default:
		panic("unknown data type")
	}
}

// Components returns the number of real components per element
// (1 for real, 2 for complex). Device buffers store this many float32 values
// per element.
func (dt DataType) Components() int {
	switch dt {
	case Float64:
		return 1
	case Complex128:
		return 2
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float64:
		return "float64"
	case Complex128:
		return "complex128"
	default:
		return "unknown"
	}
}

// DataTypeOf infers the DataType of T.
func DataTypeOf[T Scalar]() DataType {
	var zero T
	switch any(zero).(type) {
	case float64:
		return Float64
	case complex128:
		return Complex128
	default:
		panic("unsupported type")
	}
}

// IsComplex reports whether T is a complex scalar type.
func IsComplex[T Scalar]() bool {
	return DataTypeOf[T]() == Complex128
}

// FromReal converts a real number to T.
func FromReal[T Scalar](x float64) T {
	var v T
	switch p := any(&v).(type) {
	case *float64:
		*p = x
	case *complex128:
		*p = complex(x, 0)
	}
	return v
}

// FromComplex converts a complex number to T. The imaginary part is dropped
// for real T.
func FromComplex[T Scalar](z complex128) T {
	var v T
	switch p := any(&v).(type) {
	case *float64:
		*p = real(z)
	case *complex128:
		*p = z
	}
	return v
}

// Real returns the real part of x.
func Real[T Scalar](x T) float64 {
	switch v := any(x).(type) {
	case float64:
		return v
	case complex128:
		return real(v)
	}
	return 0
}

// Conj returns the complex conjugate of x (x itself for real T).
func Conj[T Scalar](x T) T {
	if v, ok := any(x).(complex128); ok {
		return any(cmplx.Conj(v)).(T)
	}
	return x
}

// Abs returns |x|.
func Abs[T Scalar](x T) float64 {
	switch v := any(x).(type) {
	case float64:
		if v < 0 {
			return -v
		}
		return v
	case complex128:
		return cmplx.Abs(v)
	}
	return 0
}
