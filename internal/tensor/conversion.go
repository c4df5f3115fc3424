package tensor

import "fmt"

// ToFloat32 down-converts src into dst, growing dst as needed, and returns
// the filled slice. Complex elements are written as interleaved (re, im)
// pairs, so the result holds len(src)*Components() values.
func ToFloat32[T Scalar](src []T, dst []float32) []float32 {
	switch s := any(src).(type) {
	case []float64:
		dst = grow(dst, len(s))
		for i, v := range s {
			dst[i] = float32(v)
		}
	case []complex128:
		dst = grow(dst, 2*len(s))
		for i, v := range s {
			dst[2*i] = float32(real(v))
			dst[2*i+1] = float32(imag(v))
		}
	}
	return dst
}

// FromFloat32 up-converts src (as produced by ToFloat32) into dst.
func FromFloat32[T Scalar](src []float32, dst []T) {
	switch d := any(dst).(type) {
	case []float64:
		if len(src) != len(d) {
			panic(fmt.Sprintf("tensor: float32 length %d does not match %d reals", len(src), len(d)))
		}
		for i, v := range src {
			d[i] = float64(v)
		}
	case []complex128:
		if len(src) != 2*len(d) {
			panic(fmt.Sprintf("tensor: float32 length %d does not match %d complex values", len(src), len(d)))
		}
		for i := range d {
			d[i] = complex(float64(src[2*i]), float64(src[2*i+1]))
		}
	}
}

func grow(dst []float32, n int) []float32 {
	if cap(dst) < n {
		return make([]float32, n)
	}
	return dst[:n]
}
