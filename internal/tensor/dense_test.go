package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDotc_ConjugatesFirstArgument(t *testing.T) {
	x := NewDenseFrom(1, 2, []complex128{1i, 2})
	y := NewDenseFrom(1, 2, []complex128{1i, 3i})

	// conj(i)·i + conj(2)·3i = 1 + 6i
	assert.Equal(t, complex(1, 6), Dotc(x, y))
}

func TestDotc_Real(t *testing.T) {
	x := NewDenseFrom(2, 2, []float64{1, 2, 3, 4})
	assert.InDelta(t, 30.0, Dotc(x, x), 1e-15)
}

func TestDense_AxpyScale(t *testing.T) {
	y := NewDenseFrom(1, 3, []complex128{1, 1i, 0})
	x := NewDenseFrom(1, 3, []complex128{1, 1, 1i})

	y.Axpy(2, x)
	assert.Equal(t, []complex128{3, 2 + 1i, 2i}, y.Data())

	y.Scale(0.5)
	assert.Equal(t, []complex128{1.5, 1 + 0.5i, 1i}, y.Data())
}

func TestDense_ShapeMismatchPanics(t *testing.T) {
	a := NewDense[float64](2, 3)
	b := NewDense[float64](3, 2)
	assert.Panics(t, func() { a.Axpy(1, b) })
	assert.Panics(t, func() { Dotc(a, b) })
	assert.Panics(t, func() { a.CopyFrom(b) })
}

func TestIdentity(t *testing.T) {
	id := Identity[complex128](3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				assert.Equal(t, complex128(1), id.At(i, j))
			} else {
				assert.Zero(t, id.At(i, j))
			}
		}
	}
	assert.Equal(t, []complex128{0, 1, 0}, id.Row(1))
}

func TestClone_IsDeep(t *testing.T) {
	a := NewDenseFrom(1, 2, []float64{1, 2})
	b := a.Clone()
	b.Set(0, 0, 5)
	assert.InDelta(t, 1.0, a.At(0, 0), 0)
}

func TestFloat32RoundTrip(t *testing.T) {
	src := []complex128{1 + 2i, -0.5}
	f := ToFloat32(src, nil)
	require.Equal(t, []float32{1, 2, -0.5, 0}, f)

	dst := make([]complex128, 2)
	FromFloat32(f, dst)
	assert.Equal(t, src, dst)

	assert.Panics(t, func() { FromFloat32(f, make([]float64, 3)) })
}

func TestScalarHelpers(t *testing.T) {
	assert.Equal(t, Complex128, DataTypeOf[complex128]())
	assert.Equal(t, 2, DataTypeOf[complex128]().Components())
	assert.Equal(t, 8, Float64.Size())
	assert.False(t, IsComplex[float64]())
	assert.Equal(t, complex(1, -2), Conj(complex(1, 2)))
	assert.InDelta(t, 5.0, Abs(complex(3, 4)), 1e-15)
	assert.InDelta(t, 3.0, FromComplex[float64](3+4i), 0)
}
