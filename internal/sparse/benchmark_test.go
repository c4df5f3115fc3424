package sparse

import (
	"math/rand/v2"
	"testing"

	"github.com/born-ml/kpm/internal/parallel"
	"github.com/born-ml/kpm/internal/tensor"
)

func BenchmarkMulDense(b *testing.B) {
	const n, s = 1 << 14, 16
	coo := NewCoo[complex128](n, n)
	for i := 0; i < n; i++ {
		coo.Add(i, i, 0.1)
		coo.Add(i, (i+1)%n, -1i)
		coo.Add((i+1)%n, i, 1i)
	}
	m, err := Build(coo)
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewPCG(1, 2))
	x := tensor.NewDense[complex128](n, s)
	for k := range x.Data() {
		x.Data()[k] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	y := tensor.NewDense[complex128](n, s)

	for _, tc := range []struct {
		name string
		cfg  parallel.Config
	}{
		{"sequential", parallel.Sequential()},
		{"parallel", parallel.DefaultConfig()},
	} {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				m.MulDense(y, 2, x, -1, tc.cfg)
			}
		})
	}
}
