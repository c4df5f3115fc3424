//go:build windows

package webgpu

import (
	"math/rand/v2"
	"testing"

	"github.com/born-ml/kpm/internal/backend/cpu"
	"github.com/born-ml/kpm/internal/kpm"
	"github.com/born-ml/kpm/internal/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chain(n int) *sparse.Coo[float64] {
	h := sparse.NewCoo[float64](n, n)
	for i := 0; i < n; i++ {
		h.Add(i, i, 0)
		h.Add(i, (i+1)%n, -1)
		h.Add((i+1)%n, i, -1)
	}
	return h
}

func newDeviceEngine(t *testing.T) *Engine[float64] {
	t.Helper()
	e, err := New[float64]()
	if err != nil {
		t.Skipf("WebGPU not available: %v", err)
	}
	t.Cleanup(e.Release)
	return e
}

func TestIsAvailable(t *testing.T) {
	t.Logf("WebGPU available: %v", IsAvailable())
}

func TestEngine_MomentsMatchHost(t *testing.T) {
	e := newDeviceEngine(t)
	host := cpu.New[float64]()
	es := kpm.NewEnergyScale(-2.5, 2.5)

	for _, eng := range []kpm.Engine[float64]{e, host} {
		require.NoError(t, eng.SetH(chain(64), es))
		require.NoError(t, eng.SetRUncorrelated(64, 4, rand.New(rand.NewPCG(1, 2))))
	}

	want, err := host.Moments(20)
	require.NoError(t, err)
	got, err := e.Moments(20)
	require.NoError(t, err)

	require.Len(t, got, 20)
	for k := range want {
		assert.InDelta(t, want[k], got[k], 1e-3, "moment %d", k)
	}
	assert.Equal(t, "WebGPU (f32)", e.Name())
}

func TestEngine_StochMatrixMatchesHost(t *testing.T) {
	e := newDeviceEngine(t)
	host := cpu.New[float64]()
	es := kpm.NewEnergyScale(-2.5, 2.5)
	for _, eng := range []kpm.Engine[float64]{e, host} {
		require.NoError(t, eng.SetH(chain(32), es))
		require.NoError(t, eng.SetRIdentity(32))
	}

	c := []float64{0.5, -0.25, 0.125, 0.0625}
	want, err := sparse.Build(chain(32))
	require.NoError(t, err)
	got := want.Clone()
	require.NoError(t, host.StochMatrix(c, want))
	require.NoError(t, e.StochMatrix(c, got))

	for k := range want.Val {
		assert.InDelta(t, want.Val[k], got.Val[k], 1e-4)
	}
}

func TestEngine_BuffersAreReused(t *testing.T) {
	e := newDeviceEngine(t)
	es := kpm.NewEnergyScale(-2.5, 2.5)
	require.NoError(t, e.SetH(chain(16), es))
	require.NoError(t, e.SetRIdentity(16))
	allocs := e.Stats().Allocations

	// Same shape, no new device buffers.
	require.NoError(t, e.SetH(chain(16), es))
	require.NoError(t, e.SetRUncorrelated(16, 16, rand.New(rand.NewPCG(3, 4))))
	assert.Equal(t, allocs, e.Stats().Allocations)
}
