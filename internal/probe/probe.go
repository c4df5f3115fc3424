// Package probe builds the random probe matrices R used by stochastic trace
// estimation.
//
// Three policies are available:
//   - Uncorrelated: independent random phases scaled by 1/sqrt(s).
//   - Correlated: one unit phase per row, in the column of the row's group.
//   - Identity: R = I, exact but costs n probe vectors.
package probe

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/born-ml/kpm/internal/tensor"
)

// ErrInvalidGroups is returned when correlated group labels do not form a
// contiguous zero-based range.
var ErrInvalidGroups = errors.New("probe: group labels must cover 0..max")

// ErrInvalidSize is returned for non-positive probe dimensions.
var ErrInvalidSize = errors.New("probe: dimensions must be > 0")

// Source is a stream of uniformly distributed integers.
// *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Phase draws a random unit phase: ±1 for real T, one of {1, i, -1, -i}
// for complex T.
func Phase[T tensor.Scalar](rng Source) T {
	if tensor.IsComplex[T]() {
		switch rng.IntN(4) {
		case 0:
			return tensor.FromComplex[T](1)
		case 1:
			return tensor.FromComplex[T](1i)
		case 2:
			return tensor.FromComplex[T](-1)
		default:
			return tensor.FromComplex[T](-1i)
		}
	}
	if rng.IntN(2) == 0 {
		return tensor.FromReal[T](1)
	}
	return tensor.FromReal[T](-1)
}

// Uncorrelated returns an n×s matrix of independent random phases scaled by
// 1/sqrt(s), so that E[R R†] = I.
func Uncorrelated[T tensor.Scalar](n, s int, rng Source) (*tensor.Dense[T], error) {
	if n <= 0 || s <= 0 {
		return nil, fmt.Errorf("%w: n=%d s=%d", ErrInvalidSize, n, s)
	}
	r := tensor.NewDense[T](n, s)
	x := tensor.FromReal[T](1 / math.Sqrt(float64(s)))
	data := r.Data()
	for k := range data {
		data[k] = Phase[T](rng) * x
	}
	return r, nil
}

// Correlated returns an n×s matrix with n = len(groups) and s = max label + 1.
// Row i holds a single unit phase in column groups[i]. No 1/sqrt(s) factor
// is applied.
func Correlated[T tensor.Scalar](groups []int, rng Source) (*tensor.Dense[T], error) {
	s, err := GroupCount(groups)
	if err != nil {
		return nil, err
	}
	n := len(groups)
	r := tensor.NewDense[T](n, s)
	for i, g := range groups {
		r.Set(i, g, Phase[T](rng))
	}
	return r, nil
}

// Identity returns R = I_n.
func Identity[T tensor.Scalar](n int) (*tensor.Dense[T], error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n=%d", ErrInvalidSize, n)
	}
	return tensor.Identity[T](n), nil
}

// GroupCount validates group labels and returns the number of groups.
// Labels must be non-negative and every value in 0..max must occur.
func GroupCount(groups []int) (int, error) {
	if len(groups) == 0 {
		return 0, fmt.Errorf("%w: no rows", ErrInvalidSize)
	}
	lo, hi := slices.Min(groups), slices.Max(groups)
	if lo != 0 {
		return 0, fmt.Errorf("%w: smallest label is %d", ErrInvalidGroups, lo)
	}
	if hi > math.MaxUint32-1 {
		return 0, fmt.Errorf("%w: label %d too large", ErrInvalidGroups, hi)
	}

	seen := roaring.New()
	for _, g := range groups {
		seen.Add(uint32(g)) //nolint:gosec // G115: 0 <= g < MaxUint32 checked above
	}
	if seen.GetCardinality() != uint64(hi)+1 {
		return 0, fmt.Errorf("%w: %d of %d labels used", ErrInvalidGroups, seen.GetCardinality(), hi+1)
	}
	return hi + 1, nil
}
