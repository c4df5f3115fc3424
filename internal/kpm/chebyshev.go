package kpm

import (
	"github.com/born-ml/kpm/internal/parallel"
	"github.com/born-ml/kpm/internal/sparse"
	"github.com/born-ml/kpm/internal/tensor"
)

// Recurrence applies the Chebyshev three-term recurrence
//
//	a_0 = R, a_1 = Hs·R, a_m = 2·Hs·a_{m-1} - a_{m-2}
//
// on dense blocks of probe vectors. The update is its own inverse: given
// a_{m-1} and a_m, the same formula yields a_{m-2} = 2·Hs·a_{m-1} - a_m.
type Recurrence[T tensor.Scalar] struct {
	H        *sparse.Csr[T]
	Parallel parallel.Config
}

// First sets dst = Hs·src.
func (r Recurrence[T]) First(dst, src *tensor.Dense[T]) {
	r.H.MulDense(dst, 1, src, 0, r.Parallel)
}

// Step sets next = 2·Hs·cur - prev. next may alias prev but not cur.
func (r Recurrence[T]) Step(next, cur, prev *tensor.Dense[T]) {
	if next != prev {
		next.CopyFrom(prev)
	}
	r.H.MulDense(next, 2, cur, -1, r.Parallel)
}

// Pair holds two consecutive recurrence terms (Lo, Hi) = (x_m, x_{m+1}) plus
// one scratch buffer. Advance and Retreat move the window by one order in
// either direction without storing any history.
type Pair[T tensor.Scalar] struct {
	Lo, Hi  *tensor.Dense[T]
	scratch *tensor.Dense[T]
	rec     Recurrence[T]
}

// NewPair starts the forward recurrence at (a_0, a_1) = (R, Hs·R).
// R is copied.
func NewPair[T tensor.Scalar](rec Recurrence[T], r *tensor.Dense[T]) *Pair[T] {
	p := &Pair[T]{
		Lo:      r.Clone(),
		Hi:      tensor.NewDense[T](r.Rows(), r.Cols()),
		scratch: tensor.NewDense[T](r.Rows(), r.Cols()),
		rec:     rec,
	}
	rec.First(p.Hi, p.Lo)
	return p
}

// NewPairFrom builds a pair from explicit terms. lo and hi are owned by the
// pair afterwards.
func NewPairFrom[T tensor.Scalar](rec Recurrence[T], lo, hi *tensor.Dense[T]) *Pair[T] {
	return &Pair[T]{
		Lo:      lo,
		Hi:      hi,
		scratch: tensor.NewDense[T](lo.Rows(), lo.Cols()),
		rec:     rec,
	}
}

// Advance moves (x_m, x_{m+1}) to (x_{m+1}, x_{m+2}).
func (p *Pair[T]) Advance() {
	p.rec.Step(p.scratch, p.Hi, p.Lo)
	p.Lo, p.Hi, p.scratch = p.Hi, p.scratch, p.Lo
}

// Retreat moves (x_m, x_{m+1}) to (x_{m-1}, x_m) using
// x_{m-1} = 2·Hs·x_m - x_{m+1}.
func (p *Pair[T]) Retreat() {
	p.rec.Step(p.scratch, p.Lo, p.Hi)
	p.Lo, p.Hi, p.scratch = p.scratch, p.Lo, p.Hi
}
