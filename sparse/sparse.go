// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package sparse provides the coordinate-list and compressed-row matrix forms
// accepted by the KPM engines.
//
// Matrices are assembled as a Coo and converted once with Build. The
// resulting Csr pattern is fixed; engines only overwrite its values.
//
//	h := sparse.NewCoo[float64](n, n)
//	for i := 0; i < n; i++ {
//	    h.Add(i, i, onsite[i])
//	    h.Add(i, (i+1)%n, -1)
//	    h.Add((i+1)%n, i, -1)
//	}
//	pattern, err := sparse.Build(h)
package sparse

import (
	internalsparse "github.com/born-ml/kpm/internal/sparse"
	"github.com/born-ml/kpm/tensor"
)

// Coo is a coordinate-list matrix. Positions must be unique.
type Coo[T tensor.Scalar] = internalsparse.Coo[T]

// Csr is a compressed sparse row matrix with columns sorted within each row.
type Csr[T tensor.Scalar] = internalsparse.Csr[T]

// Errors returned by Build and Csr.Set.
var (
	ErrDuplicateEntry = internalsparse.ErrDuplicateEntry
	ErrOutOfRange     = internalsparse.ErrOutOfRange
)

// NewCoo creates an empty r×c coordinate matrix.
func NewCoo[T tensor.Scalar](r, c int) *Coo[T] {
	return internalsparse.NewCoo[T](r, c)
}

// Build converts m to compressed-row form. It fails with ErrDuplicateEntry
// if a position appears twice.
func Build[T tensor.Scalar](m *Coo[T]) (*Csr[T], error) {
	return internalsparse.Build(m)
}
