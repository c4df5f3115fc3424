// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	internaltensor "github.com/born-ml/kpm/internal/tensor"
)

// Scalar is the element type constraint: float64 or complex128.
type Scalar = internaltensor.Scalar

// DataType is runtime type information for Scalar.
type DataType = internaltensor.DataType

// Supported data types.
const (
	Float64    = internaltensor.Float64
	Complex128 = internaltensor.Complex128
)

// Dense is a row-major matrix. Row i holds site i across all probe vectors.
type Dense[T Scalar] = internaltensor.Dense[T]

// NewDense creates a zero-filled rows×cols matrix.
func NewDense[T Scalar](rows, cols int) *Dense[T] {
	return internaltensor.NewDense[T](rows, cols)
}

// NewDenseFrom wraps row-major data without copying.
func NewDenseFrom[T Scalar](rows, cols int, data []T) *Dense[T] {
	return internaltensor.NewDenseFrom(rows, cols, data)
}

// Identity returns the n×n identity matrix.
func Identity[T Scalar](n int) *Dense[T] {
	return internaltensor.Identity[T](n)
}

// DataTypeOf returns the DataType of T.
func DataTypeOf[T Scalar]() DataType {
	return internaltensor.DataTypeOf[T]()
}
