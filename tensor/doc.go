// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor exposes the scalar constraint and the dense row-major
// matrices used as probe and work blocks by the KPM engines.
//
// # Supported Data Types
//
// Engines are instantiated for one of two element types:
//   - float64 for real symmetric matrices
//   - complex128 for complex Hermitian matrices
//
// Accelerator backends store both in single precision on the device, with
// complex values interleaved as (re, im) pairs.
package tensor
