// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go host backend of the KPM engine.
//
// # Overview
//
// The host backend is the double-precision reference implementation:
//   - Row-parallel sparse × dense products over an errgroup worker pool
//   - gonum BLAS-1 kernels for dense probe blocks
//   - Adjoint differentiation that regenerates Chebyshev terms by running
//     the recurrence backwards, so memory does not grow with the number of
//     moments
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/kpm/backend/cpu"
//	    "github.com/born-ml/kpm/engine"
//	)
//
//	func main() {
//	    e := cpu.New[float64](engine.WithLogger(slog.Default()))
//	    defer e.Release()
//
//	    if err := e.SetH(h, engine.NewEnergyScale(-3, 3)); err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = e.SetRUncorrelated(n, 8, rand.New(rand.NewPCG(1, 2)))
//	    mu, err := e.Moments(256)
//	}
//
// # Thread Safety
//
// An engine is not safe for concurrent use. Distinct engines share no
// state and may run in parallel.
package cpu
