// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package engine is the entry point of the stochastic Kernel Polynomial
// Method (KPM) library.
//
// # Overview
//
// An Engine holds a rescaled sparse matrix Hs = (H - Avg·I)/Mag with its
// spectrum inside [-1, 1], and a block of probe vectors R. From these it
// computes:
//   - Chebyshev moments mu[m] ≈ Tr T_m(Hs)
//   - a stochastic estimate of Σ c[m]·T_m(Hs) on a sparse pattern
//   - the derivative of Σ c[m]·mu[m] with respect to every entry of H
//
// # Basic Usage
//
//	h := sparse.NewCoo[float64](n, n)
//	// ... add entries, including every diagonal position ...
//
//	es, err := engine.GershgorinScale(h, 0.01)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	e := engine.New[float64](engine.WithLogger(slog.Default()))
//	defer e.Release()
//
//	if err := e.SetH(h, es); err != nil {
//	    log.Fatal(err)
//	}
//	if err := e.SetRUncorrelated(n, 16, rand.New(rand.NewPCG(1, 2))); err != nil {
//	    log.Fatal(err)
//	}
//	mu, err := e.Moments(512)
//
// # Backend Selection
//
// New tries the WebGPU backend first and falls back to the host backend
// when no device is usable. Set KPM_BACKEND=cpu, or pass
// WithBackend(BackendCPU), to skip the accelerator.
package engine
