// Package main provides the KPM command line tool.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"os"

	"github.com/born-ml/kpm/backend/webgpu"
	"github.com/born-ml/kpm/engine"
	"github.com/born-ml/kpm/sparse"
	"github.com/born-ml/kpm/tensor"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "version":
		fmt.Printf("KPM %s\n", version)
	case "info":
		info()
	case "moments":
		err = moments(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "kpm: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("KPM - stochastic Kernel Polynomial Method engine")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  info       Show available backends")
	fmt.Println("  moments    Chebyshev moments of a disordered ring (see -h)")
}

func info() {
	fmt.Printf("WebGPU available: %v\n", webgpu.IsAvailable())
	e := engine.New[float64]()
	defer e.Release()
	fmt.Printf("Selected backend: %s\n", e.Name())
}

func moments(args []string) error {
	fs := flag.NewFlagSet("moments", flag.ContinueOnError)
	n := fs.Int("n", 1024, "number of sites")
	m := fs.Int("m", 64, "number of moments")
	s := fs.Int("s", 8, "number of random probe vectors")
	w := fs.Float64("w", 1, "on-site disorder strength")
	seed := fs.Uint64("seed", 1, "random seed")
	complexH := fs.Bool("complex", false, "use complex hopping with a flux through the ring")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))

	var (
		mu  []float64
		err error
	)
	if *complexH {
		mu, err = run(ringHamiltonian[complex128](*n, *w, rng), *m, *s, rng, logger)
	} else {
		mu, err = run(ringHamiltonian[float64](*n, *w, rng), *m, *s, rng, logger)
	}
	if err != nil {
		return err
	}

	for k, v := range mu {
		fmt.Printf("%d\t%.10g\n", k, v/float64(*n))
	}
	return nil
}

func run[T tensor.Scalar](h *sparse.Coo[T], m, s int, rng *rand.Rand, logger *slog.Logger) ([]float64, error) {
	es, err := engine.GershgorinScale(h, 0.01)
	if err != nil {
		return nil, err
	}
	logger.Info("energy scale", slog.String("scale", es.String()))

	e := engine.New[T](engine.WithLogger(logger))
	defer e.Release()

	if err := e.SetH(h, es); err != nil {
		return nil, err
	}
	if err := e.SetRUncorrelated(h.NRows, s, rng); err != nil {
		return nil, err
	}
	return e.Moments(m)
}

// ringHamiltonian builds a periodic tight-binding ring with uniform on-site
// disorder in [-w/2, w/2]. Complex rings carry a total flux of π/2.
func ringHamiltonian[T tensor.Scalar](n int, w float64, rng *rand.Rand) *sparse.Coo[T] {
	h := sparse.NewCoo[T](n, n)
	hop, back := hopping[T](n)
	for i := 0; i < n; i++ {
		var onsite T
		switch p := any(&onsite).(type) {
		case *float64:
			*p = w * (rng.Float64() - 0.5)
		case *complex128:
			*p = complex(w*(rng.Float64()-0.5), 0)
		}
		h.Add(i, i, onsite)
		j := (i + 1) % n
		h.Add(i, j, hop)
		h.Add(j, i, back)
	}
	return h
}

// hopping returns the forward and backward hopping amplitudes.
func hopping[T tensor.Scalar](n int) (fwd, back T) {
	switch p := any(&fwd).(type) {
	case *float64:
		*p = -1
		back = fwd
	case *complex128:
		*p = -cmplx.Rect(1, math.Pi/2/float64(n))
		*any(&back).(*complex128) = cmplx.Conj(*p)
	}
	return fwd, back
}
