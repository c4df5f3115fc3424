package kpm

import (
	"log/slog"

	"github.com/born-ml/kpm/internal/parallel"
)

// Backend selects which engine implementation the factory builds.
type Backend int

const (
	// BackendAuto uses the accelerator when usable, the host otherwise.
	BackendAuto Backend = iota
	// BackendCPU always uses the host backend.
	BackendCPU
)

// String implements fmt.Stringer.
func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendCPU:
		return "cpu"
	default:
		return "unknown"
	}
}

// Config holds engine construction settings.
type Config struct {
	Logger   *slog.Logger
	Parallel parallel.Config
	Backend  Backend
}

// Option configures an engine.
type Option func(*Config)

// WithLogger sets the logger for the engine.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithParallel sets the host data-parallel configuration.
func WithParallel(p parallel.Config) Option {
	return func(c *Config) {
		c.Parallel = p
	}
}

// WithBackend selects the backend preference used by the engine factory.
func WithBackend(b Backend) Option {
	return func(c *Config) {
		c.Backend = b
	}
}

// NewConfig applies opts over the defaults: a discarding logger, the
// default parallel configuration and BackendAuto.
func NewConfig(opts ...Option) Config {
	c := Config{
		Parallel: parallel.DefaultConfig(),
		Backend:  BackendAuto,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}
