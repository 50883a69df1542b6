// Package config holds the five runtime knobs of the engine, loaded via
// a functional-options constructor
// plus a small environment-backed Load helper for standalone
// (non-embedded) use.
package config

import (
	"os"
	"strconv"
)

// Config bundles the runtime knobs the plan/execution layer consults.
type Config struct {
	// ThreadPoolSize bounds the errgroup cmd/algcore uses to run queries
	// concurrently; the gbmat kernels and ops operators are
	// single-threaded and do not read it. Must be >= 1.
	ThreadPoolSize int

	// QueryMemCap is the per-query allocation budget in bytes; 0 means
	// unlimited.
	QueryMemCap int64

	// HyperSwitch is the nnz/vdim ratio for switching between Sparse and
	// Hypersparse. No code in this module reads it: gbmat does not
	// convert a matrix between the two formats on its own.
	HyperSwitch float64

	// BitmapSwitch is the nnz/(vlen*vdim) ratio for promoting a Sparse
	// matrix to Bitmap. No code in this module reads it: gbmat does not
	// promote a matrix to Bitmap on its own.
	BitmapSwitch float64

	// EdgeBulkDeleteThreshold is the edge count for switching a delete
	// from per-edge removal to a bulk matrix rebuild. No code in this
	// module reads it: ops.Delete always calls DeleteEdges/DeleteNodes,
	// whatever the edge count.
	EdgeBulkDeleteThreshold int
}

// Option configures a Config before use.
type Option func(*Config)

// WithThreadPoolSize overrides ThreadPoolSize.
func WithThreadPoolSize(n int) Option {
	return func(c *Config) { c.ThreadPoolSize = n }
}

// WithQueryMemCap overrides QueryMemCap.
func WithQueryMemCap(bytes int64) Option {
	return func(c *Config) { c.QueryMemCap = bytes }
}

// WithHyperSwitch overrides HyperSwitch.
func WithHyperSwitch(ratio float64) Option {
	return func(c *Config) { c.HyperSwitch = ratio }
}

// WithBitmapSwitch overrides BitmapSwitch.
func WithBitmapSwitch(ratio float64) Option {
	return func(c *Config) { c.BitmapSwitch = ratio }
}

// WithEdgeBulkDeleteThreshold overrides EdgeBulkDeleteThreshold.
func WithEdgeBulkDeleteThreshold(n int) Option {
	return func(c *Config) { c.EdgeBulkDeleteThreshold = n }
}

// Default returns the built-in baseline Config, tuned for a single
// embedded process rather than a large shared server.
func Default() *Config {
	return &Config{
		ThreadPoolSize:          4,
		QueryMemCap:             0,
		HyperSwitch:             0.1,
		BitmapSwitch:            0.5,
		EdgeBulkDeleteThreshold: 1000,
	}
}

// New builds a Config from Default(), applying opts in order.
func New(opts ...Option) *Config {
	c := Default()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envKeys names the environment variables Load reads, in the order of
// the Config fields they set.
var envKeys = []string{
	"ALGCORE_THREAD_POOL_SIZE",
	"ALGCORE_QUERY_MEM_CAP",
	"ALGCORE_HYPER_SWITCH",
	"ALGCORE_BITMAP_SWITCH",
	"ALGCORE_EDGE_BULK_DELETE_THRESHOLD",
}

// Load builds a Config from Default(), overridden by whichever of the
// ALGCORE_* environment variables are set, then by opts. A malformed
// environment value is ignored rather than treated as fatal: the knobs
// are performance tuning, not correctness-critical.
func Load(opts ...Option) *Config {
	c := Default()

	if v, ok := os.LookupEnv(envKeys[0]); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.ThreadPoolSize = n
		}
	}
	if v, ok := os.LookupEnv(envKeys[1]); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.QueryMemCap = n
		}
	}
	if v, ok := os.LookupEnv(envKeys[2]); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.HyperSwitch = f
		}
	}
	if v, ok := os.LookupEnv(envKeys[3]); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.BitmapSwitch = f
		}
	}
	if v, ok := os.LookupEnv(envKeys[4]); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.EdgeBulkDeleteThreshold = n
		}
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}
