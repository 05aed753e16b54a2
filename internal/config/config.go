// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
	"time"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CacheCapacity bounds the result cache entry count.
	CacheCapacity int `koanf:"cache_capacity"`

	// CacheTTL is the maximum age of a cached result.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// QueueSize bounds the in-memory prewarm queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of prewarm workers.
	WorkerCount int `koanf:"worker_count"`

	// MaxPrewarmBatch caps the pair count of one POST /prewarm body.
	MaxPrewarmBatch int `koanf:"max_prewarm_batch"`

	// WeightsVersion tags results and cache keys.
	WeightsVersion string `koanf:"weights_version"`

	// Weights overrides the scoring weight table. Empty keeps the
	// embedded production weights. When set, values must sum to 1.
	Weights map[string]float64 `koanf:"weights"`

	// TaxonomyFile optionally overlays the embedded taxonomy tables.
	TaxonomyFile string `koanf:"taxonomy_file"`

	// GeminiAPIKey enables the optional recommendation collaborator.
	GeminiAPIKey string `koanf:"gemini_api_key"`

	// GeminiModel overrides the recommendation model name.
	GeminiModel string `koanf:"gemini_model"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		CacheCapacity:   1000,
		CacheTTL:        24 * time.Hour,
		QueueSize:       10_000,
		WorkerCount:     runtime.NumCPU() * 2,
		MaxPrewarmBatch: 500,
		WeightsVersion:  "v3",
	}
}
