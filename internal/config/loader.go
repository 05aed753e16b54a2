package config

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// weightSumTolerance allows for float noise when validating overridden
// weight tables.
const weightSumTolerance = 0.001

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if RAPPORT_CONFIG is set
//  3. env (prefix RAPPORT_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("RAPPORT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: RAPPORT_ADDR, RAPPORT_QUEUE_SIZE, ...
	// Map env keys like RAPPORT_QUEUE_SIZE -> queue_size (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("RAPPORT_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "rapport_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.CacheCapacity <= 0 {
		return fmt.Errorf("%w: cache_capacity must be positive", ErrInvalidConfig)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("%w: cache_ttl must be positive", ErrInvalidConfig)
	}
	if len(c.Weights) > 0 {
		sum := 0.0
		for _, v := range c.Weights {
			if v < 0 {
				return fmt.Errorf("%w: weights must be non-negative", ErrInvalidConfig)
			}
			sum += v
		}
		if math.Abs(sum-1.0) > weightSumTolerance {
			return fmt.Errorf("%w: weights must sum to 1, got %.4f", ErrInvalidConfig, sum)
		}
	}
	return nil
}
