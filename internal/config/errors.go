package config

import (
	"errors"
)

// Sentinel kinds for configuration errors.
var (
	ErrLoadConfig    = errors.New("load config")
	ErrInvalidConfig = errors.New("invalid config")
)
