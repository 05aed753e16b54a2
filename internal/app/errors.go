package app

import (
	"errors"
)

// Sentinel kinds for service errors.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrInvalidResult = errors.New("invalid cached result type")
)
