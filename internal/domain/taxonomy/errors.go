package taxonomy

import (
	"errors"
)

// Sentinel kinds for taxonomy errors.
var (
	ErrLoadTaxonomy    = errors.New("load taxonomy")
	ErrInvalidTaxonomy = errors.New("invalid taxonomy")
)
