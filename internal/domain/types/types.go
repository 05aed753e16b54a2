// Package types contains common types shared across the application
package types

import (
	"github.com/rapporthq/rapport/internal/domain/model"
)

// ScoreRequest is the body of POST /score.
type ScoreRequest struct {
	Viewer       model.RawProfile `json:"viewer"`
	Target       model.RawProfile `json:"target"`
	RedFlagScore float64          `json:"red_flag_score,omitempty"`
}

// Pair converts the request to the internal pair payload.
func (r ScoreRequest) Pair() model.PairRequest {
	return model.PairRequest{
		Viewer:       r.Viewer,
		Target:       r.Target,
		RedFlagScore: r.RedFlagScore,
	}
}

// ScoreResponse is the body returned by POST /score.
type ScoreResponse struct {
	model.ScoreResult
	Cached bool `json:"cached"`
}

// PrewarmRequest is the body of POST /prewarm.
type PrewarmRequest struct {
	Pairs []ScoreRequest `json:"pairs"`
}

// PrewarmResponse reports how many pairs were accepted for background
// scoring.
type PrewarmResponse struct {
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

// ServiceStats is a point-in-time snapshot of service state.
type ServiceStats struct {
	CacheEntries   int    `json:"cache_entries"`
	QueueDepth     int    `json:"queue_depth"`
	Workers        int    `json:"workers"`
	WeightsVersion string `json:"weights_version"`
	TaxonomyVer    string `json:"taxonomy_version"`
}
