package model

// PairRequest is one scoring request for an ordered (viewer, target) pair.
// It is the payload flowing through the prewarm queue and into the scoring
// pipeline.
type PairRequest struct {
	Viewer       RawProfile `json:"viewer"`
	Target       RawProfile `json:"target"`
	RedFlagScore float64    `json:"red_flag_score,omitempty"`
}
