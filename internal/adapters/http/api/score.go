package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rapporthq/rapport/internal/domain/types"
)

// ScoreHandler handles synchronous scoring requests.
type ScoreHandler struct {
	deps Dependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps Dependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// HandlePostScore handles POST /score requests.
func (h *ScoreHandler) HandlePostScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}

	var req types.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", errors.New("body must be valid JSON"))
		return
	}
	if err := validateScoreRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, cached, err := h.deps.Score(r.Context(), req.Pair())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "scoring_unavailable", err)
		return
	}

	writeJSON(w, http.StatusOK, types.ScoreResponse{ScoreResult: result, Cached: cached})
}

// validateScoreRequest rejects clearly malformed input. Missing profile
// fields are fine; the pipeline applies defaults. Only the risk signal has
// a hard range.
func validateScoreRequest(req types.ScoreRequest) error {
	if req.RedFlagScore < 0 || req.RedFlagScore > 100 {
		return errors.New("red_flag_score must be in [0,100]")
	}
	return nil
}
