package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rapporthq/rapport/internal/domain/types"
)

// defaultMaxPrewarmBatch bounds one POST /prewarm body.
const defaultMaxPrewarmBatch = 500

// PrewarmHandler handles batch prewarm requests.
type PrewarmHandler struct {
	deps     Dependencies
	maxBatch int
}

// NewPrewarmHandler creates a new prewarm handler.
func NewPrewarmHandler(deps Dependencies) *PrewarmHandler {
	return &PrewarmHandler{deps: deps, maxBatch: defaultMaxPrewarmBatch}
}

// HandlePostPrewarm handles POST /prewarm requests. Pairs are enqueued for
// background scoring; the response reports per-batch acceptance, with 202
// for fully or partially accepted batches.
func (h *PrewarmHandler) HandlePostPrewarm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}

	var req types.PrewarmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", errors.New("body must be valid JSON"))
		return
	}
	if len(req.Pairs) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", errors.New("pairs must not be empty"))
		return
	}
	if len(req.Pairs) > h.maxBatch {
		writeError(w, http.StatusBadRequest, "batch_too_large",
			fmt.Errorf("at most %d pairs per batch", h.maxBatch))
		return
	}

	resp := types.PrewarmResponse{}
	for _, pair := range req.Pairs {
		if h.deps.EnqueuePrewarm(r.Context(), pair.Pair()) {
			resp.Accepted++
		} else {
			resp.Rejected++
		}
	}

	if resp.Accepted == 0 {
		writeJSON(w, http.StatusTooManyRequests, resp)
		return
	}
	writeJSON(w, http.StatusAccepted, resp)
}
