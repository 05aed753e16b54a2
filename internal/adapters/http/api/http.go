// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rapporthq/rapport/internal/domain/model"
	"github.com/rapporthq/rapport/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Score computes or serves the cached result for one ordered pair.
	// The second return value reports whether the result came from the
	// cache.
	Score(ctx context.Context, req model.PairRequest) (model.ScoreResult, bool, error)

	// EnqueuePrewarm pushes a pair for async scoring. Returns false on
	// backpressure.
	EnqueuePrewarm(ctx context.Context, req model.PairRequest) bool

	// GetStats returns a snapshot of service state.
	GetStats(ctx context.Context) types.ServiceStats
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	scoreHandler   *ScoreHandler
	prewarmHandler *PrewarmHandler
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxPrewarmBatch bounds the pair count accepted by POST /prewarm.
func WithMaxPrewarmBatch(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.prewarmHandler.maxBatch = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(deps),
		scoreHandler:   NewScoreHandler(deps),
		prewarmHandler: NewPrewarmHandler(deps),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", MetricsMiddleware(s.healthHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/score", MetricsMiddleware(s.scoreHandler.HandlePostScore, "score"))
	mux.HandleFunc("/prewarm", MetricsMiddleware(s.prewarmHandler.HandlePostPrewarm, "prewarm"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
