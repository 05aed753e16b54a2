// Package app provides the core compatibility service that implements the
// dependencies required by the HTTP API: the scoring pipeline, the result
// cache in front of it, and the prewarm queue behind it.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rapporthq/rapport/internal/adapters/cache"
	pairqueue "github.com/rapporthq/rapport/internal/adapters/mq/queue"
	workerpool "github.com/rapporthq/rapport/internal/adapters/mq/worker"
	"github.com/rapporthq/rapport/internal/domain/explain"
	"github.com/rapporthq/rapport/internal/domain/feature"
	"github.com/rapporthq/rapport/internal/domain/model"
	"github.com/rapporthq/rapport/internal/domain/normalize"
	"github.com/rapporthq/rapport/internal/domain/rolematch"
	"github.com/rapporthq/rapport/internal/domain/scoring"
	"github.com/rapporthq/rapport/internal/domain/taxonomy"
	"github.com/rapporthq/rapport/internal/domain/types"
	"github.com/rapporthq/rapport/pkg/logger"
	"github.com/rapporthq/rapport/pkg/metrics"
)

// Recommender produces optional free-text advice for a scored pair. The
// service tolerates its absence or failure.
type Recommender interface {
	Recommend(ctx context.Context, result model.ScoreResult) (string, error)
}

// Stats is a point-in-time snapshot of service state.
type Stats = types.ServiceStats

// Service wires the scoring pipeline, cache, queue and workers together.
type Service struct {
	mu sync.RWMutex

	// Core components
	tax        *taxonomy.Taxonomy
	normalizer *normalize.Normalizer
	engine     *feature.Engine
	classifier *rolematch.Classifier
	aggregator *scoring.Aggregator
	store      cache.Store
	queue      pairqueue.Queue
	pool       *workerpool.Pool

	recommender Recommender

	// In-flight deduplication per pair key.
	inflight singleflight.Group

	// Configuration
	cacheCapacity  int
	cacheTTL       time.Duration
	queueSize      int
	workerCount    int
	weights        scoring.Weights
	weightsVersion string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithTaxonomy replaces the default lookup tables.
func WithTaxonomy(tax *taxonomy.Taxonomy) Option {
	return func(s *Service) {
		if tax != nil {
			s.tax = tax
		}
	}
}

// WithCacheCapacity sets the maximum number of cached results.
func WithCacheCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.cacheCapacity = capacity
		}
	}
}

// WithCacheTTL sets the maximum age of a cached result.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithQueueSize sets the maximum size of the prewarm queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithWorkerCount sets the number of prewarm worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithWeights replaces the default scoring weight table.
func WithWeights(w scoring.Weights) Option {
	return func(s *Service) {
		if len(w) > 0 {
			s.weights = w
		}
	}
}

// WithWeightsVersion tags results and cache keys with a weight version.
func WithWeightsVersion(version string) Option {
	return func(s *Service) {
		if version != "" {
			s.weightsVersion = version
		}
	}
}

// WithRecommender attaches the optional recommendation collaborator.
func WithRecommender(r Recommender) Option {
	return func(s *Service) {
		s.recommender = r
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cacheCapacity:  cache.DefaultCapacity,
		cacheTTL:       cache.DefaultTTL,
		queueSize:      10000,
		workerCount:    runtime.NumCPU() * 2,
		weights:        scoring.DefaultWeights(),
		weightsVersion: scoring.DefaultWeightsVersion,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	if s.tax == nil {
		s.tax = taxonomy.Default()
	}

	s.logger.Info(ctx, "starting compatibility service...")

	s.normalizer = normalize.New(s.tax)
	s.engine = feature.New(s.tax)
	s.classifier = rolematch.New(s.tax)
	s.aggregator = scoring.New(
		scoring.WithWeights(s.weights),
		scoring.WithWeightsVersion(s.weightsVersion),
		scoring.WithLogger(s.logger.Named("scoring")),
	)
	s.store = cache.NewMemory(
		cache.WithCapacity(s.cacheCapacity),
		cache.WithTTL(s.cacheTTL),
	)
	s.queue = pairqueue.NewInMemoryQueue(
		pairqueue.WithCapacity(s.queueSize),
		pairqueue.WithBufferSize(s.queueSize),
	)

	s.pool = workerpool.NewPool(s.workerCount, s.queue, s)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "compatibility service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("cacheCapacity", s.cacheCapacity),
		logger.String("weightsVersion", s.weightsVersion),
		logger.String("taxonomyVersion", s.tax.Version),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping compatibility service...")

	if s.queue != nil {
		_ = s.queue.Close()
	}
	if s.pool != nil {
		_ = s.pool.Shutdown(ctx)
	}

	s.started = false
	s.logger.Info(ctx, "compatibility service stopped")
}

// Score returns the compatibility result for one ordered pair, serving
// from the cache when fresh. Concurrent requests for the same pair key
// collapse into at most one in-flight computation. The second return value
// reports whether the result came from the cache.
func (s *Service) Score(ctx context.Context, req model.PairRequest) (model.ScoreResult, bool, error) {
	if !s.isStarted() {
		return model.ScoreResult{}, false, ErrNotStarted
	}

	key := s.pairKey(req)
	if result, ok := s.store.Get(key); ok {
		return result, true, nil
	}

	// The computation deliberately outlives an abandoning caller so the
	// cache still gets populated for subsequent requests.
	computeCtx := context.WithoutCancel(ctx)
	value, err, shared := s.inflight.Do(key, func() (any, error) {
		result := s.compute(computeCtx, req)
		s.store.Put(key, result)
		return result, nil
	})
	if err != nil {
		return model.ScoreResult{}, false, fmt.Errorf("score pair: %w", err)
	}
	if shared {
		metrics.RecordSharedResult()
	}

	result, ok := value.(model.ScoreResult)
	if !ok {
		return model.ScoreResult{}, false, ErrInvalidResult
	}
	return result, false, nil
}

// Prime computes and caches the score for a pair request. It satisfies the
// worker pool's Primer contract.
func (s *Service) Prime(ctx context.Context, r workerpool.Request) error {
	_, _, err := s.Score(ctx, r)
	return err
}

// EnqueuePrewarm submits a pair for background scoring. Returns false when
// the queue is full or closed.
func (s *Service) EnqueuePrewarm(ctx context.Context, r model.PairRequest) bool {
	if !s.isStarted() {
		return false
	}
	return s.queue.Enqueue(ctx, r)
}

// GetStats returns a snapshot of service state.
func (s *Service) GetStats(ctx context.Context) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return Stats{}
	}
	return Stats{
		CacheEntries:   s.store.Len(),
		QueueDepth:     s.queue.Len(ctx),
		Workers:        s.pool.Size(),
		WeightsVersion: s.weightsVersion,
		TaxonomyVer:    s.tax.Version,
	}
}

// compute runs the full pipeline for one pair. It is total: any input
// yields a result.
func (s *Service) compute(ctx context.Context, req model.PairRequest) model.ScoreResult {
	start := time.Now()

	viewer := s.normalizer.Normalize(req.Viewer)
	target := s.normalizer.Normalize(req.Target)

	vector := s.engine.Vector(viewer, target)
	affinity := s.classifier.Affinity(viewer, target)
	score, tier := s.aggregator.Score(vector, affinity, scoring.Signals{
		RedFlagScore: req.RedFlagScore,
	})

	result := model.ScoreResult{
		Score:          score,
		Tier:           tier,
		Explanation:    explain.Build(vector, s.aggregator.Weights(), affinity),
		Features:       vector,
		WeightsVersion: s.weightsVersion,
	}
	if affinity.Kind != model.AffinityNone {
		result.RoleAffinity = &affinity
	}

	metrics.RecordScoreComputed()
	metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))

	s.attachRecommendation(ctx, &result)
	return result
}

// attachRecommendation asks the optional collaborator for supplementary
// text. Failures are logged and swallowed; the heuristic result stands on
// its own.
func (s *Service) attachRecommendation(ctx context.Context, result *model.ScoreResult) {
	if s.recommender == nil {
		return
	}

	text, err := s.recommender.Recommend(ctx, *result)
	if err != nil {
		metrics.RecordRecommendationError()
		metrics.RecordErrorByComponent("recommender", "generate_error")
		s.logger.Warn(ctx, "recommendation unavailable, serving heuristic result",
			logger.Error(err))
		return
	}
	metrics.RecordRecommendation()
	result.Recommendation = text
}

// pairKey derives the cache key from the ordered pair identity plus the
// weight version, so direction-sensitive results stay distinct per order
// and a weight change invalidates old entries.
func (s *Service) pairKey(req model.PairRequest) string {
	return profileKey(req.Viewer) + "|" + profileKey(req.Target) + "|" + s.weightsVersion
}

// profileKey falls back to a content hash when a profile has no identifier.
func profileKey(p model.RawProfile) string {
	if p.ID != "" {
		return p.ID
	}
	h := fnv.New64a()
	payload, err := json.Marshal(p)
	if err != nil {
		return "anon"
	}
	h.Write(payload)
	return fmt.Sprintf("anon-%x", h.Sum64())
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}
