package loadgen

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rapporthq/rapport/internal/domain/model"
	"github.com/rapporthq/rapport/internal/domain/types"
	"github.com/rapporthq/rapport/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Reporting constants.
const (
	progressInterval     = 1 * time.Second
	percentageMultiplier = 100.0
	cacheSampleSize      = 25
)

// Run executes the complete pair scoring test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting rapport pair test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("pairs", config.NumPairs),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate profile pairs
	pairs, err := generatePairs(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("pair generation failed: %w", err)
	}

	// Step 3: Score pairs concurrently
	if err := submitPairs(ctx, config, pairs, stats); err != nil {
		return fmt.Errorf("pair submission failed: %w", err)
	}

	// Step 4: Re-score a sample and verify cache hits
	if err := verifyCaching(ctx, config, pairs, stats); err != nil {
		return fmt.Errorf("cache verification failed: %w", err)
	}

	// Step 5: Save pairs to file
	if err := savePairsToFile(ctx, config, pairs); err != nil {
		logger.Get().Warn(ctx, "failed to save pairs to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	if stats.VerifyFailures > 0 {
		return fmt.Errorf("result verification failed for %d responses", stats.VerifyFailures)
	}

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// submitPairs scores pairs concurrently using a worker pool.
func submitPairs(ctx context.Context, config *Config, pairs []types.ScoreRequest, stats *Stats) error {
	logger.Get().Info(ctx, "submitting pairs",
		logger.Int("pairs", len(pairs)),
		logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/score"

	var (
		successful   int64
		failed       int64
		submitted    int64
		verifyFailed int64
	)

	var lastReport atomic.Int64

	pairChan := make(chan types.ScoreRequest, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for pair := range pairChan {
				select {
				case <-ctx.Done():
					return
				default:
					ok, verified := scoreSinglePair(ctx, client, url, pair)

					atomic.AddInt64(&submitted, 1)
					if ok {
						atomic.AddInt64(&successful, 1)
					} else {
						atomic.AddInt64(&failed, 1)
					}
					if ok && !verified {
						atomic.AddInt64(&verifyFailed, 1)
					}

					now := time.Now().UnixNano()
					if now-lastReport.Load() >= int64(progressInterval) {
						lastReport.Store(now)
						total := atomic.LoadInt64(&submitted)
						succ := atomic.LoadInt64(&successful)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							logger.Get().Info(ctx, "progress",
								logger.Int("submitted", int(total)),
								logger.Int("total", len(pairs)),
								logger.Int("successful", int(succ)),
								logger.Int("failed", int(fail)))
						} else {
							fmt.Printf("\rscored: %d/%d (success: %d, failed: %d)",
								total, len(pairs), succ, fail)
						}
					}
				}
			}
		}()
	}

	go func() {
		defer close(pairChan)
		for _, pair := range pairs {
			select {
			case <-ctx.Done():
				return
			case pairChan <- pair:
			}
		}
	}()

	wg.Wait()

	if !config.Verbose {
		fmt.Println()
	}

	stats.PairsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.PairsSuccessful = int(atomic.LoadInt64(&successful))
	stats.PairsFailed = int(atomic.LoadInt64(&failed))
	stats.VerifyFailures = int(atomic.LoadInt64(&verifyFailed))

	logger.Get().Info(ctx, "pair submission completed",
		logger.Int("successful", stats.PairsSuccessful),
		logger.Int("failed", stats.PairsFailed),
		logger.Int("verifyFailures", stats.VerifyFailures))

	return nil
}

// scoreSinglePair posts one pair and checks the response invariants.
// The first return reports transport success, the second result validity.
func scoreSinglePair(ctx context.Context, client *HTTPClient, url string, pair types.ScoreRequest) (bool, bool) {
	resp, err := client.Post(ctx, url, pair)
	if err != nil {
		return false, false
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return false, false
	}

	if resp.StatusCode != http.StatusOK {
		return false, false
	}

	var result types.ScoreResponse
	if err := unmarshalJSON(body, &result); err != nil {
		return true, false
	}

	return true, verifyResult(&result)
}

// verifyResult checks the scoring invariants a response must satisfy.
func verifyResult(result *types.ScoreResponse) bool {
	if result.Score < 0 || result.Score > 100 {
		return false
	}
	if result.Tier != expectedTier(result.Score) {
		return false
	}
	if len(result.Features) == 0 {
		return false
	}
	for _, fs := range result.Features {
		if fs.Value < 0 || fs.Value > 100 {
			return false
		}
	}
	return result.WeightsVersion != ""
}

// expectedTier maps a score to its recommendation tier.
func expectedTier(score float64) model.Tier {
	switch {
	case score >= 80:
		return model.TierStronglyConnect
	case score >= 60:
		return model.TierConnect
	case score >= 40:
		return model.TierConsider
	default:
		return model.TierSkip
	}
}

// verifyCaching re-scores a sample of pairs and checks they come back cached.
func verifyCaching(ctx context.Context, config *Config, pairs []types.ScoreRequest, stats *Stats) error {
	sample := minInt(cacheSampleSize, len(pairs))
	if sample == 0 {
		return nil
	}

	logger.Get().Info(ctx, "verifying cache behavior", logger.Int("sample", sample))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/score"

	for _, pair := range pairs[:sample] {
		resp, err := client.Post(ctx, url, pair)
		if err != nil {
			return fmt.Errorf("cache verification request failed: %w", err)
		}

		body, err := readResponseBody(resp)
		if err != nil {
			return fmt.Errorf("cache verification read failed: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			stats.CacheMisses++
			continue
		}

		var result types.ScoreResponse
		if err := unmarshalJSON(body, &result); err != nil {
			return fmt.Errorf("cache verification decode failed: %w", err)
		}

		if result.Cached {
			stats.CacheHits++
		} else {
			stats.CacheMisses++
		}
	}

	logger.Get().Info(ctx, "cache verification done",
		logger.Int("hits", stats.CacheHits),
		logger.Int("misses", stats.CacheMisses))

	return nil
}

// savePairsToFile saves the generated pairs to a JSON file.
func savePairsToFile(ctx context.Context, config *Config, pairs []types.ScoreRequest) error {
	if len(pairs) == 0 {
		return fmt.Errorf("no pairs to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_pairs_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, pair := range pairs {
		jsonData, err := marshalJSON(pair)
		if err != nil {
			return fmt.Errorf("failed to marshal pair %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write pair %d: %w", i, err)
		}

		if i < len(pairs)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "pairs saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, pairsPerSecond float64

	if stats.PairsSubmitted > 0 {
		successRate = float64(stats.PairsSuccessful) / float64(stats.PairsSubmitted) * percentageMultiplier
	}

	if stats.Duration > 0 {
		pairsPerSecond = float64(stats.PairsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("pairsGenerated", stats.PairsGenerated),
		logger.Int("pairsSubmitted", stats.PairsSubmitted),
		logger.Int("pairsSuccessful", stats.PairsSuccessful),
		logger.Int("pairsFailed", stats.PairsFailed),
		logger.Int("cacheHits", stats.CacheHits),
		logger.Int("cacheMisses", stats.CacheMisses),
		logger.Int("verifyFailures", stats.VerifyFailures),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("pairsPerSecond", pairsPerSecond))
}
