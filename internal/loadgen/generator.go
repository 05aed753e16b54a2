package loadgen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/google/uuid"

	"github.com/rapporthq/rapport/internal/domain/model"
	"github.com/rapporthq/rapport/internal/domain/types"
	"github.com/rapporthq/rapport/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor  = 1000000
	connectionsDivisor  = 6
	redFlagDivisor      = 10
	skillSampleMinimum  = 2
	positionCountRange  = 4
	yearsPerPositionMax = 6
	monthsPerPosition   = 12
)

// Constants for connection count ranges.
const (
	dormantConnectionsMax   = 40
	typicalConnectionsMin   = 50
	typicalConnectionsRange = 450
	activeConnectionsMin    = 500
	activeConnectionsRange  = 1500
	powerConnectionsMin     = 2000
	powerConnectionsRange   = 8000
)

// Constants for connection profile cases.
const (
	caseDormantNetworker = 0
	casePowerNetworker   = 1
)

// archetype is a template a synthetic profile is drawn from.
type archetype struct {
	headlines []string
	skills    []string
}

// archetypes mirrors the role families the service classifies so generated
// pairs exercise every affinity branch.
var archetypes = []archetype{
	{
		headlines: []string{"Data Scientist", "Senior Data Scientist", "Staff Machine Learning Engineer", "Junior Data Analyst"},
		skills:    []string{"python", "sql", "machine learning", "statistics", "pandas", "tensorflow", "spark"},
	},
	{
		headlines: []string{"Software Engineer", "Senior Software Engineer", "Principal Backend Developer", "Junior Software Developer"},
		skills:    []string{"go", "python", "kubernetes", "docker", "postgresql", "grpc", "aws"},
	},
	{
		headlines: []string{"Product Manager", "Senior Product Manager", "Head of Product", "Associate Product Manager"},
		skills:    []string{"roadmapping", "user research", "sql", "analytics", "stakeholder management", "agile"},
	},
	{
		headlines: []string{"Product Designer", "Senior UX Designer", "Lead Visual Designer"},
		skills:    []string{"figma", "user research", "prototyping", "interaction design", "design systems"},
	},
	{
		headlines: []string{"Marketing Manager", "Senior Growth Marketer", "Director of Brand Marketing"},
		skills:    []string{"seo", "content strategy", "paid media", "analytics", "copywriting"},
	},
	{
		headlines: []string{"Financial Analyst", "Senior Investment Analyst", "VP of Finance"},
		skills:    []string{"excel", "financial modeling", "valuation", "forecasting", "sql"},
	},
	{
		headlines: []string{"Technical Recruiter", "Senior Talent Acquisition Partner", "Head of Recruiting"},
		skills:    []string{"sourcing", "interviewing", "employer branding", "ats", "negotiation"},
	},
}

// locations mixes metros, countries, remote markers and unknowns so the
// geographic factor is exercised across all of its bands.
var locations = []string{
	"San Francisco, CA",
	"Mountain View, California",
	"New York City",
	"Brooklyn, NY",
	"Austin, TX",
	"Seattle, WA",
	"London, UK",
	"Berlin, Germany",
	"Bangalore, India",
	"Toronto, Canada",
	"Remote",
	"",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomInt returns a random int in [0, max) using crypto/rand.
func getRandomInt(max int) int {
	if max <= 0 {
		return 0
	}
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// generatePairs creates the specified number of scoring requests with unique
// profile IDs.
func generatePairs(ctx context.Context, config *Config, stats *Stats) ([]types.ScoreRequest, error) {
	logger.Get().Info(ctx, "generating profile pairs", logger.Int("numPairs", config.NumPairs))

	pairs := make([]types.ScoreRequest, config.NumPairs)

	type pairResult struct {
		index int
		pair  types.ScoreRequest
		err   error
	}

	resultChan := make(chan pairResult, config.NumPairs)

	// Use worker pool for pair generation
	workerCount := minInt(config.Workers, config.NumPairs)
	pairsPerWorker := config.NumPairs / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * pairsPerWorker
		end := start + pairsPerWorker
		if worker == workerCount-1 {
			end = config.NumPairs // Last worker gets remaining pairs
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- pairResult{index: i, err: ctx.Err()}
					return
				default:
					resultChan <- pairResult{index: i, pair: generateSinglePair()}
				}
			}
		}(start, end)
	}

	// Collect results
	for i := 0; i < config.NumPairs; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during pair generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate pair %d: %w", result.index, result.err)
			}
			pairs[result.index] = result.pair
		}
	}

	stats.PairsGenerated = len(pairs)
	logger.Get().Info(ctx, "generated pairs successfully", logger.Int("count", len(pairs)))

	return pairs, nil
}

// generateSinglePair creates one scoring request with two synthetic profiles.
func generateSinglePair() types.ScoreRequest {
	req := types.ScoreRequest{
		Viewer: generateProfile(),
		Target: generateProfile(),
	}

	// A slice of pairs carries an elevated red flag score to exercise the
	// risk dampening path.
	if getRandomInt(redFlagDivisor) == 0 {
		return withRedFlag(req)
	}
	return req
}

// withRedFlag attaches a red flag score in the dampening range.
func withRedFlag(req types.ScoreRequest) types.ScoreRequest {
	req.RedFlagScore = 26 + getRandomFloat()*74
	return req
}

// generateProfile builds one synthetic raw profile from a random archetype.
func generateProfile() model.RawProfile {
	arch := archetypes[getRandomInt(len(archetypes))]

	positions := 1 + getRandomInt(positionCountRange)
	experience := make([]model.Position, positions)
	for i := range experience {
		years := getRandomInt(yearsPerPositionMax)
		months := getRandomInt(monthsPerPosition)
		experience[i] = model.Position{
			Duration: strconv.Itoa(years) + " yrs " + strconv.Itoa(months) + " mos",
		}
	}

	return model.RawProfile{
		ID:          uuid.New().String(),
		Headline:    arch.headlines[getRandomInt(len(arch.headlines))],
		Location:    locations[getRandomInt(len(locations))],
		Skills:      sampleSkills(arch.skills),
		Experience:  experience,
		Connections: generateConnections(),
	}
}

// sampleSkills picks a random non-empty subset of the archetype skill pool.
func sampleSkills(pool []string) []string {
	count := skillSampleMinimum + getRandomInt(len(pool)-skillSampleMinimum+1)
	picked := make([]string, 0, count)
	seen := make(map[int]bool, count)
	for len(picked) < count {
		idx := getRandomInt(len(pool))
		if seen[idx] {
			continue
		}
		seen[idx] = true
		picked = append(picked, pool[idx])
	}
	return picked
}

// generateConnections creates a connection count with varied distribution.
func generateConnections() int {
	switch getRandomInt(connectionsDivisor) {
	case caseDormantNetworker:
		// Dormant networkers (0 - 40) - below saturation
		return getRandomInt(dormantConnectionsMax)
	case casePowerNetworker:
		// Power networkers (2000 - 10000) - rare
		return powerConnectionsMin + getRandomInt(powerConnectionsRange)
	default:
		// Typical and active profiles split the remaining cases
		if getRandomInt(2) == 0 {
			return typicalConnectionsMin + getRandomInt(typicalConnectionsRange)
		}
		return activeConnectionsMin + getRandomInt(activeConnectionsRange)
	}
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
