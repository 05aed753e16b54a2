// Package scoring combines factor scores into the final 0-100 score and
// recommendation tier under a fixed, versioned weighting scheme.
package scoring

import (
	"context"
	"math"

	"github.com/rapporthq/rapport/internal/domain/model"
	"github.com/rapporthq/rapport/internal/domain/rolematch"
	"github.com/rapporthq/rapport/pkg/logger"
	"github.com/rapporthq/rapport/pkg/metrics"
)

// Weighted component names.
const (
	ComponentMentorship    = "mentorship"
	ComponentNetwork       = "network"
	ComponentSkillLearning = "skill_learning"
	ComponentRoleSynergy   = "role_synergy"
	ComponentGoalAlignment = "goal_alignment"
	ComponentAlumni        = "alumni_affinity"
	ComponentCareerStage   = "career_stage"
	ComponentIndustry      = "industry"
	ComponentGeography     = "geography"
	ComponentEngagement    = "engagement"
	ComponentRisingStar    = "rising_star"
)

// DefaultWeightsVersion identifies the embedded production weight table.
const DefaultWeightsVersion = "v3"

// Tier thresholds, inclusive at the lower end.
const (
	tierConsiderFloor = 40.0
	tierConnectFloor  = 60.0
	tierStrongFloor   = 80.0
)

// Weights maps component names to their share of the final score.
type Weights map[string]float64

// DefaultWeights returns the production weight table. The values sum to 1.
func DefaultWeights() Weights {
	return Weights{
		ComponentMentorship:    0.20,
		ComponentNetwork:       0.16,
		ComponentSkillLearning: 0.16,
		ComponentRoleSynergy:   0.12,
		ComponentGoalAlignment: 0.05,
		ComponentAlumni:        0.09,
		ComponentCareerStage:   0.09,
		ComponentIndustry:      0.07,
		ComponentGeography:     0.03,
		ComponentEngagement:    0.02,
		ComponentRisingStar:    0.01,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	total := 0.0
	for _, v := range w {
		total += v
	}
	return total
}

// Signals are externally supplied component scores for dimensions the
// profile pair itself cannot answer. Zero values fall back to neutral
// defaults at scoring time.
type Signals struct {
	GoalAlignment float64
	Alumni        float64
	Engagement    float64
	RisingStar    float64

	// RedFlagScore in [0,100] scales the final score down. Zero means no
	// risk signal was supplied.
	RedFlagScore float64
}

// Neutral defaults for absent signals.
const (
	defaultGoalAlignment = 50.0
	defaultAlumni        = 40.0
	defaultEngagement    = 50.0
	defaultRisingStar    = 30.0
)

// Aggregator computes final scores under one weight configuration.
type Aggregator struct {
	weights Weights
	version string
	log     logger.Logger
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithWeights replaces the default weight table.
func WithWeights(w Weights) Option {
	return func(a *Aggregator) {
		if len(w) > 0 {
			a.weights = w
		}
	}
}

// WithWeightsVersion tags results with a weight-table version.
func WithWeightsVersion(version string) Option {
	return func(a *Aggregator) {
		if version != "" {
			a.version = version
		}
	}
}

// WithLogger sets the logger used for clamp diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(a *Aggregator) {
		if log != nil {
			a.log = log
		}
	}
}

// New creates an Aggregator with the production weights.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		weights: DefaultWeights(),
		version: DefaultWeightsVersion,
		log:     logger.Named("scoring"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WeightsVersion returns the configured weight-table version.
func (a *Aggregator) WeightsVersion() string {
	return a.version
}

// Weights returns the configured weight table.
func (a *Aggregator) Weights() Weights {
	return a.weights
}

// Score computes the weighted final score and tier for one factor vector.
// The result is always in [0,100]; out-of-range components are clamped and
// logged, never surfaced as failures.
func (a *Aggregator) Score(v model.FeatureVector, affinity model.RoleAffinity, sig Signals) (float64, model.Tier) {
	sum := 0.0
	for name, weight := range a.weights {
		sum += weight * a.component(name, v, affinity, sig)
	}

	score := math.Round(sum*RiskMultiplier(sig.RedFlagScore)*10) / 10
	if score < 0 || score > 100 {
		a.log.Warn(context.Background(), "final score out of range, clamping",
			logger.Float64("score", score))
		metrics.RecordScoreClamp()
		score = math.Min(math.Max(score, 0), 100)
	}
	return score, TierFor(score)
}

// component resolves one weighted component to its [0,100] value.
func (a *Aggregator) component(name string, v model.FeatureVector, affinity model.RoleAffinity, sig Signals) float64 {
	var value float64
	switch name {
	case ComponentMentorship:
		value = v.Value(model.FactorCareerAlignment)
	case ComponentNetwork:
		value = v.Value(model.FactorNetworkValueAvg)
	case ComponentSkillLearning:
		value = v.Value(model.FactorSkillComplementarity)
	case ComponentRoleSynergy:
		value = rolematch.Synergy(affinity.Kind)
	case ComponentGoalAlignment:
		value = orDefault(sig.GoalAlignment, defaultGoalAlignment)
	case ComponentAlumni:
		value = orDefault(sig.Alumni, defaultAlumni)
	case ComponentCareerStage:
		value = v.Value(model.FactorSeniorityMatch)
	case ComponentIndustry:
		value = v.Value(model.FactorIndustryMatch)
	case ComponentGeography:
		value = v.Value(model.FactorGeographicScore)
	case ComponentEngagement:
		value = orDefault(sig.Engagement, defaultEngagement)
	case ComponentRisingStar:
		value = orDefault(sig.RisingStar, defaultRisingStar)
	default:
		a.log.Warn(context.Background(), "unknown weighted component", logger.String("component", name))
		return 0
	}

	if value < 0 || value > 100 {
		a.log.Warn(context.Background(), "component out of range, clamping",
			logger.String("component", name),
			logger.Float64("value", value))
		metrics.RecordScoreClamp()
		value = math.Min(math.Max(value, 0), 100)
	}
	return value
}

// RiskMultiplier maps a red-flag score to the penalty multiplier.
func RiskMultiplier(redFlag float64) float64 {
	switch {
	case redFlag > 75:
		return 0.80
	case redFlag > 50:
		return 0.90
	case redFlag > 25:
		return 0.95
	default:
		return 1.0
	}
}

// TierFor maps a final score to its recommendation tier.
func TierFor(score float64) model.Tier {
	switch {
	case score >= tierStrongFloor:
		return model.TierStronglyConnect
	case score >= tierConnectFloor:
		return model.TierConnect
	case score >= tierConsiderFloor:
		return model.TierConsider
	default:
		return model.TierSkip
	}
}

func orDefault(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}
