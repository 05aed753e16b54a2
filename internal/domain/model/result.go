package model

// Recognized factor names. The FeatureVector carries exactly this set.
const (
	FactorSkillMatch           = "skill_match"
	FactorSkillComplementarity = "skill_complementarity"
	FactorCareerAlignment      = "career_alignment"
	FactorIndustryMatch        = "industry_match"
	FactorGeographicScore      = "geographic_score"
	FactorSeniorityMatch       = "seniority_match"
	FactorNetworkValueAToB     = "network_value_a_to_b"
	FactorNetworkValueBToA     = "network_value_b_to_a"

	// Derived aggregates, pure functions of the base factors.
	FactorNetworkValueAvg  = "network_value_avg"
	FactorNetworkValueDiff = "network_value_diff"
	FactorSkillTotal       = "skill_total"
	FactorSkillBalance     = "skill_balance"
	FactorExpGapSquared    = "exp_gap_squared"
	FactorIsMentorshipGap  = "is_mentorship_gap"
	FactorIsPeer           = "is_peer"
	FactorSkillXNetwork    = "skill_x_network"
	FactorCareerXIndustry  = "career_x_industry"
)

// FactorNames lists every recognized factor in presentation order.
var FactorNames = []string{
	FactorSkillMatch,
	FactorSkillComplementarity,
	FactorCareerAlignment,
	FactorIndustryMatch,
	FactorGeographicScore,
	FactorSeniorityMatch,
	FactorNetworkValueAToB,
	FactorNetworkValueBToA,
	FactorNetworkValueAvg,
	FactorNetworkValueDiff,
	FactorSkillTotal,
	FactorSkillBalance,
	FactorExpGapSquared,
	FactorIsMentorshipGap,
	FactorIsPeer,
	FactorSkillXNetwork,
	FactorCareerXIndustry,
}

// FactorScore is a named score in [0,100] plus an optional textual reason.
type FactorScore struct {
	Value  float64 `json:"value"`
	Reason string  `json:"reason,omitempty"`
}

// FeatureVector maps factor names to their scores for one ordered profile
// pair. Built once per request; treated as immutable afterwards.
type FeatureVector map[string]FactorScore

// Value returns the value of the named factor, or 0 if absent.
func (v FeatureVector) Value(name string) float64 {
	return v[name].Value
}

// Clone returns a deep copy of the vector.
func (v FeatureVector) Clone() FeatureVector {
	out := make(FeatureVector, len(v))
	for k, fs := range v {
		out[k] = fs
	}
	return out
}

// Tier is the discrete recommendation band a final score falls into.
type Tier string

// Recommendation tiers, ordered. Boundaries are inclusive at the lower end:
// [0,40) skip, [40,60) consider, [60,80) connect, [80,100] strongly connect.
const (
	TierSkip            Tier = "skip"
	TierConsider        Tier = "consider"
	TierConnect         Tier = "connect"
	TierStronglyConnect Tier = "strongly connect"
)

// AffinityKind classifies the role-family relationship of an ordered pair.
type AffinityKind string

// Affinity kinds.
const (
	AffinityNone           AffinityKind = "none"
	AffinitySameFamily     AffinityKind = "same_family"
	AffinityAdjacentFamily AffinityKind = "adjacent_family"
	AffinityRecruiter      AffinityKind = "recruiter"
)

// RoleAffinity annotates a ScoreResult with the role-family relationship,
// its bonus and a human-readable reason. It is attached to the result
// rather than blended into the FeatureVector so callers can surface or
// omit it.
type RoleAffinity struct {
	Kind   AffinityKind `json:"kind"`
	Bonus  float64      `json:"bonus"`
	Reason string       `json:"reason"`
}

// ScoreResult is the complete outcome of scoring one ordered profile pair.
type ScoreResult struct {
	Score          float64       `json:"score"`
	Tier           Tier          `json:"tier"`
	Explanation    []string      `json:"explanation"`
	Features       FeatureVector `json:"features"`
	RoleAffinity   *RoleAffinity `json:"role_affinity,omitempty"`
	Recommendation string        `json:"recommendation,omitempty"`
	WeightsVersion string        `json:"weights_version"`
}
