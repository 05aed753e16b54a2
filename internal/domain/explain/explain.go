// Package explain renders the top contributing factors of a score as
// ordered, human-readable statements.
package explain

import (
	"fmt"
	"sort"

	"github.com/rapporthq/rapport/internal/domain/model"
	"github.com/rapporthq/rapport/internal/domain/scoring"
)

// maxStatements bounds how many factor statements are rendered. The
// role-affinity reason rides along separately when present.
const maxStatements = 3

// factorComponents ties each explainable factor to the weight component
// that ranks it.
var factorComponents = []struct {
	factor    string
	component string
	label     string
}{
	{model.FactorCareerAlignment, scoring.ComponentMentorship, "career alignment"},
	{model.FactorNetworkValueAvg, scoring.ComponentNetwork, "network reach"},
	{model.FactorSkillComplementarity, scoring.ComponentSkillLearning, "skill complementarity"},
	{model.FactorSeniorityMatch, scoring.ComponentCareerStage, "seniority fit"},
	{model.FactorIndustryMatch, scoring.ComponentIndustry, "industry match"},
	{model.FactorGeographicScore, scoring.ComponentGeography, "geographic proximity"},
}

// Build selects the highest-weighted non-zero contributing factors and
// renders each as one statement. The role-affinity reason is always
// included when present, regardless of rank.
func Build(v model.FeatureVector, weights scoring.Weights, affinity model.RoleAffinity) []string {
	type ranked struct {
		statement    string
		contribution float64
	}

	candidates := make([]ranked, 0, len(factorComponents))
	for _, fc := range factorComponents {
		value := v.Value(fc.factor)
		contribution := weights[fc.component] * value
		if contribution <= 0 {
			continue
		}
		statement := fmt.Sprintf("%s scored %.0f", fc.label, value)
		if reason := v[fc.factor].Reason; reason != "" {
			statement += fmt.Sprintf(" (%s)", reason)
		}
		candidates = append(candidates, ranked{statement: statement, contribution: contribution})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].contribution > candidates[j].contribution
	})
	if len(candidates) > maxStatements {
		candidates = candidates[:maxStatements]
	}

	out := make([]string, 0, maxStatements+1)
	for _, c := range candidates {
		out = append(out, c.statement)
	}
	if affinity.Reason != "" {
		out = append(out, fmt.Sprintf("role affinity: %s (+%.0f)", affinity.Reason, affinity.Bonus))
	}
	return out
}
