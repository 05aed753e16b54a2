// Package normalize turns best-effort raw profiles into the canonical form
// the scoring engine understands. Normalization is total: any raw profile,
// including the zero value, yields a usable normalized profile.
package normalize

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rapporthq/rapport/internal/domain/model"
	"github.com/rapporthq/rapport/internal/domain/taxonomy"
)

// Defaults applied when raw fields are missing or unusable.
const (
	minExperienceYears     = 1
	yearsPerPosition       = 2
	defaultConnectionCount = 0
)

// Keyword tiers for seniority inference, checked in order. Executive
// markers win over senior markers when both appear.
var (
	executiveMarkers = []string{
		"ceo", "cto", "cfo", "coo", "chief", "vp", "vice president",
		"director", "head of", "founder", "president",
	}
	seniorMarkers = []string{
		"senior", "sr.", "sr ", "lead", "staff", "principal", "manager",
	}
	entryMarkers = []string{
		"junior", "jr.", "jr ", "intern", "associate", "graduate",
		"entry level",
	}
)

// durationPattern matches the "N yrs" / "N mos" fragments of position
// duration strings such as "3 yrs 4 mos".
var durationPattern = regexp.MustCompile(`(\d+)\s*(yrs?|years?|mos?|months?)`)

// Normalizer converts raw profiles using taxonomy lookup tables.
type Normalizer struct {
	tax *taxonomy.Taxonomy
}

// New creates a Normalizer backed by the given taxonomy.
func New(tax *taxonomy.Taxonomy) *Normalizer {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Normalizer{tax: tax}
}

// Normalize converts one raw profile. It never fails; absent fields fall
// back to documented defaults.
func (n *Normalizer) Normalize(raw model.RawProfile) model.NormalizedProfile {
	headline := strings.TrimSpace(raw.Headline)
	years := n.experienceYears(raw.Experience)

	connections := raw.Connections
	if connections < 0 {
		connections = defaultConnectionCount
	}

	return model.NormalizedProfile{
		ID:              strings.TrimSpace(raw.ID),
		Skills:          CanonicalSkills(raw.Skills),
		Industry:        n.tax.IndustryForHeadline(headline),
		Location:        n.tax.NormalizeLocation(raw.Location),
		Seniority:       n.seniority(headline, years),
		ExperienceYears: years,
		Headline:        headline,
		Connections:     connections,
	}
}

// CanonicalSkills case-folds, trims, deduplicates and sorts a skill list.
func CanonicalSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		folded := strings.ToLower(strings.TrimSpace(s))
		if folded == "" {
			continue
		}
		if _, ok := seen[folded]; ok {
			continue
		}
		seen[folded] = struct{}{}
		out = append(out, folded)
	}
	sort.Strings(out)
	return out
}

// seniority infers the coarse career tier, preferring headline keywords
// over experience-year thresholds.
func (n *Normalizer) seniority(headline string, years int) model.Seniority {
	text := strings.ToLower(headline)
	switch {
	case hasMarker(text, executiveMarkers):
		return model.SeniorityExecutive
	case hasMarker(text, seniorMarkers):
		return model.SenioritySenior
	case hasMarker(text, entryMarkers):
		return model.SeniorityEntry
	}

	switch {
	case years <= 2:
		return model.SeniorityEntry
	case years <= 5:
		return model.SeniorityMid
	case years <= 10:
		return model.SenioritySenior
	default:
		return model.SeniorityExecutive
	}
}

// experienceYears sums parsed position durations, falling back to two
// years per position when nothing parses. The result is at least one.
func (n *Normalizer) experienceYears(positions []model.Position) int {
	months := 0
	parsed := false
	for _, p := range positions {
		for _, m := range durationPattern.FindAllStringSubmatch(strings.ToLower(p.Duration), -1) {
			v, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			parsed = true
			if strings.HasPrefix(m[2], "y") {
				months += v * 12
			} else {
				months += v
			}
		}
	}

	years := months / 12
	if !parsed {
		years = len(positions) * yearsPerPosition
	}
	if years < minExperienceYears {
		years = minExperienceYears
	}
	return years
}

func hasMarker(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
