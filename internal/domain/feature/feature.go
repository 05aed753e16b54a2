// Package feature computes the base and derived factor scores for an
// ordered pair of normalized profiles. The computation is pure and
// deterministic: identical inputs always produce an identical vector.
package feature

import (
	"fmt"
	"hash/fnv"
	"math"

	"github.com/rapporthq/rapport/internal/domain/model"
	"github.com/rapporthq/rapport/internal/domain/taxonomy"
)

// Defined defaults when a skill set carries no signal.
const (
	emptySkillMatch         = 50.0
	emptySkillComplement    = 40.0
	complementFoundation    = 10.0
	relevanceBoostPerSkill  = 5.0
	relevanceBoostDirection = 20.0
	relevanceBoostTotal     = 30.0
)

// Geographic scores, fixed per relationship tier.
const (
	geoSameLocation = 95.0
	geoSameMetro    = 88.0
	geoSameCountry  = 70.0
	geoBothHubs     = 60.0
	geoDistant      = 45.0
)

// Network value saturates at this connection count.
const networkSaturation = 50

// Engine derives factor vectors using taxonomy lookup tables.
type Engine struct {
	tax *taxonomy.Taxonomy
}

// New creates an Engine backed by the given taxonomy.
func New(tax *taxonomy.Taxonomy) *Engine {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Engine{tax: tax}
}

// Vector computes the full factor set for the ordered pair (a, b). Factors
// documented as symmetric are invariant under swapping a and b; directional
// factors follow the argument order.
func (e *Engine) Vector(a, b model.NormalizedProfile) model.FeatureVector {
	gap := a.ExperienceYears - b.ExperienceYears
	if gap < 0 {
		gap = -gap
	}

	v := model.FeatureVector{
		model.FactorSkillMatch:           e.skillMatch(a, b),
		model.FactorSkillComplementarity: e.skillComplementarity(a, b),
		model.FactorCareerAlignment:      e.careerAlignment(a, b, gap),
		model.FactorIndustryMatch:        e.industryMatch(a, b),
		model.FactorGeographicScore:      e.geographicScore(a, b),
		model.FactorSeniorityMatch:       e.seniorityMatch(a, b),
		model.FactorNetworkValueAToB:     networkValue(a.Connections),
		model.FactorNetworkValueBToA:     networkValue(b.Connections),
	}

	addDerived(v, gap)
	return v
}

// skillMatch is the Jaccard similarity of the two skill sets, scaled to
// [0,100]. An empty set on either side means insufficient signal, not zero.
func (e *Engine) skillMatch(a, b model.NormalizedProfile) model.FactorScore {
	if len(a.Skills) == 0 || len(b.Skills) == 0 {
		return model.FactorScore{Value: emptySkillMatch, Reason: "not enough skill data"}
	}
	inter, union := overlap(a.Skills, b.Skills)
	value := math.Round(float64(inter) / float64(union) * 100)
	return model.FactorScore{
		Value:  value,
		Reason: fmt.Sprintf("%d shared skills", inter),
	}
}

// skillComplementarity rewards non-overlapping skills, a moderate shared
// foundation, and skills relevant to the other side's job template.
func (e *Engine) skillComplementarity(a, b model.NormalizedProfile) model.FactorScore {
	if len(a.Skills) == 0 || len(b.Skills) == 0 {
		return model.FactorScore{Value: emptySkillComplement, Reason: "not enough skill data"}
	}

	inter, union := overlap(a.Skills, b.Skills)
	value := float64(union-inter) / float64(union) * 100

	jaccard := float64(inter) / float64(union)
	if jaccard > 0.10 && jaccard < 0.40 {
		value += complementFoundation
	}

	boost := math.Min(e.relevanceBoost(a, b), relevanceBoostDirection) +
		math.Min(e.relevanceBoost(b, a), relevanceBoostDirection)
	value += math.Min(boost, relevanceBoostTotal)

	return model.FactorScore{
		Value:  clamp(value),
		Reason: fmt.Sprintf("%d complementary skills", union-inter),
	}
}

// relevanceBoost scores how many of other's distinct skills are relevant to
// p's job template, 5 points per relevant skill.
func (e *Engine) relevanceBoost(p, other model.NormalizedProfile) float64 {
	tpl, ok := e.tax.TemplateForHeadline(p.Headline)
	if !ok {
		return 0
	}
	relevant := make(map[string]struct{}, len(tpl.Skills))
	for _, s := range tpl.Skills {
		relevant[s] = struct{}{}
	}
	own := make(map[string]struct{}, len(p.Skills))
	for _, s := range p.Skills {
		own[s] = struct{}{}
	}

	boost := 0.0
	for _, s := range other.Skills {
		if _, dup := own[s]; dup {
			continue
		}
		if _, ok := relevant[s]; ok {
			boost += relevanceBoostPerSkill
		}
	}
	return boost
}

// careerAlignment bands the absolute experience gap. A 3-7 year gap is the
// ideal mentorship distance and scores highest.
func (e *Engine) careerAlignment(a, b model.NormalizedProfile, gap int) model.FactorScore {
	var lo, hi float64
	var reason string
	switch {
	case gap >= 3 && gap <= 7:
		lo, hi, reason = 90, 100, "ideal mentorship gap"
	case gap <= 2:
		lo, hi, reason = 75, 90, "peer learning range"
	case gap <= 10:
		lo, hi, reason = 50, 70, "moderate experience gap"
	default:
		lo, hi, reason = 30, 45, "large experience gap"
	}
	return model.FactorScore{
		Value:  bandValue(a.ID, b.ID, model.FactorCareerAlignment, lo, hi),
		Reason: reason,
	}
}

// industryMatch bands exact, adjacent and unrelated industries.
func (e *Engine) industryMatch(a, b model.NormalizedProfile) model.FactorScore {
	var lo, hi float64
	var reason string
	switch {
	case a.Industry == b.Industry:
		lo, hi, reason = 90, 100, "same industry"
	case e.tax.IndustriesAdjacent(a.Industry, b.Industry):
		lo, hi, reason = 60, 80, "adjacent industries"
	default:
		lo, hi, reason = 30, 50, "unrelated industries"
	}
	return model.FactorScore{
		Value:  bandValue(a.ID, b.ID, model.FactorIndustryMatch, lo, hi),
		Reason: reason,
	}
}

// geographicScore uses fixed values per proximity tier.
func (e *Engine) geographicScore(a, b model.NormalizedProfile) model.FactorScore {
	switch {
	case a.Location == b.Location && a.Location != taxonomy.UnknownLocation:
		return model.FactorScore{Value: geoSameLocation, Reason: "same location"}
	case sameGroup(e.tax.MetroGroup, a.Location, b.Location):
		return model.FactorScore{Value: geoSameMetro, Reason: "same metro area"}
	case sameGroup(e.tax.CountryGroup, a.Location, b.Location):
		return model.FactorScore{Value: geoSameCountry, Reason: "same country"}
	case e.tax.IsRemoteHub(a.Location) && e.tax.IsRemoteHub(b.Location):
		return model.FactorScore{Value: geoBothHubs, Reason: "both in remote-friendly hubs"}
	default:
		return model.FactorScore{Value: geoDistant, Reason: "different regions"}
	}
}

// seniorityMatch is directional: a gap where the target sits above the
// viewer carries mentorship and referral value.
func (e *Engine) seniorityMatch(viewer, target model.NormalizedProfile) model.FactorScore {
	dist := viewer.Seniority.Distance(target.Seniority)
	targetAbove := target.Seniority > viewer.Seniority

	switch {
	case dist == 0:
		return model.FactorScore{Value: 85, Reason: "same seniority tier"}
	case dist == 1 && targetAbove:
		return model.FactorScore{Value: 90, Reason: "target one tier above"}
	case dist == 1:
		return model.FactorScore{Value: 65, Reason: "target one tier below"}
	case dist == 2 && targetAbove:
		return model.FactorScore{Value: 70, Reason: "target two tiers above"}
	case dist == 2:
		return model.FactorScore{Value: 50, Reason: "target two tiers below"}
	default:
		return model.FactorScore{Value: 40, Reason: "distant seniority tiers"}
	}
}

// networkValue scales a connection count, saturating at networkSaturation.
func networkValue(connections int) model.FactorScore {
	value := math.Min(float64(connections)/networkSaturation*100, 100)
	return model.FactorScore{Value: value}
}

// addDerived fills in the aggregates, all pure functions of the base
// factors and the experience gap.
func addDerived(v model.FeatureVector, gap int) {
	avg := (v.Value(model.FactorNetworkValueAToB) + v.Value(model.FactorNetworkValueBToA)) / 2
	diff := math.Abs(v.Value(model.FactorNetworkValueAToB) - v.Value(model.FactorNetworkValueBToA))
	match := v.Value(model.FactorSkillMatch)
	comp := v.Value(model.FactorSkillComplementarity)

	mentorship, peer := 0.0, 0.0
	if gap >= 3 && gap <= 7 {
		mentorship = 1
	}
	if gap <= 2 {
		peer = 1
	}

	v[model.FactorNetworkValueAvg] = model.FactorScore{Value: avg}
	v[model.FactorNetworkValueDiff] = model.FactorScore{Value: diff}
	v[model.FactorSkillTotal] = model.FactorScore{Value: clamp(match + comp)}
	v[model.FactorSkillBalance] = model.FactorScore{Value: clamp(match * comp / 100)}
	v[model.FactorExpGapSquared] = model.FactorScore{Value: clamp(float64(gap * gap))}
	v[model.FactorIsMentorshipGap] = model.FactorScore{Value: mentorship}
	v[model.FactorIsPeer] = model.FactorScore{Value: peer}
	v[model.FactorSkillXNetwork] = model.FactorScore{Value: clamp(comp * avg / 100)}
	v[model.FactorCareerXIndustry] = model.FactorScore{Value: clamp(v.Value(model.FactorCareerAlignment) * v.Value(model.FactorIndustryMatch) / 100)}
}

// bandValue places a pair deterministically inside [lo,hi]. The seed folds
// the two identifiers order-independently so banded factors stay symmetric,
// while distinct pairs spread across the band instead of pinning to one
// value.
func bandValue(idA, idB, factor string, lo, hi float64) float64 {
	first, second := idA, idB
	if second < first {
		first, second = second, first
	}
	h := fnv.New64a()
	h.Write([]byte(first))
	h.Write([]byte{'|'})
	h.Write([]byte(second))
	h.Write([]byte{'|'})
	h.Write([]byte(factor))

	span := uint64(hi-lo) + 1
	return lo + float64(h.Sum64()%span)
}

// sameGroup reports whether both locations resolve to the same group.
func sameGroup(lookup func(string) (string, bool), locA, locB string) bool {
	ga, okA := lookup(locA)
	if !okA {
		return false
	}
	gb, okB := lookup(locB)
	return okB && ga == gb
}

// overlap returns intersection and union sizes for two canonical skill
// lists.
func overlap(a, b []string) (inter, union int) {
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	union = len(set)
	for _, s := range b {
		if _, ok := set[s]; ok {
			inter++
		} else {
			union++
		}
	}
	return inter, union
}

func clamp(v float64) float64 {
	return math.Min(math.Max(v, 0), 100)
}
