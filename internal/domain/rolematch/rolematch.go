// Package rolematch detects role families from headlines and scores the
// career-path affinity of an ordered (viewer, target) pair.
package rolematch

import (
	"fmt"
	"strings"

	"github.com/rapporthq/rapport/internal/domain/model"
	"github.com/rapporthq/rapport/internal/domain/taxonomy"
)

// Bonus amounts per relationship.
const (
	bonusSameFamily       = 30.0
	bonusMentorship       = 10.0
	bonusPeer             = 5.0
	bonusAdjacentFamily   = 20.0
	bonusAdjacentSenior   = 5.0
	bonusTechRecruiter    = 25.0
	bonusGeneralRecruiter = 10.0
)

// Synergy component values fed to the aggregator's role-synergy weight.
const (
	synergySameFamily     = 100.0
	synergyAdjacentFamily = 70.0
	synergyRecruiter      = 60.0
	synergyNone           = 40.0
)

// techKeywords mark a recruiting headline as technology focused.
var techKeywords = []string{
	"tech", "engineer", "engineering", "software", "developer", "data",
}

// Detection is the outcome of matching one headline against the family
// tables.
type Detection struct {
	Family string
	Senior bool
	Found  bool
}

// Classifier matches headlines against the role-family tables.
type Classifier struct {
	tax *taxonomy.Taxonomy
}

// New creates a Classifier backed by the given taxonomy.
func New(tax *taxonomy.Taxonomy) *Classifier {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Classifier{tax: tax}
}

// Detect matches a headline against the family keyword tables. The first
// matching family wins; the seniority marker is recorded independently.
func (c *Classifier) Detect(headline string) Detection {
	fam, ok := c.tax.FamilyForHeadline(headline)
	if !ok {
		return Detection{}
	}
	return Detection{
		Family: fam.Name,
		Senior: fam.HasSeniorityMarker(headline),
		Found:  true,
	}
}

// Affinity evaluates the bonus rule for the ordered pair. The result's
// reason is empty only when no family is detectable on either side.
func (c *Classifier) Affinity(viewer, target model.NormalizedProfile) model.RoleAffinity {
	v := c.Detect(viewer.Headline)
	t := c.Detect(target.Headline)

	if t.Found && t.Family == taxonomy.RecruitingFamily && v.Family != taxonomy.RecruitingFamily {
		if mentionsTech(target.Headline) {
			return model.RoleAffinity{
				Kind:   model.AffinityRecruiter,
				Bonus:  bonusTechRecruiter,
				Reason: "target is a technical recruiter",
			}
		}
		return model.RoleAffinity{
			Kind:   model.AffinityRecruiter,
			Bonus:  bonusGeneralRecruiter,
			Reason: "target is a recruiter",
		}
	}

	if !v.Found || !t.Found {
		return model.RoleAffinity{Kind: model.AffinityNone}
	}

	if v.Family == t.Family {
		bonus := bonusSameFamily
		reason := fmt.Sprintf("both in the %s family", v.Family)
		switch {
		case t.Senior && !v.Senior:
			bonus += bonusMentorship
			reason += ", target more senior"
		case t.Senior == v.Senior:
			bonus += bonusPeer
			reason += ", matched seniority"
		}
		return model.RoleAffinity{Kind: model.AffinitySameFamily, Bonus: bonus, Reason: reason}
	}

	if famV, ok := c.familyByName(v.Family); ok && (famV.IsAdjacent(t.Family) || c.adjacentReverse(t.Family, v.Family)) {
		bonus := bonusAdjacentFamily
		reason := fmt.Sprintf("%s and %s are adjacent families", v.Family, t.Family)
		if t.Senior {
			bonus += bonusAdjacentSenior
			reason += ", target senior"
		}
		return model.RoleAffinity{Kind: model.AffinityAdjacentFamily, Bonus: bonus, Reason: reason}
	}

	return model.RoleAffinity{Kind: model.AffinityNone}
}

// Synergy maps an affinity kind to the component score used under the
// role-synergy weight.
func Synergy(kind model.AffinityKind) float64 {
	switch kind {
	case model.AffinitySameFamily:
		return synergySameFamily
	case model.AffinityAdjacentFamily:
		return synergyAdjacentFamily
	case model.AffinityRecruiter:
		return synergyRecruiter
	default:
		return synergyNone
	}
}

func (c *Classifier) familyByName(name string) (taxonomy.RoleFamily, bool) {
	for _, fam := range c.tax.Families {
		if fam.Name == name {
			return fam, true
		}
	}
	return taxonomy.RoleFamily{}, false
}

func (c *Classifier) adjacentReverse(family, other string) bool {
	fam, ok := c.familyByName(family)
	return ok && fam.IsAdjacent(other)
}

func mentionsTech(headline string) bool {
	text := strings.ToLower(headline)
	for _, kw := range techKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
