// Package taxonomy holds the versioned lookup tables that drive
// normalization and scoring: industry keyword sets and adjacency, metro and
// country location groups, role families with seniority markers, and
// job-title skill templates.
//
// The tables ship with embedded defaults and can be replaced wholesale from
// a YAML file so scoring behavior can be audited and evolved independently
// of code.
package taxonomy

import (
	"context"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// UnknownLocation is the normalized location for missing input.
const UnknownLocation = "Unknown"

// OtherIndustry is the industry fallback when no keyword matches.
const OtherIndustry = "Other"

// RecruitingFamily is the role family that triggers the recruiter special
// case in the affinity classifier.
const RecruitingFamily = "recruiting"

// Industry is a named industry with the headline keywords that select it.
// Order within Taxonomy.Industries matters: the first match wins.
type Industry struct {
	Name     string   `koanf:"name" json:"name"`
	Keywords []string `koanf:"keywords" json:"keywords"`
}

// LocationGroup is a canonical location name plus its recognized aliases.
type LocationGroup struct {
	Name    string   `koanf:"name" json:"name"`
	Aliases []string `koanf:"aliases" json:"aliases"`
}

// RoleFamily groups job titles that share career-path relevance.
type RoleFamily struct {
	Name             string   `koanf:"name" json:"name"`
	Keywords         []string `koanf:"keywords" json:"keywords"`
	SeniorityMarkers []string `koanf:"seniority_markers" json:"seniority_markers"`
	Adjacent         []string `koanf:"adjacent" json:"adjacent"`
}

// JobTemplate maps a job-title pattern to the skills relevant for that job.
type JobTemplate struct {
	Title    string   `koanf:"title" json:"title"`
	Keywords []string `koanf:"keywords" json:"keywords"`
	Skills   []string `koanf:"skills" json:"skills"`
}

// Taxonomy is the complete, versioned lookup data set.
type Taxonomy struct {
	Version           string              `koanf:"version" json:"version"`
	Industries        []Industry          `koanf:"industries" json:"industries"`
	IndustryAdjacency map[string][]string `koanf:"industry_adjacency" json:"industry_adjacency"`
	Metros            []LocationGroup     `koanf:"metros" json:"metros"`
	Countries         []LocationGroup     `koanf:"countries" json:"countries"`
	RemoteHubs        []string            `koanf:"remote_hubs" json:"remote_hubs"`
	Families          []RoleFamily        `koanf:"role_families" json:"role_families"`
	Templates         []JobTemplate       `koanf:"job_templates" json:"job_templates"`
}

// Load builds a Taxonomy from defaults overlaid with the YAML file at path.
// An empty path returns the defaults unchanged.
func Load(_ context.Context, path string) (*Taxonomy, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadTaxonomy, err)
	}
	if err := k.UnmarshalWithConf("", t, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadTaxonomy, err)
	}
	if t.Version == "" {
		return nil, fmt.Errorf("%w: version must not be empty", ErrInvalidTaxonomy)
	}
	return t, nil
}

// IndustryForHeadline scans the headline for industry keywords and returns
// the first matching industry name, or OtherIndustry.
func (t *Taxonomy) IndustryForHeadline(headline string) string {
	text := strings.ToLower(headline)
	for _, ind := range t.Industries {
		if containsAny(text, ind.Keywords) {
			return ind.Name
		}
	}
	return OtherIndustry
}

// IndustriesAdjacent reports whether two distinct industries appear in the
// adjacency table in either direction.
func (t *Taxonomy) IndustriesAdjacent(a, b string) bool {
	if a == b {
		return false
	}
	for _, adj := range t.IndustryAdjacency[strings.ToLower(a)] {
		if strings.EqualFold(adj, b) {
			return true
		}
	}
	for _, adj := range t.IndustryAdjacency[strings.ToLower(b)] {
		if strings.EqualFold(adj, a) {
			return true
		}
	}
	return false
}

// NormalizeLocation reduces a raw location string to a metro name, then a
// country name, then the trimmed raw string. Empty input yields
// UnknownLocation.
func (t *Taxonomy) NormalizeLocation(raw string) string {
	loc := strings.TrimSpace(raw)
	if loc == "" {
		return UnknownLocation
	}
	if metro, ok := t.MetroGroup(loc); ok {
		return metro
	}
	if country, ok := t.CountryGroup(loc); ok {
		return country
	}
	return loc
}

// MetroGroup returns the metro-area group a location belongs to.
func (t *Taxonomy) MetroGroup(loc string) (string, bool) {
	return groupFor(loc, t.Metros)
}

// CountryGroup returns the country group a location belongs to.
func (t *Taxonomy) CountryGroup(loc string) (string, bool) {
	return groupFor(loc, t.Countries)
}

// IsRemoteHub reports whether a normalized location is a recognized
// remote-friendly hub.
func (t *Taxonomy) IsRemoteHub(loc string) bool {
	lower := strings.ToLower(loc)
	if strings.Contains(lower, "remote") {
		return true
	}
	for _, hub := range t.RemoteHubs {
		if strings.EqualFold(hub, loc) {
			return true
		}
	}
	return false
}

// FamilyForHeadline returns the first role family whose keywords match the
// headline. Detection order follows the table order.
func (t *Taxonomy) FamilyForHeadline(headline string) (RoleFamily, bool) {
	text := strings.ToLower(headline)
	for _, fam := range t.Families {
		if containsAny(text, fam.Keywords) {
			return fam, true
		}
	}
	return RoleFamily{}, false
}

// HasSeniorityMarker reports whether the headline carries one of the
// family's seniority markers.
func (f RoleFamily) HasSeniorityMarker(headline string) bool {
	return containsAny(strings.ToLower(headline), f.SeniorityMarkers)
}

// IsAdjacent reports whether other is listed as an adjacent family.
func (f RoleFamily) IsAdjacent(other string) bool {
	for _, adj := range f.Adjacent {
		if strings.EqualFold(adj, other) {
			return true
		}
	}
	return false
}

// TemplateForHeadline returns the first job template whose title keywords
// match the headline.
func (t *Taxonomy) TemplateForHeadline(headline string) (JobTemplate, bool) {
	text := strings.ToLower(headline)
	for _, tpl := range t.Templates {
		if containsAny(text, tpl.Keywords) {
			return tpl, true
		}
	}
	return JobTemplate{}, false
}

// groupFor matches a location against group names and aliases.
func groupFor(loc string, groups []LocationGroup) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(loc))
	if lower == "" {
		return "", false
	}
	for _, g := range groups {
		if strings.EqualFold(g.Name, loc) {
			return g.Name, true
		}
		if containsAny(lower, g.Aliases) {
			return g.Name, true
		}
	}
	return "", false
}

// containsAny reports whether text contains any of the lowercase keywords.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
