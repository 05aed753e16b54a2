// Package model contains domain models passed between layers.
package model

// RawProfile is the best-effort attribute set supplied by the extractor.
// Every field is optional; normalization applies documented defaults and
// never fails.
type RawProfile struct {
	ID          string     `json:"id"`
	Headline    string     `json:"headline"`
	Location    string     `json:"location"`
	Skills      []string   `json:"skills"`
	Experience  []Position `json:"experience"`
	Connections int        `json:"connections"`
}

// Position is a single past-position record. Only the duration string is
// consumed by the scoring core, e.g. "3 yrs 4 mos".
type Position struct {
	Duration string `json:"duration"`
}

// Seniority is the coarse career tier derived during normalization.
type Seniority int

// Seniority tiers, ordered from junior to executive.
const (
	SeniorityEntry Seniority = iota
	SeniorityMid
	SenioritySenior
	SeniorityExecutive
)

// String returns the canonical lowercase tier name.
func (s Seniority) String() string {
	switch s {
	case SeniorityEntry:
		return "entry"
	case SeniorityMid:
		return "mid"
	case SenioritySenior:
		return "senior"
	case SeniorityExecutive:
		return "executive"
	default:
		return "mid"
	}
}

// Distance returns the absolute tier distance between two seniorities.
func (s Seniority) Distance(other Seniority) int {
	d := int(s) - int(other)
	if d < 0 {
		d = -d
	}
	return d
}

// NormalizedProfile is the canonical attribute set the scoring engine
// understands. Immutable once produced; discarded after the request
// completes.
type NormalizedProfile struct {
	ID              string    `json:"id"`
	Skills          []string  `json:"skills"` // case-folded, deduplicated, sorted
	Industry        string    `json:"industry"`
	Location        string    `json:"location"`
	Seniority       Seniority `json:"seniority"`
	ExperienceYears int       `json:"experience_years"`
	Headline        string    `json:"headline"`
	Connections     int       `json:"connections"`
}
