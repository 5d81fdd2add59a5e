package tissue

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"scartix/internal/calc/scaffold"
)

const (
	StatusHighlySuitable = "Highly Suitable"
	StatusSuitable       = "Suitable"
	StatusNotRecommended = "Not Recommended"

	HighlySuitableThreshold = 0.8
	// SuitableThresholdDetail applies to a single-tissue assessment.
	SuitableThresholdDetail = 0.5
	// SuitableThresholdSummary applies to the side-by-side comparison of all tissues.
	SuitableThresholdSummary = 0.6

	criticalWeight = 2.0
	normalWeight   = 1.0
	penaltyFactor  = 0.5
)

// mechanical and transport properties scored against a profile's min/optimal
var scoredProperties = []scaffold.Property{
	scaffold.Stress, scaffold.Strain, scaffold.FlowRate, scaffold.ShearStress,
}

// Score rates how well bundle b satisfies profile p. The returned map holds
// the per-property scores; the overall score is their critical-weighted mean,
// halved when strength or migration falls below the usable floor.
func Score(b scaffold.Bundle, p Profile) (float64, map[scaffold.Property]float64) {
	scores := make(map[scaffold.Property]float64, len(scoredProperties)+2)
	for _, prop := range scoredProperties {
		req, ok := p.Requirements[prop]
		if !ok {
			continue
		}
		v, ok := b.Value(prop)
		if !ok {
			continue
		}
		scores[prop] = propertyScore(v, req)
	}
	scores[scaffold.MechanicalStrength] = strengthScore(b.MechanicalStrength)
	scores[scaffold.CellMigration] = migrationScore(b.CellMigration)

	final := Aggregate(scores, CriticalFactors(b, p))
	if penalized(b) {
		final *= penaltyFactor
	}
	return final, scores
}

// Aggregate is the weighted mean of scores with critical properties counted
// twice. With no critical property among scores it is the plain mean.
// Properties are taken in a fixed order so results are reproducible.
func Aggregate(scores map[scaffold.Property]float64, critical map[scaffold.Property]bool) float64 {
	values := make([]float64, 0, len(scores))
	weights := make([]float64, 0, len(scores))
	resolved := false
	for _, prop := range scaffold.Properties {
		s, ok := scores[prop]
		if !ok {
			continue
		}
		w := normalWeight
		if critical[prop] {
			w = criticalWeight
			resolved = true
		}
		values = append(values, s)
		weights = append(weights, w)
	}
	if len(values) == 0 {
		return 0
	}
	if !resolved {
		return stat.Mean(values, nil)
	}
	return stat.Mean(values, weights)
}

func penalized(b scaffold.Bundle) bool {
	return b.MechanicalStrength < 40 || b.CellMigration < 45
}

// CriticalFactors returns the profile's critical properties plus strength and
// migration when the bundle performs well on them. The profile is not modified.
func CriticalFactors(b scaffold.Bundle, p Profile) map[scaffold.Property]bool {
	set := make(map[scaffold.Property]bool, len(p.CriticalFactors)+2)
	for _, f := range p.CriticalFactors {
		set[f] = true
	}
	if b.MechanicalStrength >= 70 {
		set[scaffold.MechanicalStrength] = true
	}
	if b.CellMigration >= 65 {
		set[scaffold.CellMigration] = true
	}
	return set
}

func propertyScore(v float64, req Requirement) float64 {
	switch {
	case v >= req.Optimal:
		return 1.0
	case v >= req.Min:
		return (v-req.Min)/(req.Optimal-req.Min)*0.5 + 0.5
	case req.Min <= 0:
		return 0
	default:
		s := v / req.Min * 0.5
		if s < 0 {
			return 0
		}
		return s
	}
}

func strengthScore(v float64) float64 {
	switch {
	case v >= 80:
		return 1.0
	case v >= 60:
		return 0.75
	case v >= 40:
		return 0.5
	default:
		return 0.25
	}
}

func migrationScore(v float64) float64 {
	switch {
	case v >= 75:
		return 1.0
	case v >= 60:
		return 0.75
	case v >= 45:
		return 0.5
	default:
		return 0.25
	}
}

// Status buckets a compatibility score. Scores from suitable up to 0.8 are "Suitable".
func Status(score, suitable float64) string {
	switch {
	case score >= HighlySuitableThreshold:
		return StatusHighlySuitable
	case score >= suitable:
		return StatusSuitable
	default:
		return StatusNotRecommended
	}
}

// Assessment is the scored outcome of one bundle against one tissue.
type Assessment struct {
	Tissue            string                        `json:"tissue"`
	Description       string                        `json:"description"`
	Score             float64                       `json:"score"`
	PropertyScores    map[scaffold.Property]float64 `json:"property_scores"`
	Status            string                        `json:"status"`
	CriticalFactors   []scaffold.Property           `json:"critical_factors"`
	Penalized         bool                          `json:"penalized"`
	MeetsStrength     bool                          `json:"meets_strength_threshold"`
	MeetsMigration    bool                          `json:"meets_migration_threshold"`
	SuitableThreshold float64                       `json:"suitable_threshold"`
}

// Assess scores b against the named tissue. A non-positive suitable threshold
// selects SuitableThresholdDetail.
func Assess(b scaffold.Bundle, name string, suitable float64) (Assessment, error) {
	p, err := Lookup(name)
	if err != nil {
		return Assessment{}, err
	}
	return assess(b, p, orDefault(suitable, SuitableThresholdDetail)), nil
}

// AssessAll scores b against every catalog tissue, best match first. A
// non-positive suitable threshold selects SuitableThresholdSummary.
func AssessAll(b scaffold.Bundle, suitable float64) []Assessment {
	suitable = orDefault(suitable, SuitableThresholdSummary)
	out := make([]Assessment, 0, len(catalog))
	for _, p := range Catalog() {
		out = append(out, assess(b, p, suitable))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func assess(b scaffold.Bundle, p Profile, suitable float64) Assessment {
	score, scores := Score(b, p)
	critical := CriticalFactors(b, p)
	factors := make([]scaffold.Property, 0, len(critical))
	for _, prop := range scaffold.Properties {
		if critical[prop] {
			factors = append(factors, prop)
		}
	}
	return Assessment{
		Tissue:            p.Name,
		Description:       p.Description,
		Score:             score,
		PropertyScores:    scores,
		Status:            Status(score, suitable),
		CriticalFactors:   factors,
		Penalized:         penalized(b),
		MeetsStrength:     b.MechanicalStrength >= p.MechanicalStrengthThreshold,
		MeetsMigration:    b.CellMigration >= p.CellMigrationThreshold,
		SuitableThreshold: suitable,
	}
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
