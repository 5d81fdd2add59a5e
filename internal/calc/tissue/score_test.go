package tissue

import (
	"errors"
	"math"
	"testing"

	"scartix/internal/calc/scaffold"
)

func TestAggregateWeightsCriticalFactors(t *testing.T) {
	t.Parallel()

	scores := map[scaffold.Property]float64{scaffold.Stress: 1.0, scaffold.Strain: 0.5}
	got := Aggregate(scores, map[scaffold.Property]bool{scaffold.Stress: true})
	if math.Abs(got-2.5/3) > 1e-12 {
		t.Fatalf("got %v, want %v", got, 2.5/3)
	}
}

func TestAggregateFallsBackToMean(t *testing.T) {
	t.Parallel()

	scores := map[scaffold.Property]float64{scaffold.Stress: 1.0, scaffold.Strain: 0.5}
	got := Aggregate(scores, map[scaffold.Property]bool{scaffold.CellMigration: true})
	if got != 0.75 {
		t.Fatalf("got %v, want 0.75", got)
	}
	if Aggregate(map[scaffold.Property]float64{}, nil) != 0 {
		t.Fatal("empty scores should aggregate to 0")
	}
}

func TestAggregateAllCriticalEqualsPlainMean(t *testing.T) {
	t.Parallel()

	scores := map[scaffold.Property]float64{
		scaffold.Stress: 0.2, scaffold.FlowRate: 0.6, scaffold.MechanicalStrength: 1.0,
	}
	all := map[scaffold.Property]bool{}
	for prop := range scores {
		all[prop] = true
	}
	if got := Aggregate(scores, all); math.Abs(got-0.6) > 1e-12 {
		t.Fatalf("got %v, want 0.6", got)
	}
}

func TestPropertyScore(t *testing.T) {
	t.Parallel()

	req := Requirement{Min: 1.5, Optimal: 2.5}
	cases := []struct {
		v, want float64
	}{
		{3.0, 1.0},
		{2.5, 1.0},
		{2.0, 0.75},
		{1.5, 0.5},
		{0.75, 0.25},
		{0, 0},
		{-1, 0},
	}
	for _, tc := range cases {
		if got := propertyScore(tc.v, req); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("value %v: got %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestTierScores(t *testing.T) {
	t.Parallel()

	strength := map[float64]float64{80: 1, 79.9: 0.75, 60: 0.75, 40: 0.5, 39: 0.25}
	for v, want := range strength {
		if got := strengthScore(v); got != want {
			t.Fatalf("strength %v: got %v, want %v", v, got, want)
		}
	}
	migration := map[float64]float64{75: 1, 60: 0.75, 59: 0.5, 45: 0.5, 44.9: 0.25}
	for v, want := range migration {
		if got := migrationScore(v); got != want {
			t.Fatalf("migration %v: got %v, want %v", v, got, want)
		}
	}
}

func TestScoreArticularCartilageAtMidpoint(t *testing.T) {
	t.Parallel()

	b, _ := scaffold.GetValues(60)
	p, _ := Lookup(ArticularCartilage)
	score, scores := Score(b, p)

	stress := (1.946-1.5)/(2.5-1.5)*0.5 + 0.5
	want := (stress*2 + 1*2 + 1 + 1 + 0.75*2 + 0.5) / 9
	if math.Abs(score-want) > 1e-9 {
		t.Fatalf("score: got %v, want %v", score, want)
	}
	if len(scores) != 6 {
		t.Fatalf("expected 6 property scores, got %d", len(scores))
	}
	if scores[scaffold.CellMigration] != 0.5 {
		t.Fatalf("cell migration score: got %v", scores[scaffold.CellMigration])
	}
	if Status(score, SuitableThresholdDetail) != StatusHighlySuitable {
		t.Fatalf("status: got %s", Status(score, SuitableThresholdDetail))
	}
}

func TestScorePenalty(t *testing.T) {
	t.Parallel()

	b := scaffold.Bundle{Stress: 3, Strain: 9000, FlowRate: 0.6, ShearStress: 250, MechanicalStrength: 30, CellMigration: 90}
	p, _ := Lookup(ArticularCartilage)
	score, _ := Score(b, p)
	if math.Abs(score-0.425) > 1e-12 {
		t.Fatalf("got %v, want 0.425", score)
	}

	b.CellMigration = 40
	b.MechanicalStrength = 90
	a, err := Assess(b, ArticularCartilage, 0)
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if !a.Penalized {
		t.Fatal("expected penalty for low migration")
	}
}

func TestScoreDoesNotMutateProfile(t *testing.T) {
	t.Parallel()

	b, _ := scaffold.GetValues(90)
	b.MechanicalStrength = 95
	p, _ := Lookup(Meniscus)
	before := len(p.CriticalFactors)
	for i := 0; i < 5; i++ {
		Score(b, p)
	}
	if len(p.CriticalFactors) != before {
		t.Fatalf("critical factors grew from %d to %d", before, len(p.CriticalFactors))
	}
	fresh, _ := Lookup(Meniscus)
	if len(fresh.CriticalFactors) != before {
		t.Fatalf("catalog critical factors changed: %v", fresh.CriticalFactors)
	}
}

func TestCriticalFactorsAugmentation(t *testing.T) {
	t.Parallel()

	p, _ := Lookup(BloodVessel)
	set := CriticalFactors(scaffold.Bundle{MechanicalStrength: 70, CellMigration: 10}, p)
	if !set[scaffold.MechanicalStrength] || !set[scaffold.FlowRate] {
		t.Fatalf("unexpected set %v", set)
	}
	set = CriticalFactors(scaffold.Bundle{MechanicalStrength: 69, CellMigration: 65}, p)
	if set[scaffold.MechanicalStrength] || !set[scaffold.CellMigration] {
		t.Fatalf("unexpected set %v", set)
	}
}

func TestScoreStaysInUnitInterval(t *testing.T) {
	t.Parallel()

	for porosity := scaffold.MinPorosity; porosity <= scaffold.MaxPorosity; porosity++ {
		b, err := scaffold.GetValues(porosity)
		if err != nil {
			t.Fatalf("porosity %d: %v", porosity, err)
		}
		for _, p := range Catalog() {
			score, scores := Score(b, p)
			if score < 0 || score > 1 {
				t.Fatalf("porosity %d %s: score %v out of range", porosity, p.Name, score)
			}
			for prop, s := range scores {
				if s < 0 || s > 1 {
					t.Fatalf("porosity %d %s %s: %v out of range", porosity, p.Name, prop, s)
				}
			}
		}
	}
}

func TestStatusThresholds(t *testing.T) {
	t.Parallel()

	if got := Status(0.55, SuitableThresholdDetail); got != StatusSuitable {
		t.Fatalf("detail: got %s", got)
	}
	if got := Status(0.55, SuitableThresholdSummary); got != StatusNotRecommended {
		t.Fatalf("summary: got %s", got)
	}
	if got := Status(0.8, SuitableThresholdSummary); got != StatusHighlySuitable {
		t.Fatalf("0.8: got %s", got)
	}
}

func TestAssessUnknownTissue(t *testing.T) {
	t.Parallel()

	b, _ := scaffold.GetValues(50)
	if _, err := Assess(b, "liver", 0); !errors.Is(err, ErrUnknownTissue) {
		t.Fatalf("expected ErrUnknownTissue, got %v", err)
	}
}

func TestAssessAllOrderedByScore(t *testing.T) {
	t.Parallel()

	b, _ := scaffold.GetValues(75)
	all := AssessAll(b, 0)
	if len(all) != len(Names()) {
		t.Fatalf("expected %d assessments, got %d", len(Names()), len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Score > all[i-1].Score {
			t.Fatalf("not sorted at %d: %v > %v", i, all[i].Score, all[i-1].Score)
		}
	}
	if all[0].SuitableThreshold != SuitableThresholdSummary {
		t.Fatalf("default threshold: got %v", all[0].SuitableThreshold)
	}
}
