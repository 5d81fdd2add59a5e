package scaffold

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Bundle is the set of predicted property values for one porosity.
type Bundle struct {
	Porosity           int     `json:"porosity"`
	Stress             float64 `json:"stress"`
	Strain             float64 `json:"strain"`
	FlowRate           float64 `json:"flow_rate"`
	ShearStress        float64 `json:"shear_stress"`
	MechanicalStrength float64 `json:"mechanical_strength"`
	CellMigration      float64 `json:"cell_migration"`
}

// Value returns the bundle value of prop.
func (b Bundle) Value(prop Property) (float64, bool) {
	switch prop {
	case Stress:
		return b.Stress, true
	case Strain:
		return b.Strain, true
	case FlowRate:
		return b.FlowRate, true
	case ShearStress:
		return b.ShearStress, true
	case MechanicalStrength:
		return b.MechanicalStrength, true
	case CellMigration:
		return b.CellMigration, true
	}
	return 0, false
}

// GetValues predicts the property bundle at porosity using the table means.
func GetValues(porosity int) (Bundle, error) {
	return DefaultTable.Values(porosity)
}

func (t *Table) Values(porosity int) (Bundle, error) {
	if err := ValidatePorosity(porosity); err != nil {
		return Bundle{}, err
	}
	row, err := t.Lookup(porosity)
	if err != nil {
		return Bundle{}, err
	}
	flow := row[FlowRate].Mean
	shear := row[ShearStress].Mean
	return Bundle{
		Porosity:           porosity,
		Stress:             row[Stress].Mean,
		Strain:             row[Strain].Mean,
		FlowRate:           flow,
		ShearStress:        shear,
		MechanicalStrength: row[MechanicalStrength].Mean,
		CellMigration:      CellMigrationScore(float64(porosity), flow, shear),
	}, nil
}

// CellMigrationScore blends normalized porosity, flow rate and inverted
// shear stress into a 0..100 score. The tabulated migration stats are not used.
func CellMigrationScore(porosity, flowRate, shearStress float64) float64 {
	normPorosity := (porosity - 30) / 60
	normFlow := (flowRate - 0.3) / 0.4
	normShear := 1 - ((shearStress - 150) / 150)

	score := (normPorosity*0.4 + normFlow*0.35 + normShear*0.25) * 100
	return math.Max(0, math.Min(100, score))
}

// CurvePoints is the number of samples in a generated curve.
const CurvePoints = 100

type Curve struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// StressStrainCurve samples strain over mean ± 3 std and pairs each point
// with the mean stress plus unit gaussian noise drawn from src. A nil src
// uses the global generator.
func (t *Table) StressStrainCurve(porosity int, src rand.Source) (Curve, error) {
	if err := ValidatePorosity(porosity); err != nil {
		return Curve{}, err
	}
	row, err := t.Lookup(porosity)
	if err != nil {
		return Curve{}, err
	}
	strain, stress := row[Strain], row[Stress]
	c := Curve{
		X: floats.Span(make([]float64, CurvePoints), strain.Mean-3*strain.Std, strain.Mean+3*strain.Std),
		Y: make([]float64, CurvePoints),
	}
	noise := distuv.Normal{Mu: stress.Mean, Sigma: 1, Src: src}
	for i := range c.Y {
		c.Y[i] = noise.Rand()
	}
	return c, nil
}

// FlowRateCurve is the mean flow rate held over CurvePoints sample indices.
func (t *Table) FlowRateCurve(porosity int) (Curve, error) {
	if err := ValidatePorosity(porosity); err != nil {
		return Curve{}, err
	}
	row, err := t.Lookup(porosity)
	if err != nil {
		return Curve{}, err
	}
	c := Curve{X: make([]float64, CurvePoints), Y: make([]float64, CurvePoints)}
	for i := range c.X {
		c.X[i] = float64(i)
		c.Y[i] = row[FlowRate].Mean
	}
	return c, nil
}
