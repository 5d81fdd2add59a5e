package prediction

import (
	"sort"

	"scartix/internal/calc/scaffold"
	"scartix/internal/calc/tissue"
)

type Input struct {
	Porosity          int      `json:"porosity"`
	Tissues           []string `json:"tissues"`
	SuitableThreshold float64  `json:"suitable_threshold"`
}

// Prediction is everything the UI shows for one porosity.
type Prediction struct {
	Porosity       int                     `json:"porosity"`
	Bundle         scaffold.Bundle         `json:"bundle"`
	Interpretation scaffold.Interpretation `json:"interpretation"`
	Compatibility  []tissue.Assessment     `json:"compatibility"`
}

// Best returns the highest scoring assessment.
func (p Prediction) Best() (tissue.Assessment, bool) {
	if len(p.Compatibility) == 0 {
		return tissue.Assessment{}, false
	}
	return p.Compatibility[0], true
}

// Predict runs table lookup, interpretation and tissue scoring. With no
// tissues named every catalog tissue is compared using the summary threshold;
// named tissues are assessed individually using the detail threshold.
func Predict(t *scaffold.Table, in Input) (Prediction, error) {
	if t == nil {
		t = scaffold.DefaultTable
	}
	b, err := t.Values(in.Porosity)
	if err != nil {
		return Prediction{}, err
	}

	var assessments []tissue.Assessment
	if len(in.Tissues) == 0 {
		assessments = tissue.AssessAll(b, in.SuitableThreshold)
	} else {
		seen := make(map[string]bool, len(in.Tissues))
		for _, name := range in.Tissues {
			if seen[name] {
				continue
			}
			seen[name] = true
			a, err := tissue.Assess(b, name, in.SuitableThreshold)
			if err != nil {
				return Prediction{}, err
			}
			assessments = append(assessments, a)
		}
		sort.SliceStable(assessments, func(i, j int) bool { return assessments[i].Score > assessments[j].Score })
	}

	return Prediction{
		Porosity:       in.Porosity,
		Bundle:         b,
		Interpretation: scaffold.Interpret(b),
		Compatibility:  assessments,
	}, nil
}
