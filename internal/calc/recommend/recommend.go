package recommend

import (
	"sort"

	"scartix/internal/calc/scaffold"
	"scartix/internal/calc/tissue"
)

const DefaultTop = 5

type Input struct {
	Tissue            string  `json:"tissue"`
	SuitableThreshold float64 `json:"suitable_threshold"`
	Top               int     `json:"top"`
}

type Candidate struct {
	Porosity int     `json:"porosity"`
	Score    float64 `json:"score"`
	Status   string  `json:"status"`
}

// Result is the porosity search outcome for one tissue. SuitableFrom and
// SuitableTo bound the porosities rated Suitable or better; both are zero
// when none qualify.
type Result struct {
	Tissue       string      `json:"tissue"`
	Best         Candidate   `json:"best"`
	Candidates   []Candidate `json:"candidates"`
	SuitableFrom int         `json:"suitable_from"`
	SuitableTo   int         `json:"suitable_to"`
	Notes        string      `json:"notes"`
}

// Porosity scores every table porosity against the tissue and returns the
// best ones. Ties keep the lower porosity.
func Porosity(t *scaffold.Table, in Input) (Result, error) {
	if t == nil {
		t = scaffold.DefaultTable
	}
	if in.Top <= 0 {
		in.Top = DefaultTop
	}

	all := make([]Candidate, 0, scaffold.MaxPorosity-scaffold.MinPorosity+1)
	res := Result{Tissue: in.Tissue}
	for p := scaffold.MinPorosity; p <= scaffold.MaxPorosity; p++ {
		b, err := t.Values(p)
		if err != nil {
			return Result{}, err
		}
		a, err := tissue.Assess(b, in.Tissue, in.SuitableThreshold)
		if err != nil {
			return Result{}, err
		}
		all = append(all, Candidate{Porosity: p, Score: a.Score, Status: a.Status})
		if a.Status != tissue.StatusNotRecommended {
			if res.SuitableFrom == 0 {
				res.SuitableFrom = p
			}
			res.SuitableTo = p
		}
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Score > all[j].Score })
	if in.Top > len(all) {
		in.Top = len(all)
	}
	res.Best = all[0]
	res.Candidates = all[:in.Top]
	if res.SuitableFrom == 0 {
		res.Notes = "No porosity reaches the Suitable threshold for this tissue."
	} else {
		res.Notes = "Porosity selected to maximize compatibility score."
	}
	return res, nil
}
