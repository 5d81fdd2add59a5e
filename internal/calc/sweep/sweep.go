package sweep

import (
	"errors"
	"fmt"

	"scartix/internal/calc/prediction"
	"scartix/internal/calc/scaffold"
)

var (
	ErrNoPorosities = errors.New("no porosities")
	ErrTooLarge     = errors.New("sweep too large")
)

const MaxItems = 500

type Input struct {
	Porosities []int    `json:"porosities"`
	From       int      `json:"from"`
	To         int      `json:"to"`
	Step       int      `json:"step"`
	Tissues    []string `json:"tissues"`
}

type Result struct {
	Count   int                     `json:"count"`
	Results []prediction.Prediction `json:"results"`
}

// List returns the explicit porosity list when given, otherwise the from..to range.
func (in Input) List() ([]int, error) {
	if len(in.Porosities) > 0 {
		return in.Porosities, nil
	}
	if in.From == 0 && in.To == 0 {
		return nil, ErrNoPorosities
	}
	return Expand(in.From, in.To, in.Step)
}

// Expand lists from, from+step, ... up to and including to. A zero step means 1.
// Both ends must be valid porosities and the item count is checked against
// MaxItems before anything is allocated.
func Expand(from, to, step int) ([]int, error) {
	if step == 0 {
		step = 1
	}
	if step < 0 || from > to {
		return nil, fmt.Errorf("%w: range %d..%d step %d", scaffold.ErrInvalidPorosity, from, to, step)
	}
	if err := scaffold.ValidatePorosity(from); err != nil {
		return nil, fmt.Errorf("range start: %w", err)
	}
	if err := scaffold.ValidatePorosity(to); err != nil {
		return nil, fmt.Errorf("range end: %w", err)
	}
	n := (to-from)/step + 1
	if n > MaxItems {
		return nil, fmt.Errorf("%w: sweep of %d items exceeds %d", ErrTooLarge, n, MaxItems)
	}
	out := make([]int, n)
	for i := range out {
		out[i] = from + i*step
	}
	return out, nil
}

// Run predicts every porosity in order. The first failure aborts the sweep.
func Run(t *scaffold.Table, porosities []int, tissues []string) ([]prediction.Prediction, error) {
	if len(porosities) == 0 {
		return nil, ErrNoPorosities
	}
	if len(porosities) > MaxItems {
		return nil, fmt.Errorf("%w: sweep of %d items exceeds %d", ErrTooLarge, len(porosities), MaxItems)
	}
	out := make([]prediction.Prediction, 0, len(porosities))
	for i, p := range porosities {
		res, err := prediction.Predict(t, prediction.Input{Porosity: p, Tissues: tissues})
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, res)
	}
	return out, nil
}
