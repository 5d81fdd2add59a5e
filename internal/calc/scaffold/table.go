package scaffold

import (
	"errors"
	"fmt"
)

var ErrInvalidPorosity = errors.New("porosity must be an integer between 30 and 90")

type Table struct {
	rows map[int]Params
}

// DefaultTable is built once at startup and never mutated.
var DefaultTable = BuildTable()

// BuildTable expands the anchors into one row per integer porosity.
func BuildTable() *Table {
	t := &Table{rows: make(map[int]Params, MaxPorosity-MinPorosity+1)}
	for p := MinPorosity; p <= MaxPorosity; p++ {
		lo, hi := MinPorosity, MidPorosity
		if p > MidPorosity {
			lo, hi = MidPorosity, MaxPorosity
		}
		t.rows[p] = Interpolate(lo, hi, p)
	}
	return t
}

// Interpolate linearly blends the anchor parameters at lo and hi for porosity p.
func Interpolate(lo, hi, p int) Params {
	a, okA := anchors[lo]
	b, okB := anchors[hi]
	if !okA || !okB {
		panic(fmt.Sprintf("scaffold: %d and %d must both be anchor porosities", lo, hi))
	}
	if hi == lo {
		panic("scaffold: anchor pair must span a non-empty interval")
	}
	factor := float64(p-lo) / float64(hi-lo)

	out := make(Params, len(Properties))
	for _, prop := range Properties {
		sa, sb := a[prop], b[prop]
		out[prop] = Stat{
			Mean: lerp(sa.Mean, sb.Mean, factor),
			Std:  lerp(sa.Std, sb.Std, factor),
		}
	}
	return out
}

// lerp blends as (1-f)*a + f*b rather than a + f*(b-a) so that f=0 and f=1
// return a and b exactly.
func lerp(a, b, f float64) float64 {
	return (1-f)*a + f*b
}

// Lookup returns a copy of the row for porosity.
func (t *Table) Lookup(porosity int) (Params, error) {
	row, ok := t.rows[porosity]
	if !ok {
		return nil, fmt.Errorf("porosity %d: %w", porosity, ErrInvalidPorosity)
	}
	return row.clone(), nil
}

func (t *Table) Len() int { return len(t.rows) }

// Row is one table entry as exposed to API clients.
type Row struct {
	Porosity int    `json:"porosity"`
	Params   Params `json:"params"`
}

// Rows returns every entry ordered by porosity.
func (t *Table) Rows() []Row {
	out := make([]Row, 0, len(t.rows))
	for p := MinPorosity; p <= MaxPorosity; p++ {
		if row, ok := t.rows[p]; ok {
			out = append(out, Row{Porosity: p, Params: row.clone()})
		}
	}
	return out
}

func ValidatePorosity(porosity int) error {
	if porosity < MinPorosity || porosity > MaxPorosity {
		return fmt.Errorf("porosity %d: %w", porosity, ErrInvalidPorosity)
	}
	return nil
}
