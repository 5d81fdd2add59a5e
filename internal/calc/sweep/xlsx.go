package sweep

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"scartix/internal/calc/prediction"
	"scartix/internal/calc/scaffold"
)

const (
	SheetProperties    = "Properties"
	SheetCompatibility = "Compatibility"
)

// WriteXLSX writes one row per porosity to Properties and one row per
// porosity and tissue to Compatibility.
func WriteXLSX(w io.Writer, results []prediction.Prediction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetProperties); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetCompatibility); err != nil {
		return err
	}

	head := []interface{}{"porosity"}
	for _, p := range scaffold.Properties {
		head = append(head, string(p))
	}
	if err := f.SetSheetRow(SheetProperties, "A1", &head); err != nil {
		return err
	}
	compHead := []interface{}{"porosity", "tissue", "score", "status", "penalized"}
	if err := f.SetSheetRow(SheetCompatibility, "A1", &compHead); err != nil {
		return err
	}

	compRow := 2
	for i, res := range results {
		row := []interface{}{res.Porosity}
		for _, p := range scaffold.Properties {
			v, _ := res.Bundle.Value(p)
			row = append(row, v)
		}
		if err := f.SetSheetRow(SheetProperties, cell(1, i+2), &row); err != nil {
			return err
		}
		for _, a := range res.Compatibility {
			r := []interface{}{res.Porosity, a.Tissue, a.Score, a.Status, a.Penalized}
			if err := f.SetSheetRow(SheetCompatibility, cell(1, compRow), &r); err != nil {
				return err
			}
			compRow++
		}
	}
	f.SetActiveSheet(0)
	return f.Write(w)
}

// ReadPorosities reads integer porosities from the first column of the first
// sheet. The first row is a header; blank, non-integer and out of range rows are skipped.
func ReadPorosities(r io.Reader) ([]int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	var out []int
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) == 0 {
			continue
		}
		p, ok := parsePorosity(rows[i][0])
		if !ok {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, ErrNoPorosities
	}
	return out, nil
}

func parsePorosity(s string) (int, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%")), 64)
	if err != nil || v != math.Trunc(v) {
		return 0, false
	}
	p := int(v)
	if scaffold.ValidatePorosity(p) != nil {
		return 0, false
	}
	return p, true
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
