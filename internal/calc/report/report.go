package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"scartix/internal/calc/prediction"
	"scartix/internal/calc/scaffold"
)

const DefaultTitle = "Scaffold Property Report"

type Meta struct {
	Title  string
	Author string
	Date   time.Time
}

var propertyUnits = map[scaffold.Property]string{
	scaffold.Stress:             "MPa",
	scaffold.Strain:             "microstrain",
	scaffold.FlowRate:           "mL/min",
	scaffold.ShearStress:        "mPa",
	scaffold.MechanicalStrength: "%",
	scaffold.CellMigration:      "%",
}

// Write renders p as an A4 PDF. chartPNG is embedded below the tables when non-empty.
func Write(w io.Writer, meta Meta, p prediction.Prediction, chartPNG []byte) error {
	if meta.Title == "" {
		meta.Title = DefaultTitle
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(meta.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	if meta.Author != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", meta.Author)))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Material: chitosan TPMS scaffold, porosity %d%%", p.Porosity))
	pdf.Ln(10)

	section(pdf, "Predicted properties")
	header(pdf, []string{"Property", "Value", "Unit", "Assessment"}, []float64{40, 28, 24, 98})
	pdf.SetFont("Helvetica", "", 9)
	for _, prop := range scaffold.Properties {
		v, _ := p.Bundle.Value(prop)
		pdf.CellFormat(40, 6, string(prop), "1", 0, "L", false, 0, "")
		pdf.CellFormat(28, 6, fmt.Sprintf("%.3f", v), "1", 0, "R", false, 0, "")
		pdf.CellFormat(24, 6, propertyUnits[prop], "1", 0, "C", false, 0, "")
		pdf.CellFormat(98, 6, tr(p.Interpretation[prop]), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	section(pdf, "Tissue compatibility")
	header(pdf, []string{"Tissue", "Score", "Status", "Strength", "Migration"}, []float64{50, 24, 44, 36, 36})
	pdf.SetFont("Helvetica", "", 9)
	for _, a := range p.Compatibility {
		pdf.CellFormat(50, 6, a.Tissue, "1", 0, "L", false, 0, "")
		pdf.CellFormat(24, 6, fmt.Sprintf("%.3f", a.Score), "1", 0, "R", false, 0, "")
		pdf.CellFormat(44, 6, a.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(36, 6, yesNo(a.MeetsStrength), "1", 0, "C", false, 0, "")
		pdf.CellFormat(36, 6, yesNo(a.MeetsMigration), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	if len(chartPNG) > 0 {
		section(pdf, "Stress-strain curve")
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		pdf.RegisterImageOptionsReader("chart", opts, bytes.NewReader(chartPNG))
		pdf.ImageOptions("chart", 10, pdf.GetY(), 170, 0, true, opts, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
}

func header(pdf *gofpdf.Fpdf, cols []string, widths []float64) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 236, 240)
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 7, c, "1", ln, "C", true, 0, "")
	}
}

func yesNo(b bool) string {
	if b {
		return "meets threshold"
	}
	return "below threshold"
}
