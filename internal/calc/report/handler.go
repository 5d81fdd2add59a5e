package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"scartix/internal/calc/plot"
	"scartix/internal/calc/prediction"
)

type Input struct {
	Porosity int      `json:"porosity"`
	Tissues  []string `json:"tissues"`
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Seed     string   `json:"seed"`
}

type Handler struct{}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	p, err := prediction.Predict(nil, prediction.Input{Porosity: input.Porosity, Tissues: input.Tissues})
	if err != nil {
		prediction.WriteError(w, err)
		return
	}

	src, err := plot.NoiseSource(input.Seed)
	if err != nil {
		http.Error(w, "Invalid seed", http.StatusBadRequest)
		return
	}
	var chart bytes.Buffer
	if err := plot.StressStrainPNG(&chart, nil, p.Porosity, src); err != nil {
		// the report is still useful without the figure
		log.Warn().Err(err).Int("porosity", p.Porosity).Msg("report chart skipped")
		chart.Reset()
	}

	var out bytes.Buffer
	if err := Write(&out, Meta{Title: input.Title, Author: input.Author}, p, chart.Bytes()); err != nil {
		log.Error().Err(err).Int("porosity", p.Porosity).Msg("report generation failed")
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"scaffold-%d.pdf\"", p.Porosity))
	w.Write(out.Bytes())
}
