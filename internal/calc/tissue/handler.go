package tissue

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"scartix/internal/calc/scaffold"
)

type Input struct {
	Porosity          int     `json:"porosity"`
	Tissue            string  `json:"tissue"`
	SuitableThreshold float64 `json:"suitable_threshold"`
}

type Handler struct{}

func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	b, err := scaffold.GetValues(input.Porosity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := Assess(b, input.Tissue, input.SuitableThreshold)
	if err != nil {
		if errors.Is(err, ErrUnknownTissue) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("tissue", input.Tissue).Msg("tissue assessment failed")
		http.Error(w, "Calculation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	b, err := scaffold.GetValues(input.Porosity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AssessAll(b, input.SuitableThreshold))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Catalog())
}
