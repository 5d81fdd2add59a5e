package scaffold

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

type Input struct {
	Porosity int `json:"porosity"`
}

type Result struct {
	Bundle         Bundle         `json:"bundle"`
	Interpretation Interpretation `json:"interpretation"`
}

type Handler struct {
	Table *Table
}

func (h *Handler) table() *Table {
	if h.Table == nil {
		return DefaultTable
	}
	return h.Table
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	b, err := h.table().Values(input.Porosity)
	if err != nil {
		if errors.Is(err, ErrInvalidPorosity) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Int("porosity", input.Porosity).Msg("scaffold calc failed")
		http.Error(w, "Calculation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Result{Bundle: b, Interpretation: Interpret(b)})
}

func (h *Handler) Rows(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.table().Rows())
}
