package sweep

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"scartix/internal/calc/prediction"
)

const maxUpload = 10 << 20

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	results, ok := h.run(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Result{Count: len(results), Results: results})
}

func (h *Handler) XLSX(w http.ResponseWriter, r *http.Request) {
	results, ok := h.run(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, results); err != nil {
		log.Error().Err(err).Int("items", len(results)).Msg("xlsx export failed")
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"sweep.xlsx\"")
	w.Write(buf.Bytes())
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	porosities, err := ReadPorosities(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	results, err := Run(nil, porosities, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Result{Count: len(results), Results: results})
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) ([]prediction.Prediction, bool) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return nil, false
	}
	list, err := input.List()
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	results, err := Run(nil, list, input.Tissues)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return results, true
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNoPorosities) || errors.Is(err, ErrTooLarge) || prediction.StatusCode(err) == http.StatusInternalServerError {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	prediction.WriteError(w, err)
}
