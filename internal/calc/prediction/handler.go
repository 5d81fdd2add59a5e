package prediction

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"scartix/internal/auth"
	"scartix/internal/calc/scaffold"
	"scartix/internal/calc/tissue"
	"scartix/internal/metrics"
	"scartix/internal/repo"
)

type Handler struct {
	Repo    repo.Repository
	Metrics *metrics.Metrics
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Predict(nil, input)
	if err != nil {
		WriteError(w, err)
		return
	}

	if best, ok := res.Best(); ok {
		h.Metrics.ObservePrediction(res.Porosity, best.Tissue, best.Status)
		h.record(r, res, best)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// record stores the prediction in the caller's history. Failures are logged only.
func (h *Handler) record(r *http.Request, res Prediction, best tissue.Assessment) {
	userID, ok := auth.UserID(r.Context())
	if !ok || h.Repo == nil {
		return
	}
	_, err := h.Repo.SavePrediction(r.Context(), repo.PredictionRecord{
		UserID:             userID,
		Porosity:           res.Porosity,
		MechanicalStrength: res.Bundle.MechanicalStrength,
		CellMigration:      res.Bundle.CellMigration,
		BestTissue:         best.Tissue,
		BestScore:          best.Score,
	})
	if err != nil {
		log.Warn().Err(err).Int("user_id", userID).Int("porosity", res.Porosity).Msg("save prediction history failed")
	}
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 500 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	recs, err := h.Repo.ListPredictions(r.Context(), userID, limit)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("list history failed")
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recs)
}

// WriteError maps core errors to HTTP status codes.
func WriteError(w http.ResponseWriter, err error) {
	code := StatusCode(err)
	if code == http.StatusInternalServerError {
		log.Error().Err(err).Msg("prediction failed")
		http.Error(w, "Calculation error", code)
		return
	}
	http.Error(w, err.Error(), code)
}

func StatusCode(err error) int {
	switch {
	case errors.Is(err, scaffold.ErrInvalidPorosity):
		return http.StatusBadRequest
	case errors.Is(err, tissue.ErrUnknownTissue):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
