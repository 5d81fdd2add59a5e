package recommend

import (
	"encoding/json"
	"net/http"

	"scartix/internal/calc/prediction"
)

type Handler struct{}

func (h *Handler) Porosity(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Porosity(nil, input)
	if err != nil {
		prediction.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
