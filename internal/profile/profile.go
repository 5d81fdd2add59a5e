package profile

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"scartix/internal/auth"
	"scartix/internal/repo"
)

type ProfileHandler struct {
	Repo repo.Repository
}

type UpdateProfileRequest struct {
	Institution string `json:"institution"`
	Description string `json:"description"`
}

const maxDescription = 2000

// GetProfile serves the caller's profile, or another user's when the route
// carries an id. Another user's email is never included.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	userID := callerID
	if idStr, ok := mux.Vars(r)["id"]; ok && idStr != "" {
		targetID, err := strconv.Atoi(idStr)
		if err != nil {
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}
		userID = targetID
	}

	prof, err := h.Repo.GetProfileByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Int("user_id", userID).Msg("load profile failed")
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if userID != callerID {
		prof.Email = ""
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prof)
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.Institution = strings.TrimSpace(req.Institution)
	if len(req.Description) > maxDescription {
		http.Error(w, "Description too long", http.StatusBadRequest)
		return
	}

	if err := h.Repo.UpdateProfile(r.Context(), userID, req.Institution, req.Description); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Int("user_id", userID).Msg("update profile failed")
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
