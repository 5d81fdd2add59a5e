package support

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"scartix/internal/auth"
	"scartix/internal/repo"
)

const maxMessageLen = 5000

type Notifier interface {
	NotifyTicket(ctx context.Context, t repo.Ticket) error
}

type Request struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type Response struct {
	ID        int    `json:"id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

type Handler struct {
	Repo     repo.Repository
	Notifier Notifier
}

func (r *Request) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}

func (r Request) validate() string {
	if r.Name == "" || r.Email == "" || r.Subject == "" || r.Message == "" {
		return "All fields are required"
	}
	if !strings.Contains(r.Email, "@") {
		return "Invalid email"
	}
	if len(r.Message) > maxMessageLen {
		return "Message too long"
	}
	return ""
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.normalize()
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	t := repo.Ticket{
		Reference: uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    repo.TicketOpen,
	}
	if id, ok := auth.UserID(r.Context()); ok {
		t.UserID = id
	}
	id, err := h.Repo.CreateTicket(r.Context(), t)
	if err != nil {
		log.Error().Err(err).Str("reference", t.Reference).Msg("create ticket failed")
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	t.ID = id
	log.Info().Int("ticket_id", id).Str("reference", t.Reference).Msg("support ticket created")

	if h.Notifier != nil {
		if err := h.Notifier.NotifyTicket(r.Context(), t); err != nil {
			log.Warn().Err(err).Int("ticket_id", id).Msg("ticket notification failed")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(Response{ID: id, Reference: t.Reference, Status: t.Status})
}
