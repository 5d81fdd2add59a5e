package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"scartix/internal/repo"
)

// TicketNotifier announces new support tickets in the admin chat.
type TicketNotifier struct {
	Client *Client
	ChatID int64
}

func (n *TicketNotifier) NotifyTicket(ctx context.Context, t repo.Ticket) error {
	text := fmt.Sprintf("New support ticket #%d (%s)\nFrom: %s <%s>\nSubject: %s\n\n%s",
		t.ID, t.Reference, t.Name, t.Email, t.Subject, t.Message)
	_, err := n.Client.SendMessage(ctx, n.ChatID, text,
		Button{Text: "Resolve", CallbackData: CallbackData(ActionResolve, t.ID)},
		Button{Text: "Reject", CallbackData: CallbackData(ActionReject, t.ID)},
	)
	return err
}

// Bot long-polls for callback queries and applies ticket decisions from the admin chat.
type Bot struct {
	Client      *Client
	AdminChatID int64
	Repo        repo.Repository
	PollTimeout time.Duration
}

func (b *Bot) Run(ctx context.Context) error {
	timeout := b.PollTimeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	offset := 0
	for {
		if ctx.Err() != nil {
			return nil
		}
		updates, err := b.Client.GetUpdates(ctx, offset, timeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Warn().Err(err).Msg("getUpdates failed")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(2 * time.Second):
			}
			continue
		}
		for _, u := range updates {
			offset = u.UpdateID + 1
			if u.CallbackQuery != nil {
				b.HandleCallback(ctx, u.CallbackQuery)
			}
		}
	}
}

// HandleCallback answers cb and, when it comes from the admin chat, updates the ticket.
func (b *Bot) HandleCallback(ctx context.Context, cb *CallbackQuery) {
	answer := func(text string) {
		if err := b.Client.AnswerCallback(ctx, cb.ID, text); err != nil {
			log.Warn().Err(err).Str("callback", cb.ID).Msg("answerCallback failed")
		}
	}
	if cb.Message == nil || cb.Message.Chat.ID != b.AdminChatID {
		answer("Not allowed")
		return
	}
	action, id, err := ParseCallbackData(cb.Data)
	if err != nil {
		answer("Bad data")
		return
	}

	var status, verdict string
	switch action {
	case ActionResolve:
		status, verdict = repo.TicketResolved, "Resolved"
	case ActionReject:
		status, verdict = repo.TicketRejected, "Rejected"
	default:
		answer("Unknown action")
		return
	}

	t, err := b.Repo.GetTicket(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		answer("Ticket not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Int("ticket_id", id).Msg("get ticket failed")
		answer("Error")
		return
	}
	if err := b.Repo.UpdateTicketStatus(ctx, id, status); err != nil {
		log.Error().Err(err).Int("ticket_id", id).Msg("update ticket failed")
		answer("Error")
		return
	}
	log.Info().Int("ticket_id", id).Str("reference", t.Reference).Str("status", status).Msg("ticket updated")
	answer(verdict)
	text := fmt.Sprintf("%s ticket #%d (%s): %s", verdict, id, t.Reference, t.Subject)
	if err := b.Client.EditMessage(ctx, cb.Message.Chat.ID, cb.Message.MessageID, text); err != nil {
		log.Warn().Err(err).Int("ticket_id", id).Msg("editMessage failed")
	}
}
