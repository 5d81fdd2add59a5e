package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"scartix/internal/repo"
)

type call struct {
	Method  string
	Payload map[string]any
}

type fakeTelegram struct {
	mu      sync.Mutex
	calls   []call
	updates []Update
}

func (f *fakeTelegram) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/botTEST/") {
			http.Error(w, `{"ok":false,"description":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		var payload map[string]any
		json.NewDecoder(r.Body).Decode(&payload)
		method := path.Base(r.URL.Path)

		f.mu.Lock()
		f.calls = append(f.calls, call{Method: method, Payload: payload})
		updates := f.updates
		f.updates = nil
		f.mu.Unlock()

		var result any = true
		switch method {
		case "sendMessage":
			result = Message{MessageID: 77, Chat: Chat{ID: 5}}
		case "getUpdates":
			if updates == nil {
				updates = []Update{}
			}
			result = updates
		}
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": result})
	}
}

func (f *fakeTelegram) methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Method)
	}
	return out
}

func (f *fakeTelegram) at(i int) call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[i]
}

func newFake(t *testing.T) (*fakeTelegram, *Client) {
	t.Helper()
	f := &fakeTelegram{}
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)
	c := NewClient("TEST")
	c.BaseURL = srv.URL
	return f, c
}

func TestSendMessageWithButtons(t *testing.T) {
	t.Parallel()

	f, c := newFake(t)
	msg, err := c.SendMessage(context.Background(), 5, "hello", Button{Text: "Resolve", CallbackData: "resolve:1"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.MessageID != 77 {
		t.Fatalf("message id %d", msg.MessageID)
	}
	p := f.at(0).Payload
	markup, ok := p["reply_markup"].(map[string]any)
	if !ok {
		t.Fatalf("no reply_markup in %v", p)
	}
	rows := markup["inline_keyboard"].([]any)
	btn := rows[0].([]any)[0].(map[string]any)
	if btn["callback_data"] != "resolve:1" {
		t.Fatalf("button %v", btn)
	}
}

func TestClientError(t *testing.T) {
	t.Parallel()

	_, c := newFake(t)
	c.Token = "WRONG"
	if err := c.AnswerCallback(context.Background(), "1", "x"); err == nil {
		t.Fatal("expected error for rejected token")
	}
}

func TestParseCallbackData(t *testing.T) {
	t.Parallel()

	action, id, err := ParseCallbackData(CallbackData(ActionReject, 12))
	if err != nil || action != ActionReject || id != 12 {
		t.Fatalf("got %q %d %v", action, id, err)
	}
	for _, bad := range []string{"resolve", "resolve:x", "resolve:-1", ""} {
		if _, _, err := ParseCallbackData(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}

func openRepo(t *testing.T) *repo.SQLRepository {
	t.Helper()
	db, dialect, err := repo.Open(context.Background(), "sqlite:"+filepath.Join(t.TempDir(), "bot.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return repo.New(db, dialect)
}

func TestBotHandleCallback(t *testing.T) {
	t.Parallel()

	f, c := newFake(t)
	store := openRepo(t)
	ctx := context.Background()
	id, err := store.CreateTicket(ctx, repo.Ticket{Reference: "ref-1", Name: "n", Email: "n@x", Subject: "s", Message: "m"})
	if err != nil {
		t.Fatalf("ticket: %v", err)
	}

	bot := &Bot{Client: c, AdminChatID: 5, Repo: store}

	bot.HandleCallback(ctx, &CallbackQuery{ID: "a", Data: CallbackData(ActionResolve, id), Message: &Message{MessageID: 1, Chat: Chat{ID: 99}}})
	if got, _ := store.GetTicket(ctx, id); got.Status != repo.TicketOpen {
		t.Fatalf("foreign chat changed status to %q", got.Status)
	}

	bot.HandleCallback(ctx, &CallbackQuery{ID: "b", Data: CallbackData(ActionResolve, id), Message: &Message{MessageID: 1, Chat: Chat{ID: 5}}})
	if got, _ := store.GetTicket(ctx, id); got.Status != repo.TicketResolved {
		t.Fatalf("status %q", got.Status)
	}

	bot.HandleCallback(ctx, &CallbackQuery{ID: "c", Data: CallbackData(ActionReject, 999), Message: &Message{MessageID: 1, Chat: Chat{ID: 5}}})

	want := []string{"answerCallbackQuery", "answerCallbackQuery", "editMessageText", "answerCallbackQuery"}
	got := f.methods()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("calls %v, want %v", got, want)
	}
	if f.at(3).Payload["text"] != "Ticket not found" {
		t.Fatalf("unknown ticket answer %v", f.at(3).Payload["text"])
	}
}

func TestBotRunProcessesUpdates(t *testing.T) {
	t.Parallel()

	f, c := newFake(t)
	store := openRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	id, _ := store.CreateTicket(ctx, repo.Ticket{Reference: "ref-2", Name: "n", Email: "n@x", Subject: "s", Message: "m"})

	f.mu.Lock()
	f.updates = []Update{{UpdateID: 10, CallbackQuery: &CallbackQuery{
		ID: "q", Data: CallbackData(ActionReject, id), Message: &Message{MessageID: 3, Chat: Chat{ID: 5}},
	}}}
	f.mu.Unlock()
	bot := &Bot{Client: c, AdminChatID: 5, Repo: store, PollTimeout: time.Second}
	done := make(chan error, 1)
	go func() { done <- bot.Run(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if got, _ := store.GetTicket(context.Background(), id); got.Status == repo.TicketRejected {
			cancel()
			if err := <-done; err != nil {
				t.Fatalf("run: %v", err)
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("ticket was not rejected")
}

func TestTicketNotifier(t *testing.T) {
	t.Parallel()

	f, c := newFake(t)
	n := &TicketNotifier{Client: c, ChatID: 5}
	if err := n.NotifyTicket(context.Background(), repo.Ticket{ID: 4, Reference: "r", Subject: "help"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if !strings.Contains(f.at(0).Payload["text"].(string), "#4") {
		t.Fatalf("text %v", f.at(0).Payload["text"])
	}
}
