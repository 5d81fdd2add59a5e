package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.telegram.org"

type Client struct {
	Token      string
	BaseURL    string
	HTTPClient *http.Client
}

type Update struct {
	UpdateID      int            `json:"update_id"`
	Message       *Message       `json:"message"`
	CallbackQuery *CallbackQuery `json:"callback_query"`
}

type Message struct {
	MessageID int    `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type CallbackQuery struct {
	ID      string   `json:"id"`
	Data    string   `json:"data"`
	Message *Message `json:"message"`
}

type Button struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description,omitempty"`
	Result      json.RawMessage `json:"result"`
}

func NewClient(token string) *Client {
	return &Client{
		Token:      token,
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SendMessage posts text to chatID with an optional single row of inline buttons.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, buttons ...Button) (Message, error) {
	payload := map[string]any{"chat_id": chatID, "text": text}
	if len(buttons) > 0 {
		payload["reply_markup"] = map[string]any{"inline_keyboard": [][]Button{buttons}}
	}
	var msg Message
	err := c.call(ctx, "sendMessage", payload, &msg)
	return msg, err
}

func (c *Client) GetUpdates(ctx context.Context, offset int, timeout time.Duration) ([]Update, error) {
	payload := map[string]any{
		"offset":          offset,
		"timeout":         int(timeout.Seconds()),
		"allowed_updates": []string{"callback_query"},
	}
	var updates []Update
	err := c.call(ctx, "getUpdates", payload, &updates)
	return updates, err
}

func (c *Client) AnswerCallback(ctx context.Context, id, text string) error {
	return c.call(ctx, "answerCallbackQuery", map[string]any{"callback_query_id": id, "text": text}, nil)
}

func (c *Client) EditMessage(ctx context.Context, chatID int64, messageID int, text string) error {
	payload := map[string]any{"chat_id": chatID, "message_id": messageID, "text": text}
	return c.call(ctx, "editMessageText", payload, nil)
}

func (c *Client) call(ctx context.Context, method string, payload map[string]any, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	endpoint, err := url.JoinPath(c.BaseURL, "bot"+c.Token, method)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	defer res.Body.Close()

	var resp apiResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return fmt.Errorf("telegram %s: decode: %w", method, err)
	}
	if !resp.OK {
		return fmt.Errorf("telegram %s: %d %s", method, res.StatusCode, resp.Description)
	}
	if out != nil && len(resp.Result) > 0 {
		return json.Unmarshal(resp.Result, out)
	}
	return nil
}

// Ticket actions carried in callback data as "<action>:<id>".
const (
	ActionResolve = "resolve"
	ActionReject  = "reject"
)

func CallbackData(action string, id int) string {
	return action + ":" + strconv.Itoa(id)
}

func ParseCallbackData(data string) (string, int, error) {
	action, idStr, ok := strings.Cut(data, ":")
	if !ok {
		return "", 0, fmt.Errorf("bad callback data %q", data)
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return "", 0, fmt.Errorf("bad ticket id in %q", data)
	}
	return action, id, nil
}
