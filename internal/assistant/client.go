package assistant

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/microcosm-cc/bluemonday"

	"rockbot-frontend/internal/chat"
)

// Client talks to the assistant service. Bot-delivered text is HTML-stripped
// here so nothing downstream ever sees markup. The request timeout guarantees
// the send gate cannot stay in its sending state forever on a stalled call.
type Client struct {
	client *resty.Client
	strip  *bluemonday.Policy
}

func NewClient(baseURL string) *Client {
	return &Client{
		client: resty.New().SetBaseURL(baseURL).SetTimeout(60 * time.Second),
		strip:  bluemonday.StrictPolicy(),
	}
}

type askRequest struct {
	UserID       string `json:"user_id"`
	Question     string `json:"question"`
	DepartmentID *int   `json:"department_id,omitempty"`
	Name         string `json:"name,omitempty"`
}

type askResponse struct {
	Response string `json:"response"`
}

// logMessage is one entry of the assistant service's per-day logs.
type logMessage struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

type chatLogsResponse struct {
	Today        []logMessage            `json:"today"`
	PreviousDays map[string][]logMessage `json:"previous_days"`
}

// Ask submits one question and returns the stripped reply text.
func (c *Client) Ask(ctx context.Context, query chat.AskQuery) (string, error) {
	var out askResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(askRequest{
			UserID:       query.UserID,
			Question:     query.Question,
			DepartmentID: query.DepartmentID,
			Name:         query.Name,
		}).
		SetResult(&out).
		Post("/ask")
	if err != nil {
		return "", fmt.Errorf("ask request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("ask request failed: status %d", resp.StatusCode())
	}
	return c.stripHTML(out.Response), nil
}

// ChatLogs fetches the per-day transcripts for a user.
func (c *Client) ChatLogs(ctx context.Context, userID string) ([]chat.Message, map[string][]chat.Message, error) {
	var out chatLogsResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("user_id", userID).
		SetResult(&out).
		Get("/chat-logs")
	if err != nil {
		return nil, nil, fmt.Errorf("chat-logs request failed: %w", err)
	}
	if resp.IsError() {
		return nil, nil, fmt.Errorf("chat-logs request failed: status %d", resp.StatusCode())
	}

	today := c.toMessages(out.Today)
	previous := make(map[string][]chat.Message, len(out.PreviousDays))
	for date, messages := range out.PreviousDays {
		previous[date] = c.toMessages(messages)
	}
	return today, previous, nil
}

func (c *Client) toMessages(entries []logMessage) []chat.Message {
	messages := make([]chat.Message, 0, len(entries))
	for _, entry := range entries {
		text := entry.Message
		if entry.Sender == chat.SenderBot {
			text = c.stripHTML(text)
		}
		messages = append(messages, chat.Message{
			Sender:    entry.Sender,
			Text:      text,
			Timestamp: entry.Date,
		})
	}
	return messages
}

// stripHTML removes tags and resolves entities, so "<b>Hello</b>" renders as
// "Hello".
func (c *Client) stripHTML(s string) string {
	return strings.TrimSpace(html.UnescapeString(c.strip.Sanitize(s)))
}
