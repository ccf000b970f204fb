package api

// ChatMessage is a single rendered chat entry. Timestamp is empty for the
// synthetic greeting message.
type ChatMessage struct {
	Sender    string `json:"sender"` // "user" or "bot"
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

type AskRequest struct {
	UserID       string `json:"user_id"`
	Question     string `json:"question"`
	DepartmentID *int   `json:"department_id,omitempty"`
	Name         string `json:"name,omitempty"`
}

type ChatViewRequest struct {
	UserID string `json:"user_id"`
	Bucket string `json:"bucket"` // "today" or a calendar date
}

type ChatLogsParams struct {
	UserID string `schema:"user_id,required"`
}

// ChatViewResponse carries the currently displayed message list and the state
// of the input gate.
type ChatViewResponse struct {
	Bucket   string        `json:"bucket"`
	Messages []ChatMessage `json:"messages"`
	Gate     string        `json:"gate"` // "idle", "sending" or "disabled"
}

type ChatLogsResponse struct {
	Dates []string `json:"dates"` // historical bucket keys, most recent first
	ChatViewResponse
}
