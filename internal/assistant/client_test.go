package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rockbot-frontend/internal/chat"
)

func TestAskStripsHTMLFromReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/ask", r.URL.Path)

		var body askRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user123", body.UserID)
		assert.Equal(t, "출장 규정 알려줘", body.Question)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(askResponse{Response: "<b>Hello</b> &amp; welcome<script>alert(1)</script>"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	reply, err := client.Ask(context.Background(), chat.AskQuery{UserID: "user123", Question: "출장 규정 알려줘"})
	require.NoError(t, err)
	assert.Equal(t, "Hello & welcome", reply)
}

func TestAskReportsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Ask(context.Background(), chat.AskQuery{UserID: "user123", Question: "hi"})
	assert.Error(t, err)
}

func TestChatLogsParsesBuckets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat-logs", r.URL.Path)
		require.Equal(t, "user123", r.URL.Query().Get("user_id"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatLogsResponse{
			Today: []logMessage{
				{Sender: chat.SenderUser, Message: "hello", Date: "2024-01-01T09:00:00Z"},
				{Sender: chat.SenderBot, Message: "<p>안녕하세요</p>", Date: "2024-01-01T09:00:01Z"},
			},
			PreviousDays: map[string][]logMessage{
				"2023-12-31": {
					{Sender: chat.SenderUser, Message: "bye", Date: "2023-12-31T18:00:00Z"},
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	today, previous, err := client.ChatLogs(context.Background(), "user123")
	require.NoError(t, err)

	require.Len(t, today, 2)
	assert.Equal(t, "hello", today[0].Text)
	// Bot text is stripped; user text is passed through untouched.
	assert.Equal(t, "안녕하세요", today[1].Text)
	assert.Equal(t, "2024-01-01T09:00:01Z", today[1].Timestamp)

	require.Len(t, previous, 1)
	require.Len(t, previous["2023-12-31"], 1)
	assert.Equal(t, "bye", previous["2023-12-31"][0].Text)
}
