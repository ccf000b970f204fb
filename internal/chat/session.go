package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// Gate states for the chat input.
const (
	GateIdle     = "idle"
	GateSending  = "sending"
	GateDisabled = "disabled"
)

var (
	ErrEmptyQuestion   = errors.New("question is empty")
	ErrViewingHistory  = errors.New("input is disabled while viewing a historical bucket")
	ErrRequestInFlight = errors.New("a question is already awaiting a reply")
)

// AskQuery is the outbound question payload for the assistant service.
type AskQuery struct {
	UserID       string
	Question     string
	DepartmentID *int
	Name         string
}

// Assistant is the outbound boundary to the assistant service. The returned
// reply text is already HTML-stripped.
type Assistant interface {
	Ask(ctx context.Context, query AskQuery) (string, error)
}

// Session holds the messages produced during the current session and the
// submission gate for one user. The buffer is never persisted; it lives for
// the lifetime of the session only. Identity travels with each submitted
// query, not with the session, so a session created before sign-in completed
// still forwards the fields later requests carry.
type Session struct {
	mu sync.Mutex

	buffer       []Message
	viewingToday bool
	sending      bool

	assistant Assistant
}

func NewSession(assistant Assistant) *Session {
	return &Session{
		viewingToday: true,
		assistant:    assistant,
	}
}

// Gate reports the current input gate state.
func (s *Session) Gate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gateLocked()
}

func (s *Session) gateLocked() string {
	switch {
	case !s.viewingToday:
		return GateDisabled
	case s.sending:
		return GateSending
	default:
		return GateIdle
	}
}

// Buffer returns a copy of the session buffer.
func (s *Session) Buffer() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.buffer))
	copy(out, s.buffer)
	return out
}

// ViewToday selects the live bucket: the display list is the deduplicated
// union of the server-reported today messages and the session buffer, and the
// input gate is re-enabled.
func (s *Session) ViewToday(server []Message, now time.Time) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewingToday = true
	return MergeToday(server, s.buffer, now)
}

// ViewDate selects a read-only historical bucket, disabling the input gate.
func (s *Session) ViewDate(bucket []Message) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewingToday = false
	return HistoricalView(bucket)
}

// Submit runs one question through the send gate. The query carries the
// submitting request's identity verbatim. Whitespace-only input and
// submissions while a historical bucket is displayed are rejected before any
// network call, and at most one submission may be in flight at a time. A
// failed assistant call appends a single fixed-text bot message; the gate
// always returns to idle. The returned list is the updated today view.
func (s *Session) Submit(ctx context.Context, query AskQuery, server []Message, now time.Time) ([]Message, error) {
	query.Question = strings.TrimSpace(query.Question)

	s.mu.Lock()
	if query.Question == "" {
		s.mu.Unlock()
		return nil, ErrEmptyQuestion
	}
	if !s.viewingToday {
		s.mu.Unlock()
		return nil, ErrViewingHistory
	}
	if s.sending {
		s.mu.Unlock()
		return nil, ErrRequestInFlight
	}
	s.sending = true
	s.buffer = append(s.buffer, Message{
		Sender:    SenderUser,
		Text:      query.Question,
		Timestamp: now.Format(time.RFC3339),
	})
	s.mu.Unlock()

	reply, err := s.assistant.Ask(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sending = false

	text := reply
	if err != nil {
		text = FailureText
	}
	s.buffer = append(s.buffer, Message{
		Sender:    SenderBot,
		Text:      text,
		Timestamp: now.Format(time.RFC3339),
	})

	return MergeToday(server, s.buffer, now), nil
}
