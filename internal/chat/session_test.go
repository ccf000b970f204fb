package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testWaitTimeout = 2 * time.Second
	testWaitTick    = 10 * time.Millisecond
)

type fakeAssistant struct {
	mu        sync.Mutex
	calls     int
	lastQuery AskQuery
	reply     string
	err       error
	block     chan struct{}
}

func (f *fakeAssistant) Ask(ctx context.Context, query AskQuery) (string, error) {
	f.mu.Lock()
	f.calls++
	f.lastQuery = query
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return f.reply, f.err
}

func (f *fakeAssistant) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeAssistant) last() AskQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery
}

func ask(userID, question string) AskQuery {
	return AskQuery{UserID: userID, Question: question}
}

func TestSubmitAppendsExchange(t *testing.T) {
	fake := &fakeAssistant{reply: "Hello"}
	session := NewSession(fake)

	merged, err := session.Submit(context.Background(), ask("user123", "안녕하세요"), nil, testNow)
	require.NoError(t, err)

	require.Len(t, merged, 3)
	assert.Equal(t, "안녕하세요", merged[1].Text)
	assert.Equal(t, SenderUser, merged[1].Sender)
	assert.Equal(t, "Hello", merged[2].Text)
	assert.Equal(t, SenderBot, merged[2].Sender)
	// Both sides of the exchange are stamped with the submission clock.
	assert.Equal(t, testNow.Format(time.RFC3339), merged[1].Timestamp)
	assert.Equal(t, testNow.Format(time.RFC3339), merged[2].Timestamp)
	assert.Equal(t, GateIdle, session.Gate())
}

func TestSubmitForwardsQueryIdentity(t *testing.T) {
	fake := &fakeAssistant{reply: "ok"}
	cache := NewSessionCache(4)

	// The session is created by an identity-free view first, as happens when
	// the logs are loaded before the first question.
	session := cache.Get("user123", fake)
	session.ViewToday(nil, testNow)

	dept := 7
	_, err := session.Submit(context.Background(), AskQuery{
		UserID:       "user123",
		Question:     "출장 규정?",
		DepartmentID: &dept,
		Name:         "홍길동",
	}, nil, testNow)
	require.NoError(t, err)

	sent := fake.last()
	assert.Equal(t, "user123", sent.UserID)
	assert.Equal(t, "출장 규정?", sent.Question)
	require.NotNil(t, sent.DepartmentID)
	assert.Equal(t, 7, *sent.DepartmentID)
	assert.Equal(t, "홍길동", sent.Name)
}

func TestSubmitRejectsWhitespaceWithoutNetworkCall(t *testing.T) {
	fake := &fakeAssistant{reply: "unused"}
	session := NewSession(fake)

	_, err := session.Submit(context.Background(), ask("user123", "   \t\n"), nil, testNow)

	assert.ErrorIs(t, err, ErrEmptyQuestion)
	assert.Zero(t, fake.callCount())
	assert.Empty(t, session.Buffer())
}

func TestSubmitRejectedWhileViewingHistory(t *testing.T) {
	fake := &fakeAssistant{reply: "unused"}
	session := NewSession(fake)

	session.ViewDate(nil)
	assert.Equal(t, GateDisabled, session.Gate())

	_, err := session.Submit(context.Background(), ask("user123", "a real question"), nil, testNow)
	assert.ErrorIs(t, err, ErrViewingHistory)
	assert.Zero(t, fake.callCount())

	// Reselecting today re-enables the gate.
	session.ViewToday(nil, testNow)
	assert.Equal(t, GateIdle, session.Gate())
}

func TestSubmitFailureAppendsSingleFailureMessage(t *testing.T) {
	fake := &fakeAssistant{err: errors.New("connection refused")}
	session := NewSession(fake)

	merged, err := session.Submit(context.Background(), ask("user123", "질문"), nil, testNow)
	require.NoError(t, err)

	failures := 0
	for _, m := range merged {
		if m.Sender == SenderBot && m.Text == FailureText {
			failures++
		}
	}
	assert.Equal(t, 1, failures)
	assert.Equal(t, GateIdle, session.Gate(), "gate must return to idle after a failure")
}

func TestSubmitBlocksConcurrentSubmissions(t *testing.T) {
	fake := &fakeAssistant{reply: "slow", block: make(chan struct{})}
	session := NewSession(fake)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := session.Submit(context.Background(), ask("user123", "first"), nil, testNow)
		assert.NoError(t, err)
	}()

	// Wait for the first submission to take the sending state.
	require.Eventually(t, func() bool {
		return session.Gate() == GateSending
	}, testWaitTimeout, testWaitTick)

	_, err := session.Submit(context.Background(), ask("user123", "second"), nil, testNow)
	assert.ErrorIs(t, err, ErrRequestInFlight)

	close(fake.block)
	<-done
	assert.Equal(t, GateIdle, session.Gate())
	assert.Equal(t, 1, fake.callCount())
}

func TestBufferClearedOnlyByReset(t *testing.T) {
	fake := &fakeAssistant{reply: "ok"}
	cache := NewSessionCache(4)

	session := cache.Get("user123", fake)
	_, err := session.Submit(context.Background(), ask("user123", "질문"), nil, testNow)
	require.NoError(t, err)
	require.Len(t, session.Buffer(), 2)

	// Switching views never clears the buffer.
	session.ViewDate(nil)
	session.ViewToday(nil, testNow)
	assert.Len(t, session.Buffer(), 2)

	cache.Reset("user123")
	fresh := cache.Get("user123", fake)
	assert.Empty(t, fresh.Buffer())
}
