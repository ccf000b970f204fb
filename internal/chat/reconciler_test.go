package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func ts(hour, min, sec int) string {
	return time.Date(2024, 1, 1, hour, min, sec, 0, time.UTC).Format(time.RFC3339)
}

func TestMergeTodayEmptyInputs(t *testing.T) {
	merged := MergeToday(nil, nil, testNow)

	require.Len(t, merged, 1)
	assert.Equal(t, SenderBot, merged[0].Sender)
	assert.Equal(t, GreetingText, merged[0].Text)
	assert.Empty(t, merged[0].Timestamp)
}

func TestMergeTodaySortsAscending(t *testing.T) {
	server := []Message{
		{Sender: SenderBot, Text: "second", Timestamp: ts(10, 0, 0)},
		{Sender: SenderUser, Text: "first", Timestamp: ts(9, 0, 0)},
	}
	buffer := []Message{
		{Sender: SenderUser, Text: "third", Timestamp: ts(11, 0, 0)},
	}

	merged := MergeToday(server, buffer, testNow)

	var last time.Time
	for _, m := range merged {
		parsed, ok := parseTimestamp(m.Timestamp)
		if !ok {
			continue // untimestamped messages sort first
		}
		assert.False(t, parsed.Before(last), "message %q out of order", m.Text)
		last = parsed
	}
	require.Len(t, merged, 4)
	assert.Equal(t, GreetingText, merged[0].Text)
	assert.Equal(t, "first", merged[1].Text)
	assert.Equal(t, "second", merged[2].Text)
	assert.Equal(t, "third", merged[3].Text)
}

func TestMergeTodayRemovesDuplicates(t *testing.T) {
	// The same exchange reported by the history fetch and still sitting in
	// the session buffer must appear once.
	entry := Message{Sender: SenderBot, Text: "Hi", Timestamp: "2024-01-01T00:00:00Z"}

	merged := MergeToday([]Message{entry}, []Message{entry}, testNow)

	count := 0
	for _, m := range merged {
		if m.Sender == entry.Sender && m.Text == entry.Text && m.Timestamp == entry.Timestamp {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestMergeTodayDuplicateComparisonIsMillisecondResolution(t *testing.T) {
	a := Message{Sender: SenderUser, Text: "hi", Timestamp: "2024-01-01T10:00:00.100Z"}
	b := Message{Sender: SenderUser, Text: "hi", Timestamp: "2024-01-01T10:00:00.200Z"}

	merged := MergeToday([]Message{a}, []Message{b}, testNow)
	assert.Len(t, merged, 3) // greeting + both: timestamps differ at ms resolution
}

func TestMergeTodayDropsOtherDates(t *testing.T) {
	server := []Message{
		{Sender: SenderUser, Text: "yesterday", Timestamp: "2023-12-31T23:59:00Z"},
		{Sender: SenderUser, Text: "today", Timestamp: ts(9, 30, 0)},
	}

	merged := MergeToday(server, nil, testNow)

	require.Len(t, merged, 2)
	assert.Equal(t, GreetingText, merged[0].Text)
	assert.Equal(t, "today", merged[1].Text)
}

func TestMergeTodayKeepsUntimestampedMessages(t *testing.T) {
	// Messages without a timestamp sort first and are exempt from duplicate
	// comparison.
	server := []Message{
		{Sender: SenderBot, Text: "no clock"},
		{Sender: SenderUser, Text: "later", Timestamp: ts(10, 0, 0)},
	}

	merged := MergeToday(server, nil, testNow)

	require.Len(t, merged, 3)
	assert.Empty(t, merged[0].Timestamp)
	assert.Empty(t, merged[1].Timestamp)
	assert.Equal(t, "later", merged[2].Text)
}

func TestHistoricalViewPrependsGreetingAndSorts(t *testing.T) {
	bucket := []Message{
		{Sender: SenderBot, Text: "b", Timestamp: "2023-12-30T11:00:00Z"},
		{Sender: SenderUser, Text: "a", Timestamp: "2023-12-30T10:00:00Z"},
	}

	view := HistoricalView(bucket)

	require.Len(t, view, 3)
	assert.Equal(t, GreetingText, view[0].Text)
	assert.Equal(t, "a", view[1].Text)
	assert.Equal(t, "b", view[2].Text)
}
