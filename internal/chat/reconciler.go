package chat

import "time"

// User-facing texts ported from the browser client.
const (
	GreetingText = "무엇을 도와드릴까요?"
	FailureText  = "응답을 가져오는 데 실패했습니다."
)

// TodayBucket is the sentinel key for the live, writable bucket.
const TodayBucket = "today"

func greeting() Message {
	return Message{Sender: SenderBot, Text: GreetingText}
}

// MergeToday combines the server-reported messages for today with the current
// session buffer into a single display list: greeting first, duplicates (same
// sender, text and millisecond timestamp) removed, entries from other calendar
// dates dropped, the rest stable-sorted ascending by timestamp. Messages
// without a timestamp sort first and are never considered duplicates. Empty
// inputs yield just the greeting.
func MergeToday(server, buffer []Message, now time.Time) []Message {
	combined := make([]Message, 0, len(server)+len(buffer)+1)
	combined = append(combined, greeting())
	combined = append(combined, server...)
	combined = append(combined, buffer...)

	seen := make(map[string]struct{}, len(combined))
	merged := combined[:0]
	for _, m := range combined {
		if key, ok := dedupKey(m); ok {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if t, _ := parseTimestamp(m.Timestamp); !sameCalendarDate(t, now) {
				continue
			}
		}
		merged = append(merged, m)
	}

	out := make([]Message, len(merged))
	copy(out, merged)
	sortMessages(out)
	return out
}

// HistoricalView renders a stored bucket: sorted ascending with the greeting
// prepended. Historical views are immutable snapshots and never merge with
// the session buffer.
func HistoricalView(bucket []Message) []Message {
	out := make([]Message, 0, len(bucket)+1)
	out = append(out, greeting())
	out = append(out, bucket...)
	sortMessages(out)
	return out
}
