package chat

import (
	"fmt"
	"sort"
	"time"
)

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is one chat entry as displayed to the user. Timestamp is an
// ISO-8601 instant; it is empty for the synthetic greeting message.
type Message struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// parseTimestamp accepts RFC 3339 with or without sub-second digits. The
// assistant service emits both depending on which log path produced the entry.
func parseTimestamp(ts string) (time.Time, bool) {
	if ts == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// dedupKey identifies a message at millisecond resolution. Messages without a
// parseable timestamp are exempt from duplicate comparison and report ok=false.
func dedupKey(m Message) (string, bool) {
	t, ok := parseTimestamp(m.Timestamp)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s|%s|%d", m.Sender, m.Text, t.UnixMilli()), true
}

// sortMessages stable-sorts ascending by timestamp. Messages lacking a
// timestamp are treated as earliest.
func sortMessages(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		ti, iok := parseTimestamp(messages[i].Timestamp)
		tj, jok := parseTimestamp(messages[j].Timestamp)
		if !iok || !jok {
			return !iok && jok
		}
		return ti.Before(tj)
	})
}

func sameCalendarDate(t, now time.Time) bool {
	y1, m1, d1 := t.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
