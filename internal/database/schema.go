package database

import "gorm.io/datatypes"

// ChatLogEntry is one cached message from the assistant service's per-day
// logs. Bucket is a calendar date string, or "today" for the live bucket.
// Payload keeps the entry exactly as the assistant service reported it.
type ChatLogEntry struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"index:idx_chat_log_user_bucket;not null"`
	Bucket    string `gorm:"index:idx_chat_log_user_bucket;not null"`
	Sender    string `gorm:"size:20;not null"`
	Content   string
	Timestamp string
	Payload   datatypes.JSON
}
