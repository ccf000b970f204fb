package chat

import (
	"encoding/json"
	"sync"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"rockbot-frontend/internal/database"
)

// SQLite only supports one writer at a time, so we need a lock
// whenever we write to the database
var dbMutex sync.Mutex

// ReplaceLogs drops the cached buckets for userID and stores the freshly
// fetched ones. Called once per authenticated-user identity change; the
// cache is never mutated locally between fetches.
func ReplaceLogs(db *gorm.DB, userID string, today []Message, previousDays map[string][]Message) error {
	dbMutex.Lock()
	defer dbMutex.Unlock()

	return db.Transaction(func(txn *gorm.DB) error {
		if err := txn.Delete(&database.ChatLogEntry{}, "user_id = ?", userID).Error; err != nil {
			return err
		}

		insert := func(bucket string, messages []Message) error {
			for _, m := range messages {
				payload, err := json.Marshal(m)
				if err != nil {
					return err
				}
				entry := database.ChatLogEntry{
					UserID:    userID,
					Bucket:    bucket,
					Sender:    m.Sender,
					Content:   m.Text,
					Timestamp: m.Timestamp,
					Payload:   datatypes.JSON(payload),
				}
				if err := txn.Create(&entry).Error; err != nil {
					return err
				}
			}
			return nil
		}

		if err := insert(TodayBucket, today); err != nil {
			return err
		}
		for date, messages := range previousDays {
			if err := insert(date, messages); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetBucket returns the cached messages for one bucket, oldest first.
func GetBucket(db *gorm.DB, userID, bucket string) ([]Message, error) {
	var entries []database.ChatLogEntry
	err := db.Where("user_id = ? AND bucket = ?", userID, bucket).Order("timestamp ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(entries))
	for _, entry := range entries {
		messages = append(messages, Message{
			Sender:    entry.Sender,
			Text:      entry.Content,
			Timestamp: entry.Timestamp,
		})
	}
	return messages, nil
}

// BucketDates lists the historical bucket keys for userID, most recent first.
func BucketDates(db *gorm.DB, userID string) ([]string, error) {
	var dates []string
	err := db.Model(&database.ChatLogEntry{}).
		Where("user_id = ? AND bucket <> ?", userID, TodayBucket).
		Distinct("bucket").
		Order("bucket DESC").
		Pluck("bucket", &dates).Error
	return dates, err
}

// HasLogs reports whether any buckets are cached for userID.
func HasLogs(db *gorm.DB, userID string) (bool, error) {
	var count int64
	err := db.Model(&database.ChatLogEntry{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}
