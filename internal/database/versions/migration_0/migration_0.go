package migration_0

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Types are copied here so later schema changes don't rewrite history.

type ChatLogEntry struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"index:idx_chat_log_user_bucket;not null"`
	Bucket    string `gorm:"index:idx_chat_log_user_bucket;not null"`
	Sender    string `gorm:"size:20;not null"`
	Content   string
	Timestamp string
	Payload   datatypes.JSON
}

func Migration(txn *gorm.DB) error {
	return txn.AutoMigrate(&ChatLogEntry{})
}
