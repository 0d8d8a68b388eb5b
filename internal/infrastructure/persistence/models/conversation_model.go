package models

import "time"

// ConversationModel is the database conversation header. Transcripts live in
// the messages table, one row per message.
type ConversationModel struct {
	ID        string `gorm:"primaryKey;size:64"`
	OwnerID   string `gorm:"index;size:64;not null"`
	Type      string `gorm:"size:32;not null"` // general, coaching, support
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name.
func (ConversationModel) TableName() string {
	return "conversations"
}

// MessageModel is one transcript row. The auto-increment Seq primary key is
// the append order: concurrent appends interleave but never overwrite.
type MessageModel struct {
	Seq            int64  `gorm:"primaryKey;autoIncrement"`
	ID             string `gorm:"uniqueIndex;size:64;not null"`
	ConversationID string `gorm:"index;size:64;not null"`
	Role           string `gorm:"size:16;not null"` // user, assistant
	Content        string `gorm:"type:text;not null"`
	ModelUsed      string `gorm:"size:64"`
	TokensUsed     int
	CreatedAt      time.Time
}

// TableName overrides the table name.
func (MessageModel) TableName() string {
	return "messages"
}
