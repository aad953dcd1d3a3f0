package models

import (
	"time"
)

// DefaultConversationTitle is applied when a conversation is created
// without an explicit title.
const DefaultConversationTitle = "New Conversation"

// Conversation groups the messages of one chat session. Deleting a
// conversation only flips IsActive; the row and its messages stay in
// the database.
type Conversation struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title" gorm:"type:varchar(500);not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID"`
}

func (Conversation) TableName() string { return "conversations" }

// ConversationWithMessages is a read-only snapshot of a conversation and
// its full ordered message list. Timestamps are serialized as RFC 3339
// strings so the payload is stable regardless of store/driver precision.
type ConversationWithMessages struct {
	ID        uint              `json:"id"`
	Title     string            `json:"title"`
	UserID    uint              `json:"user_id"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
	IsActive  bool              `json:"is_active"`
	Messages  []MessageResponse `json:"messages"`
}
