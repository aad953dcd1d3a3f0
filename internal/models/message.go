package models

import (
	"time"
)

// MessageType identifies the sender of a message.
type MessageType string

const (
	MessageTypeUser MessageType = "user"
	MessageTypeBot  MessageType = "bot"
)

// MaxMessageContentLength is the hard cap on message content.
const MaxMessageContentLength = 5000

// Message is a single utterance within a conversation. ResponseTimeMS and
// ModelUsed are only set on bot messages produced by the chat service.
// Ordering within a conversation is by CreatedAt with the auto-increment
// ID as tie-breaker, so insertion order survives coarse clock resolution.
type Message struct {
	ID             uint        `json:"id" gorm:"primaryKey;autoIncrement"`
	Content        string      `json:"content" gorm:"type:varchar(5000);not null"`
	MessageType    MessageType `json:"message_type" gorm:"type:varchar(16);not null;default:'user'"`
	ConversationID uint        `json:"conversation_id" gorm:"not null;index:idx_conversation_created,priority:1"`
	CreatedAt      time.Time   `json:"created_at" gorm:"autoCreateTime;index:idx_conversation_created,priority:2"`
	ResponseTimeMS *int        `json:"response_time_ms,omitempty"`
	ModelUsed      *string     `json:"model_used,omitempty" gorm:"type:varchar(100)"`

	Conversation Conversation `json:"-" gorm:"foreignKey:ConversationID;references:ID"`
}

func (Message) TableName() string { return "messages" }

// MessageResponse is the snapshot form of a message used in composite
// conversation views.
type MessageResponse struct {
	ID             uint        `json:"id"`
	Content        string      `json:"content"`
	MessageType    MessageType `json:"message_type"`
	ConversationID uint        `json:"conversation_id"`
	CreatedAt      string      `json:"created_at"`
	ResponseTimeMS *int        `json:"response_time_ms,omitempty"`
	ModelUsed      *string     `json:"model_used,omitempty"`
}
