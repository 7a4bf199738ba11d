package models

import "time"

// Rôles d'un message de chat.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

type ChatMessage struct {
	ID        string    `bson:"_id" json:"id"`
	SessionID string    `bson:"session_id" json:"session_id"`
	Content   string    `bson:"content" json:"content"`
	Role      string    `bson:"role" json:"role"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}
