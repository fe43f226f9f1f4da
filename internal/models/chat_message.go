package models

import "time"

// Chat speaker roles as stored in transcripts.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single turn of a persisted chat transcript.
type ChatMessage struct {
	Username  string    `bson:"username" json:"username"`
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
