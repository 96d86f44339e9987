package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	ChannelID string    `json:"channel_id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ChannelID derives the identifier of the two-party channel between a and b:
// the lexicographically greater id first, joined with an underscore. Both
// participants compute the same id regardless of who opens the chat.
func ChannelID(a, b string) string {
	if a > b {
		return a + "_" + b
	}
	return b + "_" + a
}
