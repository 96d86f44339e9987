package model

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	PhotoURL  string    `json:"photo_url"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
