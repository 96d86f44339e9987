package model

import (
	"time"

	"github.com/google/uuid"
)

const MaxTweetLength = 280

type Tweet struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	PhotoURL  string    `json:"photo_url"`
	Content   string    `json:"content"`
	Likes     int64     `json:"likes"`
	UserLikes []string  `json:"user_likes"`
	CreatedAt time.Time `json:"created_at"`
}
