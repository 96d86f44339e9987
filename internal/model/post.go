package model

import (
	"time"

	"github.com/google/uuid"
)

type PhotoMeta struct {
	CDNURL string    `json:"cdn_url"`
	UUID   uuid.UUID `json:"uuid"`
}

type Post struct {
	ID        uuid.UUID   `json:"id"`
	UserID    string      `json:"user_id"`
	Username  string      `json:"username"`
	PhotoURL  string      `json:"photo_url"`
	Caption   string      `json:"caption"`
	Photos    []PhotoMeta `json:"photos"`
	Likes     int64       `json:"likes"`
	UserLikes []string    `json:"user_likes"`
	Date      time.Time   `json:"date"`
}
