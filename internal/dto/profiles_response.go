package dto

import "github.com/MyCircle/circle-service/internal/model"

type GetProfile struct {
	Profile     model.UserProfile `json:"profile"`
	IsFollowing bool              `json:"is_following"`
}
