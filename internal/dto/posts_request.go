package dto

import "github.com/google/uuid"

type CreatePostPhoto struct {
	CDNURL string    `json:"cdn_url" binding:"required,url"`
	UUID   uuid.UUID `json:"uuid" binding:"required"`
}

type CreatePostRequest struct {
	Caption string            `json:"caption" binding:"required,min=1"`
	Photos  []CreatePostPhoto `json:"photos" binding:"required,min=1,dive"`
}
