package dto

import "github.com/google/uuid"

type CreateCommentRequest struct {
	PostID  uuid.UUID `json:"post_id" binding:"required"`
	Comment string    `json:"comment" binding:"required,min=1"`
}
