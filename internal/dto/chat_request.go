package dto

type SendMessageRequest struct {
	Text string `json:"text" binding:"required,min=1"`
}
