package dto

type CreateTweetRequest struct {
	Content string `json:"content" binding:"required,min=1,max=280"`
}
