package dto

import "time"

type MQProfileUpdatedMsg struct {
	UserID      string    `json:"user_id"`
	DisplayName *string   `json:"display_name"`
	PhotoURL    *string   `json:"photo_url"`
	UpdatedAt   time.Time `json:"updated_at"`
}
