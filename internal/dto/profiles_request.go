package dto

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	PhotoURL    *string `json:"photo_url"`
	UserBio     *string `json:"user_bio"`
}
