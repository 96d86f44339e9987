package model

type UserProfile struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
	UserBio     string `json:"user_bio"`
	Followers   int64  `json:"followers"`
	Following   int64  `json:"following"`
}

// IdentitySession carries the authenticated identity decoded from an access
// token. It is created by the auth middleware and passed down explicitly;
// nothing in the service reads identity from ambient state.
type IdentitySession struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}
