package respond

// PublicUserRespond is the identity any user may see about another.
type PublicUserRespond struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	ProfilePic *string `json:"profile_pic"`
}

// AccountRespond is the caller's own account.
type AccountRespond struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Gender    string `json:"gender,omitempty"`
	CreatedAt string `json:"created_at"`
}

// LoginRespond carries the account and its token pair.
type LoginRespond struct {
	AccountRespond
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenRespond is a fresh token pair.
type TokenRespond struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
