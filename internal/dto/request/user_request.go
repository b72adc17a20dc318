package request

// RegisterRequest creates an account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=120"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Gender   string `json:"gender" binding:"omitempty,oneof=male female"`
}

// LoginRequest authenticates with email and password.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest exchanges a refresh token for a new access token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest changes any subset of the caller's profile.
// Nil fields are left untouched.
type UpdateProfileRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=100"`
	ProfilePic      *string `json:"profile_pic"`
	Phone           *string `json:"phone" binding:"omitempty,max=20"`
	Job             *string `json:"job" binding:"omitempty,max=100"`
	Bio             *string `json:"bio"`
	Location        *string `json:"location" binding:"omitempty,max=100"`
	Gender          *string `json:"gender" binding:"omitempty,oneof=male female"`
	PhonePrivate    *bool   `json:"phone_private"`
	JobPrivate      *bool   `json:"job_private"`
	BioPrivate      *bool   `json:"bio_private"`
	LocationPrivate *bool   `json:"location_private"`
}
