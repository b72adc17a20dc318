package respond

// ProfileRespond is a profile as seen by a particular viewer.
// Suppressed values are null; every key is always present.
type ProfileRespond struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	ProfilePic *string `json:"profile_pic"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Job        *string `json:"job"`
	Bio        *string `json:"bio"`
	Location   *string `json:"location"`

	PhonePrivate    bool `json:"phone_private"`
	JobPrivate      bool `json:"job_private"`
	BioPrivate      bool `json:"bio_private"`
	LocationPrivate bool `json:"location_private"`

	IsOwn       bool `json:"is_own"`
	IsConnected bool `json:"is_connected"`
}
