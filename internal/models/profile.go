package models

// Profile holds display data for an identity; its ID equals the user's ID.
type Profile struct {
	BaseModel
	FullName  string  `gorm:"size:255;not null" json:"full_name"`
	AvatarURL *string `gorm:"size:512" json:"avatar_url"`
	Phone     *string `gorm:"size:32" json:"phone"`
}

// DisplayName falls back to "User" when no name was recorded.
func (p *Profile) DisplayName() string {
	if p == nil || p.FullName == "" {
		return "User"
	}
	return p.FullName
}
