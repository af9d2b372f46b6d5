package models

import "time"

// Profile mirrors the identity provider's user id; rows are provisioned on the
// first authenticated write.
type Profile struct {
	ID    string `gorm:"type:uuid;primaryKey"`
	Email string `gorm:"type:varchar(255);not null;uniqueIndex"`

	DisplayName  string `gorm:"type:varchar(50);not null;uniqueIndex"`
	AvatarEmoji  string `gorm:"type:varchar(16);not null;default:'🦍'"`
	Bio          string `gorm:"type:varchar(280)"`
	ReferralCode string `gorm:"type:varchar(12);not null;uniqueIndex"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}
