package models

import "time"

// Referral credits ReferrerID for bringing ReferredID in. The unique index on
// ReferredID makes a user claimable exactly once.
type Referral struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	ReferrerID string `gorm:"type:uuid;not null;index"`
	ReferredID string `gorm:"type:uuid;not null;uniqueIndex"`
	Code       string `gorm:"type:varchar(12);not null;index"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (Referral) TableName() string {
	return "referrals"
}
