package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	NotificationKindFollow   = "follow"
	NotificationKindComment  = "comment"
	NotificationKindReferral = "referral"
)

type Notification struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement"`
	UserID string `gorm:"type:uuid;not null;index"`

	Kind  string         `gorm:"type:varchar(20);not null"`
	Title string         `gorm:"type:varchar(200);not null"`
	Body  string         `gorm:"type:text"`
	Data  datatypes.JSON `gorm:"type:jsonb"`

	Read bool `gorm:"not null;default:false;index"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (Notification) TableName() string {
	return "notifications"
}
