package models

import "time"

type Follow struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	FollowerID  string `gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair;index"`
	FollowingID string `gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair;index"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (Follow) TableName() string {
	return "follows"
}
