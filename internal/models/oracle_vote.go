package models

import "time"

const (
	OracleSideBullish = "bullish"
	OracleSideBearish = "bearish"
)

// OracleVote is one user's daily sentiment vote. PollDate is the UTC day the
// vote belongs to; one row per user per day.
type OracleVote struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	UserID   string `gorm:"type:uuid;not null;uniqueIndex:idx_oracle_user_day"`
	PollDate string `gorm:"type:date;not null;uniqueIndex:idx_oracle_user_day;index"`
	Side     string `gorm:"type:varchar(10);not null"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (OracleVote) TableName() string {
	return "oracle_votes"
}
