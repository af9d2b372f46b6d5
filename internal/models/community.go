package models

import "time"

const (
	SentimentBullish = "bullish"
	SentimentBearish = "bearish"
	SentimentNeutral = "neutral"
)

type CommunityPost struct {
	ID     string `gorm:"type:uuid;primaryKey"`
	UserID string `gorm:"type:uuid;not null;index"`

	// Author display fields are denormalized onto the row, matching how the
	// forum reads them back in one query.
	Username    string `gorm:"type:varchar(50);not null"`
	AvatarEmoji string `gorm:"type:varchar(16)"`

	Ticker    *string `gorm:"type:varchar(16);index"`
	Title     string  `gorm:"type:varchar(200);not null"`
	Content   string  `gorm:"type:text;not null"`
	Sentiment string  `gorm:"type:varchar(10);not null;default:'neutral'"`

	Likes        int `gorm:"not null;default:0;index"`
	CommentCount int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (CommunityPost) TableName() string {
	return "community_posts"
}

type CommunityComment struct {
	ID     string `gorm:"type:uuid;primaryKey"`
	PostID string `gorm:"type:uuid;not null;index"`
	UserID string `gorm:"type:uuid;not null;index"`

	Username    string `gorm:"type:varchar(50);not null"`
	AvatarEmoji string `gorm:"type:varchar(16)"`

	Content string `gorm:"type:text;not null"`
	Likes   int    `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (CommunityComment) TableName() string {
	return "community_comments"
}
