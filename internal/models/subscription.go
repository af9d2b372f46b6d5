package models

import "time"

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
	SubscriptionStatusExpired  = "expired"

	PlanFree    = "free"
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
)

// Subscription is the paid-entitlement row upserted by the payment webhook.
type Subscription struct {
	UserID string `gorm:"type:uuid;primaryKey"`

	CustomerID     string `gorm:"type:varchar(100);index"`
	SubscriptionID string `gorm:"type:varchar(100)"`

	Status           string    `gorm:"type:varchar(20);not null;default:'active';index"`
	Plan             string    `gorm:"type:varchar(20);not null;default:'monthly'"`
	CurrentPeriodEnd time.Time `gorm:"type:timestamptz;not null;index"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
