package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Instrument and position values stored on a flex row.
const (
	InstrumentStock  = "stock"
	InstrumentOption = "option"

	PositionLong  = "long"
	PositionShort = "short"

	TradeStatusOpen   = "open"
	TradeStatusClosed = "closed"
)

// Flex is an append-only trade snapshot. Rows are never updated or deleted;
// the P&L columns are the values computed at creation time.
type Flex struct {
	ID     string `gorm:"type:uuid;primaryKey"`
	UserID string `gorm:"type:uuid;not null;index"`

	Ticker     string `gorm:"type:varchar(16);not null;index"`
	Instrument string `gorm:"type:varchar(10);not null;default:'stock'"`
	Position   string `gorm:"type:varchar(10);not null"`

	EntryPrice decimal.Decimal `gorm:"type:numeric(20,8);not null;default:0"`
	ExitPrice  decimal.Decimal `gorm:"type:numeric(20,8);not null;default:0"`
	Quantity   decimal.Decimal `gorm:"type:numeric(20,8);not null;default:0"`
	Status     string          `gorm:"type:varchar(10);not null;default:'closed'"`

	OptionStrike *decimal.Decimal `gorm:"type:numeric(20,8)"`
	OptionExpiry *time.Time       `gorm:"type:date"`
	OptionSide   *string          `gorm:"type:varchar(4)"`

	PnLPercent decimal.Decimal  `gorm:"column:pnl_percent;type:numeric(20,8);not null;default:0;index"`
	PnLAmount  *decimal.Decimal `gorm:"column:pnl_amount;type:numeric(30,8)"`

	Emoji *string `gorm:"type:varchar(16)"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (Flex) TableName() string {
	return "flexes"
}
