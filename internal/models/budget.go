package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget caps expense spending for one category over [StartDate, EndDate].
// A nil EndDate leaves the window open-ended.
type Budget struct {
	ID         uint            `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time       `json:"created_at"`
	UserID     uint            `gorm:"index;not null" json:"user_id"`
	CategoryID uint            `gorm:"index;not null" json:"category_id"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	StartDate  Date            `gorm:"not null" json:"start_date"`
	EndDate    *Date           `json:"end_date,omitempty"`
}
