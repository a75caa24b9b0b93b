package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records one advance installment against an order. The order's
// Advance column is the running total; payments are the traceable series.
type Payment struct {
	ID        uint            `gorm:"primaryKey"`
	OrderCode string          `gorm:"size:20;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Note      string
	CreatedAt time.Time
}

func (Payment) TableName() string { return "payments" }
