package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order category prefixes. The single letter is the namespace for sequence
// numbering; display labels live in the i18n catalog.
const (
	PrefixTransport     = "M" // μεταφορά
	PrefixInstallation  = "T" // τοποθέτηση
	PrefixPickup        = "Π" // παραλαβή
	PrefixRetail        = "Κ" // κατάστημα
	PrefixSpecialClient = "A" // συνεργάτης
)

// OrderPrefixes lists every valid category prefix in display order.
var OrderPrefixes = []string{PrefixTransport, PrefixInstallation, PrefixPickup, PrefixRetail, PrefixSpecialClient}

// ValidPrefix reports whether p is one of the known category prefixes.
func ValidPrefix(p string) bool {
	for _, known := range OrderPrefixes {
		if p == known {
			return true
		}
	}
	return false
}

// Order statuses, canonical internal values. Localized labels via i18n.
const (
	StatusNew          = "new"
	StatusInProduction = "in_production"
	StatusCompleted    = "completed"
	StatusDelivered    = "delivered"
)

// OrderStatuses lists every canonical status.
var OrderStatuses = []string{StatusNew, StatusInProduction, StatusCompleted, StatusDelivered}

// ValidStatus reports whether s is a canonical order status.
func ValidStatus(s string) bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Order is one customer request for fabricated goods. The ledger is
// append-only: there is deliberately no soft-delete column and no delete
// path anywhere in the codebase.
type Order struct {
	ID          uint            `gorm:"primaryKey"`
	OrderCode   string          `gorm:"size:20;not null;uniqueIndex"` // e.g. M-0001
	Prefix      string          `gorm:"size:4;not null;index"`
	Customer    string          `gorm:"not null"`
	Address     string
	Phone       string          `gorm:"size:40"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Advance     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// Balance is never the source of truth; it is reconciled from
	// price - advance at startup when NULL and recomputed on every read.
	Balance   decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	Status    string              `gorm:"size:20;not null;default:'new'"`
	Deadline  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	Lines []ProductLine `gorm:"foreignKey:OrderCode;references:OrderCode"`
}

func (Order) TableName() string { return "orders" }

// OutstandingBalance recomputes price - advance; stored balance is ignored.
func (o *Order) OutstandingBalance() decimal.Decimal {
	return o.Price.Sub(o.Advance)
}
