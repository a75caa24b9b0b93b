package models

import "time"

// Delivery links one order to one supplier and tracks material receipt.
// ReceivedDate is set exactly on the false→true transition and cleared on
// the (audited) true→false correction. One delivery per order, enforced by
// the unique index on OrderCode.
type Delivery struct {
	ID               uint     `gorm:"primaryKey"`
	OrderCode        string   `gorm:"size:20;not null;uniqueIndex"`
	SupplierID       uint     `gorm:"not null;index"`
	Supplier         Supplier `gorm:"foreignKey:SupplierID"`
	MaterialReceived bool     `gorm:"not null;default:false"`
	ReceivedDate     *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Delivery) TableName() string { return "deliveries" }
