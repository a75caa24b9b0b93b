package models

import "time"

// Supplier is a material vendor. Name is the natural key: inserting the
// same name twice resolves to the existing row (first write wins).
type Supplier struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null;uniqueIndex"`
	Contact   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Supplier) TableName() string { return "suppliers" }
