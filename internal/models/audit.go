package models

import "time"

// AuditLog keeps append-only trails for mutations that change recorded
// facts after the fact: status changes, payments, and delivery receipt
// corrections (the true→false reset path).
type AuditLog struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   // who performed the change; 0 when unattributed
	EntityType string // "order", "delivery", "payment"
	EntityRef  string `gorm:"size:40"` // order code or numeric id as text
	Action     string // e.g. "status_change", "payment", "receipt_correction"
	OldValue   string
	NewValue   string
	CreatedAt  time.Time
}

func (AuditLog) TableName() string { return "audit_logs" }
