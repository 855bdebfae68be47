package models

import "time"

const (
	AuditEntityChallenge = "challenge"
	AuditEntityDeposit   = "deposit"
)

const (
	AuditActionCreated      = "created"
	AuditActionUpdated      = "updated"
	AuditActionDeleted      = "deleted"
	AuditActionLargeDeposit = "large_deposit"
)

type AuditLog struct {
	ID         uint              `gorm:"primaryKey"`
	UserID     string            `gorm:"not null;default:'';index:idx_audit_logs_user"`
	Action     string            `gorm:"not null"`
	EntityType string            `gorm:"not null"`
	EntityID   uint              `gorm:"not null;default:0"`
	Amount     *int
	Metadata   map[string]string `gorm:"serializer:json"`
	CreatedAt  time.Time         `gorm:"not null;index:idx_audit_logs_user"`
}
