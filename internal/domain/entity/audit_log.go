package entity

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions
const (
	AuditActionCreate       = "CREATE"
	AuditActionUpdate       = "UPDATE"
	AuditActionDelete       = "DELETE"
	AuditActionStatusChange = "STATUS_CHANGE"
)

// Entity kinds recorded in the audit trail
const (
	EntityKindUser           = "user"
	EntityKindPatient        = "patient"
	EntityKindDoctor         = "doctor"
	EntityKindRepresentative = "representative"
	EntityKindBranch         = "branch"
	EntityKindScan           = "scan"
	EntityKindStockItem      = "stockItem"
	EntityKindAppointment    = "appointment"
	EntityKindExpense        = "expense"
)

// AuditLog is an append-only record of a mutating operation. Records are
// never updated or deleted through the public API.
type AuditLog struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorID    *uuid.UUID `gorm:"type:uuid;index" json:"actor_id,omitempty"`
	Action     string     `gorm:"type:varchar(30);not null;index" json:"action"`
	EntityKind string     `gorm:"type:varchar(50);not null;index" json:"entity_kind"`
	EntityID   string     `gorm:"type:varchar(64);not null;index" json:"entity_id"`
	Changes    JSON       `gorm:"type:jsonb" json:"changes,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
