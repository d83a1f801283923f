package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog is append-only; one row per mutating admin call.
type AuditLog struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ActorID      string         `gorm:"not null;index;column:actor_id" json:"actor_id"`
	Action       string         `gorm:"not null;column:action" json:"action"`
	ResourceType string         `gorm:"not null;index;column:resource_type" json:"resource_type"`
	ResourceID   string         `gorm:"column:resource_id" json:"resource_id"`
	Metadata     datatypes.JSON `gorm:"column:metadata" json:"metadata"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }
