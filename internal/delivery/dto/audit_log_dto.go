package dto

import (
	"time"

	"github.com/google/uuid"
)

// Response DTOs

type AuditLogResponse struct {
	ID         int64                  `json:"id"`
	ActorID    *uuid.UUID             `json:"actor_id,omitempty"`
	ActorName  string                 `json:"actor_name,omitempty"`
	Action     string                 `json:"action"`
	EntityKind string                 `json:"entity_kind"`
	EntityID   string                 `json:"entity_id"`
	Changes    map[string]interface{} `json:"changes,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}
