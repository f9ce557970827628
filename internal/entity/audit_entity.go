package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records a corpus mutation or an answered assistant turn.
type AuditLog struct {
	Id        uuid.UUID
	Action    string
	Details   map[string]interface{}
	CreatedAt time.Time
}
