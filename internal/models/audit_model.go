package models

import (
	"encoding/json"
	"time"
)

// AuditLog is an append-only record of a mutating action. Rows are
// never updated or deleted and outlive the entities they reference.
type AuditLog struct {
	ID        int64           `db:"id" json:"id"`
	UserID    *int64          `db:"user_id" json:"user_id,omitempty"`
	Action    string          `db:"action" json:"action"`
	Details   json.RawMessage `db:"details" json:"details"`
	IPAddress string          `db:"ip_address" json:"ip_address"`
	Resource  string          `db:"resource" json:"resource,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
