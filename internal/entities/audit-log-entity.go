package entities

import "time"

// AuditLogEntry is the append-only record of an administrative action.
// Details carries free-form before/after snapshots serialized as JSON.
type AuditLogEntry struct {
	ID          string                 `json:"id"`
	Action      string                 `json:"action"`
	EntityType  string                 `json:"entity_type"`
	EntityID    string                 `json:"entity_id"`
	ActorUserID uint64                 `json:"actor_user_id"`
	ActorEmail  string                 `json:"actor_email"`
	Details     map[string]interface{} `json:"details"`
	IP          string                 `json:"ip"`
	UserAgent   string                 `json:"user_agent"`
	CreatedAt   time.Time              `json:"created_at"`
}
