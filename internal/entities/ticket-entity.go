package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type Ticket struct {
	ID           uint64      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Category     string      `json:"category"`
	Priority     string      `json:"priority"`
	Status       string      `json:"status"`
	ReportedByID uint64      `json:"reported_by_id"`
	AssignedToID null.Uint64 `json:"assigned_to_id"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	// ResolvedAt is set on the transition into RESOLVED and cleared when
	// the status moves away from it.
	ResolvedAt null.Time `json:"resolved_at"`
}
