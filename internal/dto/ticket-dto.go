package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type CreateTicketDTO struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required,oneof=HARDWARE SOFTWARE NETWORK ACCOUNT EMAIL PRINTER OTHER"`
	Priority    string `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH URGENT"`
}

// UpdateTicketDTO is a partial patch. Which fields are actually applied
// depends on the actor's relationship to the ticket; disallowed fields
// are ignored.
type UpdateTicketDTO struct {
	Title        *string `json:"title" validate:"omitempty,max=200"`
	Description  *string `json:"description"`
	Category     *string `json:"category" validate:"omitempty,oneof=HARDWARE SOFTWARE NETWORK ACCOUNT EMAIL PRINTER OTHER"`
	Status       *string `json:"status" validate:"omitempty,oneof=OPEN IN_PROGRESS RESOLVED CLOSED CANCELLED"`
	Priority     *string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	AssignedToID *uint64 `json:"assigned_to_id"`
}

type TicketFilterDTO struct {
	Status   string `query:"status"`
	Category string `query:"category"`
	Priority string `query:"priority"`
	// ReportedByID is set by the service for non-admin actors, never bound
	// from the query string.
	ReportedByID uint64 `query:"-" json:"-"`
}

type TicketDTO struct {
	ID           uint64      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Category     string      `json:"category"`
	Priority     string      `json:"priority"`
	Status       string      `json:"status"`
	ReportedByID uint64      `json:"reported_by_id"`
	ReporterName string      `json:"reporter_name,omitempty"`
	AssignedToID null.Uint64 `json:"assigned_to_id"`
	IsNew        bool        `json:"is_new"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	ResolvedAt   null.Time   `json:"resolved_at"`
}

type CreateTicketCommentDTO struct {
	Message string `json:"message" validate:"required"`
}
