package entities

import "time"

// TicketComment is immutable once created.
type TicketComment struct {
	ID         uint64    `json:"id"`
	TicketID   uint64    `json:"ticket_id"`
	AuthorID   uint64    `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}
