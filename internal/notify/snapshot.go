// Package notify composes and dispatches ticket notifications across the
// email and chat channels. Delivery failures are logged, never propagated:
// the HTTP request that triggered a notification has already succeeded.
package notify

import "time"

// TicketSnapshot carries everything the composers need, captured at the
// moment of the triggering event. Composition never touches storage.
type TicketSnapshot struct {
	ID            uint64
	Title         string
	Description   string
	Category      string
	Priority      string
	Status        string
	ReporterName  string
	ReporterEmail string
	CreatedAt     time.Time
}

// EmailRequestSnapshot mirrors a new-mailbox request for the IT team card.
type EmailRequestSnapshot struct {
	ID          uint64
	ThaiName    string
	EnglishName string
	Nickname    string
	Phone       string
	Position    string
	Department  string
	ReplyEmail  string
	CreatedAt   time.Time
}

// EventKind selects the card flavor for ticket notifications.
type EventKind string

const (
	EventNewTicket        EventKind = "new_ticket"
	EventStatusUpdate     EventKind = "status_update"
	EventITTeamEscalation EventKind = "it_team_escalation"
)
