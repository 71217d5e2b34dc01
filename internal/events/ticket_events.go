// Package events defines the domain events published on the in-process bus.
package events

import "helpdesk-system/internal/entities"

const (
	TicketCreatedEventName       = "ticket.created"
	TicketUpdatedEventName       = "ticket.updated"
	EmailRequestCreatedEventName = "email_request.created"
)

type TicketCreatedEvent struct {
	Ticket entities.Ticket
}

func (e TicketCreatedEvent) Name() string { return TicketCreatedEventName }

type TicketUpdatedEvent struct {
	Ticket    entities.Ticket
	OldStatus string
}

func (e TicketUpdatedEvent) Name() string { return TicketUpdatedEventName }

type EmailRequestCreatedEvent struct {
	Request entities.EmployeeEmailRequest
}

func (e EmailRequestCreatedEvent) Name() string { return EmailRequestCreatedEventName }
