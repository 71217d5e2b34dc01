// Package listeners subscribes domain events to their side effects.
package listeners

import (
	"context"
	"fmt"

	"helpdesk-system/internal/entities"
	"helpdesk-system/internal/events"
	"helpdesk-system/internal/notify"
	"helpdesk-system/internal/repositories"
	"helpdesk-system/pkg/eventbus"

	"go.uber.org/zap"
)

// NotificationListener turns ticket and email-request events into channel
// notifications. It resolves the reporter here so publishers stay free of
// notification concerns.
type NotificationListener struct {
	dispatcher *notify.Dispatcher
	userRepo   repositories.UserRepositoryInterface
	logger     *zap.Logger
}

func NewNotificationListener(dispatcher *notify.Dispatcher, userRepo repositories.UserRepositoryInterface, logger *zap.Logger) *NotificationListener {
	return &NotificationListener{
		dispatcher: dispatcher,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.TicketCreatedEventName, l.onTicketCreated)
	bus.Subscribe(events.TicketUpdatedEventName, l.onTicketUpdated)
	bus.Subscribe(events.EmailRequestCreatedEventName, l.onEmailRequestCreated)
}

func (l *NotificationListener) onTicketCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.TicketCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.Name())
	}
	l.dispatcher.NotifyTicketCreated(ctx, l.ticketSnapshot(ctx, e.Ticket))
	return nil
}

func (l *NotificationListener) onTicketUpdated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.TicketUpdatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.Name())
	}
	l.dispatcher.NotifyTicketUpdated(ctx, l.ticketSnapshot(ctx, e.Ticket), e.OldStatus)
	return nil
}

func (l *NotificationListener) onEmailRequestCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.EmailRequestCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.Name())
	}
	l.dispatcher.NotifyEmailRequestCreated(ctx, notify.EmailRequestSnapshot{
		ID:          e.Request.ID,
		ThaiName:    e.Request.ThaiName,
		EnglishName: e.Request.EnglishName,
		Nickname:    e.Request.Nickname,
		Phone:       e.Request.Phone,
		Position:    e.Request.Position,
		Department:  e.Request.Department,
		ReplyEmail:  e.Request.ReplyEmail,
		CreatedAt:   e.Request.CreatedAt,
	})
	return nil
}

// ticketSnapshot resolves the reporter for the composers. A failed lookup
// degrades the notification instead of dropping it.
func (l *NotificationListener) ticketSnapshot(ctx context.Context, ticket entities.Ticket) notify.TicketSnapshot {
	s := notify.TicketSnapshot{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Category:    ticket.Category,
		Priority:    ticket.Priority,
		Status:      ticket.Status,
		CreatedAt:   ticket.CreatedAt,
	}

	reporter, err := l.userRepo.FindUserByID(ctx, ticket.ReportedByID)
	if err != nil {
		l.logger.Warn("could not resolve ticket reporter for notification",
			zap.Uint64("ticketID", ticket.ID),
			zap.Uint64("reporterID", ticket.ReportedByID),
			zap.Error(err),
		)
		return s
	}

	s.ReporterName = reporter.DisplayName
	s.ReporterEmail = reporter.Email
	return s
}
