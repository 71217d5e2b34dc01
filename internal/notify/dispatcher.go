package notify

import (
	"context"

	"helpdesk-system/pkg/config"
	"helpdesk-system/pkg/constants"
	"helpdesk-system/pkg/linechat"

	"go.uber.org/zap"
)

// EmailChannel is the SMTP side of the fan-out.
type EmailChannel interface {
	Enabled() bool
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// Dispatcher routes composed notifications to the channels. Its methods
// never return errors; a channel failure is a log line, not a request
// failure.
type Dispatcher struct {
	email       EmailChannel
	chat        linechat.ClientInterface
	itTeamEmail string
	baseURL     string
	logger      *zap.Logger
}

func NewDispatcher(email EmailChannel, chat linechat.ClientInterface, cfg *config.Config, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		email:       email,
		chat:        chat,
		itTeamEmail: cfg.SMTP.ITTeamEmail,
		baseURL:     cfg.Server.BaseURL,
		logger:      logger,
	}
}

// NotifyTicketCreated fans a creation out to chat and email. High and
// urgent tickets get the escalation card and an extra email to the IT
// team mailbox on top of the reporter confirmation.
func (d *Dispatcher) NotifyTicketCreated(ctx context.Context, s TicketSnapshot) {
	if constants.IsEscalationPriority(s.Priority) {
		d.sendCard(ctx, ComposeTicketChatCard(s, EventITTeamEscalation, "", d.baseURL))
		if d.itTeamEmail != "" {
			msg := ComposeEscalationEmail(s, d.baseURL)
			d.sendEmail(ctx, d.itTeamEmail, msg)
		}
	} else {
		d.sendCard(ctx, ComposeTicketChatCard(s, EventNewTicket, "", d.baseURL))
	}

	if s.ReporterEmail != "" {
		msg := ComposeNewTicketEmail(s, d.baseURL)
		d.sendEmail(ctx, s.ReporterEmail, msg)
	}
}

// NotifyTicketUpdated informs the reporter and the chat room of a status
// change.
func (d *Dispatcher) NotifyTicketUpdated(ctx context.Context, s TicketSnapshot, oldStatus string) {
	d.sendCard(ctx, ComposeTicketChatCard(s, EventStatusUpdate, oldStatus, d.baseURL))

	if s.ReporterEmail != "" {
		msg := ComposeStatusChangeEmail(s, oldStatus, d.baseURL)
		d.sendEmail(ctx, s.ReporterEmail, msg)
	}
}

// NotifyEmailRequestCreated pushes the IT team card for a new-mailbox
// request.
func (d *Dispatcher) NotifyEmailRequestCreated(ctx context.Context, s EmailRequestSnapshot) {
	d.sendCard(ctx, ComposeEmailRequestChatCard(s))
}

func (d *Dispatcher) sendEmail(ctx context.Context, to string, msg EmailMessage) {
	if !d.email.Enabled() {
		return
	}
	if err := d.email.Send(ctx, to, msg.Subject, msg.HTML, msg.Text); err != nil {
		d.logger.Error("email notification failed",
			zap.String("to", to),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
	}
}

func (d *Dispatcher) sendCard(ctx context.Context, card linechat.Card) {
	if err := d.chat.PushCard(ctx, card); err != nil {
		d.logger.Error("chat notification failed",
			zap.String("altText", card.AltText),
			zap.Error(err),
		)
	}
}
