package services

import (
	"context"
	"strconv"
	"time"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	"helpdesk-system/internal/events"
	"helpdesk-system/internal/repositories"
	"helpdesk-system/pkg/constants"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/eventbus"
	"helpdesk-system/pkg/utils"

	"go.uber.org/zap"
)

// unreadWindow is how long a ticket counts as "new" for users who have
// not opened it yet.
const unreadWindow = 24 * time.Hour

type TicketServiceInterface interface {
	CreateTicket(ctx context.Context, payload dto.CreateTicketDTO) (*entities.Ticket, error)
	UpdateTicket(ctx context.Context, id uint64, payload dto.UpdateTicketDTO) (*entities.Ticket, error)
	DeleteTicket(ctx context.Context, id uint64) error
	FindTicket(ctx context.Context, id uint64) (*dto.TicketDTO, error)
	GetTickets(ctx context.Context, filter dto.TicketFilterDTO, limit, offset uint64) ([]dto.TicketDTO, uint64, error)
	AddComment(ctx context.Context, ticketID uint64, payload dto.CreateTicketCommentDTO) ([]entities.TicketComment, error)
	GetComments(ctx context.Context, ticketID uint64) ([]entities.TicketComment, error)
}

type TicketService struct {
	ticketRepo  repositories.TicketRepositoryInterface
	commentRepo repositories.TicketCommentRepositoryInterface
	viewRepo    repositories.TicketViewRepositoryInterface
	userRepo    repositories.UserRepositoryInterface
	audit       AuditSinkInterface
	bus         *eventbus.Bus
	logger      *zap.Logger
}

func NewTicketService(
	ticketRepo repositories.TicketRepositoryInterface,
	commentRepo repositories.TicketCommentRepositoryInterface,
	viewRepo repositories.TicketViewRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	audit AuditSinkInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) TicketServiceInterface {
	return &TicketService{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		viewRepo:    viewRepo,
		userRepo:    userRepo,
		audit:       audit,
		bus:         bus,
		logger:      logger,
	}
}

func (s *TicketService) actor(ctx context.Context) (uint64, string, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return 0, "", err
	}
	role, err := utils.GetUserRoleFromCtx(ctx)
	if err != nil {
		return 0, "", err
	}
	return userID, role, nil
}

// CreateTicket stores the ticket as OPEN for the authenticated reporter
// and publishes the creation event for the notification fan-out.
func (s *TicketService) CreateTicket(ctx context.Context, payload dto.CreateTicketDTO) (*entities.Ticket, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	ticket := entities.Ticket{
		Title:        payload.Title,
		Description:  payload.Description,
		Category:     payload.Category,
		Priority:     payload.Priority,
		Status:       constants.StatusOpen,
		ReportedByID: userID,
	}

	newID, err := s.ticketRepo.CreateTicket(ctx, ticket)
	if err != nil {
		return nil, err
	}

	created, err := s.ticketRepo.FindTicketByID(ctx, newID)
	if err != nil {
		return nil, err
	}

	s.audit.Append(ctx, "TICKET_CREATE", "ticket", strconv.FormatUint(newID, 10), map[string]interface{}{
		"title":    created.Title,
		"category": created.Category,
		"priority": created.Priority,
	})
	s.bus.Publish(ctx, events.TicketCreatedEvent{Ticket: *created})

	return created, nil
}

// UpdateTicket applies a partial patch under the field policy. Fields the
// actor may not change are dropped without error. A status change
// publishes the update event.
func (s *TicketService) UpdateTicket(ctx context.Context, id uint64, payload dto.UpdateTicketDTO) (*entities.Ticket, error) {
	actorID, role, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	ticket, err := s.ticketRepo.FindTicketByID(ctx, id)
	if err != nil {
		return nil, err
	}

	perm := CheckTicketPermissions(ticket, actorID, role)
	if !perm.HasAccess {
		return nil, apperrors.ErrPermissionDenied
	}

	oldStatus := ticket.Status
	changed := ApplyTicketPatch(ticket, payload, perm, time.Now())
	if len(changed) == 0 {
		return ticket, nil
	}

	if err := s.ticketRepo.UpdateTicket(ctx, ticket); err != nil {
		return nil, err
	}

	details := map[string]interface{}{"fields": changed}
	if oldStatus != ticket.Status {
		details["old_status"] = oldStatus
		details["new_status"] = ticket.Status
	}
	s.audit.Append(ctx, "TICKET_UPDATE", "ticket", strconv.FormatUint(id, 10), details)

	if oldStatus != ticket.Status {
		s.bus.Publish(ctx, events.TicketUpdatedEvent{Ticket: *ticket, OldStatus: oldStatus})
	}

	return ticket, nil
}

func (s *TicketService) DeleteTicket(ctx context.Context, id uint64) error {
	_, role, err := s.actor(ctx)
	if err != nil {
		return err
	}
	if role != constants.RoleAdmin {
		return apperrors.ErrPermissionDenied
	}

	if err := s.ticketRepo.DeleteTicket(ctx, id); err != nil {
		return err
	}

	s.audit.Append(ctx, "TICKET_DELETE", "ticket", strconv.FormatUint(id, 10), nil)
	return nil
}

// FindTicket returns one ticket, records that the actor has seen it and
// reports whether it was still unread.
func (s *TicketService) FindTicket(ctx context.Context, id uint64) (*dto.TicketDTO, error) {
	actorID, role, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	ticket, err := s.ticketRepo.FindTicketByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CheckTicketPermissions(ticket, actorID, role).HasAccess {
		return nil, apperrors.ErrPermissionDenied
	}

	isNew, err := s.isUnread(ctx, ticket, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.viewRepo.UpsertView(ctx, id, actorID); err != nil {
		// Losing a view record only affects the unread badge.
		s.logger.Warn("failed to record ticket view", zap.Uint64("ticketID", id), zap.Error(err))
	}

	out := s.toDTO(ctx, *ticket)
	out.IsNew = isNew
	return &out, nil
}

func (s *TicketService) GetTickets(ctx context.Context, filter dto.TicketFilterDTO, limit, offset uint64) ([]dto.TicketDTO, uint64, error) {
	actorID, role, err := s.actor(ctx)
	if err != nil {
		return nil, 0, err
	}

	// Regular users only see their own tickets.
	if role != constants.RoleAdmin {
		filter.ReportedByID = actorID
	}

	tickets, total, err := s.ticketRepo.GetTickets(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		item := s.toDTO(ctx, t)
		isNew, err := s.isUnread(ctx, &t, actorID)
		if err != nil {
			return nil, 0, err
		}
		item.IsNew = isNew
		out = append(out, item)
	}
	return out, total, nil
}

func (s *TicketService) AddComment(ctx context.Context, ticketID uint64, payload dto.CreateTicketCommentDTO) ([]entities.TicketComment, error) {
	actorID, role, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	ticket, err := s.ticketRepo.FindTicketByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !CheckTicketPermissions(ticket, actorID, role).HasAccess {
		return nil, apperrors.ErrPermissionDenied
	}

	if _, err := s.commentRepo.CreateComment(ctx, ticketID, actorID, payload.Message); err != nil {
		return nil, err
	}

	s.audit.Append(ctx, "TICKET_COMMENT", "ticket", strconv.FormatUint(ticketID, 10), nil)
	return s.commentRepo.GetCommentsByTicket(ctx, ticketID)
}

func (s *TicketService) GetComments(ctx context.Context, ticketID uint64) ([]entities.TicketComment, error) {
	actorID, role, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	ticket, err := s.ticketRepo.FindTicketByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !CheckTicketPermissions(ticket, actorID, role).HasAccess {
		return nil, apperrors.ErrPermissionDenied
	}

	return s.commentRepo.GetCommentsByTicket(ctx, ticketID)
}

// isUnread: created within the window and never opened by this user.
func (s *TicketService) isUnread(ctx context.Context, ticket *entities.Ticket, userID uint64) (bool, error) {
	if time.Since(ticket.CreatedAt) >= unreadWindow {
		return false, nil
	}
	viewed, err := s.viewRepo.HasViewed(ctx, ticket.ID, userID)
	if err != nil {
		return false, err
	}
	return !viewed, nil
}

func (s *TicketService) toDTO(ctx context.Context, t entities.Ticket) dto.TicketDTO {
	out := dto.TicketDTO{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Category:     t.Category,
		Priority:     t.Priority,
		Status:       t.Status,
		ReportedByID: t.ReportedByID,
		AssignedToID: t.AssignedToID,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
		ResolvedAt:   t.ResolvedAt,
	}
	if reporter, err := s.userRepo.FindUserByID(ctx, t.ReportedByID); err == nil {
		out.ReporterName = reporter.DisplayName
	}
	return out
}
