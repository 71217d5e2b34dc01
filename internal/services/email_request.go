package services

import (
	"context"
	"strconv"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	"helpdesk-system/internal/events"
	"helpdesk-system/internal/repositories"
	"helpdesk-system/pkg/eventbus"
	"helpdesk-system/pkg/utils"
)

type EmailRequestServiceInterface interface {
	CreateEmailRequest(ctx context.Context, payload dto.CreateEmailRequestDTO) (*entities.EmployeeEmailRequest, error)
	GetEmailRequests(ctx context.Context, limit, offset uint64) ([]entities.EmployeeEmailRequest, uint64, error)
}

type EmailRequestService struct {
	requestRepo repositories.EmailRequestRepositoryInterface
	audit       AuditSinkInterface
	bus         *eventbus.Bus
}

func NewEmailRequestService(
	requestRepo repositories.EmailRequestRepositoryInterface,
	audit AuditSinkInterface,
	bus *eventbus.Bus,
) EmailRequestServiceInterface {
	return &EmailRequestService{
		requestRepo: requestRepo,
		audit:       audit,
		bus:         bus,
	}
}

// CreateEmailRequest records the request and alerts the IT team chat room.
// Requests are write-once; there is no update path.
func (s *EmailRequestService) CreateEmailRequest(ctx context.Context, payload dto.CreateEmailRequestDTO) (*entities.EmployeeEmailRequest, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	request := entities.EmployeeEmailRequest{
		ThaiName:      payload.ThaiName,
		EnglishName:   payload.EnglishName,
		Phone:         payload.Phone,
		Nickname:      payload.Nickname,
		Position:      payload.Position,
		Department:    payload.Department,
		ReplyEmail:    payload.ReplyEmail,
		RequestedByID: userID,
	}

	newID, err := s.requestRepo.CreateEmailRequest(ctx, request)
	if err != nil {
		return nil, err
	}
	request.ID = newID

	s.audit.Append(ctx, "EMAIL_REQUEST_CREATE", "email_request", strconv.FormatUint(newID, 10), map[string]interface{}{
		"english_name": payload.EnglishName,
		"department":   payload.Department,
	})
	s.bus.Publish(ctx, events.EmailRequestCreatedEvent{Request: request})

	return &request, nil
}

func (s *EmailRequestService) GetEmailRequests(ctx context.Context, limit, offset uint64) ([]entities.EmployeeEmailRequest, uint64, error) {
	return s.requestRepo.GetEmailRequests(ctx, limit, offset)
}
