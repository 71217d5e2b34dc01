package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	"helpdesk-system/pkg/constants"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubTicketService struct {
	createErr error
	updateErr error
	created   *entities.Ticket
}

func (s *stubTicketService) CreateTicket(ctx context.Context, payload dto.CreateTicketDTO) (*entities.Ticket, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = &entities.Ticket{
		ID:          1,
		Title:       payload.Title,
		Description: payload.Description,
		Category:    payload.Category,
		Priority:    payload.Priority,
		Status:      constants.StatusOpen,
	}
	return s.created, nil
}

func (s *stubTicketService) UpdateTicket(ctx context.Context, id uint64, payload dto.UpdateTicketDTO) (*entities.Ticket, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &entities.Ticket{ID: id}, nil
}

func (s *stubTicketService) DeleteTicket(ctx context.Context, id uint64) error { return nil }

func (s *stubTicketService) FindTicket(ctx context.Context, id uint64) (*dto.TicketDTO, error) {
	return &dto.TicketDTO{ID: id}, nil
}

func (s *stubTicketService) GetTickets(ctx context.Context, filter dto.TicketFilterDTO, limit, offset uint64) ([]dto.TicketDTO, uint64, error) {
	return nil, 0, nil
}

func (s *stubTicketService) AddComment(ctx context.Context, ticketID uint64, payload dto.CreateTicketCommentDTO) ([]entities.TicketComment, error) {
	return nil, nil
}

func (s *stubTicketService) GetComments(ctx context.Context, ticketID uint64) ([]entities.TicketComment, error) {
	return nil, nil
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = utils.NewValidator(validator.New())

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateTicketHandlerSuccess(t *testing.T) {
	service := &stubTicketService{}
	controller := NewTicketController(service, zap.NewNop())

	ctx, rec := newTestContext(http.MethodPost, "/api/tickets",
		`{"title":"VPN down","description":"cannot connect","category":"NETWORK","priority":"HIGH"}`)

	require.NoError(t, controller.CreateTicket(ctx))
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, service.created)
	assert.Equal(t, constants.StatusOpen, service.created.Status)
}

func TestCreateTicketHandlerRejectsBadEnum(t *testing.T) {
	controller := NewTicketController(&stubTicketService{}, zap.NewNop())

	ctx, rec := newTestContext(http.MethodPost, "/api/tickets",
		`{"title":"x","description":"y","category":"SNACKS","priority":"HIGH"}`)

	require.NoError(t, controller.CreateTicket(ctx))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUpdateTicketHandlerMapsPermissionDenied(t *testing.T) {
	controller := NewTicketController(&stubTicketService{updateErr: apperrors.ErrPermissionDenied}, zap.NewNop())

	ctx, rec := newTestContext(http.MethodPut, "/api/tickets/5", `{"title":"z"}`)
	ctx.SetParamNames("id")
	ctx.SetParamValues("5")

	require.NoError(t, controller.UpdateTicket(ctx))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateTicketHandlerBadIDParam(t *testing.T) {
	controller := NewTicketController(&stubTicketService{}, zap.NewNop())

	ctx, rec := newTestContext(http.MethodPut, "/api/tickets/abc", `{}`)
	ctx.SetParamNames("id")
	ctx.SetParamValues("abc")

	require.NoError(t, controller.UpdateTicket(ctx))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
