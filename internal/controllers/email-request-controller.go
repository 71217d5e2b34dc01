package controllers

import (
	"net/http"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/services"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type EmailRequestController struct {
	requestService services.EmailRequestServiceInterface
	logger         *zap.Logger
}

func NewEmailRequestController(requestService services.EmailRequestServiceInterface, logger *zap.Logger) *EmailRequestController {
	return &EmailRequestController{
		requestService: requestService,
		logger:         logger,
	}
}

func (c *EmailRequestController) CreateEmailRequest(ctx echo.Context) error {
	var payload dto.CreateEmailRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	request, err := c.requestService.CreateEmailRequest(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("failed to create email request", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, request, "Email request submitted", http.StatusCreated)
}

func (c *EmailRequestController) GetEmailRequests(ctx echo.Context) error {
	limit, offset, err := utils.ParsePaginationParams(ctx.QueryParams())
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest)
	}

	requests, total, err := c.requestService.GetEmailRequests(ctx.Request().Context(), limit, offset)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, requests, "Email requests fetched", http.StatusOK, total)
}
