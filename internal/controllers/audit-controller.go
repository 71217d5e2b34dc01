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

type AuditController struct {
	auditService services.AuditServiceInterface
	logger       *zap.Logger
}

func NewAuditController(auditService services.AuditServiceInterface, logger *zap.Logger) *AuditController {
	return &AuditController{
		auditService: auditService,
		logger:       logger,
	}
}

func (c *AuditController) GetEntries(ctx echo.Context) error {
	limit, offset, err := utils.ParsePaginationParams(ctx.QueryParams())
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest)
	}

	var filter dto.AuditFilterDTO
	if err := ctx.Bind(&filter); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest)
	}

	entries, total, err := c.auditService.GetEntries(ctx.Request().Context(), filter, limit, offset)
	if err != nil {
		c.logger.Error("failed to list audit entries", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, entries, "Audit entries fetched", http.StatusOK, total)
}
