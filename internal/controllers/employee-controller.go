package controllers

import (
	"fmt"
	"net/http"
	"time"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/services"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type EmployeeController struct {
	employeeService services.EmployeeServiceInterface
	logger          *zap.Logger
}

func NewEmployeeController(employeeService services.EmployeeServiceInterface, logger *zap.Logger) *EmployeeController {
	return &EmployeeController{
		employeeService: employeeService,
		logger:          logger,
	}
}

func (c *EmployeeController) CreateEmployee(ctx echo.Context) error {
	var payload dto.CreateEmployeeDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	employee, err := c.employeeService.CreateEmployee(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, employee, "Employee created", http.StatusCreated)
}

func (c *EmployeeController) GetEmployees(ctx echo.Context) error {
	limit, offset, err := utils.ParsePaginationParams(ctx.QueryParams())
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest)
	}

	var filter dto.EmployeeFilterDTO
	if err := ctx.Bind(&filter); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest)
	}

	employees, total, err := c.employeeService.GetEmployees(ctx.Request().Context(), filter, limit, offset)
	if err != nil {
		c.logger.Error("failed to list employees", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, employees, "Employees fetched", http.StatusOK, total)
}

func (c *EmployeeController) FindEmployee(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	employee, err := c.employeeService.FindEmployee(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, employee, "Employee fetched", http.StatusOK)
}

func (c *EmployeeController) UpdateEmployee(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateEmployeeDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	employee, err := c.employeeService.UpdateEmployee(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, employee, "Employee updated", http.StatusOK)
}

func (c *EmployeeController) DeleteEmployee(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.employeeService.DeleteEmployee(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Employee deleted", http.StatusOK)
}

// ImportCSV accepts a multipart upload under the "file" field.
func (c *EmployeeController) ImportCSV(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest)
	}
	defer file.Close()

	result, err := c.employeeService.ImportCSV(ctx.Request().Context(), file)
	if err != nil {
		c.logger.Error("employee import failed", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, result, "Import finished", http.StatusOK)
}

func (c *EmployeeController) ExportCSV(ctx echo.Context) error {
	data, err := c.employeeService.ExportCSV(ctx.Request().Context())
	if err != nil {
		c.logger.Error("employee CSV export failed", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	filename := fmt.Sprintf("employees-%s.csv", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return ctx.Blob(http.StatusOK, "text/csv", data)
}

func (c *EmployeeController) ExportXLSX(ctx echo.Context) error {
	data, err := c.employeeService.ExportXLSX(ctx.Request().Context())
	if err != nil {
		c.logger.Error("employee XLSX export failed", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	filename := fmt.Sprintf("employees-%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return ctx.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
