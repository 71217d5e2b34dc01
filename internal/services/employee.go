package services

import (
	"context"
	"io"
	"strconv"
	"time"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	"helpdesk-system/internal/repositories"
	apperrors "helpdesk-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

const startDateLayout = "2006-01-02"

type EmployeeServiceInterface interface {
	CreateEmployee(ctx context.Context, payload dto.CreateEmployeeDTO) (*entities.Employee, error)
	FindEmployee(ctx context.Context, id uint64) (*entities.Employee, error)
	UpdateEmployee(ctx context.Context, id uint64, payload dto.UpdateEmployeeDTO) (*entities.Employee, error)
	DeleteEmployee(ctx context.Context, id uint64) error
	GetEmployees(ctx context.Context, filter dto.EmployeeFilterDTO, limit, offset uint64) ([]entities.Employee, uint64, error)
	ImportCSV(ctx context.Context, r io.Reader) (*dto.ImportResultDTO, error)
	ExportCSV(ctx context.Context) ([]byte, error)
	ExportXLSX(ctx context.Context) ([]byte, error)
}

type EmployeeService struct {
	employeeRepo repositories.EmployeeRepositoryInterface
	audit        AuditSinkInterface
	logger       *zap.Logger
}

func NewEmployeeService(
	employeeRepo repositories.EmployeeRepositoryInterface,
	audit AuditSinkInterface,
	logger *zap.Logger,
) EmployeeServiceInterface {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		audit:        audit,
		logger:       logger,
	}
}

func parseStartDate(value string) (null.Time, error) {
	if value == "" {
		return null.Time{}, nil
	}
	t, err := time.Parse(startDateLayout, value)
	if err != nil {
		return null.Time{}, apperrors.NewInvalidInputError("invalid start date %q, expected YYYY-MM-DD", value)
	}
	return null.TimeFrom(t), nil
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, payload dto.CreateEmployeeDTO) (*entities.Employee, error) {
	startDate, err := parseStartDate(payload.StartDate)
	if err != nil {
		return nil, err
	}

	employee := entities.Employee{
		EmployeeCode: payload.EmployeeCode,
		ThaiName:     payload.ThaiName,
		EnglishName:  payload.EnglishName,
		Nickname:     payload.Nickname,
		Email:        payload.Email,
		Phone:        payload.Phone,
		Position:     payload.Position,
		Department:   payload.Department,
		StartDate:    startDate,
		Active:       true,
	}

	newID, err := s.employeeRepo.CreateEmployee(ctx, employee)
	if err != nil {
		return nil, err
	}

	s.audit.Append(ctx, "EMPLOYEE_CREATE", "employee", strconv.FormatUint(newID, 10), map[string]interface{}{
		"employee_code": payload.EmployeeCode,
	})

	return s.employeeRepo.FindEmployeeByID(ctx, newID)
}

func (s *EmployeeService) FindEmployee(ctx context.Context, id uint64) (*entities.Employee, error) {
	return s.employeeRepo.FindEmployeeByID(ctx, id)
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uint64, payload dto.UpdateEmployeeDTO) (*entities.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.ThaiName != nil {
		employee.ThaiName = *payload.ThaiName
	}
	if payload.EnglishName != nil {
		employee.EnglishName = *payload.EnglishName
	}
	if payload.Nickname != nil {
		employee.Nickname = *payload.Nickname
	}
	if payload.Email != nil {
		employee.Email = *payload.Email
	}
	if payload.Phone != nil {
		employee.Phone = *payload.Phone
	}
	if payload.Position != nil {
		employee.Position = *payload.Position
	}
	if payload.Department != nil {
		employee.Department = *payload.Department
	}
	if payload.StartDate != nil {
		startDate, err := parseStartDate(*payload.StartDate)
		if err != nil {
			return nil, err
		}
		employee.StartDate = startDate
	}
	if payload.Active != nil {
		employee.Active = *payload.Active
	}

	if err := s.employeeRepo.UpdateEmployee(ctx, employee); err != nil {
		return nil, err
	}

	s.audit.Append(ctx, "EMPLOYEE_UPDATE", "employee", strconv.FormatUint(id, 10), map[string]interface{}{
		"employee_code": employee.EmployeeCode,
	})

	return employee, nil
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uint64) error {
	if err := s.employeeRepo.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	s.audit.Append(ctx, "EMPLOYEE_DELETE", "employee", strconv.FormatUint(id, 10), nil)
	return nil
}

func (s *EmployeeService) GetEmployees(ctx context.Context, filter dto.EmployeeFilterDTO, limit, offset uint64) ([]entities.Employee, uint64, error) {
	return s.employeeRepo.GetEmployees(ctx, filter, limit, offset)
}
