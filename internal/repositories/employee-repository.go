package repositories

import (
	"context"
	"errors"
	"fmt"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	apperrors "helpdesk-system/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EmployeeRepositoryInterface interface {
	CreateEmployee(ctx context.Context, employee entities.Employee) (uint64, error)
	FindEmployeeByID(ctx context.Context, id uint64) (*entities.Employee, error)
	UpdateEmployee(ctx context.Context, employee *entities.Employee) error
	DeleteEmployee(ctx context.Context, id uint64) error
	GetEmployees(ctx context.Context, filter dto.EmployeeFilterDTO, limit, offset uint64) ([]entities.Employee, uint64, error)
	GetAllEmployees(ctx context.Context) ([]entities.Employee, error)
}

type EmployeeRepository struct {
	storage *pgxpool.Pool
}

func NewEmployeeRepository(storage *pgxpool.Pool) EmployeeRepositoryInterface {
	return &EmployeeRepository{storage: storage}
}

const employeeColumns = `id, employee_code, thai_name, english_name, nickname, email, phone, position, department, start_date, active, created_at, updated_at`

func scanEmployee(row pgx.Row) (*entities.Employee, error) {
	var e entities.Employee
	err := row.Scan(
		&e.ID, &e.EmployeeCode, &e.ThaiName, &e.EnglishName, &e.Nickname, &e.Email,
		&e.Phone, &e.Position, &e.Department, &e.StartDate, &e.Active, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) CreateEmployee(ctx context.Context, employee entities.Employee) (uint64, error) {
	query := `INSERT INTO employees (employee_code, thai_name, english_name, nickname, email, phone, position, department, start_date, active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()) RETURNING id`

	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		employee.EmployeeCode, employee.ThaiName, employee.EnglishName, employee.Nickname,
		employee.Email, employee.Phone, employee.Position, employee.Department,
		employee.StartDate, employee.Active,
	).Scan(&newID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, apperrors.NewInvalidInputError("employee code %q already exists", employee.EmployeeCode)
		}
		return 0, fmt.Errorf("failed to create employee: %w", err)
	}
	return newID, nil
}

func (r *EmployeeRepository) FindEmployeeByID(ctx context.Context, id uint64) (*entities.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return scanEmployee(r.storage.QueryRow(ctx, query, id))
}

func (r *EmployeeRepository) UpdateEmployee(ctx context.Context, employee *entities.Employee) error {
	query := `UPDATE employees
	          SET thai_name = $1, english_name = $2, nickname = $3, email = $4, phone = $5,
	              position = $6, department = $7, start_date = $8, active = $9, updated_at = NOW()
	          WHERE id = $10`

	result, err := r.storage.Exec(ctx, query,
		employee.ThaiName, employee.EnglishName, employee.Nickname, employee.Email, employee.Phone,
		employee.Position, employee.Department, employee.StartDate, employee.Active, employee.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee %d: %w", employee.ID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) DeleteEmployee(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) GetEmployees(ctx context.Context, filter dto.EmployeeFilterDTO, limit, offset uint64) ([]entities.Employee, uint64, error) {
	applyFilter := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Department != "" {
			b = b.Where(sq.Eq{"department": filter.Department})
		}
		if filter.Active == "true" {
			b = b.Where(sq.Eq{"active": true})
		} else if filter.Active == "false" {
			b = b.Where(sq.Eq{"active": false})
		}
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			b = b.Where(sq.Or{
				sq.ILike{"thai_name": pattern},
				sq.ILike{"english_name": pattern},
				sq.ILike{"nickname": pattern},
				sq.ILike{"employee_code": pattern},
			})
		}
		return b
	}

	countQuery, countArgs, err := applyFilter(psql.Select("COUNT(*)").From("employees")).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	listQuery, listArgs, err := applyFilter(psql.Select(employeeColumns).From("employees")).
		OrderBy("employee_code ASC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []entities.Employee
	for rows.Next() {
		var e entities.Employee
		if err := rows.Scan(
			&e.ID, &e.EmployeeCode, &e.ThaiName, &e.EnglishName, &e.Nickname, &e.Email,
			&e.Phone, &e.Position, &e.Department, &e.StartDate, &e.Active, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}

func (r *EmployeeRepository) GetAllEmployees(ctx context.Context) ([]entities.Employee, error) {
	rows, err := r.storage.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY employee_code ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []entities.Employee
	for rows.Next() {
		var e entities.Employee
		if err := rows.Scan(
			&e.ID, &e.EmployeeCode, &e.ThaiName, &e.EnglishName, &e.Nickname, &e.Email,
			&e.Phone, &e.Position, &e.Department, &e.StartDate, &e.Active, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
