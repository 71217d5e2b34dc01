package repositories

import (
	"context"
	"fmt"

	"helpdesk-system/internal/entities"

	"github.com/jackc/pgx/v5/pgxpool"
)

type EmailRequestRepositoryInterface interface {
	CreateEmailRequest(ctx context.Context, request entities.EmployeeEmailRequest) (uint64, error)
	GetEmailRequests(ctx context.Context, limit, offset uint64) ([]entities.EmployeeEmailRequest, uint64, error)
}

type EmailRequestRepository struct {
	storage *pgxpool.Pool
}

func NewEmailRequestRepository(storage *pgxpool.Pool) EmailRequestRepositoryInterface {
	return &EmailRequestRepository{storage: storage}
}

func (r *EmailRequestRepository) CreateEmailRequest(ctx context.Context, request entities.EmployeeEmailRequest) (uint64, error) {
	query := `INSERT INTO employee_email_requests
	          (thai_name, english_name, phone, nickname, position, department, reply_email, requested_by_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW()) RETURNING id`

	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		request.ThaiName, request.EnglishName, request.Phone, request.Nickname,
		request.Position, request.Department, request.ReplyEmail, request.RequestedByID,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("failed to create employee email request: %w", err)
	}
	return newID, nil
}

func (r *EmailRequestRepository) GetEmailRequests(ctx context.Context, limit, offset uint64) ([]entities.EmployeeEmailRequest, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM employee_email_requests`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count email requests: %w", err)
	}

	query := `SELECT id, thai_name, english_name, phone, nickname, position, department, reply_email, requested_by_id, created_at
	          FROM employee_email_requests
	          ORDER BY created_at DESC
	          LIMIT $1 OFFSET $2`

	rows, err := r.storage.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query email requests: %w", err)
	}
	defer rows.Close()

	var requests []entities.EmployeeEmailRequest
	for rows.Next() {
		var req entities.EmployeeEmailRequest
		if err := rows.Scan(
			&req.ID, &req.ThaiName, &req.EnglishName, &req.Phone, &req.Nickname,
			&req.Position, &req.Department, &req.ReplyEmail, &req.RequestedByID, &req.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan email request row: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, total, rows.Err()
}
