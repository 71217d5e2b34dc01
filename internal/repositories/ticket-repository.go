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
	"github.com/jackc/pgx/v5/pgxpool"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type TicketRepositoryInterface interface {
	CreateTicket(ctx context.Context, ticket entities.Ticket) (uint64, error)
	FindTicketByID(ctx context.Context, id uint64) (*entities.Ticket, error)
	UpdateTicket(ctx context.Context, ticket *entities.Ticket) error
	DeleteTicket(ctx context.Context, id uint64) error
	GetTickets(ctx context.Context, filter dto.TicketFilterDTO, limit, offset uint64) ([]entities.Ticket, uint64, error)
}

type TicketRepository struct {
	storage *pgxpool.Pool
}

func NewTicketRepository(storage *pgxpool.Pool) TicketRepositoryInterface {
	return &TicketRepository{storage: storage}
}

const ticketColumns = `id, title, description, category, priority, status, reported_by_id, assigned_to_id, created_at, updated_at, resolved_at`

func scanTicket(row pgx.Row) (*entities.Ticket, error) {
	var t entities.Ticket
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Category, &t.Priority, &t.Status,
		&t.ReportedByID, &t.AssignedToID, &t.CreatedAt, &t.UpdatedAt, &t.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepository) CreateTicket(ctx context.Context, ticket entities.Ticket) (uint64, error) {
	query := `INSERT INTO tickets (title, description, category, priority, status, reported_by_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW()) RETURNING id`

	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		ticket.Title, ticket.Description, ticket.Category, ticket.Priority, ticket.Status, ticket.ReportedByID,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("failed to create ticket: %w", err)
	}
	return newID, nil
}

func (r *TicketRepository) FindTicketByID(ctx context.Context, id uint64) (*entities.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`
	return scanTicket(r.storage.QueryRow(ctx, query, id))
}

func (r *TicketRepository) UpdateTicket(ctx context.Context, ticket *entities.Ticket) error {
	query := `UPDATE tickets
	          SET title = $1, description = $2, category = $3, priority = $4, status = $5,
	              assigned_to_id = $6, resolved_at = $7, updated_at = NOW()
	          WHERE id = $8`

	result, err := r.storage.Exec(ctx, query,
		ticket.Title, ticket.Description, ticket.Category, ticket.Priority, ticket.Status,
		ticket.AssignedToID, ticket.ResolvedAt, ticket.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ticket %d: %w", ticket.ID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTicket removes the ticket; comments and view records go with it
// via ON DELETE CASCADE.
func (r *TicketRepository) DeleteTicket(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ticket %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TicketRepository) GetTickets(ctx context.Context, filter dto.TicketFilterDTO, limit, offset uint64) ([]entities.Ticket, uint64, error) {
	applyFilter := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Status != "" {
			b = b.Where(sq.Eq{"status": filter.Status})
		}
		if filter.Category != "" {
			b = b.Where(sq.Eq{"category": filter.Category})
		}
		if filter.Priority != "" {
			b = b.Where(sq.Eq{"priority": filter.Priority})
		}
		if filter.ReportedByID != 0 {
			b = b.Where(sq.Eq{"reported_by_id": filter.ReportedByID})
		}
		return b
	}

	countQuery, countArgs, err := applyFilter(psql.Select("COUNT(*)").From("tickets")).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	listQuery, listArgs, err := applyFilter(psql.Select(ticketColumns).From("tickets")).
		OrderBy("created_at DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	var tickets []entities.Ticket
	for rows.Next() {
		var t entities.Ticket
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Category, &t.Priority, &t.Status,
			&t.ReportedByID, &t.AssignedToID, &t.CreatedAt, &t.UpdatedAt, &t.ResolvedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan ticket row: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, total, rows.Err()
}
