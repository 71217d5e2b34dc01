package repositories

import (
	"context"
	"fmt"

	"helpdesk-system/internal/entities"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketCommentRepositoryInterface interface {
	CreateComment(ctx context.Context, ticketID, authorID uint64, message string) (uint64, error)
	GetCommentsByTicket(ctx context.Context, ticketID uint64) ([]entities.TicketComment, error)
}

type TicketCommentRepository struct {
	storage *pgxpool.Pool
}

func NewTicketCommentRepository(storage *pgxpool.Pool) TicketCommentRepositoryInterface {
	return &TicketCommentRepository{storage: storage}
}

func (r *TicketCommentRepository) CreateComment(ctx context.Context, ticketID, authorID uint64, message string) (uint64, error) {
	query := `INSERT INTO ticket_comments (ticket_id, author_id, message, created_at)
	          VALUES ($1, $2, $3, NOW()) RETURNING id`

	var newID uint64
	if err := r.storage.QueryRow(ctx, query, ticketID, authorID, message).Scan(&newID); err != nil {
		return 0, fmt.Errorf("failed to create ticket comment: %w", err)
	}
	return newID, nil
}

// GetCommentsByTicket returns comments oldest first.
func (r *TicketCommentRepository) GetCommentsByTicket(ctx context.Context, ticketID uint64) ([]entities.TicketComment, error) {
	query := `
		SELECT c.id, c.ticket_id, c.author_id, COALESCE(u.display_name, ''), c.message, c.created_at
		FROM ticket_comments c
		LEFT JOIN users u ON c.author_id = u.id
		WHERE c.ticket_id = $1
		ORDER BY c.created_at ASC`

	rows, err := r.storage.Query(ctx, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ticket comments: %w", err)
	}
	defer rows.Close()

	var comments []entities.TicketComment
	for rows.Next() {
		var c entities.TicketComment
		if err := rows.Scan(&c.ID, &c.TicketID, &c.AuthorID, &c.AuthorName, &c.Message, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ticket comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
