package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketViewRepositoryInterface interface {
	UpsertView(ctx context.Context, ticketID, userID uint64) error
	HasViewed(ctx context.Context, ticketID, userID uint64) (bool, error)
}

type TicketViewRepository struct {
	storage *pgxpool.Pool
}

func NewTicketViewRepository(storage *pgxpool.Pool) TicketViewRepositoryInterface {
	return &TicketViewRepository{storage: storage}
}

func (r *TicketViewRepository) UpsertView(ctx context.Context, ticketID, userID uint64) error {
	query := `INSERT INTO ticket_views (ticket_id, user_id, viewed_at)
	          VALUES ($1, $2, NOW())
	          ON CONFLICT (ticket_id, user_id) DO UPDATE SET viewed_at = NOW()`

	if _, err := r.storage.Exec(ctx, query, ticketID, userID); err != nil {
		return fmt.Errorf("failed to upsert ticket view: %w", err)
	}
	return nil
}

func (r *TicketViewRepository) HasViewed(ctx context.Context, ticketID, userID uint64) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM ticket_views WHERE ticket_id = $1 AND user_id = $2)`,
		ticketID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check ticket view: %w", err)
	}
	return exists, nil
}
