package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditRepositoryInterface interface {
	AppendEntry(ctx context.Context, entry entities.AuditLogEntry) error
	GetEntries(ctx context.Context, filter dto.AuditFilterDTO, limit, offset uint64) ([]entities.AuditLogEntry, uint64, error)
}

type AuditRepository struct {
	storage *pgxpool.Pool
}

func NewAuditRepository(storage *pgxpool.Pool) AuditRepositoryInterface {
	return &AuditRepository{storage: storage}
}

func (r *AuditRepository) AppendEntry(ctx context.Context, entry entities.AuditLogEntry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("failed to serialize audit details: %w", err)
	}

	query := `INSERT INTO audit_logs (id, action, entity_type, entity_id, actor_user_id, actor_email, details, ip, user_agent, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = r.storage.Exec(ctx, query,
		entry.ID, entry.Action, entry.EntityType, entry.EntityID,
		entry.ActorUserID, entry.ActorEmail, details, entry.IP, entry.UserAgent, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) GetEntries(ctx context.Context, filter dto.AuditFilterDTO, limit, offset uint64) ([]entities.AuditLogEntry, uint64, error) {
	applyFilter := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.EntityType != "" {
			b = b.Where(sq.Eq{"entity_type": filter.EntityType})
		}
		if filter.Action != "" {
			b = b.Where(sq.Eq{"action": filter.Action})
		}
		return b
	}

	countQuery, countArgs, err := applyFilter(psql.Select("COUNT(*)").From("audit_logs")).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	listQuery, listArgs, err := applyFilter(
		psql.Select("id", "action", "entity_type", "entity_id", "actor_user_id", "actor_email", "details", "ip", "user_agent", "created_at").
			From("audit_logs"),
	).OrderBy("created_at DESC").Limit(limit).Offset(offset).ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []entities.AuditLogEntry
	for rows.Next() {
		var entry entities.AuditLogEntry
		var details []byte
		if err := rows.Scan(
			&entry.ID, &entry.Action, &entry.EntityType, &entry.EntityID,
			&entry.ActorUserID, &entry.ActorEmail, &details, &entry.IP, &entry.UserAgent, &entry.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit row: %w", err)
		}
		if len(details) > 0 {
			_ = json.Unmarshal(details, &entry.Details)
		}
		entries = append(entries, entry)
	}
	return entries, total, rows.Err()
}
