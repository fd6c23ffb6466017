package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/community-service/internal/domain"
)

// AuditRepository appends and reads audit log entries.
type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditEntry) error
	ListRecent(ctx context.Context, limit, offset int) ([]domain.AuditEntry, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository instantiates repository.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	const query = `
        INSERT INTO audit_logs (action, actor_role, actor_id, target_type, target_id, detail)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	detail, err := json.Marshal(entry.Detail)
	if err != nil {
		return err
	}

	return r.pool.QueryRow(ctx, query,
		entry.Action,
		entry.ActorRole,
		entry.ActorID,
		entry.TargetType,
		entry.TargetID,
		detail,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *auditRepository) ListRecent(ctx context.Context, limit, offset int) ([]domain.AuditEntry, error) {
	const query = `
        SELECT id, action, actor_role, actor_id, target_type, target_id, detail, created_at
        FROM audit_logs ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var entry domain.AuditEntry
		var detail []byte
		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&entry.ActorRole,
			&entry.ActorID,
			&entry.TargetType,
			&entry.TargetID,
			&detail,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(detail) > 0 {
			if err := json.Unmarshal(detail, &entry.Detail); err != nil {
				return nil, err
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
