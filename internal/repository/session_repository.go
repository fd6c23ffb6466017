package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/community-service/internal/domain"
)

// SessionRepository encapsulates session persistence.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	Revoke(ctx context.Context, id string) error
	RevokeAllForActor(ctx context.Context, role domain.ActorRole, actorID string) (int64, error)
}

type sessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository instantiates repository.
func NewSessionRepository(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepository{pool: pool}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	const query = `
        INSERT INTO sessions (id, actor_role, actor_id, token_hash, issued_at, expires_at)
        VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.ActorRole,
		session.ActorID,
		session.TokenHash,
		session.IssuedAt,
		session.ExpiresAt,
	)
	return err
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	const query = `
        SELECT id, actor_role, actor_id, token_hash, issued_at, expires_at, revoked_at
        FROM sessions WHERE id=$1`

	var session domain.Session
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.ActorRole,
		&session.ActorID,
		&session.TokenHash,
		&session.IssuedAt,
		&session.ExpiresAt,
		&session.RevokedAt,
	); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Revoke(ctx context.Context, id string) error {
	const query = `UPDATE sessions SET revoked_at=NOW() WHERE id=$1 AND revoked_at IS NULL`
	return execAffectingOne(ctx, r.pool, query, id)
}

// RevokeAllForActor revokes every live session for an account, used when
// an account is suspended or soft-deleted.
func (r *sessionRepository) RevokeAllForActor(ctx context.Context, role domain.ActorRole, actorID string) (int64, error) {
	const query = `
        UPDATE sessions SET revoked_at=NOW()
        WHERE actor_role=$1 AND actor_id=$2 AND revoked_at IS NULL`

	cmd, err := r.pool.Exec(ctx, query, role, actorID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
