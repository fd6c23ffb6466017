package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/community-service/internal/domain"
)

// GuestUserRepository defines persistence access for anonymous guest accounts.
type GuestUserRepository interface {
	Create(ctx context.Context, guest *domain.GuestUser) error
	GetActiveByID(ctx context.Context, id string) (*domain.GuestUser, error)
	SoftDelete(ctx context.Context, id string) error
}

type guestUserRepository struct {
	pool *pgxpool.Pool
}

// NewGuestUserRepository returns a Postgres-backed implementation.
func NewGuestUserRepository(pool *pgxpool.Pool) GuestUserRepository {
	return &guestUserRepository{pool: pool}
}

func (r *guestUserRepository) Create(ctx context.Context, guest *domain.GuestUser) error {
	const query = `
        INSERT INTO guest_users DEFAULT VALUES
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query).Scan(&guest.ID, &guest.CreatedAt)
}

func (r *guestUserRepository) GetActiveByID(ctx context.Context, id string) (*domain.GuestUser, error) {
	const query = `
        SELECT id, created_at, deleted_at
        FROM guest_users WHERE id=$1 AND deleted_at IS NULL`

	var guest domain.GuestUser
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&guest.ID,
		&guest.CreatedAt,
		&guest.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *guestUserRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE guest_users SET deleted_at=NOW() WHERE id=$1 AND deleted_at IS NULL`
	return execAffectingOne(ctx, r.pool, query, id)
}
