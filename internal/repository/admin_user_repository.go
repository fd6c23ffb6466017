package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/community-service/internal/domain"
)

// AdminUserRepository defines persistence access for administrators.
type AdminUserRepository interface {
	Create(ctx context.Context, admin *domain.AdminUser) error
	Update(ctx context.Context, admin *domain.AdminUser) error
	GetActiveByID(ctx context.Context, id string) (*domain.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
}

type adminUserRepository struct {
	pool *pgxpool.Pool
}

// NewAdminUserRepository returns a Postgres-backed implementation.
func NewAdminUserRepository(pool *pgxpool.Pool) AdminUserRepository {
	return &adminUserRepository{pool: pool}
}

func (r *adminUserRepository) Create(ctx context.Context, admin *domain.AdminUser) error {
	const query = `
        INSERT INTO admin_users (email, display_name, password_hash, is_active)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		admin.Email,
		admin.DisplayName,
		admin.PasswordHash,
		admin.Active,
	).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
}

func (r *adminUserRepository) Update(ctx context.Context, admin *domain.AdminUser) error {
	const query = `
        UPDATE admin_users SET email=$1, display_name=$2, password_hash=$3, is_active=$4, updated_at=NOW()
        WHERE id=$5 AND deleted_at IS NULL`

	return execAffectingOne(ctx, r.pool, query,
		admin.Email,
		admin.DisplayName,
		admin.PasswordHash,
		admin.Active,
		admin.ID,
	)
}

func (r *adminUserRepository) GetActiveByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	const query = `
        SELECT id, email, display_name, password_hash, is_active, created_at, updated_at, deleted_at
        FROM admin_users WHERE id=$1 AND deleted_at IS NULL AND is_active=TRUE`

	return r.fetchSingle(ctx, query, id)
}

func (r *adminUserRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	const query = `
        SELECT id, email, display_name, password_hash, is_active, created_at, updated_at, deleted_at
        FROM admin_users WHERE email=$1 AND deleted_at IS NULL`

	return r.fetchSingle(ctx, query, email)
}

func (r *adminUserRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.AdminUser, error) {
	var admin domain.AdminUser
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&admin.ID,
		&admin.Email,
		&admin.DisplayName,
		&admin.PasswordHash,
		&admin.Active,
		&admin.CreatedAt,
		&admin.UpdatedAt,
		&admin.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &admin, nil
}
