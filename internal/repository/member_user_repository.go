package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/community-service/internal/domain"
)

// MemberUserRepository defines persistence access for registered members.
type MemberUserRepository interface {
	Create(ctx context.Context, member *domain.MemberUser) error
	Update(ctx context.Context, member *domain.MemberUser) error
	GetActiveByID(ctx context.Context, id string) (*domain.MemberUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.MemberUser, error)
	SoftDelete(ctx context.Context, id string) error
}

type memberUserRepository struct {
	pool *pgxpool.Pool
}

// NewMemberUserRepository returns a Postgres-backed implementation.
func NewMemberUserRepository(pool *pgxpool.Pool) MemberUserRepository {
	return &memberUserRepository{pool: pool}
}

func (r *memberUserRepository) Create(ctx context.Context, member *domain.MemberUser) error {
	const query = `
        INSERT INTO member_users (email, display_name, password_hash, is_active)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		member.Email,
		member.DisplayName,
		member.PasswordHash,
		member.Active,
	).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)
}

func (r *memberUserRepository) Update(ctx context.Context, member *domain.MemberUser) error {
	const query = `
        UPDATE member_users SET email=$1, display_name=$2, password_hash=$3, is_active=$4, updated_at=NOW()
        WHERE id=$5 AND deleted_at IS NULL`

	return execAffectingOne(ctx, r.pool, query,
		member.Email,
		member.DisplayName,
		member.PasswordHash,
		member.Active,
		member.ID,
	)
}

// GetActiveByID is the guard's eligibility read: it sees only live,
// active rows, so missing, soft-deleted and suspended members are all
// reported as pgx.ErrNoRows.
func (r *memberUserRepository) GetActiveByID(ctx context.Context, id string) (*domain.MemberUser, error) {
	const query = `
        SELECT id, email, display_name, password_hash, is_active, created_at, updated_at, deleted_at
        FROM member_users WHERE id=$1 AND deleted_at IS NULL AND is_active=TRUE`

	return r.fetchSingle(ctx, query, id)
}

func (r *memberUserRepository) GetByEmail(ctx context.Context, email string) (*domain.MemberUser, error) {
	const query = `
        SELECT id, email, display_name, password_hash, is_active, created_at, updated_at, deleted_at
        FROM member_users WHERE email=$1 AND deleted_at IS NULL`

	return r.fetchSingle(ctx, query, email)
}

func (r *memberUserRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE member_users SET deleted_at=NOW(), updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`
	return execAffectingOne(ctx, r.pool, query, id)
}

func (r *memberUserRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.MemberUser, error) {
	var member domain.MemberUser
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&member.ID,
		&member.Email,
		&member.DisplayName,
		&member.PasswordHash,
		&member.Active,
		&member.CreatedAt,
		&member.UpdatedAt,
		&member.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &member, nil
}
