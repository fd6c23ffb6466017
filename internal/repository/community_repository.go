package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/community-service/internal/domain"
)

// CommunityRepository encapsulates community persistence.
type CommunityRepository interface {
	Create(ctx context.Context, community *domain.Community) error
	Update(ctx context.Context, community *domain.Community) error
	GetByID(ctx context.Context, id string) (*domain.Community, error)
	GetByName(ctx context.Context, name string) (*domain.Community, error)
	ListByCategory(ctx context.Context, categoryID string, limit, offset int) ([]domain.Community, error)
	SoftDelete(ctx context.Context, id string) error
}

type communityRepository struct {
	pool *pgxpool.Pool
}

// NewCommunityRepository instantiates repository.
func NewCommunityRepository(pool *pgxpool.Pool) CommunityRepository {
	return &communityRepository{pool: pool}
}

func (r *communityRepository) Create(ctx context.Context, community *domain.Community) error {
	const query = `
        INSERT INTO communities (name, category_id, description, creator_member_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		community.Name,
		community.CategoryID,
		community.Description,
		community.CreatorID,
	).Scan(&community.ID, &community.CreatedAt, &community.UpdatedAt)
}

func (r *communityRepository) Update(ctx context.Context, community *domain.Community) error {
	const query = `
        UPDATE communities SET category_id=$1, description=$2, updated_at=NOW()
        WHERE id=$3 AND deleted_at IS NULL`

	return execAffectingOne(ctx, r.pool, query,
		community.CategoryID,
		community.Description,
		community.ID,
	)
}

func (r *communityRepository) GetByID(ctx context.Context, id string) (*domain.Community, error) {
	const query = selectCommunity + ` WHERE id=$1 AND deleted_at IS NULL`
	return r.fetchSingle(ctx, query, id)
}

func (r *communityRepository) GetByName(ctx context.Context, name string) (*domain.Community, error) {
	const query = selectCommunity + ` WHERE name=LOWER($1) AND deleted_at IS NULL`
	return r.fetchSingle(ctx, query, name)
}

func (r *communityRepository) ListByCategory(ctx context.Context, categoryID string, limit, offset int) ([]domain.Community, error) {
	const query = selectCommunity + `
        WHERE category_id=$1 AND deleted_at IS NULL
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, categoryID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var communities []domain.Community
	for rows.Next() {
		var community domain.Community
		if err := scanCommunity(rows.Scan, &community); err != nil {
			return nil, err
		}
		communities = append(communities, community)
	}
	return communities, rows.Err()
}

func (r *communityRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE communities SET deleted_at=NOW(), updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`
	return execAffectingOne(ctx, r.pool, query, id)
}

const selectCommunity = `
        SELECT id, name, category_id, description, creator_member_id, created_at, updated_at, deleted_at
        FROM communities`

func scanCommunity(scan func(...any) error, community *domain.Community) error {
	return scan(
		&community.ID,
		&community.Name,
		&community.CategoryID,
		&community.Description,
		&community.CreatorID,
		&community.CreatedAt,
		&community.UpdatedAt,
		&community.DeletedAt,
	)
}

func (r *communityRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Community, error) {
	var community domain.Community
	if err := scanCommunity(r.pool.QueryRow(ctx, query, arg).Scan, &community); err != nil {
		return nil, err
	}
	return &community, nil
}
