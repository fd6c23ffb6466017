package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/community-service/internal/domain"
)

// VoteRepository encapsulates vote persistence.
type VoteRepository interface {
	Upsert(ctx context.Context, vote *domain.Vote) error
	GetByMemberAndTarget(ctx context.Context, memberID string, targetType domain.VoteTarget, targetID string) (*domain.Vote, error)
	Score(ctx context.Context, targetType domain.VoteTarget, targetID string) (int64, error)
}

type voteRepository struct {
	pool *pgxpool.Pool
}

// NewVoteRepository instantiates repository.
func NewVoteRepository(pool *pgxpool.Pool) VoteRepository {
	return &voteRepository{pool: pool}
}

// Upsert writes the member's current stance, overwriting any prior vote
// on the same target.
func (r *voteRepository) Upsert(ctx context.Context, vote *domain.Vote) error {
	const query = `
        INSERT INTO votes (member_id, target_type, target_id, value)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (member_id, target_type, target_id)
        DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		vote.MemberID,
		vote.TargetType,
		vote.TargetID,
		vote.Value,
	).Scan(&vote.ID, &vote.CreatedAt, &vote.UpdatedAt)
}

func (r *voteRepository) GetByMemberAndTarget(ctx context.Context, memberID string, targetType domain.VoteTarget, targetID string) (*domain.Vote, error) {
	const query = `
        SELECT id, member_id, target_type, target_id, value, created_at, updated_at
        FROM votes WHERE member_id=$1 AND target_type=$2 AND target_id=$3`

	var vote domain.Vote
	if err := r.pool.QueryRow(ctx, query, memberID, targetType, targetID).Scan(
		&vote.ID,
		&vote.MemberID,
		&vote.TargetType,
		&vote.TargetID,
		&vote.Value,
		&vote.CreatedAt,
		&vote.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &vote, nil
}

// Score sums vote values for the target.
func (r *voteRepository) Score(ctx context.Context, targetType domain.VoteTarget, targetID string) (int64, error) {
	const query = `
        SELECT COALESCE(SUM(value), 0)
        FROM votes WHERE target_type=$1 AND target_id=$2`

	var score int64
	if err := r.pool.QueryRow(ctx, query, targetType, targetID).Scan(&score); err != nil {
		return 0, err
	}
	return score, nil
}
