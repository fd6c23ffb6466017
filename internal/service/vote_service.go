package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/community-service/internal/domain"
	"github.com/spec-kit/community-service/internal/events"
	"github.com/spec-kit/community-service/internal/repository"
	apperrors "github.com/spec-kit/community-service/pkg/util"
)

// VoteService coordinates voting on posts and comments.
type VoteService struct {
	votes      repository.VoteRepository
	posts      repository.PostRepository
	comments   repository.CommentRepository
	dispatcher events.Dispatcher
}

// VoteDependencies bundles repositories for the vote service.
type VoteDependencies struct {
	VoteRepo    repository.VoteRepository
	PostRepo    repository.PostRepository
	CommentRepo repository.CommentRepository
	Dispatcher  events.Dispatcher
}

// NewVoteService constructs the service.
func NewVoteService(deps VoteDependencies) *VoteService {
	return &VoteService{
		votes:      deps.VoteRepo,
		posts:      deps.PostRepo,
		comments:   deps.CommentRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Cast records the member's stance on a target. Value 0 retracts a prior
// vote. Voting on your own content is rejected.
func (s *VoteService) Cast(ctx context.Context, actor domain.AuthorizedPayload, targetType domain.VoteTarget, targetID string, value domain.VoteValue) (*domain.Vote, error) {
	if value < domain.VoteDown || value > domain.VoteUp {
		return nil, apperrors.NewValidationError("vote value must be -1, 0 or 1", nil)
	}

	authorID, err := s.targetAuthor(ctx, targetType, targetID)
	if err != nil {
		return nil, err
	}
	if authorID == actor.ID {
		return nil, apperrors.NewForbidden("you cannot vote on your own content")
	}

	vote := &domain.Vote{
		MemberID:   actor.ID,
		TargetType: targetType,
		TargetID:   targetID,
		Value:      value,
	}
	if err := s.votes.Upsert(ctx, vote); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:         uuid.NewString(),
			Type:       events.EventVoteCast,
			Actor:      events.Actor{Role: actor.Type, ID: actor.ID},
			TargetType: string(targetType),
			TargetID:   targetID,
			Timestamp:  time.Now(),
			Payload:    events.VoteCastPayload{TargetType: targetType, Value: value},
		})
	}
	return vote, nil
}

// Score sums current votes for a target.
func (s *VoteService) Score(ctx context.Context, targetType domain.VoteTarget, targetID string) (int64, error) {
	if _, err := s.targetAuthor(ctx, targetType, targetID); err != nil {
		return 0, err
	}
	return s.votes.Score(ctx, targetType, targetID)
}

func (s *VoteService) targetAuthor(ctx context.Context, targetType domain.VoteTarget, targetID string) (string, error) {
	switch targetType {
	case domain.VoteTargetPost:
		post, err := s.posts.GetByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return "", apperrors.NewNotFound("post", map[string]any{"id": targetID})
			}
			return "", err
		}
		return post.AuthorID, nil
	case domain.VoteTargetComment:
		comment, err := s.comments.GetByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return "", apperrors.NewNotFound("comment", map[string]any{"id": targetID})
			}
			return "", err
		}
		return comment.AuthorID, nil
	default:
		return "", apperrors.NewValidationError("unknown vote target", map[string]any{"target_type": targetType})
	}
}
