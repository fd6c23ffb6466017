package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/community-service/internal/domain"
	"github.com/spec-kit/community-service/internal/events"
	"github.com/spec-kit/community-service/internal/repository"
	apperrors "github.com/spec-kit/community-service/pkg/util"
)

var communityNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{2,29}$`)

// CommunityService coordinates community and category workflows.
type CommunityService struct {
	communities repository.CommunityRepository
	categories  repository.CategoryRepository
	dispatcher  events.Dispatcher
}

// CommunityDependencies bundles repositories for the community service.
type CommunityDependencies struct {
	CommunityRepo repository.CommunityRepository
	CategoryRepo  repository.CategoryRepository
	Dispatcher    events.Dispatcher
}

// CommunityCreateInput describes community creation payload.
type CommunityCreateInput struct {
	Name        string
	CategoryID  string
	Description string
}

// NewCommunityService constructs the service.
func NewCommunityService(deps CommunityDependencies) *CommunityService {
	return &CommunityService{
		communities: deps.CommunityRepo,
		categories:  deps.CategoryRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// ListCategories returns the fixed category set.
func (s *CommunityService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// Create registers a new community owned by the calling member.
func (s *CommunityService) Create(ctx context.Context, actor domain.AuthorizedPayload, input CommunityCreateInput) (*domain.Community, error) {
	name := strings.ToLower(strings.TrimSpace(input.Name))
	if !communityNamePattern.MatchString(name) {
		return nil, apperrors.NewValidationError("invalid community name", map[string]any{"name": input.Name})
	}

	if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("unknown category", map[string]any{"category_id": input.CategoryID})
		}
		return nil, err
	}

	if _, err := s.communities.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict("community name already taken", map[string]any{"name": name})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	community := &domain.Community{
		Name:        name,
		CategoryID:  input.CategoryID,
		Description: strings.TrimSpace(input.Description),
		CreatorID:   actor.ID,
	}
	if err := s.communities.Create(ctx, community); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventCommunityCreated, actor, "community", community.ID,
		events.CommunityCreatedPayload{Name: community.Name, CategoryID: community.CategoryID})
	return community, nil
}

// GetByName resolves a community by its unique lowercase name.
func (s *CommunityService) GetByName(ctx context.Context, name string) (*domain.Community, error) {
	community, err := s.communities.GetByName(ctx, strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("community", map[string]any{"name": name})
		}
		return nil, err
	}
	return community, nil
}

// ListByCategory pages communities within one category.
func (s *CommunityService) ListByCategory(ctx context.Context, categoryID string, limit, offset int) ([]domain.Community, error) {
	limit, offset = normalizePage(limit, offset)
	return s.communities.ListByCategory(ctx, categoryID, limit, offset)
}

// UpdateDescription lets the creator change the community description.
func (s *CommunityService) UpdateDescription(ctx context.Context, actor domain.AuthorizedPayload, communityID, description string) (*domain.Community, error) {
	community, err := s.communities.GetByID(ctx, communityID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("community", map[string]any{"id": communityID})
		}
		return nil, err
	}
	if community.CreatorID != actor.ID {
		return nil, apperrors.NewForbidden("only the community creator can edit it")
	}

	community.Description = strings.TrimSpace(description)
	if err := s.communities.Update(ctx, community); err != nil {
		return nil, err
	}
	return community, nil
}

// Delete soft-deletes a community. Admin-only; role enforced upstream.
func (s *CommunityService) Delete(ctx context.Context, actor domain.AuthorizedPayload, communityID string) error {
	if err := s.communities.SoftDelete(ctx, communityID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("community", map[string]any{"id": communityID})
		}
		return err
	}

	s.publish(ctx, events.EventCommunityDeleted, actor, "community", communityID, nil)
	return nil
}

func (s *CommunityService) publish(ctx context.Context, eventType events.EventType, actor domain.AuthorizedPayload, targetType, targetID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Actor:      events.Actor{Role: actor.Type, ID: actor.ID},
		TargetType: targetType,
		TargetID:   targetID,
		Timestamp:  time.Now(),
		Payload:    payload,
	})
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
