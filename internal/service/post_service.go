package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/community-service/internal/domain"
	"github.com/spec-kit/community-service/internal/events"
	"github.com/spec-kit/community-service/internal/repository"
	apperrors "github.com/spec-kit/community-service/pkg/util"
)

const (
	maxPostTitleLen   = 300
	maxPostBodyLen    = 40000
	maxCommentBodyLen = 10000
)

// PostService coordinates post and comment workflows.
type PostService struct {
	posts       repository.PostRepository
	comments    repository.CommentRepository
	communities repository.CommunityRepository
	votes       repository.VoteRepository
	dispatcher  events.Dispatcher
}

// PostDependencies bundles repositories for the post service.
type PostDependencies struct {
	PostRepo      repository.PostRepository
	CommentRepo   repository.CommentRepository
	CommunityRepo repository.CommunityRepository
	VoteRepo      repository.VoteRepository
	Dispatcher    events.Dispatcher
}

// PostCreateInput describes post creation payload.
type PostCreateInput struct {
	CommunityID string
	Title       string
	Body        string
}

// PostView is a post joined with its vote score.
type PostView struct {
	Post  domain.Post
	Score int64
}

// NewPostService constructs the service.
func NewPostService(deps PostDependencies) *PostService {
	return &PostService{
		posts:       deps.PostRepo,
		comments:    deps.CommentRepo,
		communities: deps.CommunityRepo,
		votes:       deps.VoteRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// Create submits a post into a community on behalf of a member.
func (s *PostService) Create(ctx context.Context, actor domain.AuthorizedPayload, input PostCreateInput) (*domain.Post, error) {
	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Body)
	if title == "" || len(title) > maxPostTitleLen {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if len(body) > maxPostBodyLen {
		return nil, apperrors.NewValidationError("body too long", nil)
	}

	if _, err := s.communities.GetByID(ctx, input.CommunityID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("community", map[string]any{"id": input.CommunityID})
		}
		return nil, err
	}

	post := &domain.Post{
		CommunityID: input.CommunityID,
		AuthorID:    actor.ID,
		Title:       title,
		Body:        body,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPostCreated, actor, "post", post.ID,
		events.PostCreatedPayload{CommunityID: post.CommunityID, Title: post.Title})
	return post, nil
}

// Get returns a post and its current score.
func (s *PostService) Get(ctx context.Context, postID string) (*PostView, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("post", map[string]any{"id": postID})
		}
		return nil, err
	}

	score, err := s.votes.Score(ctx, domain.VoteTargetPost, postID)
	if err != nil {
		return nil, err
	}
	return &PostView{Post: *post, Score: score}, nil
}

// ListByCommunity pages posts of one community, newest first.
func (s *PostService) ListByCommunity(ctx context.Context, communityID string, limit, offset int) ([]domain.Post, error) {
	limit, offset = normalizePage(limit, offset)
	return s.posts.ListByCommunity(ctx, communityID, limit, offset)
}

// Update edits a post. Only the author may edit.
func (s *PostService) Update(ctx context.Context, actor domain.AuthorizedPayload, postID, title, body string) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("post", map[string]any{"id": postID})
		}
		return nil, err
	}
	if post.AuthorID != actor.ID {
		return nil, apperrors.NewForbidden("only the author can edit this post")
	}

	title = strings.TrimSpace(title)
	if title == "" || len(title) > maxPostTitleLen {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	post.Title = title
	post.Body = strings.TrimSpace(body)
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete soft-deletes a post. Authors delete their own; admins any.
func (s *PostService) Delete(ctx context.Context, actor domain.AuthorizedPayload, postID string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("post", map[string]any{"id": postID})
		}
		return err
	}
	if actor.Type != domain.RoleAdminUser && post.AuthorID != actor.ID {
		return apperrors.NewForbidden("only the author can delete this post")
	}

	if err := s.posts.SoftDelete(ctx, postID); err != nil {
		return err
	}

	s.publish(ctx, events.EventPostDeleted, actor, "post", postID, nil)
	return nil
}

// CreateComment replies to a post, optionally under a parent comment.
func (s *PostService) CreateComment(ctx context.Context, actor domain.AuthorizedPayload, postID string, parentID *string, body string) (*domain.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" || len(body) > maxCommentBodyLen {
		return nil, apperrors.NewValidationError("comment body required", nil)
	}

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("post", map[string]any{"id": postID})
		}
		return nil, err
	}

	if parentID != nil {
		parent, err := s.comments.GetByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("comment", map[string]any{"id": *parentID})
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, apperrors.NewValidationError("parent comment belongs to another post", nil)
		}
	}

	comment := &domain.Comment{
		PostID:   postID,
		ParentID: parentID,
		AuthorID: actor.ID,
		Body:     body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventCommentCreated, actor, "comment", comment.ID,
		events.CommentCreatedPayload{PostID: postID, ParentID: parentID})
	return comment, nil
}

// ListComments pages a post's comments, oldest first.
func (s *PostService) ListComments(ctx context.Context, postID string, limit, offset int) ([]domain.Comment, error) {
	limit, offset = normalizePage(limit, offset)
	return s.comments.ListByPost(ctx, postID, limit, offset)
}

// DeleteComment soft-deletes a comment. Authors delete their own; admins any.
func (s *PostService) DeleteComment(ctx context.Context, actor domain.AuthorizedPayload, commentID string) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("comment", map[string]any{"id": commentID})
		}
		return err
	}
	if actor.Type != domain.RoleAdminUser && comment.AuthorID != actor.ID {
		return apperrors.NewForbidden("only the author can delete this comment")
	}

	if err := s.comments.SoftDelete(ctx, commentID); err != nil {
		return err
	}

	s.publish(ctx, events.EventCommentDeleted, actor, "comment", commentID, nil)
	return nil
}

func (s *PostService) publish(ctx context.Context, eventType events.EventType, actor domain.AuthorizedPayload, targetType, targetID string, payload any) {
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
