package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/community-service/internal/domain"
	apperrors "github.com/spec-kit/community-service/pkg/util"
)

type voteFixture struct {
	svc   *VoteService
	posts *fakePostRepo
	votes *fakeVoteRepo
	post  *domain.Post
}

func newVoteFixture(t *testing.T) *voteFixture {
	t.Helper()
	f := &voteFixture{
		posts: newFakePostRepo(),
		votes: newFakeVoteRepo(),
	}
	f.svc = NewVoteService(VoteDependencies{
		VoteRepo:    f.votes,
		PostRepo:    f.posts,
		CommentRepo: newFakeCommentRepo(),
		Dispatcher:  newRecordingDispatcher(),
	})

	f.post = &domain.Post{CommunityID: "c-1", AuthorID: "member-1", Title: "target"}
	require.NoError(t, f.posts.Create(context.Background(), f.post))
	return f
}

func TestVoteService_CastOverwritesPriorVote(t *testing.T) {
	f := newVoteFixture(t)
	voter := domain.AuthorizedPayload{ID: "member-2", Type: domain.RoleMemberUser}

	_, err := f.svc.Cast(context.Background(), voter, domain.VoteTargetPost, f.post.ID, domain.VoteUp)
	require.NoError(t, err)

	score, err := f.svc.Score(context.Background(), domain.VoteTargetPost, f.post.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), score)

	_, err = f.svc.Cast(context.Background(), voter, domain.VoteTargetPost, f.post.ID, domain.VoteDown)
	require.NoError(t, err)

	score, err = f.svc.Score(context.Background(), domain.VoteTargetPost, f.post.ID)
	require.NoError(t, err)
	require.Equal(t, int64(-1), score, "a recast replaces the prior vote instead of stacking")
}

func TestVoteService_RejectsSelfVote(t *testing.T) {
	f := newVoteFixture(t)
	author := domain.AuthorizedPayload{ID: "member-1", Type: domain.RoleMemberUser}

	_, err := f.svc.Cast(context.Background(), author, domain.VoteTargetPost, f.post.ID, domain.VoteUp)
	require.Error(t, err)
	require.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestVoteService_RejectsBadInput(t *testing.T) {
	f := newVoteFixture(t)
	voter := domain.AuthorizedPayload{ID: "member-2", Type: domain.RoleMemberUser}

	_, err := f.svc.Cast(context.Background(), voter, domain.VoteTargetPost, f.post.ID, 2)
	require.Error(t, err)
	require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = f.svc.Cast(context.Background(), voter, "PAGE", f.post.ID, domain.VoteUp)
	require.Error(t, err)
	require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = f.svc.Cast(context.Background(), voter, domain.VoteTargetPost, "missing", domain.VoteUp)
	require.Error(t, err)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestVoteService_RetractWithZero(t *testing.T) {
	f := newVoteFixture(t)
	voter := domain.AuthorizedPayload{ID: "member-2", Type: domain.RoleMemberUser}

	_, err := f.svc.Cast(context.Background(), voter, domain.VoteTargetPost, f.post.ID, domain.VoteUp)
	require.NoError(t, err)
	_, err = f.svc.Cast(context.Background(), voter, domain.VoteTargetPost, f.post.ID, domain.VoteNone)
	require.NoError(t, err)

	score, err := f.svc.Score(context.Background(), domain.VoteTargetPost, f.post.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), score)
}
