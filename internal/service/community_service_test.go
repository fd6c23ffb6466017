package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/community-service/internal/domain"
	apperrors "github.com/spec-kit/community-service/pkg/util"
)

func newCommunityFixture() (*CommunityService, *fakeCommunityRepo) {
	communities := newFakeCommunityRepo()
	categories := newFakeCategoryRepo(domain.Category{ID: "cat-1", Name: "tech", DisplayName: "Technology"})
	svc := NewCommunityService(CommunityDependencies{
		CommunityRepo: communities,
		CategoryRepo:  categories,
		Dispatcher:    newRecordingDispatcher(),
	})
	return svc, communities
}

func TestCommunityService_CreateNormalizesName(t *testing.T) {
	svc, _ := newCommunityFixture()
	creator := domain.AuthorizedPayload{ID: "member-1", Type: domain.RoleMemberUser}

	community, err := svc.Create(context.Background(), creator, CommunityCreateInput{
		Name:       "  GoLang  ",
		CategoryID: "cat-1",
	})
	require.NoError(t, err)
	require.Equal(t, "golang", community.Name)

	got, err := svc.GetByName(context.Background(), "GOLANG")
	require.NoError(t, err)
	require.Equal(t, community.ID, got.ID)
}

func TestCommunityService_CreateRejections(t *testing.T) {
	svc, _ := newCommunityFixture()
	creator := domain.AuthorizedPayload{ID: "member-1", Type: domain.RoleMemberUser}

	cases := []struct {
		name  string
		input CommunityCreateInput
		code  string
	}{
		{"bad name", CommunityCreateInput{Name: "x", CategoryID: "cat-1"}, "VALIDATION_FAILED"},
		{"bad chars", CommunityCreateInput{Name: "no spaces here", CategoryID: "cat-1"}, "VALIDATION_FAILED"},
		{"unknown category", CommunityCreateInput{Name: "valid-name", CategoryID: "cat-404"}, "VALIDATION_FAILED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), creator, tc.input)
			require.Error(t, err)
			require.Equal(t, tc.code, apperrors.ToDomainError(err).Code)
		})
	}

	_, err := svc.Create(context.Background(), creator, CommunityCreateInput{Name: "taken", CategoryID: "cat-1"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), creator, CommunityCreateInput{Name: "Taken", CategoryID: "cat-1"})
	require.Error(t, err)
	require.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestCommunityService_OnlyCreatorEdits(t *testing.T) {
	svc, _ := newCommunityFixture()
	creator := domain.AuthorizedPayload{ID: "member-1", Type: domain.RoleMemberUser}
	stranger := domain.AuthorizedPayload{ID: "member-2", Type: domain.RoleMemberUser}

	community, err := svc.Create(context.Background(), creator, CommunityCreateInput{Name: "editable", CategoryID: "cat-1"})
	require.NoError(t, err)

	_, err = svc.UpdateDescription(context.Background(), stranger, community.ID, "hijack")
	require.Error(t, err)
	require.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	updated, err := svc.UpdateDescription(context.Background(), creator, community.ID, "all about editing")
	require.NoError(t, err)
	require.Equal(t, "all about editing", updated.Description)
}

func TestCommunityService_DeleteHidesCommunity(t *testing.T) {
	svc, _ := newCommunityFixture()
	creator := domain.AuthorizedPayload{ID: "member-1", Type: domain.RoleMemberUser}
	admin := domain.AuthorizedPayload{ID: "admin-1", Type: domain.RoleAdminUser}

	community, err := svc.Create(context.Background(), creator, CommunityCreateInput{Name: "doomed", CategoryID: "cat-1"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), admin, community.ID))

	_, err = svc.GetByName(context.Background(), "doomed")
	require.Error(t, err)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	err = svc.Delete(context.Background(), admin, community.ID)
	require.Error(t, err)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
