package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/community-service/internal/domain"
	"github.com/spec-kit/community-service/internal/events"
)

func TestAuditService_RecordsPublishedEvents(t *testing.T) {
	entries := &fakeAuditRepo{}
	dispatcher := newRecordingDispatcher()
	svc := NewAuditService(entries, dispatcher, zap.NewNop())
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:         "evt-1",
		Type:       events.EventPostCreated,
		Actor:      events.Actor{Role: domain.RoleMemberUser, ID: "member-1"},
		TargetType: "post",
		TargetID:   "post-1",
		Payload:    events.PostCreatedPayload{CommunityID: "c-1", Title: "hello"},
	})
	require.NoError(t, err)

	require.Len(t, entries.entries, 1)
	entry := entries.entries[0]
	require.Equal(t, "post_created", entry.Action)
	require.Equal(t, domain.RoleMemberUser, entry.ActorRole)
	require.Equal(t, "member-1", entry.ActorID)
	require.Equal(t, "post-1", entry.TargetID)
	require.Equal(t, "hello", entry.Detail["title"])
}

func TestAuditService_ListRecentPages(t *testing.T) {
	entries := &fakeAuditRepo{}
	dispatcher := newRecordingDispatcher()
	svc := NewAuditService(entries, dispatcher, zap.NewNop())
	svc.RegisterHandlers()

	for i := 0; i < 5; i++ {
		require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
			Type:  events.EventVoteCast,
			Actor: events.Actor{Role: domain.RoleMemberUser, ID: "member-1"},
		}))
	}

	page, err := svc.ListRecent(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)

	rest, err := svc.ListRecent(context.Background(), 10, 4)
	require.NoError(t, err)
	require.Len(t, rest, 1)
}
