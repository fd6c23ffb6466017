package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventPostCreated, func(_ context.Context, e Event) error {
		got = append(got, e.TargetID)
		return nil
	})
	d.Subscribe(EventPostCreated, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.TargetID)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventPostCreated, TargetID: "p-1"})
	require.NoError(t, err)
	require.Equal(t, []string{"p-1", "second:p-1"}, got)
}

func TestDispatcher_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()

	var delivered bool
	d.Subscribe(EventVoteCast, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventVoteCast, func(context.Context, Event) error {
		delivered = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventVoteCast}))
	require.True(t, delivered)
}

func TestDispatcher_IgnoresUnsubscribedTypes(t *testing.T) {
	d := NewInMemoryDispatcher()
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventCommentDeleted}))
}
