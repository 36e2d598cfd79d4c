package notification_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/grantkit/pkg/notification"
)

type recordedDispatch struct {
	event   notification.Event
	userIDs []uuid.UUID
}

// recordingDispatcher captures dispatched events and signals each
// delivery so tests can await asynchronous fan-out.
type recordingDispatcher struct {
	mu         sync.Mutex
	dispatches []recordedDispatch
	delivered  chan struct{}
}

func newRecordingDispatcher() *recordingDispatcher {
	return &recordingDispatcher{delivered: make(chan struct{}, 64)}
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, event notification.Event, userIDs []uuid.UUID) error {
	d.mu.Lock()
	d.dispatches = append(d.dispatches, recordedDispatch{event: event, userIDs: userIDs})
	d.mu.Unlock()
	d.delivered <- struct{}{}
	return nil
}

func (d *recordingDispatcher) await(t *testing.T) {
	t.Helper()
	select {
	case <-d.delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for dispatch")
	}
}

func (d *recordingDispatcher) all() []recordedDispatch {
	d.mu.Lock()
	defer d.mu.Unlock()
	result := make([]recordedDispatch, len(d.dispatches))
	copy(result, d.dispatches)
	return result
}

func TestPublisher_FansOutToSubscribers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	index := notification.NewIndex(notification.NewMemorySubscriptionStore(), newTestRegistry(t))
	dispatcher := newRecordingDispatcher()
	publisher := notification.NewPublisher(index, dispatcher)
	defer publisher.Close()

	alice := uuid.New()
	bob := uuid.New()
	require.NoError(t, index.Subscribe(ctx, alice, "Orders.CommentAdded", notification.Entity{}))
	require.NoError(t, index.Subscribe(ctx, bob, "Orders.CommentAdded", notification.Entity{}))

	err := publisher.Publish(ctx, notification.Event{
		Name: "Orders.CommentAdded",
		Data: map[string]any{"comment_id": "c-1"},
	})
	require.NoError(t, err)

	dispatcher.await(t)

	dispatches := dispatcher.all()
	require.Len(t, dispatches, 1)
	assert.Equal(t, "Orders.CommentAdded", dispatches[0].event.Name)
	assert.Equal(t, "c-1", dispatches[0].event.Data["comment_id"])
	assert.ElementsMatch(t, []uuid.UUID{alice, bob}, dispatches[0].userIDs)
}

func TestPublisher_NoSubscribersNoDispatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	index := notification.NewIndex(notification.NewMemorySubscriptionStore(), newTestRegistry(t))
	dispatcher := newRecordingDispatcher()
	publisher := notification.NewPublisher(index, dispatcher)

	require.NoError(t, publisher.Publish(ctx, notification.Event{Name: "Orders.CommentAdded"}))

	// Close drains the queue, so after it returns the event has been processed.
	publisher.Close()
	assert.Empty(t, dispatcher.all())
}

func TestPublisher_BroadcastUsesAllUsersProvider(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	index := notification.NewIndex(notification.NewMemorySubscriptionStore(), newTestRegistry(t))
	dispatcher := newRecordingDispatcher()

	everyone := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	publisher := notification.NewPublisher(index, dispatcher,
		notification.WithAllUsersProvider(notification.AllUsersProviderFunc(
			func(ctx context.Context) ([]uuid.UUID, error) {
				return everyone, nil
			})))
	defer publisher.Close()

	require.NoError(t, publisher.Publish(ctx, notification.Event{Name: "System.Maintenance"}))

	dispatcher.await(t)

	dispatches := dispatcher.all()
	require.Len(t, dispatches, 1)
	assert.ElementsMatch(t, everyone, dispatches[0].userIDs)
}

func TestPublisher_EntityScopedEvent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	index := notification.NewIndex(notification.NewMemorySubscriptionStore(), newTestRegistry(t))
	dispatcher := newRecordingDispatcher()
	publisher := notification.NewPublisher(index, dispatcher)
	defer publisher.Close()

	alice := uuid.New()
	bob := uuid.New()
	order42 := notification.Entity{Type: "order", ID: "42"}
	require.NoError(t, index.Subscribe(ctx, alice, "Orders.CommentAdded", order42))
	require.NoError(t, index.Subscribe(ctx, bob, "Orders.CommentAdded", notification.Entity{Type: "order", ID: "7"}))

	require.NoError(t, publisher.Publish(ctx, notification.Event{
		Name:   "Orders.CommentAdded",
		Entity: order42,
	}))

	dispatcher.await(t)

	dispatches := dispatcher.all()
	require.Len(t, dispatches, 1)
	assert.Equal(t, []uuid.UUID{alice}, dispatches[0].userIDs)
}

func TestPublisher_UnknownNotification(t *testing.T) {
	t.Parallel()

	index := notification.NewIndex(notification.NewMemorySubscriptionStore(), newTestRegistry(t))
	publisher := notification.NewPublisher(index, notification.NoOpDispatcher{})
	defer publisher.Close()

	err := publisher.Publish(context.Background(), notification.Event{Name: "Unknown.Event"})
	require.ErrorIs(t, err, notification.ErrNotRegistered)
}

func TestPublisher_QueueFullDoesNotBlock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	index := notification.NewIndex(notification.NewMemorySubscriptionStore(), newTestRegistry(t))

	// Block the worker on the first delivery so the queue saturates.
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	blocking := notification.DispatcherFunc(func(ctx context.Context, event notification.Event, userIDs []uuid.UUID) error {
		started <- struct{}{}
		<-release
		return nil
	})

	publisher := notification.NewPublisher(index, blocking,
		notification.WithQueueSize(1),
		notification.WithAllUsersProvider(notification.AllUsersProviderFunc(
			func(ctx context.Context) ([]uuid.UUID, error) {
				return []uuid.UUID{uuid.New()}, nil
			})))

	event := notification.Event{Name: "System.Maintenance"}

	// First publish is picked up by the worker and blocks in Dispatch.
	require.NoError(t, publisher.Publish(ctx, event))
	<-started

	// Second publish fills the queue of one.
	require.NoError(t, publisher.Publish(ctx, event))

	// Third must fail immediately instead of blocking.
	done := make(chan error, 1)
	go func() { done <- publisher.Publish(ctx, event) }()
	select {
	case err := <-done:
		require.ErrorIs(t, err, notification.ErrQueueFull)
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a full queue")
	}

	close(release)
	publisher.Close()
}

func TestPublisher_CloseDrainsQueue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	index := notification.NewIndex(notification.NewMemorySubscriptionStore(), newTestRegistry(t))
	dispatcher := newRecordingDispatcher()

	alice := uuid.New()
	require.NoError(t, index.Subscribe(ctx, alice, "Orders.CommentAdded", notification.Entity{}))

	publisher := notification.NewPublisher(index, dispatcher)
	for range 5 {
		require.NoError(t, publisher.Publish(ctx, notification.Event{Name: "Orders.CommentAdded"}))
	}

	publisher.Close()
	assert.Len(t, dispatcher.all(), 5)

	err := publisher.Publish(ctx, notification.Event{Name: "Orders.CommentAdded"})
	require.ErrorIs(t, err, notification.ErrPublisherClosed)
}
