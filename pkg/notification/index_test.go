package notification_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/grantkit/pkg/notification"
)

func newTestRegistry(t *testing.T) *notification.Registry {
	t.Helper()
	registry, err := notification.NewRegistry(
		notification.Definition{Name: "Orders.CommentAdded", DisplayName: "Comment added", RequiresSubscription: true},
		notification.Definition{Name: "Billing.InvoiceIssued", DisplayName: "Invoice issued", RequiresSubscription: true},
		notification.Definition{Name: "System.Maintenance", DisplayName: "Maintenance window"},
	)
	require.NoError(t, err)
	return registry
}

func TestRegistry_Validation(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()

		_, err := notification.NewRegistry(notification.Definition{Name: ""})
		require.ErrorIs(t, err, notification.ErrInvalidDefinition)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		t.Parallel()

		_, err := notification.NewRegistry(
			notification.Definition{Name: "Orders.CommentAdded"},
			notification.Definition{Name: "Orders.CommentAdded"},
		)
		require.ErrorIs(t, err, notification.ErrDuplicateDefinition)
	})

	t.Run("all returns sorted definitions", func(t *testing.T) {
		t.Parallel()

		registry := newTestRegistry(t)
		all := registry.All()
		require.Len(t, all, 3)
		assert.Equal(t, "Billing.InvoiceIssued", all[0].Name)
		assert.Equal(t, "Orders.CommentAdded", all[1].Name)
		assert.Equal(t, "System.Maintenance", all[2].Name)
	})
}

func TestIndex_SubscribeAndResolve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	index := notification.NewIndex(notification.NewMemorySubscriptionStore(), newTestRegistry(t))

	alice := uuid.New()
	bob := uuid.New()

	require.NoError(t, index.Subscribe(ctx, alice, "Orders.CommentAdded", notification.Entity{}))
	require.NoError(t, index.Subscribe(ctx, bob, "Orders.CommentAdded", notification.Entity{}))

	subscribers, err := index.GetSubscribers(ctx, "Orders.CommentAdded", notification.Entity{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{alice, bob}, subscribers)

	subscribed, err := index.IsSubscribed(ctx, alice, "Orders.CommentAdded", notification.Entity{})
	require.NoError(t, err)
	assert.True(t, subscribed)
}

func TestIndex_SubscribeIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	index := notification.NewIndex(notification.NewMemorySubscriptionStore(), newTestRegistry(t))

	alice := uuid.New()
	require.NoError(t, index.Subscribe(ctx, alice, "Orders.CommentAdded", notification.Entity{}))
	require.NoError(t, index.Subscribe(ctx, alice, "Orders.CommentAdded", notification.Entity{}))

	subscribers, err := index.GetSubscribers(ctx, "Orders.CommentAdded", notification.Entity{})
	require.NoError(t, err)
	assert.Len(t, subscribers, 1)
}

func TestIndex_UnsubscribeMissingIsNoOp(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	index := notification.NewIndex(notification.NewMemorySubscriptionStore(), newTestRegistry(t))

	require.NoError(t, index.Unsubscribe(ctx, uuid.New(), "Orders.CommentAdded", notification.Entity{}))
}

func TestIndex_Unsubscribe(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	index := notification.NewIndex(notification.NewMemorySubscriptionStore(), newTestRegistry(t))

	alice := uuid.New()
	require.NoError(t, index.Subscribe(ctx, alice, "Orders.CommentAdded", notification.Entity{}))
	require.NoError(t, index.Unsubscribe(ctx, alice, "Orders.CommentAdded", notification.Entity{}))

	subscribed, err := index.IsSubscribed(ctx, alice, "Orders.CommentAdded", notification.Entity{})
	require.NoError(t, err)
	assert.False(t, subscribed)
}

func TestIndex_EntityScopedSubscriptions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	index := notification.NewIndex(notification.NewMemorySubscriptionStore(), newTestRegistry(t))

	alice := uuid.New()
	bob := uuid.New()
	order42 := notification.Entity{Type: "order", ID: "42"}

	require.NoError(t, index.Subscribe(ctx, alice, "Orders.CommentAdded", order42))
	require.NoError(t, index.Subscribe(ctx, bob, "Orders.CommentAdded", notification.Entity{}))

	// Entity-scoped lookup matches only that entity's subscribers.
	subscribers, err := index.GetSubscribers(ctx, "Orders.CommentAdded", order42)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{alice}, subscribers)

	// Bare lookup matches only non-entity subscriptions.
	subscribers, err = index.GetSubscribers(ctx, "Orders.CommentAdded", notification.Entity{})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{bob}, subscribers)
}

func TestIndex_UnknownNotification(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	index := notification.NewIndex(notification.NewMemorySubscriptionStore(), newTestRegistry(t))

	err := index.Subscribe(ctx, uuid.New(), "Unknown.Event", notification.Entity{})
	require.ErrorIs(t, err, notification.ErrNotRegistered)

	_, err = index.GetSubscribers(ctx, "Unknown.Event", notification.Entity{})
	require.ErrorIs(t, err, notification.ErrNotRegistered)
}

func TestIndex_RejectsZeroUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	index := notification.NewIndex(notification.NewMemorySubscriptionStore(), newTestRegistry(t))

	err := index.Subscribe(ctx, uuid.Nil, "Orders.CommentAdded", notification.Entity{})
	require.ErrorIs(t, err, notification.ErrMissingUserID)

	err = index.UnsubscribeAll(ctx, uuid.Nil)
	require.ErrorIs(t, err, notification.ErrMissingUserID)
}

func TestIndex_UnsubscribeAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	index := notification.NewIndex(notification.NewMemorySubscriptionStore(), newTestRegistry(t))

	alice := uuid.New()
	bob := uuid.New()
	require.NoError(t, index.Subscribe(ctx, alice, "Orders.CommentAdded", notification.Entity{}))
	require.NoError(t, index.Subscribe(ctx, alice, "Billing.InvoiceIssued", notification.Entity{}))
	require.NoError(t, index.Subscribe(ctx, bob, "Orders.CommentAdded", notification.Entity{}))

	require.NoError(t, index.UnsubscribeAll(ctx, alice))

	subscribers, err := index.GetSubscribers(ctx, "Orders.CommentAdded", notification.Entity{})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{bob}, subscribers)

	subscribers, err = index.GetSubscribers(ctx, "Billing.InvoiceIssued", notification.Entity{})
	require.NoError(t, err)
	assert.Empty(t, subscribers)
}
