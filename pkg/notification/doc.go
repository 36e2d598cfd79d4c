// Package notification maintains per-user notification subscriptions and
// fans published events out to their subscribers.
//
// Subscriptions are additive facts: a row means "interested", no row means
// "not interested". A subscription optionally targets a specific entity
// ("comment added on order 42") in addition to the bare notification name.
//
// Notification definitions register once at startup. A definition's
// RequiresSubscription flag decides delivery at publish time: gated
// notifications go to subscribers only, broadcast notifications go to all
// users resolved through an AllUsersProvider.
//
// The Publisher decouples publishing from delivery with a bounded queue
// and a worker goroutine, so a slow Dispatcher never blocks the
// publishing request.
//
//	index := notification.NewIndex(notification.NewMemorySubscriptionStore(), registry)
//	err := index.Subscribe(ctx, userID, "Orders.CommentAdded", notification.Entity{Type: "Order", ID: "42"})
//
//	publisher := notification.NewPublisher(registry, index, dispatcher,
//	    notification.WithAllUsersProvider(users))
//	defer publisher.Close()
//
//	err = publisher.Publish(ctx, notification.Event{
//	    Name:   "Orders.CommentAdded",
//	    Entity: notification.Entity{Type: "Order", ID: "42"},
//	})
package notification
