package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Event is a notification occurrence handed to the publisher for fan-out.
type Event struct {
	// Name is the registered notification name.
	Name string

	// Entity optionally narrows the recipient set to subscribers of a
	// single entity instance.
	Entity Entity

	// Data carries arbitrary payload passed through to the dispatcher.
	Data map[string]any
}

// Dispatcher delivers an event to a set of recipients. Implementations
// typically enqueue per-user messages into an outbound channel (email,
// in-app inbox, webhook).
type Dispatcher interface {
	Dispatch(ctx context.Context, event Event, userIDs []uuid.UUID) error
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(ctx context.Context, event Event, userIDs []uuid.UUID) error

func (f DispatcherFunc) Dispatch(ctx context.Context, event Event, userIDs []uuid.UUID) error {
	return f(ctx, event, userIDs)
}

// NoOpDispatcher discards events. Useful in tests and environments
// without a delivery channel.
type NoOpDispatcher struct{}

func (NoOpDispatcher) Dispatch(ctx context.Context, event Event, userIDs []uuid.UUID) error {
	return nil
}

// AllUsersProvider lists recipients for broadcast notifications, i.e.
// definitions with RequiresSubscription unset.
type AllUsersProvider interface {
	AllUserIDs(ctx context.Context) ([]uuid.UUID, error)
}

// AllUsersProviderFunc adapts a function to the AllUsersProvider interface.
type AllUsersProviderFunc func(ctx context.Context) ([]uuid.UUID, error)

func (f AllUsersProviderFunc) AllUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	return f(ctx)
}

// Publisher fans notification events out to their recipients without
// blocking the caller. Events are queued on a bounded channel and
// processed by a single background worker; recipient resolution and
// dispatch happen off the publishing goroutine.
type Publisher struct {
	index      *Index
	dispatcher Dispatcher
	users      AllUsersProvider
	log        *slog.Logger

	queue  chan Event
	done   chan struct{}
	closed bool
	mu     sync.Mutex
	wg     sync.WaitGroup
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithQueueSize sets the publish queue capacity. Default is 256.
func WithQueueSize(n int) PublisherOption {
	return func(p *Publisher) {
		if n > 0 {
			p.queue = make(chan Event, n)
		}
	}
}

// WithAllUsersProvider enables broadcast notifications. Without a
// provider, events for non-gated notifications are dropped with a
// warning.
func WithAllUsersProvider(users AllUsersProvider) PublisherOption {
	return func(p *Publisher) {
		p.users = users
	}
}

// WithPublisherLogger sets the logger for delivery failures.
func WithPublisherLogger(log *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		if log != nil {
			p.log = log
		}
	}
}

// NewPublisher creates a publisher and starts its worker.
// Panics if index or dispatcher is nil to fail fast during initialization.
// Call Close to drain the queue and stop the worker.
func NewPublisher(index *Index, dispatcher Dispatcher, opts ...PublisherOption) *Publisher {
	if index == nil {
		panic("notification: Index is required")
	}
	if dispatcher == nil {
		panic("notification: Dispatcher is required")
	}

	p := &Publisher{
		index:      index,
		dispatcher: dispatcher,
		log:        slog.Default(),
		queue:      make(chan Event, 256),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.wg.Add(1)
	go p.worker()

	return p
}

// Publish enqueues an event for asynchronous fan-out. It never blocks
// on delivery: a saturated queue returns ErrQueueFull immediately.
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	if !p.index.registry.Has(event.Name) {
		return errors.Join(ErrNotRegistered, fmt.Errorf("notification %q", event.Name))
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPublisherClosed
	}

	select {
	case p.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting events, drains the queue, and waits for the
// worker to finish in-flight deliveries.
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.done)
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Publisher) worker() {
	defer p.wg.Done()
	for {
		select {
		case event := <-p.queue:
			p.deliver(event)
		case <-p.done:
			// Drain whatever was accepted before Close.
			for {
				select {
				case event := <-p.queue:
					p.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (p *Publisher) deliver(event Event) {
	ctx := context.Background()

	recipients, err := p.recipients(ctx, event)
	if err != nil {
		p.log.LogAttrs(ctx, slog.LevelError, "failed to resolve notification recipients",
			slog.String("notification", event.Name),
			slog.Any("error", err))
		return
	}
	if len(recipients) == 0 {
		return
	}

	if err := p.dispatcher.Dispatch(ctx, event, recipients); err != nil {
		p.log.LogAttrs(ctx, slog.LevelError, "notification dispatch failed",
			slog.String("notification", event.Name),
			slog.Int("recipients", len(recipients)),
			slog.Any("error", err))
	}
}

func (p *Publisher) recipients(ctx context.Context, event Event) ([]uuid.UUID, error) {
	def, ok := p.index.registry.Get(event.Name)
	if !ok {
		return nil, errors.Join(ErrNotRegistered, fmt.Errorf("notification %q", event.Name))
	}

	if def.RequiresSubscription {
		return p.index.GetSubscribers(ctx, event.Name, event.Entity)
	}

	if p.users == nil {
		p.log.LogAttrs(ctx, slog.LevelWarn, "broadcast notification dropped, no users provider configured",
			slog.String("notification", event.Name))
		return nil, nil
	}
	return p.users.AllUserIDs(ctx)
}
