package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/grantkit/pkg/scopestore"
)

// PostgresSubscriptionStore is a SubscriptionStore backed by the
// notification_subscriptions table. See migrations/ for the schema.
type PostgresSubscriptionStore struct {
	pool *pgxpool.Pool
}

// NewPostgresSubscriptionStore creates a subscription store over an
// existing pool. The pool lifecycle is owned by the caller.
func NewPostgresSubscriptionStore(pool *pgxpool.Pool) *PostgresSubscriptionStore {
	if pool == nil {
		panic("notification: pgxpool is required")
	}
	return &PostgresSubscriptionStore{pool: pool}
}

func (s *PostgresSubscriptionStore) Store(ctx context.Context, sub Subscription) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO notification_subscriptions (user_id, name, entity_type, entity_id, created_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (user_id, name, entity_type, entity_id) DO NOTHING`,
		sub.UserID, sub.Name, sub.Entity.Type, sub.Entity.ID,
	)
	if err != nil {
		return errors.Join(scopestore.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *PostgresSubscriptionStore) Remove(ctx context.Context, sub Subscription) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM notification_subscriptions
		 WHERE user_id = $1 AND name = $2 AND entity_type = $3 AND entity_id = $4`,
		sub.UserID, sub.Name, sub.Entity.Type, sub.Entity.ID,
	)
	if err != nil {
		return errors.Join(scopestore.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *PostgresSubscriptionStore) Exists(ctx context.Context, sub Subscription) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM notification_subscriptions
		   WHERE user_id = $1 AND name = $2 AND entity_type = $3 AND entity_id = $4
		 )`,
		sub.UserID, sub.Name, sub.Entity.Type, sub.Entity.ID,
	).Scan(&exists)
	if err != nil {
		return false, errors.Join(scopestore.ErrStoreUnavailable, err)
	}
	return exists, nil
}

func (s *PostgresSubscriptionStore) Subscribers(ctx context.Context, name string, entity Entity) ([]uuid.UUID, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT user_id FROM notification_subscriptions
		 WHERE name = $1 AND entity_type = $2 AND entity_id = $3
		 ORDER BY created_at`,
		name, entity.Type, entity.ID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []uuid.UUID{}, nil
		}
		return nil, errors.Join(scopestore.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var result []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Join(scopestore.ErrStoreUnavailable, err)
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(scopestore.ErrStoreUnavailable, err)
	}

	return result, nil
}

func (s *PostgresSubscriptionStore) RemoveForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM notification_subscriptions WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return errors.Join(scopestore.ErrStoreUnavailable, err)
	}
	return nil
}
