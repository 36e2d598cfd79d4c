package feature

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/grantkit/pkg/scopestore"
)

// PostgresCounter is a UsageCounter backed by a feature_usage table.
// The increment is a single upsert statement, so the database guarantees
// atomicity without a read-modify-write round trip.
type PostgresCounter struct {
	pool *pgxpool.Pool
}

// NewPostgresCounter creates a usage counter over an existing pool.
// The pool lifecycle is owned by the caller.
func NewPostgresCounter(pool *pgxpool.Pool) *PostgresCounter {
	if pool == nil {
		panic("feature: pgxpool is required")
	}
	return &PostgresCounter{pool: pool}
}

func (c *PostgresCounter) Increment(ctx context.Context, tenantID uuid.UUID, name, periodKey string, by int64) (int64, error) {
	if tenantID == uuid.Nil {
		return 0, ErrMissingScopeKey
	}

	var count int64
	err := c.pool.QueryRow(ctx,
		`INSERT INTO feature_usage (tenant_id, name, period_key, count, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (tenant_id, name, period_key)
		 DO UPDATE SET count = feature_usage.count + EXCLUDED.count, updated_at = now()
		 RETURNING count`,
		tenantID, name, periodKey, by,
	).Scan(&count)
	if err != nil {
		return 0, errors.Join(scopestore.ErrStoreUnavailable, err)
	}
	return count, nil
}

func (c *PostgresCounter) Current(ctx context.Context, tenantID uuid.UUID, name, periodKey string) (int64, error) {
	var count int64
	err := c.pool.QueryRow(ctx,
		`SELECT count FROM feature_usage
		 WHERE tenant_id = $1 AND name = $2 AND period_key = $3`,
		tenantID, name, periodKey,
	).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, errors.Join(scopestore.ErrStoreUnavailable, err)
	}
	return count, nil
}
