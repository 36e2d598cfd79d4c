package scopestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is a PostgreSQL implementation of the Store interface
// backed by a pgx connection pool. See migrations/ for the expected schema.
//
// Each subsystem (permission grants, setting values, feature overrides)
// should get its own store instance pointing at its own table so that rows
// with the same scope and name never collide.
type PostgresStore struct {
	pool  *pgxpool.Pool
	table string
}

// PostgresOption configures a PostgresStore.
type PostgresOption func(*PostgresStore)

// WithTable sets the backing table name. Defaults to "scoped_values".
func WithTable(table string) PostgresOption {
	return func(s *PostgresStore) {
		if table != "" {
			s.table = table
		}
	}
}

// NewPostgresStore creates a scoped value store over an existing pool.
// The pool lifecycle is owned by the caller.
func NewPostgresStore(pool *pgxpool.Pool, opts ...PostgresOption) *PostgresStore {
	if pool == nil {
		panic("scopestore: pgxpool is required")
	}

	s := &PostgresStore{pool: pool, table: "scoped_values"}
	for _, opt := range opts {
		opt(s)
	}
	// The table name is interpolated into query text, so it is sanitized
	// once here rather than trusted at query time.
	s.table = pgx.Identifier{s.table}.Sanitize()
	return s
}

func (s *PostgresStore) Get(ctx context.Context, scope Scope, scopeKey, name string) (*Record, error) {
	var rec Record
	err := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT scope, scope_key, name, value
		 FROM %s
		 WHERE scope = $1 AND scope_key = $2 AND name = $3`, s.table),
		string(scope), scopeKey, name,
	).Scan(&rec.Scope, &rec.ScopeKey, &rec.Name, &rec.Value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	return &rec, nil
}

func (s *PostgresStore) List(ctx context.Context, scope Scope, scopeKeys []string, name string) ([]Record, error) {
	if len(scopeKeys) == 0 {
		return []Record{}, nil
	}

	rows, err := s.pool.Query(ctx,
		fmt.Sprintf(`SELECT scope, scope_key, name, value
		 FROM %s
		 WHERE scope = $1 AND scope_key = ANY($2) AND name = $3`, s.table),
		string(scope), scopeKeys, name,
	)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	defer rows.Close()

	result := make([]Record, 0, len(scopeKeys))
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Scope, &rec.ScopeKey, &rec.Name, &rec.Value); err != nil {
			return nil, errors.Join(ErrStoreUnavailable, err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	return result, nil
}

func (s *PostgresStore) Set(ctx context.Context, rec Record) error {
	if rec.Scope == "" || rec.Name == "" {
		return ErrInvalidRecord
	}

	_, err := s.pool.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (scope, scope_key, name, value, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (scope, scope_key, name)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, s.table),
		string(rec.Scope), rec.ScopeKey, rec.Name, rec.Value,
	)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, scope Scope, scopeKey, name string) error {
	_, err := s.pool.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE scope = $1 AND scope_key = $2 AND name = $3`, s.table),
		string(scope), scopeKey, name,
	)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *PostgresStore) DeleteScope(ctx context.Context, scope Scope, scopeKey string) error {
	_, err := s.pool.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE scope = $1 AND scope_key = $2`, s.table),
		string(scope), scopeKey,
	)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
