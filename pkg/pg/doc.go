// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool
// with retrying startup, goose schema migrations, and a health probe.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//		return err
//	}
//
// The pool is then handed to the per-subsystem stores, e.g.
// scopestore.NewPostgresStore or notification.NewPostgresSubscriptionStore.
package pg
