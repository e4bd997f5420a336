// Package pg bootstraps the PostgreSQL layer: connection pooling via
// pgx/v5, schema migrations via goose/v3, readiness probes, and error
// classification helpers used by storage code.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    log.Fatal(err)
//	}
package pg
