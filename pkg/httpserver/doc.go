// Package httpserver wraps net/http with graceful shutdown, configurable
// timeouts, health-check handlers and slog logging.
//
// Run blocks until the context is cancelled or an interrupt/TERM signal
// arrives, then drains in-flight requests within the shutdown deadline.
// Construction goes through New with functional options, or NewFromConfig
// when the values come from the environment.
//
//	srv := httpserver.New(
//		httpserver.WithAddr(":8080"),
//		httpserver.WithShutdownTimeout(10*time.Second),
//		httpserver.WithLogger(log),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// HealthCheckHandler doubles as liveness probe (no dependency checks) and
// readiness probe (all supplied checks must pass). Listen failures are
// wrapped with ErrStart and shutdown failures with ErrShutdown, so callers
// can tell them apart with errors.Is.
package httpserver
