// Package logger provides a context-aware wrapper around log/slog with
// functional options, helper attribute constructors, and transparent
// injection of context values into every record.
//
// New builds a *slog.Logger whose handler runs registered ContextExtractor
// callbacks on each log call, so request-scoped values like the tenant and
// user id appear on every line without callers passing them explicitly:
//
//	log := logger.New(
//	    logger.WithProduction("admin-api"),
//	    logger.WithContextExtractors(tenant.LoggerExtractor(), session.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
// Helper constructors in attr.go (Error, UserID, TenantID, ...) keep
// attribute names consistent across packages.
package logger
