// Package requestid attaches a correlation identifier to every HTTP request.
//
// Middleware reuses a valid client-supplied "X-Request-ID" header or generates
// a UUIDv4, stores the value in the request context, and echoes it back in the
// response. FromContext reads it anywhere downstream, and LoggerExtractor
// feeds it into the logger so all records for one request share the same id.
//
//	mux := chi.NewRouter()
//	mux.Use(requestid.Middleware)
//
//	log := logger.New(
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
// Invalid or oversized client ids are silently replaced; the package never
// returns errors.
package requestid
