package middleware

import (
	"log/slog"
	"net/http"

	"github.com/tuitionnetwork/tuition-api/internal/api/shared"
	"github.com/tuitionnetwork/tuition-api/internal/platform/logger"
)

// TraceMiddleware attaches a trace ID and a trace-scoped logger to every
// request context. Apply it first so every downstream handler and log line
// can correlate.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		log := slog.With(slog.String("trace_id", shared.GetTraceID(ctx)))
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
