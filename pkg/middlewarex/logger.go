package middlewarex

import (
	"log/slog"
	"net/http"

	"nycschools/pkg/contextx"
	"nycschools/pkg/logx"
)

// Logger derives a request-scoped logger. Mounted after TraceID; on its own
// it mints a trace id so every request line stays correlatable.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, traceID := contextx.EnsureTraceID(r.Context())

		ctx = contextx.WithLogger(
			ctx,
			logger(ctx).With(
				logx.Stringer(logx.FieldTraceID, traceID),
				logx.Stringer(logx.FieldURL, r.URL),
				slog.String(logx.FieldHTTPMethod, r.Method),
				slog.String(logx.FieldIP, r.RemoteAddr),
			),
		)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
