package middlewarex

import (
	"net/http"

	"nycschools/pkg/contextx"
)

const headerNameTraceID = "X-Trace-Id"

// TraceID takes the caller's X-Trace-Id or mints one, and echoes it back so
// error replies can be correlated through their supportId.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := contextx.TraceID(r.Header.Get(headerNameTraceID))

		if traceID == "" {
			traceID = contextx.NewTraceID()
		}

		ctx := contextx.WithTraceID(r.Context(), traceID)

		w.Header().Set(headerNameTraceID, traceID.String())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
