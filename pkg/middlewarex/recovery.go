package middlewarex

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"nycschools/internal/domain"
	"nycschools/pkg/errcodes"
	"nycschools/pkg/httpx/reply"
	"nycschools/pkg/logx"
)

// Recovery turns a handler panic into a 500 error reply carrying the
// request's supportId.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			if rec := recover(); rec != nil {
				logger(ctx).Error(
					"panic in handler",
					slog.Any(logx.FieldError, rec),
					slog.String(logx.FieldStack, string(debug.Stack())),
				)

				reply.Error(ctx, w, domain.NewError(errcodes.InternalServerError, "internal server error"))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
