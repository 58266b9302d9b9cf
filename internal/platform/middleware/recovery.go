package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"addressfinder/pkg/domainerrors"
	"addressfinder/pkg/platform/httputil"
	"addressfinder/pkg/requestcontext"
)

// Recovery converts a handler panic into a 500 error envelope and a
// structured log line carrying the stack. http.ErrAbortHandler keeps its
// net/http meaning and is re-raised.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				ctx := r.Context()
				logger.ErrorContext(ctx, "handler panicked",
					"panic", rec,
					"path", r.URL.Path,
					"request_id", requestcontext.RequestID(ctx),
					"stack", string(debug.Stack()),
				)
				httputil.WriteError(w, domainerrors.New(domainerrors.CodeInternal, "internal error"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
