package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"addressfinder/internal/jwtauth"
	"addressfinder/pkg/domainerrors"
	"addressfinder/pkg/platform/httputil"
	"addressfinder/pkg/requestcontext"
)

// TokenValidator validates a caller token and yields its claims.
type TokenValidator interface {
	Validate(tokenString string) (*jwtauth.Claims, error)
}

// RequireCaller guards the service-to-service API. A valid bearer token puts
// the calling service's id on the context; anything else is a 401. End-user
// step routes are not behind this.
func RequireCaller(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized api access, missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, domainerrors.New(domainerrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			claims, err := validator.Validate(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized api access, invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, domainerrors.New(domainerrors.CodeUnauthorized, "invalid or expired token"))
				return
			}

			ctx = requestcontext.WithCallerID(ctx, claims.ServiceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
