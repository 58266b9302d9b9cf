// Package middleware carries the HTTP middleware chain: request metadata
// capture, caller authentication, and request logging.
package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"addressfinder/pkg/requestcontext"
)

// RequestMetadata assigns a request ID, pins the request clock, and captures
// client IP, User-Agent, and a parsed device description into the context.
// Apply it first so every later layer sees the same values.
func RequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = requestcontext.WithRequestID(ctx, requestID)
		ctx = requestcontext.WithTime(ctx, requestcontext.Now(ctx))

		ua := r.Header.Get("User-Agent")
		ctx = requestcontext.WithClientMetadata(ctx, clientIPFromRequest(r), ua, describeDevice(ua))

		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// describeDevice condenses a User-Agent header into "Browser version on OS"
// for audit events. Empty input stays empty.
func describeDevice(rawUA string) string {
	if rawUA == "" {
		return ""
	}
	parsed := useragent.New(rawUA)
	name, version := parsed.Browser()
	if name == "" {
		return "unknown"
	}
	desc := name
	if version != "" {
		desc += " " + version
	}
	if os := parsed.OS(); os != "" {
		desc += " on " + os
	}
	return desc
}

// clientIPFromRequest extracts the real client IP, handling proxies and load
// balancers.
func clientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs; the first is the original
	// client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is "ip:port", "[::1]:port" for IPv6.
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}
	return "unknown"
}
