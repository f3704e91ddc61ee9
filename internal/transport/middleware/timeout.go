package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout puts a deadline on the request context. The handler still writes
// the response itself, so callers that honour ctx can report the failure.
// A non-positive d yields nil, which Chain skips.
func Timeout(d time.Duration) Middleware {
	if d <= 0 {
		return nil
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
