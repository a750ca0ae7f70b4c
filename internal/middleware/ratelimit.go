package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"fit1-backend/internal/apperr"
)

// RateLimit allows max requests per window from each client IP. The port is
// ignored, so one host opening new connections shares a single budget. Mount
// it after chi's RealIP so proxied clients are keyed by their own address.
// A non-positive max disables the limit.
func RateLimit(max int, window time.Duration) func(http.Handler) http.Handler {
	if max <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(max, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, apperr.NewHTTPError(http.StatusTooManyRequests, "too many requests"))
		}),
	)
}
