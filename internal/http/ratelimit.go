package http

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/student-spending/spendboard/internal/http/respond"
)

// rateLimit sheds requests with 429 once the shared limiter runs dry.
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				slog.Warn("rate limit exceeded", "path", r.URL.Path)
				respond.Error(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
