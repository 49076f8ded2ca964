package middleware

import (
	"log/slog"
	"net/http"
)

// ErrorRenderer renders the generic error page.
type ErrorRenderer interface {
	Error(w http.ResponseWriter, status int, message string)
}

// Recovery returns middleware that recovers from panics and renders the
// error page with a 500 status.
func Recovery(rend ErrorRenderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					requestID := GetRequestID(r.Context())
					slog.Error("panic recovered", "error", err, "requestId", requestID)
					rend.Error(w, http.StatusInternalServerError, "An unexpected error occurred")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
