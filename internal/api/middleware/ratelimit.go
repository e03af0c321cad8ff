package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/hszk-dev/tubegate/internal/infrastructure/metrics"
)

// Limiter is the minimal admission-control interface the middleware needs.
type Limiter interface {
	Admit(key string) bool
}

// RateLimit gates every request through the limiter, keyed by client IP.
// It runs before any other request processing on the routes it guards; a
// rejected request is answered with 429 and a structured error body.
func RateLimit(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Admit(clientIP(r)) {
				metrics.RateLimitDecisionsTotal.WithLabelValues(metrics.RateLimitRejected).Inc()
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":   "rate_limit_exceeded",
					"message": "Too many requests, try again later",
				})
				return
			}

			metrics.RateLimitDecisionsTotal.WithLabelValues(metrics.RateLimitAdmitted).Inc()
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP resolves the caller's address, trusting the left-most
// X-Forwarded-For entry when the header is present.
func clientIP(r *http.Request) string {
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
