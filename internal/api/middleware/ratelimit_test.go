package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubLimiter struct {
	admit bool
	keys  []string
}

func (s *stubLimiter) Admit(key string) bool {
	s.keys = append(s.keys, key)
	return s.admit
}

func TestRateLimit_Admitted(t *testing.T) {
	limiter := &stubLimiter{admit: true}
	called := false

	h := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/youtube", nil)
	req.RemoteAddr = "10.0.0.1:54321"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !called {
		t.Error("next handler not invoked for an admitted request")
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "10.0.0.1" {
		t.Errorf("limiter keyed by %v, want the client IP", limiter.keys)
	}
}

func TestRateLimit_Rejected(t *testing.T) {
	limiter := &stubLimiter{admit: false}

	h := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler invoked for a rejected request")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/youtube", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body["error"] != "rate_limit_exceeded" {
		t.Errorf("error = %q, want rate_limit_exceeded", body["error"])
	}
}

func TestRateLimit_ForwardedForTakesPrecedence(t *testing.T) {
	limiter := &stubLimiter{admit: true}

	h := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/youtube", nil)
	req.RemoteAddr = "10.0.0.1:54321"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if len(limiter.keys) != 1 || limiter.keys[0] != "203.0.113.7" {
		t.Errorf("limiter keyed by %v, want the left-most forwarded address", limiter.keys)
	}
}
