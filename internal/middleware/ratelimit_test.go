package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/setuprelay/setuprelay/internal/cache"
)

type fakeLimiter struct {
	result *cache.RateLimitResult
	err    error

	gotIP     string
	gotMax    int
	gotWindow time.Duration
}

func (f *fakeLimiter) CheckSubmitRateLimit(_ context.Context, ip string, max int, window time.Duration) (*cache.RateLimitResult, error) {
	f.gotIP = ip
	f.gotMax = max
	f.gotWindow = window
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRateLimitSubmit_Allowed(t *testing.T) {
	limiter := &fakeLimiter{
		result: &cache.RateLimitResult{
			Allowed:   true,
			Remaining: 9,
			ResetAt:   time.Now().Add(15 * time.Minute),
		},
	}
	cfg := RateLimitConfig{
		Logger:  testLogger(),
		Limiter: limiter,
		Enabled: true,
		Max:     10,
		Window:  15 * time.Minute,
	}

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/submit-wizard", nil)
	req.RemoteAddr = "203.0.113.5:4312"
	rec := httptest.NewRecorder()

	RateLimitSubmit(cfg)(next).ServeHTTP(rec, req)

	if !called {
		t.Fatal("handler not called for allowed request")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-RateLimit-Limit"); got != "10" {
		t.Errorf("X-RateLimit-Limit = %q, want 10", got)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "9" {
		t.Errorf("X-RateLimit-Remaining = %q, want 9", got)
	}
	if limiter.gotMax != 10 || limiter.gotWindow != 15*time.Minute {
		t.Errorf("limiter called with max=%d window=%s", limiter.gotMax, limiter.gotWindow)
	}
}

func TestRateLimitSubmit_Exceeded(t *testing.T) {
	limiter := &fakeLimiter{
		result: &cache.RateLimitResult{
			Allowed:    false,
			Remaining:  0,
			ResetAt:    time.Now().Add(10 * time.Minute),
			RetryAfter: 90 * time.Second,
		},
	}
	cfg := RateLimitConfig{
		Logger:  testLogger(),
		Limiter: limiter,
		Enabled: true,
		Max:     10,
		Window:  15 * time.Minute,
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not be called when the limit is exceeded")
	})

	req := httptest.NewRequest(http.MethodPost, "/api/submit-wizard", nil)
	rec := httptest.NewRecorder()

	RateLimitSubmit(cfg)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "90" {
		t.Errorf("Retry-After = %q, want 90", got)
	}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Error != "Too many submissions" {
		t.Errorf("error = %q, want %q", body.Error, "Too many submissions")
	}
	if body.Message != "Too many submissions from this IP, please try again later." {
		t.Errorf("message = %q", body.Message)
	}
}

func TestRateLimitSubmit_Disabled(t *testing.T) {
	limiter := &fakeLimiter{}
	cfg := RateLimitConfig{
		Logger:  testLogger(),
		Limiter: limiter,
		Enabled: false,
	}

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodPost, "/api/submit-wizard", nil)
	rec := httptest.NewRecorder()

	RateLimitSubmit(cfg)(next).ServeHTTP(rec, req)

	if !called {
		t.Fatal("handler not called when limiter disabled")
	}
	if limiter.gotIP != "" {
		t.Error("limiter must not be consulted when disabled")
	}
}

func TestRateLimitSubmit_FailsOpen(t *testing.T) {
	limiter := &fakeLimiter{err: errors.New("redis: connection refused")}
	cfg := RateLimitConfig{
		Logger:  testLogger(),
		Limiter: limiter,
		Enabled: true,
		Max:     10,
		Window:  15 * time.Minute,
	}

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/submit-wizard", nil)
	rec := httptest.NewRecorder()

	RateLimitSubmit(cfg)(next).ServeHTTP(rec, req)

	if !called {
		t.Fatal("handler not called when limiter errors; rate limiting must fail open")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "203.0.113.5:4312",
			want:       "203.0.113.5:4312",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.1:80",
			xff:        "203.0.113.5",
			want:       "203.0.113.5",
		},
		{
			name:       "x-forwarded-for chain takes first",
			remoteAddr: "10.0.0.1:80",
			xff:        "203.0.113.5, 70.41.3.18, 150.172.238.178",
			want:       "203.0.113.5",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "10.0.0.1:80",
			xri:        "203.0.113.9",
			want:       "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}

			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
