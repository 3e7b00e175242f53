package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pawsitivewalks/pawsitivewalks/internal/cache"
)

type fakeLimiter struct {
	result *cache.RateLimitResult
	err    error

	gotScope string
	gotIP    string
	calls    int
}

func (f *fakeLimiter) CheckIPRateLimit(_ context.Context, scope, ip string, _, _ int) (*cache.RateLimitResult, error) {
	f.calls++
	f.gotScope = scope
	f.gotIP = ip
	return f.result, f.err
}

func serveRateLimited(cfg RateLimitConfig) (*httptest.ResponseRecorder, bool) {
	called := false
	handler := RateLimitIP(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, called
}

func TestRateLimitIP_Allowed(t *testing.T) {
	limiter := &fakeLimiter{result: &cache.RateLimitResult{
		Allowed:   true,
		Remaining: 9,
		ResetAt:   time.Unix(1700000000, 0),
	}}

	rec, called := serveRateLimited(RateLimitConfig{
		Logger: discardLogger(), Limiter: limiter, Enabled: true, Scope: "auth", RPS: 5, Burst: 10,
	})

	if !called {
		t.Fatal("expected request to pass")
	}
	if limiter.gotScope != "auth" || limiter.gotIP != "203.0.113.7" {
		t.Errorf("unexpected limiter args: scope=%q ip=%q", limiter.gotScope, limiter.gotIP)
	}
	if rec.Header().Get("X-RateLimit-Limit") != "10" {
		t.Errorf("expected X-RateLimit-Limit 10, got %q", rec.Header().Get("X-RateLimit-Limit"))
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "9" {
		t.Errorf("expected X-RateLimit-Remaining 9, got %q", rec.Header().Get("X-RateLimit-Remaining"))
	}
	if rec.Header().Get("X-RateLimit-Reset") != "1700000000" {
		t.Errorf("expected X-RateLimit-Reset 1700000000, got %q", rec.Header().Get("X-RateLimit-Reset"))
	}
}

func TestRateLimitIP_Denied(t *testing.T) {
	limiter := &fakeLimiter{result: &cache.RateLimitResult{
		Allowed:    false,
		ResetAt:    time.Now().Add(3 * time.Second),
		RetryAfter: 3 * time.Second,
	}}

	rec, called := serveRateLimited(RateLimitConfig{
		Logger: discardLogger(), Limiter: limiter, Enabled: true, Scope: "auth", RPS: 5, Burst: 10,
	})

	if called {
		t.Fatal("expected request to be blocked")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "3" {
		t.Errorf("expected Retry-After 3, got %q", rec.Header().Get("Retry-After"))
	}
}

func TestRateLimitIP_FailsOpen(t *testing.T) {
	limiter := &fakeLimiter{err: errors.New("redis unavailable")}

	rec, called := serveRateLimited(RateLimitConfig{
		Logger: discardLogger(), Limiter: limiter, Enabled: true, Scope: "auth", RPS: 5, Burst: 10,
	})

	if !called || rec.Code != http.StatusOK {
		t.Errorf("expected request to pass on limiter error, got status %d", rec.Code)
	}
}

func TestRateLimitIP_Disabled(t *testing.T) {
	limiter := &fakeLimiter{}

	_, called := serveRateLimited(RateLimitConfig{
		Logger: discardLogger(), Limiter: limiter, Enabled: false, Scope: "auth", RPS: 5, Burst: 10,
	})

	if !called {
		t.Error("expected request to pass when disabled")
	}
	if limiter.calls != 0 {
		t.Errorf("expected limiter not to be consulted, got %d calls", limiter.calls)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remoteAddr string
		want       string
	}{
		{"192.0.2.1:1234", "192.0.2.1"},
		{"[2001:db8::1]:443", "2001:db8::1"},
		{"192.0.2.9", "192.0.2.9"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remoteAddr
		if got := clientIP(req); got != tt.want {
			t.Errorf("clientIP(%q) = %q, want %q", tt.remoteAddr, got, tt.want)
		}
	}
}
