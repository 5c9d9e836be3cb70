package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrSnakeDoc/banho/internal/logger"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestMatchHost(t *testing.T) {
	tests := []struct {
		host, pattern string
		want          bool
	}{
		{"banhodesaojoao.ms", "banhodesaojoao.ms", true},
		{"admin.banhodesaojoao.ms", "*.banhodesaojoao.ms", true},
		{"banhodesaojoao.ms", "*.banhodesaojoao.ms", false},
		{"evil.ms", "banhodesaojoao.ms", false},
	}
	for _, tt := range tests {
		if got := matchHost(tt.host, tt.pattern); got != tt.want {
			t.Errorf("matchHost(%q, %q) = %v, want %v", tt.host, tt.pattern, got, tt.want)
		}
	}
}

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"admin.banhodesaojoao.ms"}, logger.Nop())(okHandler)

	req := httptest.NewRequest(http.MethodPost, "/reload", nil)
	req.Host = "admin.banhodesaojoao.ms"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("allowed host: status = %d", rec.Code)
	}

	req.Host = "other.example"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("other host: status = %d, want 403", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestAllowOnlyCIDRS(t *testing.T) {
	h := AllowOnlyCIDRS([]string{"10.0.0.0/8"}, true, logger.Nop())(okHandler)

	tests := []struct {
		name   string
		remote string
		xff    string
		want   int
	}{
		{"direct private", "10.1.2.3:5000", "", http.StatusOK},
		{"direct public", "192.0.2.1:5000", "", http.StatusForbidden},
		{"forwarded private", "192.0.2.1:5000", "10.9.9.9, 192.0.2.1", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/infra", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestLimiterRefillsAndSweeps(t *testing.T) {
	now := time.Date(2025, 6, 24, 0, 0, 0, 0, time.UTC)
	l := newLimiter(RateLimitConfig{
		RPS:     1,
		Burst:   1,
		IdleTTL: time.Minute,
		Now:     func() time.Time { return now },
	})

	if ok, _ := l.allow("a", now); !ok {
		t.Fatal("first request refused")
	}
	ok, wait := l.allow("a", now)
	if ok {
		t.Fatal("second request allowed within burst")
	}
	if wait <= 0 || wait > time.Second {
		t.Errorf("wait = %v, want (0, 1s]", wait)
	}
	if ok, _ := l.allow("a", now.Add(time.Second)); !ok {
		t.Error("request refused after refill")
	}

	// another client has its own bucket
	if ok, _ := l.allow("b", now.Add(time.Second)); !ok {
		t.Error("second client refused")
	}

	l.allow("c", now.Add(5*time.Minute))
	if got := l.size(); got != 1 {
		t.Errorf("visitors after sweep = %d, want 1", got)
	}
}

func TestRateLimitHeaders(t *testing.T) {
	h := RateLimit(RateLimitConfig{RPS: 0.1, Burst: 1})(okHandler)

	req := httptest.NewRequest(http.MethodPost, "/api/stories", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "10" {
		t.Errorf("Retry-After = %q, want 10", got)
	}
	if got := rec.Header().Get("X-RateLimit-Limit"); got != "1" {
		t.Errorf("X-RateLimit-Limit = %q", got)
	}
}

func TestCORSWildcard(t *testing.T) {
	h := CORS([]string{"*"})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/stories", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}

	rec = httptest.NewRecorder()
	CORS(nil)(okHandler).ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("no origins configured: Allow-Origin = %q", got)
	}
}
