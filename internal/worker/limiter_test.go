package worker

import (
	"context"
	"testing"
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
)

func TestLimiter_New(t *testing.T) {
	if l := NewLimiter(10, 5); l.burst != 5 {
		t.Errorf("expected burst 5, got %d", l.burst)
	}
	if l := NewLimiter(10, -1); l.burst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l.burst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "https://www.bookmyplayer.com/pune/a"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := limiter.Wait(ctx, "https://example.com"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 1)

	start := time.Now()
	if err := limiter.WaitWithDelay(context.Background(), "https://example.com", 50*time.Millisecond); err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}
	if d := time.Since(start); d < 50*time.Millisecond {
		t.Errorf("expected delay >= 50ms, got %v", d)
	}
}

func TestLimiter_WaitWithDelayCancelled(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := limiter.WaitWithDelay(ctx, "https://example.com", time.Minute); err == nil {
		t.Error("expected error from cancelled context")
	}
}

// allow takes a token for rawURL's host without blocking
func allow(l *Limiter, rawURL string) bool {
	return l.forHost(hostOf(rawURL)).Allow()
}

func TestLimiter_RateLimit(t *testing.T) {
	limiter := NewLimiter(1, 1)
	url := "https://www.bookmyplayer.com/a"

	if err := limiter.Wait(context.Background(), url); err != nil {
		t.Errorf("first wait failed: %v", err)
	}
	if allow(limiter, url) {
		t.Error("expected allow to fail with the token spent")
	}
	if !allow(limiter, "https://other.example") {
		t.Error("expected allow for other host")
	}
}

func TestLimiter_Unlimited(t *testing.T) {
	limiter := NewLimiter(0, 1)
	for i := 0; i < 100; i++ {
		if !allow(limiter, "https://example.com") {
			t.Fatalf("request %d refused by unlimited limiter", i)
		}
	}
}

func TestLimiter_SetHostRate(t *testing.T) {
	limiter := NewLimiter(10, 10)
	limiter.SetHostRate("slow.example", 0.1, 1)

	if !allow(limiter, "http://slow.example/x") {
		t.Error("first request should pass")
	}
	if allow(limiter, "http://slow.example/y") {
		t.Error("second request should fail")
	}
	if !allow(limiter, "http://fast.example") {
		t.Error("other host should pass")
	}
}

func TestLimiter_SetHostRateUnlimited(t *testing.T) {
	limiter := NewLimiter(0.1, 1)
	limiter.SetHostRate("fast.example", 0, 0)

	for i := 0; i < 20; i++ {
		if !allow(limiter, "http://fast.example/x") {
			t.Fatalf("request %d refused for unlimited host", i)
		}
	}
}

func TestNewLimiterFromConfig(t *testing.T) {
	limiter := NewLimiterFromConfig(model.RateLimitingConfig{
		RequestsPerSecond: 0,
		BurstSize:         1,
		HostRates: []model.HostRate{
			{Host: "www.bookmyplayer.com", RequestsPerSecond: 0.1, BurstSize: 1},
		},
	})

	if !allow(limiter, "https://www.bookmyplayer.com/a") {
		t.Error("first request to the throttled host should pass")
	}
	if allow(limiter, "https://www.bookmyplayer.com/b") {
		t.Error("second request to the throttled host should wait")
	}
	for i := 0; i < 10; i++ {
		if !allow(limiter, "https://cdn.example/x") {
			t.Fatalf("request %d refused for a host without an override", i)
		}
	}
}

func TestHostOf(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"http://example.com/foo", "example.com"},
		{"https://Example.com:8443/x", "Example.com"},
		{"::invalid", ""},
	}
	for _, tt := range tests {
		if got := hostOf(tt.in); got != tt.want {
			t.Errorf("hostOf(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
