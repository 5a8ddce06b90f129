package ratelimiter

import (
	"testing"
	"time"

	"github.com/SeakMengs/FacultyCert/internal/config"
)

func TestFixedWindowRateLimiter(t *testing.T) {
	rl := NewRateLimiter(config.RateLimiterConfig{RequestsPerTimeFrame: 2, TimeFrame: time.Minute, Enabled: true}, nil)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	for i := range 2 {
		if ok, _ := rl.Allow("10.0.0.1"); !ok {
			t.Fatalf("request %d was limited", i+1)
		}
	}

	now = now.Add(20 * time.Second)
	ok, retryAfter := rl.Allow("10.0.0.1")
	if ok {
		t.Fatal("third request in the window was allowed")
	}
	if retryAfter != 40*time.Second {
		t.Errorf("retryAfter = %s, want 40s", retryAfter)
	}

	if ok, _ := rl.Allow("10.0.0.2"); !ok {
		t.Error("other key was limited")
	}

	now = now.Add(40 * time.Second)
	if ok, _ := rl.Allow("10.0.0.1"); !ok {
		t.Error("request after the window reset was limited")
	}
}

func TestDisabledRateLimiter(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.RateLimiterConfig
	}{
		{"disabled", config.RateLimiterConfig{RequestsPerTimeFrame: 1, TimeFrame: time.Minute}},
		{"zero limit", config.RateLimiterConfig{TimeFrame: time.Minute, Enabled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(tt.cfg, nil)
			for range 5 {
				if ok, _ := rl.Allow("key"); !ok {
					t.Fatal("disabled limiter rejected a request")
				}
			}
		})
	}
}
