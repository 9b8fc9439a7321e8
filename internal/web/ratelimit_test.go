package web

import (
	"testing"
	"time"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)
	defer rl.stop()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.allow("1.2.3.4") || !rl.allow("1.2.3.4") {
		t.Fatal("first two requests should be allowed")
	}
	if rl.allow("1.2.3.4") {
		t.Error("third request in window should be rejected")
	}
	if !rl.allow("5.6.7.8") {
		t.Error("other clients have their own budget")
	}

	now = now.Add(time.Minute + time.Second)
	if !rl.allow("1.2.3.4") {
		t.Error("budget should reset after the window")
	}
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := newRateLimiter(1, time.Minute)
	rl.stop()
	rl.stop()

	var nilLimiter *rateLimiter
	nilLimiter.stop()
}
