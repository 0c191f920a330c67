package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterExhaustsTokens(t *testing.T) {
	rl := NewRateLimiter(3, 1, time.Hour)

	for i := 0; i < 3; i++ {
		if !rl.Allow("user-a") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	if rl.Allow("user-a") {
		t.Error("request past the bucket size should be rejected")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, 1, time.Hour)

	if !rl.Allow("user-a") {
		t.Fatal("first request for user-a should be allowed")
	}
	if rl.Allow("user-a") {
		t.Error("second request for user-a should be rejected")
	}
	if !rl.Allow("user-b") {
		t.Error("user-b has their own bucket and should be allowed")
	}
}

func TestRateLimiterRefills(t *testing.T) {
	rl := NewRateLimiter(1, 1, 10*time.Millisecond)

	if !rl.Allow("user-a") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("user-a") {
		t.Fatal("bucket should be empty")
	}

	time.Sleep(25 * time.Millisecond)

	if !rl.Allow("user-a") {
		t.Error("bucket should have refilled after the refill period")
	}
}
