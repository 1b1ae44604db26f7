package ratelimit

import (
	"testing"
	"time"
)

func TestSlidingWindowAllow(t *testing.T) {
	rl := NewSlidingWindow(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("127.0.0.1") {
			t.Errorf("request %d should be allowed", i)
		}
	}

	if rl.Allow("127.0.0.1") {
		t.Error("4th request should be denied")
	}
}

func TestSlidingWindowDifferentKeys(t *testing.T) {
	rl := NewSlidingWindow(1, time.Minute)

	if !rl.Allow("10.0.0.1") {
		t.Error("first IP should be allowed")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("second IP should be allowed")
	}
}

func TestSlidingWindowExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rl := NewSlidingWindow(1, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.Allow("127.0.0.1") {
		t.Error("first request should be allowed")
	}
	if rl.Allow("127.0.0.1") {
		t.Error("second request should be denied")
	}

	now = now.Add(61 * time.Second)

	if !rl.Allow("127.0.0.1") {
		t.Error("request after window should be allowed")
	}
}

func TestSlidingWindowSweep(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rl := NewSlidingWindow(5, time.Minute)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	now = now.Add(30 * time.Second)
	rl.Allow("b")
	now = now.Add(45 * time.Second)

	rl.Sweep()

	if rl.Len() != 1 {
		t.Errorf("tracked keys: got %d, want 1", rl.Len())
	}
}
