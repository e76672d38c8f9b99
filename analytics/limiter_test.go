package analytics

import (
	"testing"
	"time"
)

func TestThrottleBlocksAfterLimit(t *testing.T) {
	tr := newThrottle(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !tr.allow("203.0.113.7") {
			t.Fatalf("request %d rejected below the limit", i+1)
		}
	}
	if tr.allow("203.0.113.7") {
		t.Error("request above the limit was allowed")
	}
}

func TestThrottlePerKeyIsolation(t *testing.T) {
	tr := newThrottle(1, time.Minute)
	if !tr.allow("203.0.113.7") {
		t.Fatal("first key rejected")
	}
	if !tr.allow("203.0.113.8") {
		t.Error("second key throttled by first key's traffic")
	}
}

func TestThrottleWindowReset(t *testing.T) {
	tr := newThrottle(1, 30*time.Millisecond)
	if !tr.allow("203.0.113.7") {
		t.Fatal("first request rejected")
	}
	if tr.allow("203.0.113.7") {
		t.Fatal("second request in window allowed")
	}
	time.Sleep(40 * time.Millisecond)
	if !tr.allow("203.0.113.7") {
		t.Error("request after window expiry rejected")
	}
}

func TestThrottleSweepsStaleBuckets(t *testing.T) {
	tr := newThrottle(1, 30*time.Millisecond)
	tr.allow("203.0.113.7")
	tr.allow("203.0.113.8")
	time.Sleep(40 * time.Millisecond)
	tr.allow("203.0.113.9")

	tr.mu.Lock()
	defer tr.mu.Unlock()
	if _, ok := tr.buckets["203.0.113.7"]; ok {
		t.Error("stale bucket survived the sweep")
	}
	if _, ok := tr.buckets["203.0.113.9"]; !ok {
		t.Error("fresh bucket was swept")
	}
}
