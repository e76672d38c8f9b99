package analytics

import (
	"sync"
	"time"
)

// throttle caps requests per key within a fixed window. The collect endpoint
// sees one beacon per page load, so a counter per window is enough; it keeps
// one bucket per key instead of a timestamp slice and sweeps stale buckets
// inline rather than on a background goroutine.
type throttle struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int
	window  time.Duration
	swept   time.Time
}

type bucket struct {
	count int
	start time.Time
}

func newThrottle(limit int, window time.Duration) *throttle {
	return &throttle{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
		swept:   time.Now(),
	}
}

// allow records a request for key and reports whether it is within the limit.
func (t *throttle) allow(key string) bool {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	if now.Sub(t.swept) >= t.window {
		for k, b := range t.buckets {
			if now.Sub(b.start) >= t.window {
				delete(t.buckets, k)
			}
		}
		t.swept = now
	}

	b := t.buckets[key]
	if b == nil || now.Sub(b.start) >= t.window {
		t.buckets[key] = &bucket{count: 1, start: now}
		return true
	}
	if b.count >= t.limit {
		return false
	}
	b.count++
	return true
}
