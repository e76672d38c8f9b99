package mywebsite

import (
	"testing"
	"time"
)

func TestLoginLimiterCheckDoesNotRecord(t *testing.T) {
	l := NewLoginLimiter(3, time.Minute)

	for i := 0; i < 10; i++ {
		if !l.Check("1.2.3.4") {
			t.Fatalf("Check #%d should pass when nothing was recorded", i)
		}
	}
}

func TestLoginLimiterBlocksAfterMax(t *testing.T) {
	l := NewLoginLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Check("1.2.3.4") {
			t.Fatalf("attempt %d should be allowed", i)
		}
		l.Record("1.2.3.4")
	}
	if l.Check("1.2.3.4") {
		t.Error("4th attempt should be blocked")
	}
	if !l.Check("5.6.7.8") {
		t.Error("other IPs must not be affected")
	}
}

func TestLoginLimiterWindowExpiry(t *testing.T) {
	l := NewLoginLimiter(1, 10*time.Millisecond)

	l.Record("1.2.3.4")
	if l.Check("1.2.3.4") {
		t.Error("should be blocked inside the window")
	}
	time.Sleep(20 * time.Millisecond)
	if !l.Check("1.2.3.4") {
		t.Error("should be allowed after the window expires")
	}
}
