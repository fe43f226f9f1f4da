package ratelimiter

import (
	"testing"
	"time"
)

func TestTokenBucket_Burst(t *testing.T) {
	tb := NewTokenBucket(1, 3)

	// The bucket starts full, so the first 3 requests pass.
	for i := 0; i < 3; i++ {
		if !tb.Allow() {
			t.Fatalf("request %d should have been allowed", i+1)
		}
	}

	// The 4th request exceeds the capacity.
	if tb.Allow() {
		t.Error("request 4 should have been rejected")
	}
}

func TestTokenBucket_Refill(t *testing.T) {
	tb := NewTokenBucket(100, 1)

	if !tb.Allow() {
		t.Fatal("first request should have been allowed")
	}
	if tb.Allow() {
		t.Fatal("bucket should be empty immediately after the first request")
	}

	// At 100 tokens/s a new token is available within a few milliseconds.
	time.Sleep(50 * time.Millisecond)
	if !tb.Allow() {
		t.Error("bucket should have refilled after waiting")
	}
}
