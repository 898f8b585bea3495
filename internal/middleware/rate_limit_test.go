package middleware

import (
	"testing"
	"time"
)

func TestTokenBucketExhausts(t *testing.T) {
	b := NewTokenBucket(2, 1)
	if !b.Allow() || !b.Allow() {
		t.Fatal("expected first two requests allowed")
	}
	if b.Allow() {
		t.Fatal("expected third request rejected")
	}
}

func TestTokenBucketRefills(t *testing.T) {
	b := NewTokenBucket(1, 1)
	if !b.Allow() {
		t.Fatal("expected first request allowed")
	}
	if b.Allow() {
		t.Fatal("expected bucket empty")
	}
	// 回拨补充时间，模拟两秒后
	b.mu.Lock()
	b.lastRefill = time.Now().Add(-2 * time.Second)
	b.mu.Unlock()
	if !b.Allow() {
		t.Fatal("expected token refilled after elapsed time")
	}
}

func TestTokenBucketCapsAtCapacity(t *testing.T) {
	b := NewTokenBucket(2, 100)
	b.mu.Lock()
	b.lastRefill = time.Now().Add(-10 * time.Second)
	b.mu.Unlock()
	if !b.Allow() || !b.Allow() {
		t.Fatal("expected capacity tokens available")
	}
	if b.Allow() {
		t.Fatal("refill must not exceed capacity")
	}
}
