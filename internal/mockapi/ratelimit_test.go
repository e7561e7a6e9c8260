package mockapi

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTokenBucket_AllowsUpToCapacity(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	tb := newTokenBucket(1, 3, clock.now)
	defer tb.close()

	for i := range 3 {
		if !tb.allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed (bucket not yet empty)", i+1)
		}
	}
	if tb.allow("10.0.0.1") {
		t.Fatal("4th request should be denied (bucket empty)")
	}
}

func TestTokenBucket_DifferentKeysAreIndependent(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	tb := newTokenBucket(1, 1, clock.now)
	defer tb.close()

	if !tb.allow("ip-a") {
		t.Fatal("ip-a first request should be allowed")
	}
	if tb.allow("ip-a") {
		t.Fatal("ip-a second request should be denied")
	}
	if !tb.allow("ip-b") {
		t.Fatal("ip-b first request should be allowed (independent bucket)")
	}
}

func TestTokenBucket_Refills(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	tb := newTokenBucket(2, 1, clock.now)
	defer tb.close()

	tb.allow("k")
	if tb.allow("k") {
		t.Fatal("bucket should be empty")
	}

	clock.advance(500 * time.Millisecond)
	if !tb.allow("k") {
		t.Fatal("one token should have been refilled after 500ms at 2/s")
	}
}

func TestTokenBucket_CloseIsIdempotent(t *testing.T) {
	tb := newTokenBucket(1, 1, time.Now)
	tb.close()
	tb.close()
}
