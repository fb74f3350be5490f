package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func TestAllowWithinBudget(t *testing.T) {
	l := New()

	for i := 0; i < 10; i++ {
		if !l.Allow("dl.acm.org") {
			t.Fatalf("request %d unexpectedly denied", i+1)
		}
	}
	if l.Allow("dl.acm.org") {
		t.Error("request 11 should exceed the dl.acm.org budget")
	}
}

func TestDoiOrgBudget(t *testing.T) {
	l := New()

	granted := 0
	for i := 0; i < 31; i++ {
		if l.Allow("doi.org") {
			granted++
		}
	}
	if granted != 30 {
		t.Errorf("granted %d of 31 doi.org requests, want 30", granted)
	}
}

func TestDefaultBudget(t *testing.T) {
	l := New()

	for i := 0; i < 50; i++ {
		if !l.Allow("example.com") {
			t.Fatalf("request %d unexpectedly denied", i+1)
		}
	}
	if l.Allow("example.com") {
		t.Error("request 51 should exceed the default budget")
	}
}

func TestDomainsAreIndependent(t *testing.T) {
	l := New()

	for i := 0; i < 10; i++ {
		l.Allow("dl.acm.org")
	}
	if l.Allow("dl.acm.org") {
		t.Fatal("dl.acm.org budget should be exhausted")
	}
	if !l.Allow("doi.org") {
		t.Error("doi.org should be unaffected by dl.acm.org exhaustion")
	}
	if !l.Allow("example.com") {
		t.Error("example.com should be unaffected by dl.acm.org exhaustion")
	}
}

func TestDenialDoesNotConsume(t *testing.T) {
	l := New()
	l.SetLimit("example.com", Limit{MaxRequests: 2, Window: time.Minute})

	l.Allow("example.com")
	l.Allow("example.com")
	for i := 0; i < 5; i++ {
		if l.Allow("example.com") {
			t.Fatal("budget should stay exhausted")
		}
	}

	// Denials must not have advanced the count past the cap.
	l.mu.Lock()
	count := l.buckets["example.com"].count
	l.mu.Unlock()
	if count != 2 {
		t.Errorf("count = %d after denials, want 2", count)
	}
}

func TestWindowReset(t *testing.T) {
	l := New()
	l.SetLimit("example.com", Limit{MaxRequests: 2, Window: time.Minute})

	l.Allow("example.com")
	l.Allow("example.com")
	if l.Allow("example.com") {
		t.Fatal("budget should be exhausted")
	}

	// Age the window past its span; the next call starts a fresh one.
	l.mu.Lock()
	l.buckets["example.com"].windowStart = time.Now().Add(-2 * time.Minute)
	l.mu.Unlock()

	if !l.Allow("example.com") {
		t.Error("expired window should grant a fresh budget")
	}
	if l.Remaining("example.com") != 1 {
		t.Errorf("remaining = %d after first request of new window, want 1", l.Remaining("example.com"))
	}
}

func TestRemaining(t *testing.T) {
	l := New()

	if got := l.Remaining("doi.org"); got != 30 {
		t.Errorf("untouched domain remaining = %d, want 30", got)
	}
	l.Allow("doi.org")
	if got := l.Remaining("doi.org"); got != 29 {
		t.Errorf("remaining after one request = %d, want 29", got)
	}
}

func TestReset(t *testing.T) {
	l := New()

	for i := 0; i < 10; i++ {
		l.Allow("dl.acm.org")
	}
	l.Reset()
	if !l.Allow("dl.acm.org") {
		t.Error("reset should restore the full budget")
	}
}

func TestConcurrentAllow(t *testing.T) {
	l := New()
	l.SetLimit("example.com", Limit{MaxRequests: 100, Window: time.Minute})

	var wg sync.WaitGroup
	granted := make(chan bool, 200)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			granted <- l.Allow("example.com")
		}()
	}
	wg.Wait()
	close(granted)

	count := 0
	for ok := range granted {
		if ok {
			count++
		}
	}
	if count != 100 {
		t.Errorf("granted %d of 200 concurrent requests, want exactly 100", count)
	}
}
