package resilience

import (
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
)

func TestBreaker_TripsAndRecovers(t *testing.T) {
	b := NewBreaker(BreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenMaxReq: 1})

	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.Record(true)
	if state := b.State(); state != BreakerClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.Record(true)
	if state := b.State(); state != BreakerOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}
	if err := b.Allow(); !crerr.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if err := b.Allow(); !crerr.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe to be rejected, got %v", err)
	}

	b.Record(false)
	if state := b.State(); state != BreakerClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}
}

func TestBreaker_FailedProbeReopens(t *testing.T) {
	b := NewBreaker(BreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Second, HalfOpenMaxReq: 1})

	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	b.Record(true)
	now = now.Add(2 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe to pass: %v", err)
	}
	b.Record(true)
	if state := b.State(); state != BreakerOpen {
		t.Fatalf("expected open after failed probe, got %s", state)
	}
}

func TestBreaker_DisabledNeverTrips(t *testing.T) {
	t.Parallel()

	b := NewBreaker(BreakerConfig{Enabled: false, FailureThreshold: 1})
	for i := 0; i < 10; i++ {
		b.Record(true)
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("disabled breaker must allow, got %v", err)
	}
}
