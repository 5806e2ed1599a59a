package resilience

import (
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
)

var ErrCircuitOpen = crerr.New("circuit breaker is open")

type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half_open"
)

type BreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

func NormalizeBreakerConfig(cfg BreakerConfig) BreakerConfig {
	defaults := DefaultBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return cfg
}

// Breaker trips after consecutive upstream failures and probes again after OpenTimeout.
// A disabled breaker always allows and never trips.
type Breaker struct {
	mu  sync.Mutex
	cfg BreakerConfig

	state        BreakerState
	failures     int
	openedAt     time.Time
	probesOut    int
	probesPassed int
	now          func() time.Time
}

func NewBreaker(cfg BreakerConfig) *Breaker {
	enabled := cfg.Enabled
	cfg = NormalizeBreakerConfig(cfg)
	cfg.Enabled = enabled
	return &Breaker{
		cfg:   cfg,
		state: BreakerClosed,
		now:   time.Now,
	}
}

func (b *Breaker) Allow() error {
	if !b.cfg.Enabled {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrCircuitOpen
		}
		b.reset(BreakerHalfOpen)
	}

	if b.state == BreakerHalfOpen {
		if b.probesOut >= b.cfg.HalfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.probesOut++
	}

	return nil
}

// Record feeds one call outcome into the breaker.
func (b *Breaker) Record(failed bool) {
	if !b.cfg.Enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		if !failed {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.trip()
		}
	case BreakerHalfOpen:
		if b.probesOut > 0 {
			b.probesOut--
		}
		if failed {
			b.trip()
			return
		}
		b.probesPassed++
		if b.probesPassed >= b.cfg.HalfOpenMaxReq && b.probesOut == 0 {
			b.reset(BreakerClosed)
		}
	case BreakerOpen:
		if failed {
			b.openedAt = b.now()
		}
	}
}

func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return BreakerHalfOpen
	}
	return b.state
}

func (b *Breaker) trip() {
	b.reset(BreakerOpen)
	b.openedAt = b.now()
}

func (b *Breaker) reset(state BreakerState) {
	b.state = state
	b.failures = 0
	b.probesOut = 0
	b.probesPassed = 0
	if state != BreakerOpen {
		b.openedAt = time.Time{}
	}
}
