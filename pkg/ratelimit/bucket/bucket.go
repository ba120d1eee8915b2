// Package bucket provides a token bucket limiter used to pace pulls from
// streams over live or remote sources.
package bucket

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/vnykmshr/lazyflow/pkg/common/errors"
)

// Limit is the number of events allowed per second.
type Limit float64

// Inf is the infinite rate limit; it allows all events.
var Inf = Limit(math.Inf(1))

// Every converts a minimum time interval between events to a Limit.
func Every(interval time.Duration) Limit {
	if interval <= 0 {
		return Inf
	}
	return Limit(time.Second) / Limit(interval)
}

// Clock provides the current time. It can be mocked for testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Config holds configuration options for creating a new Limiter.
type Config struct {
	// Rate is the number of tokens added per second.
	Rate Limit

	// Burst is the maximum number of tokens that can be stored.
	Burst int

	// Clock provides the current time. If nil, SystemClock is used.
	Clock Clock

	// InitialTokens is the number of tokens to start with.
	// If negative, starts with full capacity.
	InitialTokens int
}

// Limiter is a token bucket. It is safe for concurrent use.
type Limiter struct {
	mu         sync.Mutex
	limit      Limit
	burst      int
	tokens     float64
	lastUpdate time.Time
	clock      Clock
}

// New creates a limiter that starts with a full bucket.
func New(rate Limit, burst int) (*Limiter, error) {
	return NewWithConfig(Config{Rate: rate, Burst: burst, InitialTokens: -1})
}

// NewWithConfig creates a limiter from config.
func NewWithConfig(config Config) (*Limiter, error) {
	if config.Rate < 0 {
		return nil, errors.NewValidationError("bucket", "rate", config.Rate, "rate cannot be negative").
			WithHint("use 0 for no refill or a positive value")
	}
	if config.Burst <= 0 {
		return nil, errors.NewValidationError("bucket", "burst", config.Burst, "burst must be positive").
			WithHint("burst determines how many tokens can be consumed instantly")
	}
	if config.Clock == nil {
		config.Clock = SystemClock{}
	}

	initialTokens := float64(config.InitialTokens)
	if config.InitialTokens < 0 {
		initialTokens = float64(config.Burst)
	}

	return &Limiter{
		limit:      config.Rate,
		burst:      config.Burst,
		tokens:     initialTokens,
		lastUpdate: config.Clock.Now(),
		clock:      config.Clock,
	}, nil
}

// Allow reports whether an event may happen now and takes a token if so.
func (l *Limiter) Allow() bool {
	_, ok := l.reserve(l.clock.Now(), 0)
	return ok
}

// Wait blocks until a token is available or ctx is done. A zero rate with an
// empty bucket can never be satisfied and fails at once.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	delay, ok := l.reserve(l.clock.Now(), math.MaxInt64)
	if !ok {
		return errors.NewOperationError("bucket", "wait", context.DeadlineExceeded).
			WithContext("zero rate and no tokens left")
	}
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		l.refund()
		return ctx.Err()
	}
}

// Tokens returns the number of tokens currently available. It is negative
// while waiters hold reservations.
func (l *Limiter) Tokens() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.advance(l.clock.Now())
	return l.tokens
}

// reserve takes one token, returning how long the caller must wait for it.
func (l *Limiter) reserve(now time.Time, maxWait time.Duration) (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.limit == Inf {
		return 0, true
	}

	l.advance(now)
	if l.tokens >= 1 {
		l.tokens--
		return 0, true
	}
	if l.limit == 0 {
		return 0, false
	}

	wait := time.Duration(float64(time.Second) * (1 - l.tokens) / float64(l.limit))
	if wait > maxWait {
		return 0, false
	}
	// The balance goes negative; later callers queue behind this one.
	l.tokens--
	return wait, true
}

func (l *Limiter) refund() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.advance(l.clock.Now())
	l.tokens = math.Min(l.tokens+1, float64(l.burst))
}

// advance adds tokens based on the time elapsed since the last update.
func (l *Limiter) advance(now time.Time) {
	if l.limit == Inf {
		l.tokens = float64(l.burst)
		l.lastUpdate = now
		return
	}

	elapsed := now.Sub(l.lastUpdate)
	if elapsed <= 0 || l.limit == 0 {
		l.lastUpdate = now
		return
	}

	l.tokens = math.Min(l.tokens+elapsed.Seconds()*float64(l.limit), float64(l.burst))
	l.lastUpdate = now
}
