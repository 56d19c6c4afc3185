// Package ratelimit bounds how many searches may start per minute.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultPerMinute is used when a gate is built with a non-positive ceiling.
const DefaultPerMinute = 10

// Decision is the outcome of one Acquire call.
type Decision struct {
	Granted bool
	// Remaining is the number of whole tokens left after this call.
	Remaining int
}

// Option customises a Gate.
type Option func(*Gate)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		g.now = now
	}
}

// Gate is a token bucket holding at most perMinute tokens and refilling
// perMinute tokens every minute. It never blocks: an empty bucket denies.
type Gate struct {
	mu        sync.Mutex
	limiter   *rate.Limiter
	perMinute int
	now       func() time.Time
}

func New(perMinute int, opts ...Option) *Gate {
	if perMinute <= 0 {
		perMinute = DefaultPerMinute
	}
	g := &Gate{
		perMinute: perMinute,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	limit := rate.Limit(float64(perMinute) / 60.0)
	g.limiter = rate.NewLimiter(limit, perMinute)
	// anchor the bucket to the injected clock so it starts full at "now"
	g.limiter.SetLimitAt(g.now(), limit)
	return g
}

// Acquire takes one token if one is available.
func (g *Gate) Acquire() Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	granted := g.limiter.AllowN(now, 1)
	return Decision{
		Granted:   granted,
		Remaining: wholeTokens(g.limiter.TokensAt(now)),
	}
}

// Available reports the whole tokens currently in the bucket without taking one.
func (g *Gate) Available() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return wholeTokens(g.limiter.TokensAt(g.now()))
}

// PerMinute returns the configured ceiling.
func (g *Gate) PerMinute() int {
	return g.perMinute
}

func wholeTokens(tokens float64) int {
	if tokens <= 0 {
		return 0
	}
	return int(math.Floor(tokens))
}
