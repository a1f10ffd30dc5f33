package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter *rate.Limiter
	last    time.Time
}

// Limiter is a per-key token bucket. Every key shares the same burst and
// refill rate.
type Limiter struct {
	mu    sync.Mutex
	m     map[string]*entry
	burst int
	rps   rate.Limit
	now   func() time.Time
}

func New(burst int, refillPerSec float64) *Limiter {
	return &Limiter{
		m:     make(map[string]*entry),
		burst: burst,
		rps:   rate.Limit(refillPerSec),
		now:   time.Now,
	}
}

// Allow returns true if one token can be consumed for key.
func (l *Limiter) Allow(key string) bool {
	now := l.now()
	l.mu.Lock()
	e, ok := l.m[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.m[key] = e
	}
	e.last = now
	l.mu.Unlock()
	return e.limiter.AllowN(now, 1)
}

// Prune drops keys untouched for longer than idle and returns how many
// were removed.
func (l *Limiter) Prune(idle time.Duration) int {
	cutoff := l.now().Add(-idle)
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for k, e := range l.m {
		if e.last.Before(cutoff) {
			delete(l.m, k)
			n++
		}
	}
	return n
}
