package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(capacity int, rate float64) (*Limiter, *time.Time) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := New(capacity, rate)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestAllowConsumesBurst(t *testing.T) {
	l, _ := newTestLimiter(2, 1)

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"), "keys are independent")
}

func TestAllowRefills(t *testing.T) {
	l, now := newTestLimiter(1, 2)

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))

	*now = now.Add(500 * time.Millisecond)
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
}

func TestRefillCapsAtCapacity(t *testing.T) {
	l, now := newTestLimiter(2, 10)
	assert.True(t, l.Allow("a"))

	*now = now.Add(time.Hour)
	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
}

func TestPrune(t *testing.T) {
	l, now := newTestLimiter(1, 1)
	l.Allow("old")
	*now = now.Add(time.Minute)
	l.Allow("fresh")

	assert.Equal(t, 1, l.Prune(30*time.Second))
	assert.Len(t, l.m, 1)
	assert.Contains(t, l.m, "fresh")
}
