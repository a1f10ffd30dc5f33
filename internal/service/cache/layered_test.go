package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCache struct {
	*TTLCache
	gets int
	err  error
}

func (c *countingCache) GetBytes(key string) ([]byte, bool, error) {
	c.gets++
	if c.err != nil {
		return nil, false, c.err
	}
	return c.TTLCache.GetBytes(key)
}

func (c *countingCache) SetBytes(key string, value []byte, ttl time.Duration) error {
	if c.err != nil {
		return c.err
	}
	return c.TTLCache.SetBytes(key, value, ttl)
}

func TestLayeredCache_PromotesFromShared(t *testing.T) {
	l2 := &countingCache{TTLCache: NewTTLCache(10)}
	require.NoError(t, l2.TTLCache.SetBytes("k", []byte("v"), time.Hour))
	lc := NewLayeredCache(l2, 10, time.Minute)

	b, ok, err := lc.GetBytes("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), b)

	_, ok, _ = lc.GetBytes("k")
	assert.True(t, ok)
	assert.Equal(t, 1, l2.gets)
}

func TestLayeredCache_WriteThrough(t *testing.T) {
	l2 := &countingCache{TTLCache: NewTTLCache(10)}
	lc := NewLayeredCache(l2, 10, time.Minute)

	require.NoError(t, lc.SetBytes("k", []byte("v"), time.Hour))
	assert.Equal(t, 1, l2.TTLCache.Len())
	_, ok, _ := lc.GetBytes("k")
	assert.True(t, ok)
	assert.Zero(t, l2.gets)

	_, ok, err := lc.GetBytes("missing")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestLayeredCache_SharedErrors(t *testing.T) {
	boom := errors.New("redis down")
	lc := NewLayeredCache(&countingCache{TTLCache: NewTTLCache(1), err: boom}, 10, 0)

	assert.ErrorIs(t, lc.SetBytes("k", []byte("v"), time.Minute), boom)
	_, _, err := lc.GetBytes("k")
	assert.ErrorIs(t, err, boom)
}
