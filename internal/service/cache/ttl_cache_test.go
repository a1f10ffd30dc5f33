package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCache_SetGet(t *testing.T) {
	c := NewTTLCache(10)
	require.NoError(t, c.SetBytes("a", []byte("1"), time.Minute))

	b, ok, err := c.GetBytes("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("1"), b)

	_, ok, err = c.GetBytes("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTTLCache_Expiry(t *testing.T) {
	c := NewTTLCache(10)
	now := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.SetBytes("a", []byte("1"), time.Second))
	now = now.Add(2 * time.Second)

	_, ok, err := c.GetBytes("a")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestTTLCache_EvictsWhenFull(t *testing.T) {
	c := NewTTLCache(2)
	require.NoError(t, c.SetBytes("soon", []byte("1"), time.Second))
	require.NoError(t, c.SetBytes("later", []byte("2"), time.Hour))
	require.NoError(t, c.SetBytes("new", []byte("3"), time.Hour))

	assert.Equal(t, 2, c.Len())
	_, ok, _ := c.GetBytes("soon")
	assert.False(t, ok)
	_, ok, _ = c.GetBytes("new")
	assert.True(t, ok)
}

func TestHashKeyStable(t *testing.T) {
	assert.Equal(t, HashKey([]byte("x")), HashKey([]byte("x")))
	assert.NotEqual(t, HashKey([]byte("x")), HashKey([]byte("y")))
	assert.Equal(t, "forecast:abc", GenerateKey("forecast", "abc"))
}

func TestJSONHelpers(t *testing.T) {
	c := NewTTLCache(10)
	type payload struct {
		N int `json:"n"`
	}

	var got payload
	assert.ErrorIs(t, LoadJSON(c, "k", &got), ErrCacheMiss)

	require.NoError(t, StoreJSON(c, "k", payload{N: 3}, time.Minute))
	require.NoError(t, LoadJSON(c, "k", &got))
	assert.Equal(t, 3, got.N)
}
