package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss is returned by LoadJSON when a key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// BytesCache is a minimal cache API storing raw bytes with TTL.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}

// StoreJSON marshals v and stores it under key.
func StoreJSON(c BytesCache, key string, v interface{}, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}
	return c.SetBytes(key, b, ttl)
}

// LoadJSON reads key into dest, returning ErrCacheMiss when it is absent.
func LoadJSON(c BytesCache, key string, dest interface{}) error {
	b, ok, err := c.GetBytes(key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("unmarshal cache value: %w", err)
	}
	return nil
}
