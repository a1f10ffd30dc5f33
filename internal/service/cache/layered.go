package cache

import "time"

// LayeredCache implements two-level cache (L1: in process, L2: shared).
type LayeredCache struct {
	l1    *TTLCache
	l2    BytesCache
	l1TTL time.Duration
}

// NewLayeredCache fronts l2 with a bounded in-process cache. Entries promoted
// from l2 live at most l1TTL in memory.
func NewLayeredCache(l2 BytesCache, l1Entries int, l1TTL time.Duration) *LayeredCache {
	if l1TTL <= 0 {
		l1TTL = 30 * time.Second
	}
	return &LayeredCache{l1: NewTTLCache(l1Entries), l2: l2, l1TTL: l1TTL}
}

func (lc *LayeredCache) GetBytes(key string) ([]byte, bool, error) {
	if b, ok, _ := lc.l1.GetBytes(key); ok {
		return b, true, nil
	}
	b, ok, err := lc.l2.GetBytes(key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = lc.l1.SetBytes(key, b, lc.l1TTL)
	return b, true, nil
}

// SetBytes writes through: shared layer first, then memory.
func (lc *LayeredCache) SetBytes(key string, value []byte, ttl time.Duration) error {
	if err := lc.l2.SetBytes(key, value, ttl); err != nil {
		return err
	}
	l1 := ttl
	if l1 <= 0 || l1 > lc.l1TTL {
		l1 = lc.l1TTL
	}
	return lc.l1.SetBytes(key, value, l1)
}
