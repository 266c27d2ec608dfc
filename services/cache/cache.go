package cache

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired
var ErrMiss = errors.New("cache: miss")

// CacheService represents a generic cache service
type CacheService interface {
	// Get retrieves a value from the cache
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}

// RateGuard remembers sites that answered with a rate-limit status so no
// request is sent to them until the block expires
type RateGuard struct {
	svc       CacheService
	blockTime time.Duration
}

// NewRateGuard returns a guard over svc. A nil svc yields a guard that never blocks.
func NewRateGuard(svc CacheService, blockTime time.Duration) *RateGuard {
	return &RateGuard{svc: svc, blockTime: blockTime}
}

// BlockTime is how long a blocked site stays blocked
func (g *RateGuard) BlockTime() time.Duration {
	if g == nil {
		return 0
	}
	return g.blockTime
}

// Blocked reports whether pageURL is currently blocked
func (g *RateGuard) Blocked(pageURL string) bool {
	if g == nil || g.svc == nil {
		return false
	}
	_, err := g.svc.Get(Key(pageURL))
	return err == nil
}

// Block marks pageURL as blocked for the block time
func (g *RateGuard) Block(pageURL string) error {
	if g == nil || g.svc == nil || g.blockTime <= 0 {
		return nil
	}
	value := []byte(fmt.Sprintf("%d", g.blockTime/time.Second))
	return g.svc.Set(Key(pageURL), value, g.blockTime)
}

// Key builds a memcache-safe key for a page URL
func Key(pageURL string) string {
	name := pageURL
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		name = u.Host + u.Path
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, name)
	key := "jackpot_rate_limited_" + name
	if len(key) > 250 {
		key = key[:250]
	}
	return key
}
