package cache

import (
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcacheService implements CacheService using memcache
type MemcacheService struct {
	client *memcache.Client
}

// NewMemcacheService creates a new memcache service
func NewMemcacheService(serverAddr string) *MemcacheService {
	client := memcache.New(serverAddr)
	client.Timeout = 2 * time.Second
	return &MemcacheService{client: client}
}

// Ping checks that the server answers
func (m *MemcacheService) Ping() error {
	return m.client.Ping()
}

// Get retrieves a value from memcache
func (m *MemcacheService) Get(key string) ([]byte, error) {
	item, err := m.client.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return item.Value, nil
}

// Set stores a value in memcache with an expiration time
func (m *MemcacheService) Set(key string, value []byte, expiration time.Duration) error {
	return m.client.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: expirationField(expiration, time.Now()),
	})
}

// maxRelativeExpiration is the longest expiration memcache treats as relative;
// larger values are read as unix timestamps
const maxRelativeExpiration = 30 * 24 * time.Hour

// expirationField encodes d for the memcache protocol
func expirationField(d time.Duration, now time.Time) int32 {
	if d <= 0 {
		return 0
	}
	if d > maxRelativeExpiration {
		return int32(now.Add(d).Unix())
	}
	// zero would mean no expiry
	return int32(max(d/time.Second, 1))
}

// Delete removes a value from memcache
func (m *MemcacheService) Delete(key string) error {
	err := m.client.Delete(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil
	}
	return err
}
