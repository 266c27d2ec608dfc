package cache

import (
	"sync"
	"time"
)

type memoryItem struct {
	value   []byte
	expires time.Time
}

// MemoryService is an in-process CacheService
type MemoryService struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

// NewMemoryService creates an empty in-process cache
func NewMemoryService() *MemoryService {
	return &MemoryService{items: make(map[string]memoryItem), now: time.Now}
}

// Get implements CacheService
func (m *MemoryService) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[key]
	if !ok {
		return nil, ErrMiss
	}
	if !item.expires.IsZero() && !m.now().Before(item.expires) {
		delete(m.items, key)
		return nil, ErrMiss
	}
	return item.value, nil
}

// Set implements CacheService. A non-positive expiration never expires.
func (m *MemoryService) Set(key string, value []byte, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item := memoryItem{value: append([]byte(nil), value...)}
	if expiration > 0 {
		item.expires = m.now().Add(expiration)
	}
	m.items[key] = item
	return nil
}

// Delete implements CacheService
func (m *MemoryService) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}
