// Package cache provides the bounded, time-expiring result store that sits
// in front of the scoring pipeline.
package cache

import (
	"sync"
	"time"

	"github.com/rapporthq/rapport/internal/domain/model"
	"github.com/rapporthq/rapport/pkg/metrics"
)

// Defaults for the in-memory store.
const (
	DefaultCapacity = 1000
	DefaultTTL      = 24 * time.Hour
)

// Store is the result cache contract.
type Store interface {
	// Get returns the cached result for a pair key, or false when the key
	// is absent or its entry has aged past the TTL.
	Get(key string) (model.ScoreResult, bool)
	// Put stores a result, evicting the oldest entry when at capacity.
	Put(key string, result model.ScoreResult)
	// Delete removes a key if present.
	Delete(key string)
	// Len reports the current entry count.
	Len() int
}

// entry is one cached result plus its creation timestamp. Entries are
// owned exclusively by the store.
type entry struct {
	result  model.ScoreResult
	created time.Time
}

// Memory is a mutex-guarded in-memory Store with oldest-first eviction and
// lazy TTL expiry.
type Memory struct {
	mu       sync.Mutex
	entries  map[string]entry
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// Option applies a configuration option to the store.
type Option func(*Memory)

// WithCapacity sets the maximum entry count.
func WithCapacity(capacity int) Option {
	return func(m *Memory) {
		if capacity > 0 {
			m.capacity = capacity
		}
	}
}

// WithTTL sets the maximum entry age.
func WithTTL(ttl time.Duration) Option {
	return func(m *Memory) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemory creates an in-memory store with default capacity and TTL.
func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		entries:  make(map[string]entry),
		capacity: DefaultCapacity,
		ttl:      DefaultTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the result for key. An entry older than the TTL is dropped
// and reported as a miss.
func (m *Memory) Get(key string) (model.ScoreResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		metrics.RecordCacheMiss()
		return model.ScoreResult{}, false
	}
	if m.now().Sub(e.created) > m.ttl {
		delete(m.entries, key)
		metrics.RecordCacheExpired()
		metrics.RecordCacheMiss()
		metrics.UpdateCacheSize(len(m.entries))
		return model.ScoreResult{}, false
	}
	metrics.RecordCacheHit()
	return e.result, true
}

// Put stores a result under key. When the store is at capacity and the key
// is new, the entry with the oldest creation timestamp is evicted first so
// the size never exceeds capacity.
func (m *Memory) Put(key string, result model.ScoreResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.capacity {
		m.evictOldestLocked()
	}
	m.entries[key] = entry{result: result, created: m.now()}
	metrics.UpdateCacheSize(len(m.entries))
}

// Delete removes a key if present.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[key]; ok {
		delete(m.entries, key)
		metrics.RecordCacheDropped()
		metrics.UpdateCacheSize(len(m.entries))
	}
}

// Len reports the current entry count.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// evictOldestLocked removes the entry with the oldest creation timestamp.
// Caller must hold the mutex.
func (m *Memory) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	first := true
	for key, e := range m.entries {
		if first || e.created.Before(oldest) {
			oldestKey, oldest = key, e.created
			first = false
		}
	}
	if !first {
		delete(m.entries, oldestKey)
		metrics.RecordCacheEviction()
	}
}
