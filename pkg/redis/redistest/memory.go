// Package redistest provides an in-memory key/value store for tests.
package redistest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lamuse/classtee-backend/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
)

// Memory satisfies redis.KeyValue and redis.IdempotencyStore. TTLs are ignored.
type Memory struct {
	mu   sync.Mutex
	data map[string]string

	// Err, when set, is returned from every call.
	Err error
}

func NewMemory() *Memory {
	return &Memory{data: map[string]string{}}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	v, ok := m.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.data[key] = stringify(value)
	return nil
}

func (m *Memory) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key] = stringify(value)
	return true, nil
}

func (m *Memory) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *Memory) IdempotencyKey(scope, id string) string {
	return redis.Key("idempotency", scope, id)
}

// Has reports whether key is currently stored.
func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
