package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/you/communitysvc/domain"
)

// MockCodeStore implements domain.CodeStore for testing. The default
// behavior is a working in-memory store, so most tests need no setup.
type MockCodeStore struct {
	PutFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	GetFunc    func(ctx context.Context, key string) (string, error)
	DeleteFunc func(ctx context.Context, key string) error

	mu     sync.Mutex
	values map[string]string
}

func NewMockCodeStore() *MockCodeStore {
	return &MockCodeStore{values: make(map[string]string)}
}

func (m *MockCodeStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCodeStore) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *MockCodeStore) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

var _ domain.CodeStore = (*MockCodeStore)(nil)
