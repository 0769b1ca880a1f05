package testhelpers

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-api/backend/internal/storage"
)

// MockFileStore is a mock implementation of storage.FileStore
type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Save(ctx context.Context, key, contentType string, data []byte) error {
	args := m.Called(ctx, key, contentType, data)
	return args.Error(0)
}

func (m *MockFileStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockFileStore) URL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// MemoryFileStore keeps saved files in a map. URLs are "/media/<key>".
type MemoryFileStore struct {
	mu    sync.Mutex
	Files map[string][]byte
}

func NewMemoryFileStore() *MemoryFileStore {
	return &MemoryFileStore{Files: make(map[string][]byte)}
}

func (m *MemoryFileStore) Save(_ context.Context, key, _ string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Files[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryFileStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Files, key)
	return nil
}

func (m *MemoryFileStore) URL(_ context.Context, key string) (string, error) {
	return "/media/" + key, nil
}

// Has reports whether key is stored.
func (m *MemoryFileStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Files[key]
	return ok
}

// Len returns the number of stored files.
func (m *MemoryFileStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Files)
}

var (
	_ storage.FileStore = (*MockFileStore)(nil)
	_ storage.FileStore = (*MemoryFileStore)(nil)
)
