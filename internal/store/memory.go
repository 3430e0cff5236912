package store

import (
	"context"
	"sync"

	"github.com/serroba/shorturl-service/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository.
// List returns records in insertion order.
type MemoryStore struct {
	mu    sync.RWMutex
	urls  []*shortener.ShortURL
	codes map[shortener.Code]*shortener.ShortURL
}

// NewMemoryStore creates a new in-memory URL store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		codes: make(map[shortener.Code]*shortener.ShortURL),
	}
}

// Save appends the record. When two records share a code both are listed and
// lookups keep returning the first one.
func (m *MemoryStore) Save(_ context.Context, shortURL *shortener.ShortURL) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *shortURL
	m.urls = append(m.urls, &stored)

	if _, exists := m.codes[stored.Code]; !exists {
		m.codes[stored.Code] = &stored
	}

	return nil
}

func (m *MemoryStore) GetByCode(_ context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	url, ok := m.codes[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	found := *url

	return &found, nil
}

func (m *MemoryStore) List(_ context.Context) ([]*shortener.ShortURL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	urls := make([]*shortener.ShortURL, 0, len(m.urls))

	for _, url := range m.urls {
		copied := *url
		urls = append(urls, &copied)
	}

	return urls, nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Compile-time check.
var _ shortener.Repository = (*MemoryStore)(nil)
