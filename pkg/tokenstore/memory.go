package tokenstore

import (
	"context"
	"sync"
)

// Memory is an in-memory Store. It is the driver to inject in tests and is
// also usable for ephemeral sessions that should not outlive the process.
type Memory struct {
	mu     sync.RWMutex
	tokens map[Kind]string
}

// NewMemory returns an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{tokens: make(map[Kind]string)}
}

func (m *Memory) Get(_ context.Context, kind Kind) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	token, ok := m.tokens[kind]
	if !ok {
		return "", ErrNotFound
	}
	return token, nil
}

func (m *Memory) Set(_ context.Context, kind Kind, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tokens[kind] = token
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tokens = make(map[Kind]string)
	return nil
}

func (m *Memory) Close() error { return nil }
