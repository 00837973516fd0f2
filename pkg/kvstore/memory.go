package kvstore

import (
	"context"
	"sync"
)

// Memory is a map-backed Store for tests and ephemeral registers.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}}
}

func (m *Memory) Read(ctx context.Context, namespace string) ([]byte, error) {
	if err := validateNamespace(namespace); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.data[namespace]
	if !ok {
		return nil, ErrNamespaceEmpty
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

func (m *Memory) Write(ctx context.Context, namespace string, payload []byte) error {
	if err := validateNamespace(namespace); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(payload))
	copy(stored, payload)
	m.data[namespace] = stored
	return nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

func (m *Memory) Close() error {
	return nil
}
