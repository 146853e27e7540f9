package storage

import (
	"context"
	"strings"
	"sync"
)

// Memory keeps objects in process memory. FailPut, when set, is returned by
// every Put so callers can exercise upload failures.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
	FailPut error
}

func NewMemory(baseURL string) *Memory {
	return &Memory{objects: map[string][]byte{}, baseURL: strings.TrimRight(baseURL, "/")}
}

func (m *Memory) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPut != nil {
		return "", m.FailPut
	}
	m.objects[key] = append([]byte(nil), data...)
	return m.baseURL + "/" + key, nil
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// SetFailPut toggles upload failure injection.
func (m *Memory) SetFailPut(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailPut = err
}

// Len reports how many objects are stored.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
