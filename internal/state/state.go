// Package state persists the small amount of client-side state the CLI
// keeps between invocations: the active project selection and the API
// session cookie. It is the terminal equivalent of the web client's
// localStorage, behind an interface so tests can substitute memory.
package state

import "context"

// Well-known keys.
const (
	KeyActiveProjectID = "active_project_id"
	KeySessionCookie   = "session_cookie"
)

// Store is a string key/value persistence port.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	return m.values[key], nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
