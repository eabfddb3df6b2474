package mocks

import (
	"context"
	"net/http"
	"sync"

	"keyVaultAPI/internal/vault"
)

// MockStore implements vault.Store for tests.
type MockStore struct {
	mu sync.Mutex

	// call counters for assertions
	ListCalls int
	GetCalls  int
	LastName  string

	// forceable errors (set in tests)
	ListErr error
	GetErr  error

	// PanicWith makes every call panic with the value
	PanicWith any

	// Items in listing order; Values keyed by secret name
	Items  []string
	Values map[string]string
}

func NewMockStore() *MockStore {
	return &MockStore{
		Values: make(map[string]string),
	}
}

// Put adds a secret and appends its name to the listing.
func (m *MockStore) Put(name, value string) *MockStore {
	m.Items = append(m.Items, name)
	m.Values[name] = value
	return m
}

func (m *MockStore) Backend() string {
	return "mock"
}

func (m *MockStore) ListSecrets(_ context.Context) ([]vault.SecretItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls++
	if m.PanicWith != nil {
		panic(m.PanicWith)
	}
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	items := make([]vault.SecretItem, 0, len(m.Items))
	for _, name := range m.Items {
		items = append(items, vault.SecretItem{Name: name, ID: "mock/" + name})
	}
	return items, nil
}

func (m *MockStore) GetSecret(_ context.Context, name string) (*vault.Secret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls++
	m.LastName = name
	if m.PanicWith != nil {
		panic(m.PanicWith)
	}
	if m.GetErr != nil {
		return nil, m.GetErr
	}

	value, ok := m.Values[name]
	if !ok {
		return nil, vault.NewError(http.StatusNotFound, "Secret not found", nil)
	}
	return &vault.Secret{Name: name, Value: value, ID: "mock/" + name}, nil
}
