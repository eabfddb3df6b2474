package vault

import (
	"context"
	"time"
)

// Observer receives the outcome of every store call.
type Observer interface {
	ObserveStoreCall(backend, operation string, elapsed time.Duration, err error)
}

// observedStore reports each call of the wrapped store to an Observer.
type observedStore struct {
	next     Store
	observer Observer
}

// WithObserver wraps store so every call is reported to observer.
// A nil observer returns store unchanged.
func WithObserver(store Store, observer Observer) Store {
	if observer == nil {
		return store
	}
	return &observedStore{next: store, observer: observer}
}

func (s *observedStore) ListSecrets(ctx context.Context) ([]SecretItem, error) {
	start := time.Now()
	items, err := s.next.ListSecrets(ctx)
	s.observer.ObserveStoreCall(s.next.Backend(), "list", time.Since(start), err)
	return items, err
}

func (s *observedStore) GetSecret(ctx context.Context, name string) (*Secret, error) {
	start := time.Now()
	secret, err := s.next.GetSecret(ctx, name)
	s.observer.ObserveStoreCall(s.next.Backend(), "get", time.Since(start), err)
	return secret, err
}

func (s *observedStore) Backend() string {
	return s.next.Backend()
}
