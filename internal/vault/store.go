// Package vault defines the read contract the facade needs from a secret store
// and the error kind stores use to report failures with an HTTP status.
package vault

import "context"

// SecretItem is one entry of a secret enumeration. It never carries a value.
type SecretItem struct {
	Name string
	ID   string
}

// Secret is a single secret resolved by name.
type Secret struct {
	Name  string
	Value string
	ID    string
}

// Store defines the methods used by the secrets facade so it can be mocked in tests.
// Implementations must be safe for concurrent use.
type Store interface {
	// ListSecrets enumerates every secret in the vault, in the order the store returns them.
	ListSecrets(ctx context.Context) ([]SecretItem, error)

	// GetSecret resolves the current value of the secret with the given name.
	GetSecret(ctx context.Context, name string) (*Secret, error)

	// Backend returns the backend type name ("azure", "kubernetes" or "aws").
	Backend() string
}
