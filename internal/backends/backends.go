// Package backends builds the secret store selected by the configuration.
package backends

import (
	"context"
	"fmt"

	"keyVaultAPI/internal/config"
	"keyVaultAPI/internal/vault"
	"keyVaultAPI/internal/vault/aws"
	"keyVaultAPI/internal/vault/azure"
	"keyVaultAPI/internal/vault/kubernetes"
)

// Replaced in tests
var (
	newAzureStore = func(baseURL string) (vault.Store, error) {
		return azure.NewStore(baseURL)
	}
	newKubernetesStore = func(namespace, valueKey string) (vault.Store, error) {
		return kubernetes.NewClient(namespace, valueKey)
	}
	newAWSStore = func(ctx context.Context, region, endpoint string) (vault.Store, error) {
		return aws.NewStore(ctx, region, endpoint)
	}
)

// New creates the store for cfg.Backend.
func New(ctx context.Context, cfg *config.Config) (vault.Store, error) {
	var (
		store vault.Store
		err   error
	)

	switch cfg.Backend {
	case config.BackendAzure:
		store, err = newAzureStore(cfg.VaultBaseURL())
	case config.BackendKubernetes:
		store, err = newKubernetesStore(cfg.KubeNamespace, cfg.KubeValueKey)
	case config.BackendAWS:
		store, err = newAWSStore(ctx, cfg.AWSRegion, cfg.AWSEndpoint)
	default:
		return nil, fmt.Errorf("unknown secrets backend type: %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("creating %s secret store: %w", cfg.Backend, err)
	}
	return store, nil
}
