// Package azure serves secrets from an Azure Key Vault.
package azure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"

	"keyVaultAPI/internal/vault"
)

// ErrMissingVault is returned when neither a vault name nor a vault URL is configured.
var ErrMissingVault = errors.New("azure: key vault name or URL is required")

// secretsClient is the subset of *azsecrets.Client used by Store.
type secretsClient interface {
	NewListSecretPropertiesPager(options *azsecrets.ListSecretPropertiesOptions) *runtime.Pager[azsecrets.ListSecretPropertiesResponse]
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

// Store reads secrets from a single Key Vault.
type Store struct {
	client  secretsClient
	baseURL string
}

// Adding the following variable, so that the credential chain can be replaced in tests
var newCredential = func() (azcore.TokenCredential, error) {
	return azidentity.NewDefaultAzureCredential(nil)
}

// BaseURL composes the vault address from its name.
func BaseURL(vaultName string) string {
	return fmt.Sprintf("https://%s.vault.azure.net/", vaultName)
}

// NewStore creates a Store for baseURL authenticated with the default Azure credential
// chain (environment, workload identity, managed identity, Azure CLI).
func NewStore(baseURL string) (*Store, error) {
	if baseURL == "" {
		return nil, ErrMissingVault
	}
	cred, err := newCredential()
	if err != nil {
		return nil, fmt.Errorf("azure: creating credential: %w", err)
	}
	return NewStoreWithCredential(baseURL, cred, nil)
}

// NewStoreWithCredential creates a Store using the given credential and client options.
// Retries are always disabled: a request makes a single attempt against the vault.
func NewStoreWithCredential(baseURL string, cred azcore.TokenCredential, opts *azsecrets.ClientOptions) (*Store, error) {
	if opts == nil {
		opts = &azsecrets.ClientOptions{}
	}
	opts.Retry = policy.RetryOptions{MaxRetries: -1}

	client, err := azsecrets.NewClient(baseURL, cred, opts)
	if err != nil {
		return nil, fmt.Errorf("azure: creating secrets client: %w", err)
	}
	return &Store{client: client, baseURL: baseURL}, nil
}

// BaseURL returns the vault address the store talks to.
func (s *Store) BaseURL() string {
	return s.baseURL
}

// Backend implements vault.Store.
func (s *Store) Backend() string {
	return "azure"
}

// ListSecrets walks every page of secret properties. Items without an identifier are skipped.
func (s *Store) ListSecrets(ctx context.Context) ([]vault.SecretItem, error) {
	items := []vault.SecretItem{}

	pager := s.client.NewListSecretPropertiesPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, translate(err)
		}
		for _, props := range page.Value {
			if props == nil || props.ID == nil {
				continue
			}
			items = append(items, vault.SecretItem{
				Name: props.ID.Name(),
				ID:   string(*props.ID),
			})
		}
	}

	return items, nil
}

// GetSecret fetches the latest version of the named secret.
func (s *Store) GetSecret(ctx context.Context, name string) (*vault.Secret, error) {
	resp, err := s.client.GetSecret(ctx, name, "", nil)
	if err != nil {
		return nil, translate(err)
	}

	secret := &vault.Secret{Name: name}
	if resp.ID != nil {
		secret.Name = resp.ID.Name()
		secret.ID = string(*resp.ID)
	}
	if resp.Value != nil {
		secret.Value = *resp.Value
	}
	return secret, nil
}

// keyVaultError is the error body Key Vault answers with.
type keyVaultError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// translate turns *azcore.ResponseError into a store-reported error; anything else
// (transport, credential, cancellation) is returned untouched.
func translate(err error) error {
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) || respErr.StatusCode == 0 {
		return err
	}
	return vault.NewError(respErr.StatusCode, errorMessage(respErr), err)
}

func errorMessage(respErr *azcore.ResponseError) string {
	if respErr.RawResponse != nil {
		if body, err := runtime.Payload(respErr.RawResponse); err == nil && len(body) > 0 {
			var kvErr keyVaultError
			if json.Unmarshal(body, &kvErr) == nil && strings.TrimSpace(kvErr.Error.Message) != "" {
				return kvErr.Error.Message
			}
		}
	}
	return respErr.ErrorCode
}
