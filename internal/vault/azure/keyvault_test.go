package azure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	azfake "github.com/Azure/azure-sdk-for-go/sdk/azcore/fake"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets/fake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyVaultAPI/internal/vault"
)

const testVault = "https://fake-vault.vault.azure.net/"

func secretID(name string) *azsecrets.ID {
	return to.Ptr(azsecrets.ID(fmt.Sprintf("https://fake-vault.vault.azure.net/secrets/%s", name)))
}

func newFakeStore(t *testing.T, srv *fake.Server) *Store {
	t.Helper()
	store, err := NewStoreWithCredential(testVault, &azfake.TokenCredential{}, &azsecrets.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Transport: fake.NewServerTransport(srv),
		},
	})
	require.NoError(t, err)
	return store
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "https://my-vault.vault.azure.net/", BaseURL("my-vault"))
}

func TestNewStore_RequiresVault(t *testing.T) {
	_, err := NewStore("")
	assert.ErrorIs(t, err, ErrMissingVault)
}

func TestNewStore_CredentialFailure(t *testing.T) {
	orig := newCredential
	defer func() { newCredential = orig }()
	newCredential = func() (azcore.TokenCredential, error) {
		return nil, errors.New("no identity")
	}

	_, err := NewStore(testVault)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no identity")
}

func TestListSecrets(t *testing.T) {
	srv := &fake.Server{
		NewListSecretPropertiesPager: func(*azsecrets.ListSecretPropertiesOptions) (resp azfake.PagerResponder[azsecrets.ListSecretPropertiesResponse]) {
			resp.AddPage(http.StatusOK, azsecrets.ListSecretPropertiesResponse{
				SecretPropertiesListResult: azsecrets.SecretPropertiesListResult{
					Value: []*azsecrets.SecretProperties{{ID: secretID("a")}, {ID: nil}},
				},
			}, nil)
			resp.AddPage(http.StatusOK, azsecrets.ListSecretPropertiesResponse{
				SecretPropertiesListResult: azsecrets.SecretPropertiesListResult{
					Value: []*azsecrets.SecretProperties{{ID: secretID("b")}},
				},
			}, nil)
			return
		},
	}
	store := newFakeStore(t, srv)

	items, err := store.ListSecrets(context.Background())
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Name)
	assert.Equal(t, "b", items[1].Name)
	assert.Equal(t, "https://fake-vault.vault.azure.net/secrets/a", items[0].ID)
}

func TestListSecrets_StoreError(t *testing.T) {
	srv := &fake.Server{
		NewListSecretPropertiesPager: func(*azsecrets.ListSecretPropertiesOptions) (resp azfake.PagerResponder[azsecrets.ListSecretPropertiesResponse]) {
			resp.AddResponseError(http.StatusForbidden, "Forbidden")
			return
		},
	}
	store := newFakeStore(t, srv)

	_, err := store.ListSecrets(context.Background())

	storeErr, ok := vault.AsError(err)
	require.True(t, ok, "expected store error, got %v", err)
	assert.Equal(t, http.StatusForbidden, storeErr.StatusCode)
	assert.Equal(t, "Forbidden", storeErr.Message)
}

func TestGetSecret(t *testing.T) {
	srv := &fake.Server{
		GetSecret: func(_ context.Context, name string, version string, _ *azsecrets.GetSecretOptions) (resp azfake.Responder[azsecrets.GetSecretResponse], errResp azfake.ErrorResponder) {
			if name != "db-password" {
				errResp.SetResponseError(http.StatusNotFound, "SecretNotFound")
				return
			}
			resp.SetResponse(http.StatusOK, azsecrets.GetSecretResponse{Secret: azsecrets.Secret{
				ID:    to.Ptr(azsecrets.ID("https://fake-vault.vault.azure.net/secrets/db-password/0123abcd")),
				Value: to.Ptr("xyz"),
			}}, nil)
			return
		},
	}
	store := newFakeStore(t, srv)

	got, err := store.GetSecret(context.Background(), "db-password")
	require.NoError(t, err)
	assert.Equal(t, "db-password", got.Name)
	assert.Equal(t, "xyz", got.Value)

	_, err = store.GetSecret(context.Background(), "missing")
	storeErr, ok := vault.AsError(err)
	require.True(t, ok, "expected store error, got %v", err)
	assert.Equal(t, http.StatusNotFound, storeErr.StatusCode)
	assert.Equal(t, "SecretNotFound", storeErr.Message)
}

func TestGetSecret_SingleAttempt(t *testing.T) {
	calls := 0
	srv := &fake.Server{
		GetSecret: func(context.Context, string, string, *azsecrets.GetSecretOptions) (resp azfake.Responder[azsecrets.GetSecretResponse], errResp azfake.ErrorResponder) {
			calls++
			errResp.SetResponseError(http.StatusServiceUnavailable, "ServiceUnavailable")
			return
		},
	}
	// caller supplied retry settings are overridden
	store, err := NewStoreWithCredential(testVault, &azfake.TokenCredential{}, &azsecrets.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Transport: fake.NewServerTransport(srv),
			Retry:     policy.RetryOptions{MaxRetries: 3},
		},
	})
	require.NoError(t, err)

	_, err = store.GetSecret(context.Background(), "flaky")

	storeErr, ok := vault.AsError(err)
	require.True(t, ok, "expected store error, got %v", err)
	assert.Equal(t, http.StatusServiceUnavailable, storeErr.StatusCode)
	assert.Equal(t, 1, calls)
}

// transportFunc lets a test answer requests made by the SDK pipeline.
type transportFunc func(*http.Request) (*http.Response, error)

func (f transportFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func TestGetSecret_MessageFromErrorBody(t *testing.T) {
	body := `{"error":{"code":"SecretNotFound","message":"Secret not found"}}`
	transport := transportFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Status:     "404 Not Found",
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    req,
		}, nil
	})

	store, err := NewStoreWithCredential(testVault, &azfake.TokenCredential{}, &azsecrets.ClientOptions{
		ClientOptions: azcore.ClientOptions{Transport: transport},
	})
	require.NoError(t, err)

	_, err = store.GetSecret(context.Background(), "missing")

	storeErr, ok := vault.AsError(err)
	require.True(t, ok, "expected store error, got %v", err)
	assert.Equal(t, http.StatusNotFound, storeErr.StatusCode)
	assert.Equal(t, "Secret not found", storeErr.Message)
}

func TestGetSecret_TransportErrorIsUnclassified(t *testing.T) {
	transport := transportFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("timeout")
	})

	store, err := NewStoreWithCredential(testVault, &azfake.TokenCredential{}, &azsecrets.ClientOptions{
		ClientOptions: azcore.ClientOptions{Transport: transport},
	})
	require.NoError(t, err)

	_, err = store.GetSecret(context.Background(), "anything")

	require.Error(t, err)
	_, ok := vault.AsError(err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "timeout")
}

func TestStore_Accessors(t *testing.T) {
	store := newFakeStore(t, &fake.Server{})

	assert.Equal(t, "azure", store.Backend())
	assert.Equal(t, testVault, store.BaseURL())
}
