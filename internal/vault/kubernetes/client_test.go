package kubernetes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"
	"k8s.io/client-go/rest"
)

// Testing the NewClient function with various scenarios
func TestNewClient(t *testing.T) {
	// Backup original functions
	origInCluster := inClusterConfig
	origBuild := buildConfigFromFlags
	origNewForConfig := newForConfig
	defer func() {
		inClusterConfig = origInCluster
		buildConfigFromFlags = origBuild
		newForConfig = origNewForConfig
	}()

	mockConfig := &rest.Config{}

	tests := []struct {
		name          string
		inClusterErr  error
		buildErr      error
		newForErr     error
		expectError   bool
		expectMessage string
	}{
		{
			name:         "in-cluster config works",
			inClusterErr: nil,
			expectError:  false,
		},
		{
			name:          "in-cluster fails, fallback also fails",
			inClusterErr:  errors.New("no cluster"),
			buildErr:      errors.New("missing kubeconfig"),
			expectError:   true,
			expectMessage: "failed to load kubeconfig",
		},
		{
			name:         "in-cluster fails, fallback succeeds",
			inClusterErr: errors.New("no cluster"),
			expectError:  false,
		},
		{
			name:          "clientset creation fails",
			inClusterErr:  nil,
			newForErr:     errors.New("bad config"),
			expectError:   true,
			expectMessage: "bad config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Mock functions
			inClusterConfig = func() (*rest.Config, error) {
				return mockConfig, tt.inClusterErr
			}
			buildConfigFromFlags = func(_, _ string) (*rest.Config, error) {
				if tt.buildErr != nil {
					return nil, tt.buildErr
				}
				return mockConfig, nil
			}
			newForConfig = func(_ *rest.Config) (*kubernetes.Clientset, error) {
				if tt.newForErr != nil {
					return nil, tt.newForErr
				}
				return &kubernetes.Clientset{}, nil // no real client
			}

			client, err := NewClient("team-a", "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectMessage)
				assert.Nil(t, client)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, client)
				assert.Equal(t, "team-a", client.Namespace)
				assert.Equal(t, DefaultValueKey, client.ValueKey)
			}
		})
	}
}

func TestNewClient_DefaultsNamespace(t *testing.T) {
	client := newClient(nil, "", "password")

	assert.Equal(t, "default", client.Namespace)
	assert.Equal(t, "password", client.ValueKey)
	assert.Equal(t, "kubernetes", client.Backend())
}

// Secrets of other namespaces are invisible to the client
func TestClient_ScopedToNamespace(t *testing.T) {
	clientset := fake.NewSimpleClientset(
		&v1.Secret{
			ObjectMeta: metav1.ObjectMeta{Name: "db-password", Namespace: "team-a"},
			Data:       map[string][]byte{"value": []byte("team-a-pass")},
		},
		&v1.Secret{
			ObjectMeta: metav1.ObjectMeta{Name: "db-password", Namespace: "team-b"},
			Data:       map[string][]byte{"value": []byte("team-b-pass")},
		},
		&v1.Secret{
			ObjectMeta: metav1.ObjectMeta{Name: "other-only", Namespace: "team-b"},
			Data:       map[string][]byte{"value": []byte("x")},
		},
	)
	client := newClient(clientset, "team-a", "")

	items, err := client.ListSecrets(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "db-password", items[0].Name)
	assert.Equal(t, "team-a/db-password", items[0].ID)

	got, err := client.GetSecret(context.Background(), "db-password")
	require.NoError(t, err)
	assert.Equal(t, "team-a-pass", got.Value)

	_, err = client.GetSecret(context.Background(), "other-only")
	assert.Error(t, err)
}
