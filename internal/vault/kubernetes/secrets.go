package kubernetes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"

	v1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"keyVaultAPI/internal/vault"
)

// ListSecrets lists the Secret objects of the namespace, sorted by name
func (c *Client) ListSecrets(ctx context.Context) ([]vault.SecretItem, error) {
	list, err := c.ClientSet.CoreV1().Secrets(c.Namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, translate(err)
	}

	items := make([]vault.SecretItem, 0, len(list.Items))
	for _, secret := range list.Items {
		items = append(items, vault.SecretItem{
			Name: secret.Name,
			ID:   secretID(&secret),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	return items, nil
}

// GetSecret retrieves a Kubernetes secret and returns the value held under ValueKey.
// A Secret with a single data key is served from that key whatever its name.
func (c *Client) GetSecret(ctx context.Context, name string) (*vault.Secret, error) {
	secret, err := c.ClientSet.CoreV1().Secrets(c.Namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, translate(err)
	}

	value, ok := c.value(secret)
	if !ok {
		msg := fmt.Sprintf("secret %q has no %q key", name, c.ValueKey)
		return nil, vault.NewError(http.StatusNotFound, msg, nil)
	}

	return &vault.Secret{
		Name:  secret.Name,
		Value: value,
		ID:    secretID(secret),
	}, nil
}

func (c *Client) value(secret *v1.Secret) (string, bool) {
	if v, ok := secret.Data[c.ValueKey]; ok {
		return string(v), true // convert from []byte to string
	}
	if len(secret.Data) == 1 {
		for _, v := range secret.Data {
			return string(v), true
		}
	}
	return "", false
}

func secretID(secret *v1.Secret) string {
	return secret.Namespace + "/" + secret.Name
}

// translate turns API server status errors into store-reported errors.
func translate(err error) error {
	var status apierrors.APIStatus
	if errors.As(err, &status) {
		s := status.Status()
		if s.Code != 0 {
			return vault.NewError(int(s.Code), s.Message, err)
		}
	}
	return err
}
