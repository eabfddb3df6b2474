// Package aws serves secrets from AWS Secrets Manager.
package aws

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/smithy-go"

	"keyVaultAPI/internal/vault"
)

// secretsManagerAPI is the subset of *secretsmanager.Client used by Store.
type secretsManagerAPI interface {
	secretsmanager.ListSecretsAPIClient
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type Store struct {
	client secretsManagerAPI
}

// NewStore loads the default AWS configuration for region and creates a Store.
// endpoint overrides the service endpoint when non-empty (LocalStack and friends).
func NewStore(ctx context.Context, region, endpoint string) (*Store, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRetryMaxAttempts(1),
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if endpoint != "" {
		opts = append(opts, config.WithBaseEndpoint(endpoint))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return NewStoreWithConfig(cfg), nil
}

func NewStoreWithConfig(cfg aws.Config) *Store {
	return &Store{client: secretsmanager.NewFromConfig(cfg)}
}

// Backend implements vault.Store.
func (s *Store) Backend() string {
	return "aws"
}

func (s *Store) ListSecrets(ctx context.Context) ([]vault.SecretItem, error) {
	items := []vault.SecretItem{}

	paginator := secretsmanager.NewListSecretsPaginator(s.client, &secretsmanager.ListSecretsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, translate(err)
		}
		for _, entry := range page.SecretList {
			items = append(items, vault.SecretItem{
				Name: aws.ToString(entry.Name),
				ID:   aws.ToString(entry.ARN),
			})
		}
	}

	return items, nil
}

// GetSecret returns the current version of the secret. Binary secrets are
// returned base64 encoded.
func (s *Store) GetSecret(ctx context.Context, name string) (*vault.Secret, error) {
	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return nil, translate(err)
	}

	secret := &vault.Secret{
		Name: aws.ToString(out.Name),
		ID:   aws.ToString(out.ARN),
	}
	if secret.Name == "" {
		secret.Name = name
	}
	switch {
	case out.SecretString != nil:
		secret.Value = *out.SecretString
	case out.SecretBinary != nil:
		secret.Value = base64.StdEncoding.EncodeToString(out.SecretBinary)
	}
	return secret, nil
}

// translate turns service errors carrying an HTTP status into store-reported errors.
// Secrets Manager answers 400 for a missing secret; that case is reported as 404.
func translate(err error) error {
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return vault.NewError(http.StatusNotFound, notFound.ErrorMessage(), err)
	}

	var withStatus interface{ HTTPStatusCode() int }
	if !errors.As(err, &withStatus) || withStatus.HTTPStatusCode() == 0 {
		return err
	}

	var message string
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		message = apiErr.ErrorMessage()
		if message == "" {
			message = apiErr.ErrorCode()
		}
	}
	return vault.NewError(withStatus.HTTPStatusCode(), message, err)
}
