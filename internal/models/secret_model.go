package models

import "keyVaultAPI/internal/vault"

// SecretItemResponse represents one entry of a secret listing
type SecretItemResponse struct {
	Name string `json:"name"`
}

// SecretCollectionResponse represents the body of GET /secrets
type SecretCollectionResponse struct {
	Items []SecretItemResponse `json:"items"`
}

// SecretResponse represents a secret returned by the API
type SecretResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewSecretCollection converts store items. Items is never nil so an empty
// listing encodes as [] instead of null.
func NewSecretCollection(items []vault.SecretItem) SecretCollectionResponse {
	out := SecretCollectionResponse{Items: make([]SecretItemResponse, 0, len(items))}
	for _, item := range items {
		out.Items = append(out.Items, SecretItemResponse{Name: item.Name})
	}
	return out
}

// NewSecretResponse converts a store secret
func NewSecretResponse(secret *vault.Secret) SecretResponse {
	return SecretResponse{Name: secret.Name, Value: secret.Value}
}
