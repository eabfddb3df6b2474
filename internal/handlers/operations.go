package handlers

import (
	"net/http"

	"keyVaultAPI/internal/openapi"
)

const secretsTag = "secrets"

var errorResponses = []openapi.Response{
	{StatusCode: http.StatusUnauthorized, Description: "Missing or invalid credentials", Schema: "Error"},
	{StatusCode: http.StatusInternalServerError, Description: "Unclassified failure", Schema: "Error"},
}

// SecretsOperations describes the routes served by SecretsHandler, relative to the route prefix.
func SecretsOperations() []openapi.Operation {
	return []openapi.Operation{
		{
			ID:          "ListSecrets",
			Method:      http.MethodGet,
			Path:        "/secrets",
			Summary:     "List secrets",
			Description: "Returns the names of every secret in the vault. Values are never included.",
			Tags:        []string{secretsTag},
			Responses: append([]openapi.Response{
				{StatusCode: http.StatusOK, Description: "Secret names", Schema: "SecretCollection"},
				{StatusCode: http.StatusForbidden, Description: "Store denied access", Schema: "Error"},
			}, errorResponses...),
		},
		{
			ID:          "GetSecret",
			Method:      http.MethodGet,
			Path:        "/secrets/{name}",
			Summary:     "Get secret by name",
			Description: "Returns the current value of the named secret.",
			Tags:        []string{secretsTag},
			Parameters: []openapi.Parameter{
				{Name: "name", In: "path", Type: "string", Required: true, Description: "Secret name"},
			},
			Responses: append([]openapi.Response{
				{StatusCode: http.StatusOK, Description: "Secret value", Schema: "Secret"},
				{StatusCode: http.StatusBadRequest, Description: "Empty secret name", Schema: "Error"},
				{StatusCode: http.StatusNotFound, Description: "Secret not found", Schema: "Error"},
			}, errorResponses...),
		},
	}
}

// SecretsSchemas describes the bodies referenced by SecretsOperations.
func SecretsSchemas() []openapi.Schema {
	return []openapi.Schema{
		{
			Name:       "SecretItem",
			Properties: []openapi.Property{{Name: "name", Type: "string"}},
			Required:   []string{"name"},
		},
		{
			Name:       "SecretCollection",
			Properties: []openapi.Property{{Name: "items", ItemsRef: "SecretItem"}},
			Required:   []string{"items"},
		},
		{
			Name: "Secret",
			Properties: []openapi.Property{
				{Name: "name", Type: "string"},
				{Name: "value", Type: "string"},
			},
			Required: []string{"name", "value"},
		},
		{
			Name: "Error",
			Properties: []openapi.Property{
				{Name: "statusCode", Type: "integer", Format: "int32"},
				{Name: "message", Type: "string"},
			},
			Required: []string{"statusCode", "message"},
		},
	}
}
