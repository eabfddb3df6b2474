package main

import (
	"os"

	"github.com/spf13/cobra"

	"keyVaultAPI/internal/config"
	"keyVaultAPI/internal/handlers"
	"keyVaultAPI/internal/openapi"
)

const defaultSettingsFile = "local.settings.json"

func newRootCmd() *cobra.Command {
	var settingsFile string

	root := &cobra.Command{
		Use:   "keyvault-api",
		Short: "Read-only HTTP facade over a secrets vault",
		Long: `keyvault-api lists secret names and fetches secret values from Azure Key Vault,
Kubernetes Secrets or AWS Secrets Manager, and documents itself with OpenAPI.

Examples:
  keyvault-api serve                               # serve on $PORT
  keyvault-api openapi --spec-version v3 --format yaml
  keyvault-api token --subject ci --ttl 1h         # mint a bearer token`,
		SilenceUsage: true,
	}

	defaultFile := os.Getenv("SETTINGS_FILE")
	if defaultFile == "" {
		defaultFile = defaultSettingsFile
	}
	root.PersistentFlags().StringVar(&settingsFile, "settings", defaultFile, "Settings file seeding the environment (ignored if absent)")

	root.AddCommand(
		newServeCmd(&settingsFile),
		newOpenAPICmd(&settingsFile),
		newTokenCmd(&settingsFile),
	)
	return root
}

// newDocument builds the API description shared by the serve and openapi commands.
func newDocument(cfg *config.Config) *openapi.Document {
	return openapi.NewDocument(
		openapi.Info{
			Title:       cfg.OpenAPITitle,
			Version:     cfg.OpenAPIVersion,
			Description: cfg.OpenAPIDescription,
		},
		handlers.SecretsOperations(),
		handlers.SecretsSchemas(),
	)
}
