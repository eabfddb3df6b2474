package main

import (
	"strings"

	"github.com/spf13/cobra"

	"keyVaultAPI/internal/config"
	"keyVaultAPI/internal/openapi"
)

func newOpenAPICmd(settingsFile *string) *cobra.Command {
	var (
		serverURL   string
		specVersion string
		format      string
		prefix      string
	)

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the API description without contacting the vault",
		Long: `Render the OpenAPI document of the secrets API to stdout.

Examples:
  keyvault-api openapi                                  # v2 JSON
  keyvault-api openapi --spec-version v3 --format yaml
  keyvault-api openapi --server-url https://kv.contoso.com --prefix api`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Read(*settingsFile)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("spec-version") {
				specVersion = cfg.OpenAPISpecVersion
			}
			if !cmd.Flags().Changed("format") {
				format = cfg.OpenAPIFormat
			}
			if !cmd.Flags().Changed("prefix") {
				prefix = cfg.RoutePrefix
			}

			doc := newDocument(cfg)
			if serverURL != "" {
				server := strings.TrimRight(serverURL, "/")
				if p := strings.Trim(prefix, "/"); p != "" {
					server += "/" + p
				}
				doc = doc.WithServer(server)
			}

			out, err := openapi.Render(doc, strings.ToLower(specVersion), strings.ToLower(format))
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write([]byte("\n"))
			return err
		},
	}

	cmd.Flags().StringVar(&serverURL, "server-url", "", "Public address of the API, e.g. https://kv.contoso.com")
	cmd.Flags().StringVar(&specVersion, "spec-version", openapi.VersionV2, "OpenAPI version: v2 or v3 (default from OPENAPI_SPEC_VERSION)")
	cmd.Flags().StringVar(&format, "format", openapi.FormatJSON, "Output format: json or yaml (default from OPENAPI_FORMAT)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Route prefix (default from ROUTE_PREFIX)")
	return cmd
}
