// Package config loads the facade settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Supported secret store backends.
const (
	BackendAzure      = "azure"
	BackendKubernetes = "kubernetes"
	BackendAWS        = "aws"
)

const keyVaultNameEnv = "KeyVaultName"

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	Backend       string `envconfig:"SECRETS_BACKEND" default:"azure"`
	KeyVaultName  string `envconfig:"KEYVAULTNAME"`
	KeyVaultURL   string `envconfig:"KEY_VAULT_URL"`
	KubeNamespace string `envconfig:"KUBE_NAMESPACE" default:"default"`
	KubeValueKey  string `envconfig:"KUBE_VALUE_KEY" default:"value"`
	AWSRegion     string `envconfig:"AWS_REGION"`
	AWSEndpoint   string `envconfig:"AWS_ENDPOINT_URL"`

	RoutePrefix     string `envconfig:"ROUTE_PREFIX"`
	AuthLevel       string `envconfig:"AUTH_LEVEL" default:"anonymous"`
	FunctionKey     string `envconfig:"FUNCTION_KEY"`
	FunctionKeyHash string `envconfig:"FUNCTION_KEY_HASH"`
	JWTSecret       string `envconfig:"JWT_SECRET"`

	OpenAPITitle       string `envconfig:"OPENAPI_TITLE" default:"Key Vault Secrets API"`
	OpenAPIVersion     string `envconfig:"OPENAPI_VERSION" default:"1.0.0"`
	OpenAPIDescription string `envconfig:"OPENAPI_DESCRIPTION"`
	OpenAPISpecVersion string `envconfig:"OPENAPI_SPEC_VERSION" default:"v2"`
	OpenAPIFormat      string `envconfig:"OPENAPI_FORMAT" default:"json"`
	OpenAPIAuthKey     string `envconfig:"OPENAPI_AUTH_KEY"`

	MetricsEnabled bool `envconfig:"METRICS_ENABLED" default:"true"`

	TrustForwardedHeaders bool `envconfig:"TRUST_FORWARDED_HEADERS" default:"true"`
}

// Load seeds the environment from settingsFile (when it exists) and then reads
// the configuration from the environment. Variables already set win over the file.
func Load(settingsFile string) (*Config, error) {
	cfg, err := Read(settingsFile)
	if err != nil {
		return nil, err
	}

	if err := cfg.applyDefaultsAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without validation, for commands that never reach a secret store.
func Read(settingsFile string) (*Config, error) {
	if err := applySettingsFile(settingsFile); err != nil {
		return nil, err
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: reading environment: %w", err)
	}
	// envconfig upper-cases names; the Functions host exports the vault name as is
	if cfg.KeyVaultName == "" {
		cfg.KeyVaultName = os.Getenv(keyVaultNameEnv)
	}
	return &cfg, nil
}

func (c *Config) applyDefaultsAndValidate() error {
	c.Backend = strings.ToLower(c.Backend)
	c.AuthLevel = strings.ToLower(c.AuthLevel)
	c.RoutePrefix = strings.Trim(c.RoutePrefix, "/")
	c.OpenAPISpecVersion = strings.ToLower(c.OpenAPISpecVersion)
	c.OpenAPIFormat = strings.ToLower(c.OpenAPIFormat)

	switch c.Backend {
	case BackendAzure:
		if c.KeyVaultName == "" && c.KeyVaultURL == "" {
			return fmt.Errorf("%w: KeyVaultName or KEY_VAULT_URL must be set for the azure backend", ErrInvalidConfig)
		}
	case BackendKubernetes, BackendAWS:
	default:
		return fmt.Errorf("%w: SECRETS_BACKEND must be one of azure, kubernetes, aws, got %q", ErrInvalidConfig, c.Backend)
	}

	switch c.AuthLevel {
	case "anonymous":
	case "function":
		if c.FunctionKey == "" && c.FunctionKeyHash == "" {
			return fmt.Errorf("%w: FUNCTION_KEY or FUNCTION_KEY_HASH must be set for function authorization", ErrInvalidConfig)
		}
	case "bearer":
		if c.JWTSecret == "" {
			return fmt.Errorf("%w: JWT_SECRET must be set for bearer authorization", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: AUTH_LEVEL must be one of anonymous, function, bearer, got %q", ErrInvalidConfig, c.AuthLevel)
	}

	if c.OpenAPISpecVersion != "v2" && c.OpenAPISpecVersion != "v3" {
		return fmt.Errorf("%w: OPENAPI_SPEC_VERSION must be v2 or v3, got %q", ErrInvalidConfig, c.OpenAPISpecVersion)
	}
	if c.OpenAPIFormat != "json" && c.OpenAPIFormat != "yaml" {
		return fmt.Errorf("%w: OPENAPI_FORMAT must be json or yaml, got %q", ErrInvalidConfig, c.OpenAPIFormat)
	}

	return nil
}

// VaultBaseURL returns the Key Vault address, composed from the vault name unless overridden.
func (c *Config) VaultBaseURL() string {
	if c.KeyVaultURL != "" {
		return c.KeyVaultURL
	}
	if c.KeyVaultName == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.vault.azure.net/", c.KeyVaultName)
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// String never prints keys or secrets.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Backend=%s Vault=%s KubeNamespace=%s AWSRegion=%s RoutePrefix=%q AuthLevel=%s OpenAPI=%s/%s Metrics=%t",
		c.Backend, c.VaultBaseURL(), c.KubeNamespace, c.AWSRegion, c.RoutePrefix, c.AuthLevel,
		c.OpenAPISpecVersion, c.OpenAPIFormat, c.MetricsEnabled,
	)
}
