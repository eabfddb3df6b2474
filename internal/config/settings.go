package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"
)

// settingsFile mirrors the Azure Functions local.settings.json layout.
// YAML is accepted too since JSON is a subset of it.
type settingsFile struct {
	IsEncrypted bool              `yaml:"IsEncrypted"`
	Values      map[string]string `yaml:"Values"`
}

// applySettingsFile exports the Values of the file as environment variables that
// are not set yet. A missing file is not an error.
func applySettingsFile(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: reading settings file: %w", err)
	}

	var settings settingsFile
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("config: parsing settings file %s: %w", path, err)
	}
	if settings.IsEncrypted {
		return fmt.Errorf("%w: encrypted settings file %s is not supported", ErrInvalidConfig, path)
	}

	for key, value := range settings.Values {
		if _, ok := os.LookupEnv(key); ok {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("config: exporting %s: %w", key, err)
		}
	}
	return nil
}
