package ioconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/medbase/meddb/pkg/config"
	"gopkg.in/yaml.v3"
)

const configHeader = `# meddb configuration.
#
# Settings can also be supplied as environment variables with the MEDDB_
# prefix, for example MEDDB_DATABASE_PATH or MEDDB_LOG_LEVEL. Environment
# variables take precedence over this file.

`

// GenerateDefaultConfig writes a config file with the default settings
// to the default location. Does NOT overwrite an existing file.
func GenerateDefaultConfig(homeDir string) (string, error) {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists at %s", configPath)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return "", WriteConfigError(configPath, err)
	}

	body, err := yaml.Marshal(config.New())
	if err != nil {
		return "", WriteConfigError(configPath, err)
	}

	data := append([]byte(configHeader), body...)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", WriteConfigError(configPath, err)
	}

	return configPath, nil
}

// ConfigFileExists checks if a config file exists at the default
// location.
func ConfigFileExists(homeDir string) bool {
	_, err := os.Stat(config.ConfigFilePath(homeDir))
	return err == nil
}
