package ioconfig

import (
	"os"
	"testing"

	"github.com/medbase/meddb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGenerateDefaultConfig(t *testing.T) {
	home := t.TempDir()

	path, err := GenerateDefaultConfig(home)
	require.NoError(t, err)
	assert.Equal(t, config.ConfigFilePath(home), path)
	assert.True(t, ConfigFileExists(home))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// The generated file round-trips to the default config.
	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	def := config.New()
	assert.Equal(t, def.Database, cfg.Database)
	assert.Equal(t, def.Search, cfg.Search)
	assert.Equal(t, def.Log, cfg.Log)
}

func TestGenerateDefaultConfigNoOverwrite(t *testing.T) {
	home := t.TempDir()

	_, err := GenerateDefaultConfig(home)
	require.NoError(t, err)

	custom := []byte("database:\n  path: custom.db\n")
	require.NoError(t,
		os.WriteFile(config.ConfigFilePath(home), custom, 0644))

	_, err = GenerateDefaultConfig(home)
	require.Error(t, err)

	data, err := os.ReadFile(config.ConfigFilePath(home))
	require.NoError(t, err)
	assert.Equal(t, custom, data)
}

func TestConfigFileExists(t *testing.T) {
	home := t.TempDir()
	assert.False(t, ConfigFileExists(home))

	_, err := GenerateDefaultConfig(home)
	require.NoError(t, err)
	assert.True(t, ConfigFileExists(home))
}
