package ioconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	res, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err, "explicit missing path is an error")

	res, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "meddb.db", res.Config.Database.Path)
	assert.Equal(t, 5_000, res.Config.Database.BatchSize)
	assert.Equal(t, "json", res.Config.Log.Format)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meddb.yaml")
	body := []byte(`
database:
  path: /tmp/catalog.db
  batch_size: 100
log:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, body, 0644))

	res, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file", res.Source)
	assert.Equal(t, path, res.SourcePath)
	assert.Equal(t, "/tmp/catalog.db", res.Config.Database.Path)
	assert.Equal(t, 100, res.Config.Database.BatchSize)
	assert.Equal(t, "debug", res.Config.Log.Level)

	// Unset values keep their defaults.
	assert.Equal(t, "json", res.Config.Log.Format)
	assert.Equal(t, 5, res.Config.Search.SampleSize)
}

func TestLoadInvalidValuesKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meddb.yaml")
	body := []byte(`
database:
  batch_size: -5
log:
  level: loud
`)
	require.NoError(t, os.WriteFile(path, body, 0644))

	res, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5_000, res.Config.Database.BatchSize)
	assert.Equal(t, "info", res.Config.Log.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MEDDB_DATABASE_PATH", "/tmp/env.db")

	res, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", res.Config.Database.Path)
	if res.Source != "file" {
		assert.Equal(t, "defaults+env", res.Source)
	}
}
