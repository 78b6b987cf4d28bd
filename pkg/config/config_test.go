package config_test

import (
	"path/filepath"
	"testing"

	"github.com/medbase/meddb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "meddb"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "meddb", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "meddb", "meddb.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Equal(t, "meddb.db", cfg.Database.Path)
		assert.Equal(t, 5_000, cfg.Database.BatchSize)

		assert.Equal(t, 5, cfg.Search.SampleSize)
		assert.Equal(t, 10, cfg.Search.TopIngredients)

		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("applies valid options", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptDatabasePath("/tmp/catalog.db"),
			config.OptDatabaseBatchSize(100),
			config.OptLogFormat("text"),
			config.OptLogLevel("debug"),
		})

		assert.Equal(t, "/tmp/catalog.db", cfg.Database.Path)
		assert.Equal(t, 100, cfg.Database.BatchSize)
		assert.Equal(t, "text", cfg.Log.Format)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("rejects invalid options keeping config valid", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptDatabasePath("  "),
			config.OptDatabaseBatchSize(-5),
			config.OptLogFormat("xml"),
			config.OptLogLevel("loud"),
		})

		assert.Equal(t, "meddb.db", cfg.Database.Path)
		assert.Equal(t, 5_000, cfg.Database.BatchSize)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
	})
}

func TestToOptions(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabasePath("/data/catalog.db"),
		config.OptSearchSampleSize(7),
	})

	res := config.New()
	res.Update(cfg.ToOptions())

	assert.Equal(t, cfg.Database, res.Database)
	assert.Equal(t, cfg.Search, res.Search)
	assert.Equal(t, cfg.Log, res.Log)
}
