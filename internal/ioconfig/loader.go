// Package ioconfig provides I/O operations for loading configuration
// from files and environment variables. This is an impure package that
// handles file system operations.
package ioconfig

import (
	"os"
	"strings"

	"github.com/medbase/meddb/pkg/config"
	"github.com/spf13/viper"
)

// LoadResult contains the loaded configuration and metadata about the
// source.
type LoadResult struct {
	Config     *config.Config
	SourcePath string // path to config file used, or empty for defaults
	Source     string // "file", "defaults", or "defaults+env"
}

// Load reads configuration from a YAML file and returns a validated
// Config with source info. If configPath is empty, it searches default
// locations:
//   - ./meddb.yaml
//   - ~/.config/meddb/meddb.yaml
//
// Precedence: env vars > config file > defaults. Invalid values are
// warned about and ignored, keeping the defaults.
func Load(configPath string) (*LoadResult, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("MEDDB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Defaults are set before reading so AutomaticEnv knows which keys
	// to check even without a config file.
	def := config.New()
	v.SetDefault("database.path", def.Database.Path)
	v.SetDefault("database.batch_size", def.Database.BatchSize)
	v.SetDefault("search.sample_size", def.Search.SampleSize)
	v.SetDefault("search.top_ingredients", def.Search.TopIngredients)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.destination", def.Log.Destination)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else if path, ok := findConfigFile(); ok {
		v.SetConfigFile(path)
	}

	configFileRead := false
	usedConfigPath := ""

	if err := v.ReadInConfig(); err != nil {
		if configPath != "" {
			return nil, ReadConfigError(configPath, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, ReadConfigError(v.ConfigFileUsed(), err)
		}
	} else {
		configFileRead = true
		usedConfigPath = v.ConfigFileUsed()
	}

	var raw config.Config
	if err := v.Unmarshal(&raw); err != nil {
		return nil, ReadConfigError(usedConfigPath, err)
	}

	// Update validates each value, warning and keeping the default on
	// invalid input.
	cfg := config.New()
	cfg.Update(raw.ToOptions())
	if home, err := os.UserHomeDir(); err == nil {
		cfg.Update([]config.Option{config.OptHomeDir(home)})
	}

	source := "defaults"
	switch {
	case configFileRead:
		source = "file"
	case hasEnvVars():
		source = "defaults+env"
	}

	return &LoadResult{
		Config:     cfg,
		SourcePath: usedConfigPath,
		Source:     source,
	}, nil
}

// findConfigFile checks the default config locations in order.
func findConfigFile() (string, bool) {
	candidates := []string{"./meddb.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, config.ConfigFilePath(home))
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// hasEnvVars checks if any MEDDB_* environment variables are set.
func hasEnvVars() bool {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MEDDB_") {
			return true
		}
	}
	return false
}
