// Package config provides configuration management for meddb.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > meddb.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in meddb.yaml)
//
// # Environment Variables
//
// Use MEDDB_ prefix with underscores for nesting:
//
//	MEDDB_DATABASE_PATH=./catalog.db
//	MEDDB_LOG_LEVEL=info
//	MEDDB_SEARCH_SAMPLE_SIZE=5
package config

// Config represents the complete meddb configuration.
type Config struct {
	// Database contains SQLite store settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Search contains settings for inspection and search output.
	Search SearchConfig `mapstructure:"search" yaml:"search"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config and logs directories reside.
	// It is set by the CLI during init, there is no default value for it.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// DatabaseConfig contains settings for the catalog store file.
type DatabaseConfig struct {
	// Path is the location of the SQLite catalog store file.
	Path string `mapstructure:"path" yaml:"path"`

	// BatchSize defines how many record updates are committed per
	// transaction during the normalization pass. Larger batches are
	// faster but lose more progress on a crash.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// SearchConfig contains settings for inspection reports and search output.
type SearchConfig struct {
	// SampleSize is the number of normalized sample records shown in
	// inspection reports.
	SampleSize int `mapstructure:"sample_size" yaml:"sample_size"`

	// TopIngredients is the number of most frequent canonical
	// ingredients listed in ingredient analysis.
	TopIngredients int `mapstructure:"top_ingredients" yaml:"top_ingredients"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Path:      "meddb.db",
			BatchSize: 5_000,
		},
		Search: SearchConfig{
			SampleSize:     5,
			TopIngredients: 10,
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
	}

	return res
}
