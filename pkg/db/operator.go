package db

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Operator defines the interface for basic catalog store management. It
// provides connection lifecycle and structure probes, and exposes both the
// raw database/sql handle (for passes and queries) and the GORM handle
// (for AutoMigrate-based schema management), mirroring how higher-level
// components split their work.
//
// The handle is created once at startup, passed by reference to every
// component, and closed once at shutdown. There are no package-level
// singletons.
type Operator interface {
	// Connect opens the SQLite store file the operator was constructed
	// with. Opening creates the file if it does not exist, so callers
	// that must distinguish a missing store check FileExists first.
	Connect(ctx context.Context) error

	// Close closes the store handle.
	Close() error

	// DB returns the raw database/sql handle, nil before Connect.
	DB() *sql.DB

	// Gorm returns the GORM handle, nil before Connect.
	Gorm() *gorm.DB

	// Path returns the configured store file location.
	Path() string

	// FileExists reports whether the store file is present on disk.
	FileExists() bool

	// FileSize returns the store file size in bytes.
	FileSize() (int64, error)

	// TableExists checks if a table exists in the store.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// ColumnExists checks if a column exists on a table.
	ColumnExists(ctx context.Context, tableName, columnName string) (bool, error)

	// IndexExists checks if a named index exists in the store.
	IndexExists(ctx context.Context, indexName string) (bool, error)
}
