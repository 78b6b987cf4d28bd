// Package iodb implements catalog store operations over a SQLite file.
// This is an impure I/O package that implements contracts defined in pkg/.
//
// One physical connection pool backs two views of the store: a GORM
// handle used by schema management and a raw database/sql handle used by
// every pass and query.
package iodb

import (
	"context"
	"database/sql"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/medbase/meddb/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqliteOperator implements db.Operator for a single-file SQLite store.
type sqliteOperator struct {
	path string
	gdb  *gorm.DB
	db   *sql.DB
}

// NewOperator creates a store operator for the given file path without
// connecting.
func NewOperator(path string) db.Operator {
	return &sqliteOperator{path: path}
}

// Connect opens the store file. SQLite creates the file on first open, so
// a caller that needs "file absent" semantics checks FileExists before
// calling Connect.
func (o *sqliteOperator) Connect(ctx context.Context) error {
	dsn := o.path + "?_pragma=busy_timeout(5000)"

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return ConnectionError(o.path, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return ConnectionError(o.path, err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return ConnectionError(o.path, err)
	}

	o.gdb = gdb
	o.db = sqlDB
	return nil
}

// Close releases the store handle.
func (o *sqliteOperator) Close() error {
	if o.db != nil {
		return o.db.Close()
	}
	return nil
}

// DB returns the raw database/sql handle.
func (o *sqliteOperator) DB() *sql.DB {
	return o.db
}

// Gorm returns the GORM handle.
func (o *sqliteOperator) Gorm() *gorm.DB {
	return o.gdb
}

// Path returns the configured store file location.
func (o *sqliteOperator) Path() string {
	return o.path
}

// FileExists reports whether the store file is present on disk.
func (o *sqliteOperator) FileExists() bool {
	info, err := os.Stat(o.path)
	return err == nil && !info.IsDir()
}

// FileSize returns the store file size in bytes.
func (o *sqliteOperator) FileSize() (int64, error) {
	info, err := os.Stat(o.path)
	if err != nil {
		return 0, FileMissingError(o.path, err)
	}
	return info.Size(), nil
}

// TableExists checks if a table exists in the store.
func (o *sqliteOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if o.db == nil {
		return false, NotConnectedError()
	}

	q := `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table' AND name = ?
		)
	`

	var exists bool
	err := o.db.QueryRowContext(ctx, q, tableName).Scan(&exists)
	if err != nil {
		return false, TableCheckError(tableName, err)
	}

	return exists, nil
}

// ColumnExists checks if a column exists on a table.
func (o *sqliteOperator) ColumnExists(
	ctx context.Context,
	tableName, columnName string,
) (bool, error) {
	if o.db == nil {
		return false, NotConnectedError()
	}

	q := `
		SELECT EXISTS (
			SELECT 1 FROM pragma_table_info(?)
			WHERE name = ?
		)
	`

	var exists bool
	err := o.db.QueryRowContext(ctx, q, tableName, columnName).
		Scan(&exists)
	if err != nil {
		return false, ColumnCheckError(tableName, columnName, err)
	}

	return exists, nil
}

// IndexExists checks if a named index exists in the store.
func (o *sqliteOperator) IndexExists(
	ctx context.Context,
	indexName string,
) (bool, error) {
	if o.db == nil {
		return false, NotConnectedError()
	}

	q := `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'index' AND name = ?
		)
	`

	var exists bool
	err := o.db.QueryRowContext(ctx, q, indexName).Scan(&exists)
	if err != nil {
		return false, IndexCheckError(indexName, err)
	}

	return exists, nil
}
