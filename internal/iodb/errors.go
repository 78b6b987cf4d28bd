package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/medbase/meddb/pkg/errcode"
)

// ConnectionError creates an error for store open/ping failures.
func ConnectionError(path string, err error) error {
	msg := `Cannot open catalog store <em>%s</em>

<em>Possible causes:</em>
  - The file is not a SQLite database
  - The file or its directory is not writable
  - Another process holds an incompatible lock

<em>How to fix:</em>
  1. Check the 'database.path' setting in meddb.yaml
  2. Verify file permissions
  3. Stop other writers touching the store`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("failed to open store %s: %w", path, err),
	}
}

// NotConnectedError creates an error for operations attempted before
// Connect.
func NotConnectedError() error {
	msg := "Store operation attempted without an open connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to store"),
	}
}

// FileMissingError creates an error for a missing store file.
func FileMissingError(path string, err error) error {
	msg := `Catalog store file <em>%s</em> does not exist

Run <em>meddb load</em> to create the store and load records.`

	return &gn.Error{
		Code: errcode.DBFileMissingError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("store file missing: %w", err),
	}
}

// TableCheckError creates an error for table existence check failures.
func TableCheckError(table string, err error) error {
	msg := "Cannot check whether table <em>%s</em> exists"

	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to check table %s: %w", table, err),
	}
}

// ColumnCheckError creates an error for column existence check failures.
func ColumnCheckError(table, column string, err error) error {
	msg := "Cannot check whether column <em>%s.%s</em> exists"

	return &gn.Error{
		Code: errcode.DBColumnCheckError,
		Msg:  msg,
		Vars: []any{table, column},
		Err: fmt.Errorf("failed to check column %s.%s: %w",
			table, column, err),
	}
}

// IndexCheckError creates an error for index existence check failures.
func IndexCheckError(index string, err error) error {
	msg := "Cannot check whether index <em>%s</em> exists"

	return &gn.Error{
		Code: errcode.DBIndexCheckError,
		Msg:  msg,
		Vars: []any{index},
		Err:  fmt.Errorf("failed to check index %s: %w", index, err),
	}
}
