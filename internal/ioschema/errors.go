package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/medbase/meddb/pkg/errcode"
)

// EnsureSchemaError creates an error for AutoMigrate failures.
func EnsureSchemaError(err error) error {
	msg := `Cannot ensure the catalog store schema

<em>Possible causes:</em>
  - The store file is corrupted
  - An existing table conflicts with the expected layout

<em>How to fix:</em>
  1. Inspect the store with <em>meddb inspect</em>
  2. Check the store file is a SQLite database`

	return &gn.Error{
		Code: errcode.SchemaEnsureError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to ensure schema: %w", err),
	}
}

// EnsureColumnError creates an error for non-duplicate column DDL
// failures.
func EnsureColumnError(column string, err error) error {
	msg := "Cannot add column <em>%s</em> to the catalog table"

	return &gn.Error{
		Code: errcode.SchemaColumnError,
		Msg:  msg,
		Vars: []any{column},
		Err:  fmt.Errorf("failed to add column %s: %w", column, err),
	}
}

// EnsureIndexError creates an error for index DDL failures.
func EnsureIndexError(stmt string, err error) error {
	msg := "Cannot create a search index on the catalog table"

	return &gn.Error{
		Code: errcode.SchemaIndexError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed DDL %q: %w", stmt, err),
	}
}
