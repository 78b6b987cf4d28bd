// Package ioschema implements the SchemaManager contract for the catalog
// store. This is an impure I/O package wrapping GORM AutoMigrate plus
// idempotent DDL for the catalog table's column and indexes.
package ioschema

import (
	"context"
	"log/slog"
	"strings"

	"github.com/medbase/meddb/internal/iodb"
	"github.com/medbase/meddb/pkg/catalog"
	"github.com/medbase/meddb/pkg/db"
	"github.com/medbase/meddb/pkg/lifecycle"
)

// manager implements lifecycle.SchemaManager.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Ensure makes sure all store structures exist: the catalog table with its
// canonical-ingredient column, the grouping table (unique on the canonical
// token), the metadata table, and the secondary indexes. It is idempotent
// and safe to call on every startup; it touches no row data.
func (m *manager) Ensure(ctx context.Context) error {
	gdb := m.operator.Gorm()
	if gdb == nil {
		return iodb.NotConnectedError()
	}

	if err := gdb.WithContext(ctx).
		AutoMigrate(catalog.AllModels()...); err != nil {
		return EnsureSchemaError(err)
	}

	if err := m.ensureIngredientColumn(ctx); err != nil {
		return err
	}

	if err := m.createIndexes(ctx); err != nil {
		return err
	}

	slog.Info("Store schema ensured",
		"tables", len(catalog.AllModels()),
		"indexes", len(catalog.IndexDDL()))
	return nil
}

// ensureIngredientColumn adds the canonical-ingredient column to catalog
// tables created before this tool existed. A duplicate-column failure
// means the column is already there and counts as success; anything else
// is fatal to initialization.
func (m *manager) ensureIngredientColumn(ctx context.Context) error {
	q := `ALTER TABLE ` + catalog.DrugRecordsTable +
		` ADD COLUMN active_ingredient VARCHAR(255)`

	_, err := m.operator.DB().ExecContext(ctx, q)
	if err != nil && !isDuplicateErr(err) {
		return EnsureColumnError("active_ingredient", err)
	}
	return nil
}

// createIndexes creates the secondary indexes on the catalog table.
func (m *manager) createIndexes(ctx context.Context) error {
	for _, q := range catalog.IndexDDL() {
		_, err := m.operator.DB().ExecContext(ctx, q)
		if err != nil && !isDuplicateErr(err) {
			return EnsureIndexError(q, err)
		}
	}
	return nil
}

// isDuplicateErr recognizes SQLite's duplicate-definition failures, which
// idempotent DDL treats as success.
func isDuplicateErr(err error) bool {
	s := err.Error()
	return strings.Contains(s, "duplicate column name") ||
		strings.Contains(s, "already exists")
}
