// Package iotesting provides shared fixtures for tests that need a real
// catalog store: temp-file operators, schema setup, and seed records.
package iotesting

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/medbase/meddb/internal/iodb"
	"github.com/medbase/meddb/internal/ioschema"
	"github.com/medbase/meddb/pkg/catalog"
	"github.com/medbase/meddb/pkg/config"
	"github.com/medbase/meddb/pkg/db"
)

// GetTestConfig returns a config pointing at a temp store file.
func GetTestConfig(t testing.TB) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabasePath(filepath.Join(t.TempDir(), "catalog.db")),
		config.OptDatabaseBatchSize(2),
	})
	return cfg
}

// NewOperator returns a connected operator on a fresh temp store file.
// The connection is closed during test cleanup.
func NewOperator(t testing.TB) db.Operator {
	t.Helper()
	op := iodb.NewOperator(filepath.Join(t.TempDir(), "catalog.db"))
	if err := op.Connect(context.Background()); err != nil {
		t.Fatalf("cannot connect to test store: %v", err)
	}
	t.Cleanup(func() { _ = op.Close() })
	return op
}

// EnsureSchema runs the schema manager against the test store.
func EnsureSchema(t testing.TB, op db.Operator) {
	t.Helper()
	if err := ioschema.NewManager(op).Ensure(context.Background()); err != nil {
		t.Fatalf("cannot ensure test schema: %v", err)
	}
}

// SampleRecords returns a small catalog with duplicate ingredients under
// differing free-text descriptions.
func SampleRecords() []catalog.DrugRecord {
	return []catalog.DrugRecord{
		{
			Code:             "010.000.0101.00",
			Description:      "TABLETA. Cada tableta contiene 500 mg",
			GenericName:      "Paracetamol 500 mg Tableta",
			TherapeuticGroup: "Analgesia",
			Category:         "I",
			Status:           "active",
			Source:           "IMSS",
		},
		{
			Code:             "010.000.0102.00",
			Description:      "Envase con 20 tabletas",
			GenericName:      "paracetamol 500mg tableta",
			TherapeuticGroup: "Analgesia",
			Category:         "I",
			Status:           "active",
			Source:           "IMSS",
		},
		{
			Code:             "010.000.0204.00",
			Description:      "Envase con 10 cápsulas",
			GenericName:      "Ibuprofeno 400 mg Cápsula",
			TherapeuticGroup: "Analgesia",
			Category:         "I",
			Status:           "active",
			Source:           "IMSS",
		},
		{
			Code:             "010.000.5165.00",
			Description:      "Clorhidrato de Metformina 850 mg Tableta",
			TherapeuticGroup: "Endocrinología",
			Category:         "II",
			Status:           "active",
			Source:           "IMSS",
		},
	}
}

// SeedRecords inserts raw records directly, leaving active_ingredient
// NULL as ingestion would.
func SeedRecords(t testing.TB, op db.Operator, recs []catalog.DrugRecord) {
	t.Helper()
	ctx := context.Background()

	q := `
		INSERT INTO ` + catalog.DrugRecordsTable + `
			(code, description, generic_name, therapeutic_group,
			 category, status, source, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, r := range recs {
		_, err := op.DB().ExecContext(ctx, q,
			r.Code, r.Description, r.GenericName, r.TherapeuticGroup,
			r.Category, r.Status, r.Source, time.Now())
		if err != nil {
			t.Fatalf("cannot seed record %s: %v", r.Code, err)
		}
	}
}
