package catalog_test

import (
	"encoding/json"
	"testing"

	"github.com/medbase/meddb/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupID(t *testing.T) {
	t.Run("is deterministic", func(t *testing.T) {
		id1 := catalog.GroupID("PARACETAMOL")
		id2 := catalog.GroupID("PARACETAMOL")
		assert.Equal(t, id1, id2)
	})

	t.Run("differs per token", func(t *testing.T) {
		assert.NotEqual(t,
			catalog.GroupID("PARACETAMOL"),
			catalog.GroupID("IBUPROFENO"),
		)
	})
}

// TestDrugRecordJSON pins the ingestion file format: snake_case keys,
// with the derived canonical token never read from input.
func TestDrugRecordJSON(t *testing.T) {
	data := []byte(`{
		"code": "010.000.0101.00",
		"description": "TABLETA. Cada tableta contiene 500 mg",
		"generic_name": "Paracetamol 500 mg Tableta",
		"therapeutic_group": "Analgesia",
		"category": "I",
		"source": "IMSS",
		"active_ingredient": "IGNORED"
	}`)

	var rec catalog.DrugRecord
	require.NoError(t, json.Unmarshal(data, &rec))

	assert.Equal(t, "010.000.0101.00", rec.Code)
	assert.Equal(t, "Paracetamol 500 mg Tableta", rec.GenericName)
	assert.Equal(t, "Analgesia", rec.TherapeuticGroup)
	assert.Equal(t, "IMSS", rec.Source)
	assert.False(t, rec.ActiveIngredient.Valid)
}

func TestIndexDDL(t *testing.T) {
	ddl := catalog.IndexDDL()
	assert.Len(t, ddl, 3)
	for _, stmt := range ddl {
		assert.Contains(t, stmt, "CREATE INDEX IF NOT EXISTS")
		assert.Contains(t, stmt, catalog.DrugRecordsTable)
	}
}
