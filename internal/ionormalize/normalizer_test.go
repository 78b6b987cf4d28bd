package ionormalize_test

import (
	"context"
	"testing"
	"time"

	"github.com/medbase/meddb/internal/ionormalize"
	"github.com/medbase/meddb/internal/iotesting"
	"github.com/medbase/meddb/pkg/catalog"
	"github.com/medbase/meddb/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ lifecycle.Normalizer = ionormalize.NewNormalizer(nil, nil)

func TestLoad(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewOperator(t)
	iotesting.EnsureSchema(t, op)
	n := ionormalize.NewNormalizer(op, iotesting.GetTestConfig(t))

	count, err := n.Load(ctx, iotesting.SampleRecords())
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	// Loading the same codes again upserts rather than duplicating.
	recs := iotesting.SampleRecords()
	recs[0].Description = "Envase con 10 tabletas"
	count, err = n.Load(ctx, recs)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	var total int
	err = op.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+catalog.DrugRecordsTable).Scan(&total)
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	var desc string
	err = op.DB().QueryRowContext(ctx,
		`SELECT description FROM `+catalog.DrugRecordsTable+
			` WHERE code = ?`, "010.000.0101.00").Scan(&desc)
	require.NoError(t, err)
	assert.Equal(t, "Envase con 10 tabletas", desc)
}

func TestLoadSkipsEmptyCodes(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewOperator(t)
	iotesting.EnsureSchema(t, op)
	n := ionormalize.NewNormalizer(op, iotesting.GetTestConfig(t))

	recs := []catalog.DrugRecord{
		{Code: "", Description: "sin clave"},
		{Code: "010.000.0101.00", GenericName: "Paracetamol"},
	}
	count, err := n.Load(ctx, recs)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCompletedUnset(t *testing.T) {
	op := iotesting.NewOperator(t)
	iotesting.EnsureSchema(t, op)
	n := ionormalize.NewNormalizer(op, iotesting.GetTestConfig(t))

	done, err := n.Completed(context.Background())
	require.NoError(t, err)
	assert.False(t, done)
}

func TestNormalize(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewOperator(t)
	iotesting.EnsureSchema(t, op)
	iotesting.SeedRecords(t, op, iotesting.SampleRecords())
	n := ionormalize.NewNormalizer(op, iotesting.GetTestConfig(t))

	res, err := n.Normalize(ctx)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateCompleted, res.State)
	assert.Equal(t, 4, res.UpdatedCount)
	assert.Equal(t, 3, res.GroupCount)

	done, err := n.Completed(ctx)
	require.NoError(t, err)
	assert.True(t, done)

	tests := []struct {
		msg, ingredient string
		members         int
	}{
		{"duplicate generic names collapse", "PARACETAMOL", 2},
		{"accented form stripped", "IBUPROFENO", 1},
		{"salt removed from description", "METFORMINA", 1},
	}

	for _, v := range tests {
		var id string
		var members int
		err := op.DB().QueryRowContext(ctx,
			`SELECT id, member_count FROM `+
				catalog.IngredientGroupsTable+
				` WHERE ingredient = ?`, v.ingredient).
			Scan(&id, &members)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.members, members, v.msg)
		assert.Equal(t, catalog.GroupID(v.ingredient), id, v.msg)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewOperator(t)
	iotesting.EnsureSchema(t, op)
	iotesting.SeedRecords(t, op, iotesting.SampleRecords())
	n := ionormalize.NewNormalizer(op, iotesting.GetTestConfig(t))

	first, err := n.Normalize(ctx)
	require.NoError(t, err)
	require.Equal(t, lifecycle.StateCompleted, first.State)

	var before time.Time
	err = op.DB().QueryRowContext(ctx,
		`SELECT computed_at FROM `+catalog.IngredientGroupsTable+
			` WHERE ingredient = ?`, "PARACETAMOL").Scan(&before)
	require.NoError(t, err)

	second, err := n.Normalize(ctx)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateAlreadyComplete, second.State)
	assert.Equal(t, first.UpdatedCount, second.UpdatedCount)
	assert.Equal(t, first.GroupCount, second.GroupCount)

	// The short-circuit path performs no writes.
	var after time.Time
	err = op.DB().QueryRowContext(ctx,
		`SELECT computed_at FROM `+catalog.IngredientGroupsTable+
			` WHERE ingredient = ?`, "PARACETAMOL").Scan(&after)
	require.NoError(t, err)
	assert.True(t, before.Equal(after))
}

func TestLoadClearsCompletionFlag(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewOperator(t)
	iotesting.EnsureSchema(t, op)
	iotesting.SeedRecords(t, op, iotesting.SampleRecords())
	n := ionormalize.NewNormalizer(op, iotesting.GetTestConfig(t))

	_, err := n.Normalize(ctx)
	require.NoError(t, err)

	_, err = n.Load(ctx, []catalog.DrugRecord{
		{Code: "010.000.0301.00", GenericName: "Omeprazol 20 mg Capsula"},
	})
	require.NoError(t, err)

	done, err := n.Completed(ctx)
	require.NoError(t, err)
	assert.False(t, done, "loading new records invalidates completion")

	res, err := n.Normalize(ctx)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateCompleted, res.State)
	assert.Equal(t, 5, res.UpdatedCount)
	assert.Equal(t, 4, res.GroupCount)
}

func TestNormalizeGroupConsistency(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewOperator(t)
	iotesting.EnsureSchema(t, op)
	iotesting.SeedRecords(t, op, iotesting.SampleRecords())
	n := ionormalize.NewNormalizer(op, iotesting.GetTestConfig(t))

	_, err := n.Normalize(ctx)
	require.NoError(t, err)

	rows, err := op.DB().QueryContext(ctx,
		`SELECT ingredient, member_count FROM `+
			catalog.IngredientGroupsTable)
	require.NoError(t, err)
	defer rows.Close()

	for rows.Next() {
		var ingredient string
		var members int
		require.NoError(t, rows.Scan(&ingredient, &members))

		var records int
		err := op.DB().QueryRowContext(ctx,
			`SELECT COUNT(*) FROM `+catalog.DrugRecordsTable+
				` WHERE active_ingredient = ?`, ingredient).
			Scan(&records)
		require.NoError(t, err)
		assert.Equal(t, records, members, ingredient)
	}
	require.NoError(t, rows.Err())
}

func TestNormalizeEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewOperator(t)
	iotesting.EnsureSchema(t, op)
	n := ionormalize.NewNormalizer(op, iotesting.GetTestConfig(t))

	res, err := n.Normalize(ctx)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateCompleted, res.State)
	assert.Equal(t, 0, res.UpdatedCount)
	assert.Equal(t, 0, res.GroupCount)
}
