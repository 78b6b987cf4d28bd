package iosearch_test

import (
	"context"
	"testing"

	"github.com/medbase/meddb/internal/ionormalize"
	"github.com/medbase/meddb/internal/iosearch"
	"github.com/medbase/meddb/internal/iotesting"
	"github.com/medbase/meddb/pkg/db"
	"github.com/medbase/meddb/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupNormalized(t *testing.T) db.Operator {
	t.Helper()
	op := iotesting.NewOperator(t)
	iotesting.EnsureSchema(t, op)
	iotesting.SeedRecords(t, op, iotesting.SampleRecords())
	n := ionormalize.NewNormalizer(op, iotesting.GetTestConfig(t))
	_, err := n.Normalize(context.Background())
	require.NoError(t, err)
	return op
}

func TestFindSimilar(t *testing.T) {
	op := setupNormalized(t)
	s := iosearch.NewSearcher(op)

	res, err := s.FindSimilar(context.Background(), "paracetamol")
	require.NoError(t, err)
	require.Len(t, res, 1)

	g := res[0]
	assert.Equal(t, "PARACETAMOL", g.Ingredient)
	assert.Equal(t, 2, g.MemberCount)
	assert.ElementsMatch(t,
		[]string{"010.000.0101.00", "010.000.0102.00"}, g.Codes)
	assert.Len(t, g.Descriptions, 2)
}

func TestFindSimilarCanonicalizesTerm(t *testing.T) {
	op := setupNormalized(t)
	s := iosearch.NewSearcher(op)

	tests := []struct {
		msg, term, ingredient string
	}{
		{"dosage noise stripped", "Paracetamol 500 mg Tableta", "PARACETAMOL"},
		{"prefix substring", "parace", "PARACETAMOL"},
		{"accents folded", "ibuprofenó", "IBUPROFENO"},
		{"salt prefix stripped", "clorhidrato de metformina", "METFORMINA"},
	}

	for _, v := range tests {
		res, err := s.FindSimilar(context.Background(), v.term)
		require.NoError(t, err, v.msg)
		require.Len(t, res, 1, v.msg)
		assert.Equal(t, v.ingredient, res[0].Ingredient, v.msg)
	}
}

func TestFindSimilarOrdering(t *testing.T) {
	op := setupNormalized(t)
	s := iosearch.NewSearcher(op)

	// "a" matches both PARACETAMOL (2 members) and METFORMINA (1).
	res, err := s.FindSimilar(context.Background(), "a")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "PARACETAMOL", res[0].Ingredient)
	assert.Equal(t, "METFORMINA", res[1].Ingredient)
}

func TestFindSimilarEmptyTerm(t *testing.T) {
	op := setupNormalized(t)
	s := iosearch.NewSearcher(op)

	for _, term := range []string{"", "   ", "500 mg", "tableta"} {
		res, err := s.FindSimilar(context.Background(), term)
		require.NoError(t, err, term)
		assert.Nil(t, res, term)
	}
}

func TestFindSimilarNoMatch(t *testing.T) {
	op := setupNormalized(t)
	s := iosearch.NewSearcher(op)

	res, err := s.FindSimilar(context.Background(), "aspirina")
	require.NoError(t, err)
	assert.Empty(t, res)
}

var _ lifecycle.Searcher = iosearch.NewSearcher(nil)
