// Package iosearch implements substring search over the derived
// ingredient grouping table. One indexed query against the compact
// grouping table replaces a scan of the full catalog.
package iosearch

import (
	"context"
	"database/sql"
	"strings"

	"github.com/medbase/meddb/pkg/catalog"
	"github.com/medbase/meddb/pkg/db"
	"github.com/medbase/meddb/pkg/ingredient"
	"github.com/medbase/meddb/pkg/lifecycle"
)

// searcher implements lifecycle.Searcher.
type searcher struct {
	operator db.Operator
}

// NewSearcher creates a new Searcher.
func NewSearcher(op db.Operator) lifecycle.Searcher {
	return &searcher{operator: op}
}

// FindSimilar canonicalizes the search term and returns every ingredient
// group whose token contains it, most populous group first. Terms that
// canonicalize to nothing return no results without touching the store.
func (s *searcher) FindSimilar(
	ctx context.Context,
	term string,
) ([]lifecycle.SimilarGroup, error) {
	token := ingredient.CanonicalizeTerm(term)
	if token == "" {
		return nil, nil
	}

	rows, err := s.operator.DB().QueryContext(ctx, `
		SELECT
			g.ingredient,
			g.member_count,
			g.therapeutic_groups,
			GROUP_CONCAT(r.code, '|'),
			GROUP_CONCAT(r.description, ' | ')
		FROM `+catalog.IngredientGroupsTable+` g
		JOIN `+catalog.DrugRecordsTable+` r
			ON r.active_ingredient = g.ingredient
		WHERE g.ingredient LIKE ?
		GROUP BY g.ingredient, g.member_count, g.therapeutic_groups
		ORDER BY g.member_count DESC, g.ingredient`,
		"%"+token+"%")
	if err != nil {
		return nil, QueryError(term, err)
	}
	defer rows.Close()

	var res []lifecycle.SimilarGroup
	for rows.Next() {
		var g lifecycle.SimilarGroup
		var tgroups, codes, descs sql.NullString
		err := rows.Scan(&g.Ingredient, &g.MemberCount, &tgroups,
			&codes, &descs)
		if err != nil {
			return nil, QueryError(term, err)
		}
		g.TherapeuticGroups = splitConcat(tgroups.String, ", ")
		g.Codes = splitConcat(codes.String, "|")
		g.Descriptions = splitConcat(descs.String, " | ")
		res = append(res, g)
	}
	if err := rows.Err(); err != nil {
		return nil, QueryError(term, err)
	}

	return res, nil
}

// splitConcat splits a GROUP_CONCAT column, treating an empty column as
// no members.
func splitConcat(s, sep string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, sep)
}
