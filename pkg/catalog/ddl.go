package catalog

import (
	"github.com/google/uuid"
)

const (
	// IndexActiveIngredient accelerates ingredient-only lookups.
	IndexActiveIngredient = "idx_active_ingredient"

	// IndexIngredientSearch accelerates ingredient plus therapeutic
	// group lookups.
	IndexIngredientSearch = "idx_ingredient_search"

	// IndexCategoryStatus accelerates category/status filtering.
	IndexCategoryStatus = "idx_category_status"
)

// IndexDDL returns idempotent CREATE INDEX statements for the catalog
// table. GORM creates the ingredient_groups unique index from model tags;
// the catalog table indexes are kept as explicit DDL so they also apply to
// stores whose catalog table predates this tool.
func IndexDDL() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS ` + IndexActiveIngredient +
			` ON ` + DrugRecordsTable + ` (active_ingredient)`,
		`CREATE INDEX IF NOT EXISTS ` + IndexIngredientSearch +
			` ON ` + DrugRecordsTable + ` (active_ingredient, therapeutic_group)`,
		`CREATE INDEX IF NOT EXISTS ` + IndexCategoryStatus +
			` ON ` + DrugRecordsTable + ` (category, status)`,
	}
}

// groupNamespace seeds deterministic ids for ingredient group rows.
var groupNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("medbase.dev"))

// GroupID returns the deterministic UUIDv5 for a canonical ingredient
// token. The same token always maps to the same id, so rebuilt group rows
// keep stable identifiers across passes.
func GroupID(ingredient string) string {
	return uuid.NewSHA1(groupNamespace, []byte(ingredient)).String()
}
