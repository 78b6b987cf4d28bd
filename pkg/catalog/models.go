// Package catalog provides the persisted data model for the drug catalog
// store: the catalog records, the derived ingredient grouping table, and
// the key/value system metadata.
package catalog

import (
	"database/sql"
	"time"
)

const (
	// DrugRecordsTable is the catalog table name.
	DrugRecordsTable = "drug_records"

	// IngredientGroupsTable is the derived grouping table name.
	IngredientGroupsTable = "ingredient_groups"

	// SystemMetadataTable is the key/value metadata table name.
	SystemMetadataTable = "system_metadata"

	// MetaKeyNormalizationComplete is the durable completion flag.
	// While its value is "true", every record's active_ingredient is
	// consistent with the ingredient_groups table.
	MetaKeyNormalizationComplete = "normalization_complete"
)

// DrugRecord is one catalog entry, keyed by the institution-assigned code.
// Records are created by ingestion and mutated only by the normalization
// pass, which fills ActiveIngredient. The core never deletes them.
type DrugRecord struct {
	// Code is the institution-assigned catalog key.
	Code string `gorm:"column:code;primaryKey;size:50" db:"code" json:"code"`

	// Description is the free-text catalog description.
	Description string `gorm:"column:description;type:text" db:"description" json:"description"`

	// GenericName is the generic drug name when the catalog provides one.
	GenericName string `gorm:"column:generic_name;type:text" db:"generic_name" json:"generic_name,omitempty"`

	// ActiveIngredient is the canonical ingredient token, NULL until the
	// record has been through a normalization pass.
	ActiveIngredient sql.NullString `gorm:"column:active_ingredient;size:255" db:"active_ingredient" json:"-"`

	// TherapeuticGroup is the catalog's therapeutic classification.
	TherapeuticGroup string `gorm:"column:therapeutic_group;size:255" db:"therapeutic_group" json:"therapeutic_group,omitempty"`

	// Category is the institution's medication category.
	Category string `gorm:"column:category;size:100" db:"category" json:"category,omitempty"`

	// Status is the record's status flag, 'active' by default.
	Status string `gorm:"column:status;size:50;default:active" db:"status" json:"status,omitempty"`

	// Source names the institution the record came from.
	Source string `gorm:"column:source;size:50" db:"source" json:"source,omitempty"`

	UpdatedAt time.Time `gorm:"column:updated_at" db:"updated_at" json:"-"`
}

// TableName returns the SQLite table name for GORM.
func (DrugRecord) TableName() string { return DrugRecordsTable }

// IngredientGroup is one row per distinct canonical ingredient token.
// The table is derived entirely from DrugRecord and fully rebuilt on each
// normalization pass, so it always reflects current canonical values.
type IngredientGroup struct {
	// ID is a deterministic UUIDv5 generated from the canonical token.
	ID string `gorm:"column:id;primaryKey;size:36" db:"id"`

	// Ingredient is the canonical ingredient token.
	Ingredient string `gorm:"column:ingredient;uniqueIndex;size:255" db:"ingredient"`

	// Descriptions concatenates member record descriptions with ' | '.
	Descriptions string `gorm:"column:descriptions;type:text" db:"descriptions"`

	// MemberCount is the number of records sharing the token.
	MemberCount int `gorm:"column:member_count" db:"member_count"`

	// TherapeuticGroups concatenates member therapeutic groups with ', '.
	TherapeuticGroups string `gorm:"column:therapeutic_groups;type:text" db:"therapeutic_groups"`

	// ComputedAt is the timestamp of the pass that produced the row.
	ComputedAt time.Time `gorm:"column:computed_at" db:"computed_at"`
}

// TableName returns the SQLite table name for GORM.
func (IngredientGroup) TableName() string { return IngredientGroupsTable }

// SystemMetadata is a key/value/timestamp store used for durable flags,
// most importantly the normalization completion flag.
type SystemMetadata struct {
	Key       string    `gorm:"column:key;primaryKey;size:100" db:"key"`
	Value     string    `gorm:"column:value;type:text" db:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at" db:"updated_at"`
}

// TableName returns the SQLite table name for GORM.
func (SystemMetadata) TableName() string { return SystemMetadataTable }

// AllModels returns all catalog models for GORM AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&DrugRecord{},
		&IngredientGroup{},
		&SystemMetadata{},
	}
}
