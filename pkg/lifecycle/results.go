package lifecycle

import (
	"time"
)

// NormalizationState tags the outcome of a Normalize call.
type NormalizationState string

const (
	// StateCompleted marks a first successful full pass.
	StateCompleted NormalizationState = "completed"

	// StateAlreadyComplete marks a short-circuited call that returned
	// cached statistics because the completion flag was already set.
	StateAlreadyComplete NormalizationState = "already_complete"
)

// NormalizationResult reports a normalization pass.
type NormalizationResult struct {
	// UpdatedCount is the number of records carrying a canonical
	// ingredient after the pass.
	UpdatedCount int `json:"updated_count"`

	// GroupCount is the number of distinct ingredient groups.
	GroupCount int `json:"group_count"`

	State NormalizationState `json:"state"`
}

// SimilarGroup is one ingredient group matched by FindSimilar, with its
// member records materialized.
type SimilarGroup struct {
	Ingredient        string   `json:"ingredient"`
	MemberCount       int      `json:"member_count"`
	TherapeuticGroups []string `json:"therapeutic_groups"`
	Codes             []string `json:"codes"`
	Descriptions      []string `json:"descriptions"`
}

// ColumnInfo describes one column of a store table.
type ColumnInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	NotNull    bool   `json:"not_null"`
	Default    string `json:"default,omitempty"`
	PrimaryKey bool   `json:"primary_key"`
}

// TableInfo describes one store table.
type TableInfo struct {
	Columns  []ColumnInfo `json:"columns"`
	RowCount int          `json:"row_count"`
}

// StructureReport summarizes the store's physical layout.
type StructureReport struct {
	Tables  map[string]TableInfo `json:"tables"`
	Indexes []string             `json:"indexes"`
	Err     string               `json:"error,omitempty"`
}

// NormalizationStatus reports how far normalization has progressed.
type NormalizationStatus struct {
	TablesExist         bool   `json:"tables_exist"`
	Completed           bool   `json:"completed"`
	CompletedAt         string `json:"completed_at,omitempty"`
	NormalizedRecords   int    `json:"normalized_records"`
	UnnormalizedRecords int    `json:"unnormalized_records"`
	UniqueIngredients   int    `json:"unique_ingredients"`
	IndexesExist        bool   `json:"indexes_exist"`
	Err                 string `json:"error,omitempty"`
}

// IngredientCount is one canonical ingredient with its member count.
type IngredientCount struct {
	Ingredient        string   `json:"ingredient"`
	MemberCount       int      `json:"member_count"`
	TherapeuticGroups []string `json:"therapeutic_groups,omitempty"`
}

// IngredientAnalysis summarizes the canonical tokens in the store.
type IngredientAnalysis struct {
	TopIngredients    []IngredientCount `json:"top_ingredients"`
	MultiMember       []IngredientCount `json:"multi_member"`
	UniqueIngredients int               `json:"unique_ingredients"`
	TotalRecords      int               `json:"total_records"`
	NormalizedRecords int               `json:"normalized_records"`

	// CoveragePercent is (total-unnormalized)/total*100 rounded to two
	// decimals, and 0 for an empty catalog.
	CoveragePercent float64 `json:"coverage_percent"`

	Err string `json:"error,omitempty"`
}

// SampleRecord shows one normalized record together with an explanation
// of the transform that produced its token.
type SampleRecord struct {
	Code             string `json:"code"`
	Description      string `json:"description"`
	GenericName      string `json:"generic_name,omitempty"`
	TherapeuticGroup string `json:"therapeutic_group,omitempty"`

	// Original is the text canonicalization started from: the generic
	// name when present, else the description.
	Original string `json:"original"`

	Normalized string `json:"normalized"`

	// TransformApplied is true when the original differs from the
	// token beyond case folding.
	TransformApplied bool `json:"transform_applied"`
}

// InspectionReport is the full, ephemeral inspection result. It is
// computed on demand and never persisted.
type InspectionReport struct {
	Timestamp     time.Time           `json:"timestamp"`
	DatabaseFile  string              `json:"database_file"`
	FileSizeBytes int64               `json:"file_size_bytes"`
	Structure     StructureReport     `json:"structure"`
	Normalization NormalizationStatus `json:"normalization_status"`
	Ingredients   IngredientAnalysis  `json:"ingredient_analysis"`
	Samples       []SampleRecord      `json:"samples"`

	// Recommendations lists remediation steps in a fixed rule order;
	// several rules may fire at once.
	Recommendations []string `json:"recommendations"`
}

// Status classifies the store for the quick health gate.
type Status string

const (
	StatusNoDatabase        Status = "no_database"
	StatusError             Status = "error"
	StatusReady             Status = "ready"
	StatusNeedsOptimization Status = "needs_optimization"
)

// QuickStatus is the readiness probe result. It is always structured,
// even when the underlying queries fail.
type QuickStatus struct {
	Status            Status  `json:"status"`
	Message           string  `json:"message,omitempty"`
	TotalRecords      int     `json:"total_records"`
	NormalizedRecords int     `json:"normalized_records"`
	CoveragePercent   float64 `json:"coverage_percent"`
	UniqueIngredients int     `json:"unique_ingredients"`
	GroupTableExists  bool    `json:"group_table_exists"`

	// ReadyForUse is true when coverage exceeds 50% and the group
	// table exists.
	ReadyForUse bool `json:"ready_for_use"`
}

// BranchTiming times one branch of the performance comparison.
type BranchTiming struct {
	Elapsed     time.Duration `json:"elapsed_ns"`
	ResultCount int           `json:"result_count"`
	Available   bool          `json:"available"`
}

// PerformanceComparison reports a naive description scan against an
// indexed canonical-group lookup for the same term.
type PerformanceComparison struct {
	Term    string       `json:"term"`
	Scan    BranchTiming `json:"scan"`
	Indexed BranchTiming `json:"indexed"`
	Err     string       `json:"error,omitempty"`
}
