// Package lifecycle defines the public contracts of the catalog
// normalization engine: schema management, the normalization pass, indexed
// search, inspection, and the quick health gate. Implementations live in
// internal/io* packages; this package holds only interfaces and the typed
// results they exchange, so the boundary between components is statically
// checkable.
package lifecycle

import (
	"context"

	"github.com/medbase/meddb/pkg/catalog"
)

// SchemaManager ensures the store structures the engine depends on:
// the canonical-ingredient column on the catalog table, the grouping
// table, the metadata table, and the secondary indexes.
// Ensure is idempotent and safe to call on every startup; it touches no
// row data.
type SchemaManager interface {
	Ensure(ctx context.Context) error
}

// Normalizer drives the full-catalog normalization pass and the record
// ingestion boundary.
//
// Normalize is idempotent: once a pass has completed, repeated calls read
// the completion flag and return cached statistics without write work.
// Concurrent writers racing on the same pass are not coordinated beyond
// the store's own locking; the design assumes at most one writer process.
type Normalizer interface {
	// Load upserts records by institution code and returns how many
	// were stored. Loading records clears the completion flag, since
	// fresh records carry no canonical token until Normalize runs
	// again.
	Load(ctx context.Context, recs []catalog.DrugRecord) (int, error)

	// Normalize canonicalizes every record, rebuilds the grouping
	// table, and marks completion in metadata.
	Normalize(ctx context.Context) (*NormalizationResult, error)

	// Completed reports whether the completion flag is currently set.
	Completed(ctx context.Context) (bool, error)
}

// Searcher looks up canonicalized ingredient groups by substring against
// the derived index. It never scans raw description text.
type Searcher interface {
	// FindSimilar canonicalizes the term and matches it against group
	// tokens, case-insensitively. An empty canonicalized term means
	// "no search" and yields an empty result, never "match all".
	FindSimilar(ctx context.Context, term string) ([]SimilarGroup, error)
}

// Inspector produces an on-demand report of store structure,
// normalization completeness, ingredient analysis, samples, and
// remediation recommendations. Read-only; query failures degrade into
// per-section error fields rather than aborting the report.
type Inspector interface {
	Inspect(ctx context.Context) (*InspectionReport, error)
}

// HealthChecker is the lightweight readiness gate callers consult before
// relying on the index. It always returns a structured status, even on
// failure.
type HealthChecker interface {
	QuickStatus(ctx context.Context) *QuickStatus

	// SuggestNextSteps derives ordered operator advice purely from the
	// status fields, with no store access.
	SuggestNextSteps(status *QuickStatus) []string

	// ComparePerformance times a naive description scan against an
	// indexed group lookup for the same term. Diagnostic only.
	ComparePerformance(ctx context.Context, term string) *PerformanceComparison
}
