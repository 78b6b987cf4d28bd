// Package iohealth implements the quick readiness probe and the
// scan-versus-index performance comparison. Unlike the full inspection,
// the probe answers from a handful of counts and never fails: results
// are always structured, with failures folded into the status.
package iohealth

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/medbase/meddb/pkg/catalog"
	"github.com/medbase/meddb/pkg/config"
	"github.com/medbase/meddb/pkg/db"
	"github.com/medbase/meddb/pkg/ingredient"
	"github.com/medbase/meddb/pkg/lifecycle"
)

// minCatalogSize is the record count below which a catalog looks like a
// partial load of the institution lists.
const minCatalogSize = 1000

// checker implements lifecycle.HealthChecker.
type checker struct {
	operator db.Operator
	cfg      *config.Config
}

// NewChecker creates a new HealthChecker. The operator may be
// unconnected; the checker connects on first use so a missing store file
// is reported as a status, not an error.
func NewChecker(op db.Operator, cfg *config.Config) lifecycle.HealthChecker {
	return &checker{operator: op, cfg: cfg}
}

// QuickStatus probes the store with a few counts.
func (c *checker) QuickStatus(ctx context.Context) *lifecycle.QuickStatus {
	st := &lifecycle.QuickStatus{Status: lifecycle.StatusError}

	if !c.operator.FileExists() {
		st.Status = lifecycle.StatusNoDatabase
		st.Message = fmt.Sprintf(
			"store file %s does not exist", c.operator.Path())
		return st
	}

	if err := c.connect(ctx); err != nil {
		st.Message = err.Error()
		return st
	}

	err := c.operator.DB().QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(CASE WHEN active_ingredient IS NOT NULL
				AND active_ingredient != '' THEN 1 END)
		FROM `+catalog.DrugRecordsTable).
		Scan(&st.TotalRecords, &st.NormalizedRecords)
	if err != nil {
		st.Message = err.Error()
		return st
	}

	if st.TotalRecords > 0 {
		p := float64(st.NormalizedRecords) /
			float64(st.TotalRecords) * 100
		st.CoveragePercent = math.Round(p*10) / 10
	}

	st.GroupTableExists, err = c.operator.TableExists(ctx,
		catalog.IngredientGroupsTable)
	if err != nil {
		st.Message = err.Error()
		return st
	}
	if st.GroupTableExists {
		err = c.operator.DB().QueryRowContext(ctx,
			`SELECT COUNT(*) FROM `+catalog.IngredientGroupsTable).
			Scan(&st.UniqueIngredients)
		if err != nil {
			st.Message = err.Error()
			return st
		}
	}

	if st.CoveragePercent > 90 {
		st.Status = lifecycle.StatusReady
	} else {
		st.Status = lifecycle.StatusNeedsOptimization
	}
	st.ReadyForUse = st.CoveragePercent > 50 && st.GroupTableExists

	return st
}

// SuggestNextSteps maps a probe result to remediation steps. The rules
// are pure and fire in a fixed order.
func (c *checker) SuggestNextSteps(st *lifecycle.QuickStatus) []string {
	switch st.Status {
	case lifecycle.StatusNoDatabase:
		return []string{
			"Run 'meddb init' to create the store",
			"Run 'meddb load' to load institution catalogs",
		}
	case lifecycle.StatusError:
		return []string{
			"Run 'meddb inspect' for a detailed report",
		}
	}

	var res []string
	if st.CoveragePercent <= 90 || !st.GroupTableExists {
		res = append(res,
			"Run 'meddb normalize' to canonicalize the catalog")
	}
	if st.TotalRecords < minCatalogSize {
		res = append(res,
			"Catalog looks incomplete: load the full institution lists")
	}
	if len(res) == 0 {
		res = append(res, "No action needed: store is ready for search")
	}
	return res
}

// ComparePerformance times a naive description scan against an indexed
// lookup over the grouping table for the same term. The indexed branch
// is only available after normalization.
func (c *checker) ComparePerformance(
	ctx context.Context,
	term string,
) *lifecycle.PerformanceComparison {
	cmp := &lifecycle.PerformanceComparison{Term: term}

	if !c.operator.FileExists() {
		cmp.Err = fmt.Sprintf(
			"store file %s does not exist", c.operator.Path())
		return cmp
	}
	if err := c.connect(ctx); err != nil {
		cmp.Err = err.Error()
		return cmp
	}

	cmp.Scan = c.timeScan(ctx, term)
	cmp.Indexed = c.timeIndexed(ctx, term)
	return cmp
}

// timeScan counts matches with a LIKE over the full catalog's free text.
func (c *checker) timeScan(
	ctx context.Context,
	term string,
) lifecycle.BranchTiming {
	var t lifecycle.BranchTiming

	start := time.Now()
	err := c.operator.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+catalog.DrugRecordsTable+
			` WHERE description LIKE ? OR generic_name LIKE ?`,
		"%"+term+"%", "%"+term+"%").Scan(&t.ResultCount)
	t.Elapsed = time.Since(start)
	t.Available = err == nil

	return t
}

// timeIndexed runs the same term through the grouping table. Its
// ResultCount is matching groups, not member records; the two branches
// measure lookup cost, not equivalent result sets.
func (c *checker) timeIndexed(
	ctx context.Context,
	term string,
) lifecycle.BranchTiming {
	var t lifecycle.BranchTiming

	exists, err := c.operator.TableExists(ctx,
		catalog.IngredientGroupsTable)
	if err != nil || !exists {
		return t
	}

	token := ingredient.CanonicalizeTerm(term)
	if token == "" {
		return t
	}

	start := time.Now()
	err = c.operator.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+catalog.IngredientGroupsTable+
			` WHERE ingredient LIKE ?`,
		"%"+token+"%").Scan(&t.ResultCount)
	t.Elapsed = time.Since(start)
	t.Available = err == nil

	return t
}

func (c *checker) connect(ctx context.Context) error {
	if c.operator.DB() != nil {
		return nil
	}
	return c.operator.Connect(ctx)
}
