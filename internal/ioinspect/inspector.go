// Package ioinspect implements the on-demand inspection report: store
// structure, normalization progress, ingredient analysis, and sample
// records, with remediation recommendations. The report is ephemeral;
// nothing here writes to the store.
package ioinspect

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/medbase/meddb/pkg/catalog"
	"github.com/medbase/meddb/pkg/config"
	"github.com/medbase/meddb/pkg/db"
	"github.com/medbase/meddb/pkg/lifecycle"
	"golang.org/x/sync/errgroup"
)

// inspector implements lifecycle.Inspector.
type inspector struct {
	operator db.Operator
	cfg      *config.Config
}

// NewInspector creates a new Inspector.
func NewInspector(op db.Operator, cfg *config.Config) lifecycle.Inspector {
	return &inspector{operator: op, cfg: cfg}
}

// Inspect assembles the full report. The four sections run concurrently
// and are read-only; a failing section records its error in the report
// instead of aborting the others.
func (insp *inspector) Inspect(
	ctx context.Context,
) (*lifecycle.InspectionReport, error) {
	rep := &lifecycle.InspectionReport{
		Timestamp:    time.Now(),
		DatabaseFile: insp.operator.Path(),
	}
	if size, err := insp.operator.FileSize(); err == nil {
		rep.FileSizeBytes = size
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rep.Structure = insp.structure(ctx)
		return nil
	})
	g.Go(func() error {
		rep.Normalization = insp.normalizationStatus(ctx)
		return nil
	})
	g.Go(func() error {
		rep.Ingredients = insp.ingredientAnalysis(ctx)
		return nil
	})
	g.Go(func() error {
		rep.Samples = insp.samples(ctx)
		return nil
	})
	_ = g.Wait()

	rep.Recommendations = recommendations(rep)
	return rep, nil
}

// structure reports tables, columns, row counts and named indexes.
func (insp *inspector) structure(
	ctx context.Context,
) lifecycle.StructureReport {
	rep := lifecycle.StructureReport{
		Tables: make(map[string]lifecycle.TableInfo),
	}

	tables, err := insp.tableNames(ctx)
	if err != nil {
		rep.Err = err.Error()
		return rep
	}

	for _, table := range tables {
		info, err := insp.tableInfo(ctx, table)
		if err != nil {
			rep.Err = err.Error()
			return rep
		}
		rep.Tables[table] = info
	}

	rows, err := insp.operator.DB().QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'index' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
	if err != nil {
		rep.Err = err.Error()
		return rep
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rep.Err = err.Error()
			return rep
		}
		rep.Indexes = append(rep.Indexes, name)
	}
	if err := rows.Err(); err != nil {
		rep.Err = err.Error()
	}

	return rep
}

// tableNames enumerates user tables from sqlite_master, so stores that
// carry tables beyond the catalog schema still show up in the report.
func (insp *inspector) tableNames(ctx context.Context) ([]string, error) {
	rows, err := insp.operator.DB().QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		res = append(res, name)
	}
	return res, rows.Err()
}

func (insp *inspector) tableInfo(
	ctx context.Context,
	table string,
) (lifecycle.TableInfo, error) {
	var info lifecycle.TableInfo

	rows, err := insp.operator.DB().QueryContext(ctx,
		`SELECT name, type, "notnull", COALESCE(dflt_value, ''), pk
		FROM pragma_table_info(?)`, table)
	if err != nil {
		return info, err
	}
	defer rows.Close()

	for rows.Next() {
		var col lifecycle.ColumnInfo
		var notNull, pk int
		err := rows.Scan(&col.Name, &col.Type, &notNull,
			&col.Default, &pk)
		if err != nil {
			return info, err
		}
		col.NotNull = notNull != 0
		col.PrimaryKey = pk != 0
		info.Columns = append(info.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return info, err
	}

	err = insp.operator.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+table).Scan(&info.RowCount)
	return info, err
}

// normalizationStatus reports durable progress markers.
func (insp *inspector) normalizationStatus(
	ctx context.Context,
) lifecycle.NormalizationStatus {
	var st lifecycle.NormalizationStatus

	for _, table := range []string{
		catalog.DrugRecordsTable, catalog.IngredientGroupsTable,
	} {
		exists, err := insp.operator.TableExists(ctx, table)
		if err != nil {
			st.Err = err.Error()
			return st
		}
		if !exists {
			return st
		}
	}
	st.TablesExist = true

	var value string
	var updatedAt time.Time
	err := insp.operator.DB().QueryRowContext(ctx,
		`SELECT value, updated_at FROM `+catalog.SystemMetadataTable+
			` WHERE key = ?`, catalog.MetaKeyNormalizationComplete).
		Scan(&value, &updatedAt)
	switch {
	case err == nil:
		st.Completed = value == "true"
		if st.Completed {
			st.CompletedAt = updatedAt.Format(time.RFC3339)
		}
	case err != sql.ErrNoRows:
		st.Err = err.Error()
		return st
	}

	err = insp.operator.DB().QueryRowContext(ctx, `
		SELECT
			COUNT(CASE WHEN active_ingredient IS NOT NULL
				AND active_ingredient != '' THEN 1 END),
			COUNT(CASE WHEN active_ingredient IS NULL
				OR active_ingredient = '' THEN 1 END)
		FROM `+catalog.DrugRecordsTable).
		Scan(&st.NormalizedRecords, &st.UnnormalizedRecords)
	if err != nil {
		st.Err = err.Error()
		return st
	}

	err = insp.operator.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+catalog.IngredientGroupsTable).
		Scan(&st.UniqueIngredients)
	if err != nil {
		st.Err = err.Error()
		return st
	}

	st.IndexesExist = true
	for _, index := range []string{
		catalog.IndexActiveIngredient,
		catalog.IndexIngredientSearch,
		catalog.IndexCategoryStatus,
	} {
		exists, err := insp.operator.IndexExists(ctx, index)
		if err != nil {
			st.Err = err.Error()
			return st
		}
		if !exists {
			st.IndexesExist = false
		}
	}

	return st
}

// ingredientAnalysis summarizes canonical tokens and coverage.
func (insp *inspector) ingredientAnalysis(
	ctx context.Context,
) lifecycle.IngredientAnalysis {
	var an lifecycle.IngredientAnalysis

	err := insp.operator.DB().QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(CASE WHEN active_ingredient IS NOT NULL
				AND active_ingredient != '' THEN 1 END)
		FROM `+catalog.DrugRecordsTable).
		Scan(&an.TotalRecords, &an.NormalizedRecords)
	if err != nil {
		an.Err = err.Error()
		return an
	}

	if an.TotalRecords > 0 {
		p := float64(an.NormalizedRecords) /
			float64(an.TotalRecords) * 100
		an.CoveragePercent = math.Round(p*100) / 100
	}

	err = insp.operator.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+catalog.IngredientGroupsTable).
		Scan(&an.UniqueIngredients)
	if err != nil {
		an.Err = err.Error()
		return an
	}

	an.TopIngredients, err = insp.groupCounts(ctx, 0,
		insp.cfg.Search.TopIngredients)
	if err != nil {
		an.Err = err.Error()
		return an
	}

	an.MultiMember, err = insp.groupCounts(ctx, 2, 20)
	if err != nil {
		an.Err = err.Error()
	}

	return an
}

// groupCounts lists groups ordered by member count, optionally keeping
// only groups with at least minMembers members and at most limit rows.
func (insp *inspector) groupCounts(
	ctx context.Context,
	minMembers, limit int,
) ([]lifecycle.IngredientCount, error) {
	q := `
		SELECT ingredient, member_count, therapeutic_groups
		FROM ` + catalog.IngredientGroupsTable + `
		WHERE member_count >= ?
		ORDER BY member_count DESC, ingredient`
	args := []any{minMembers}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := insp.operator.DB().QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []lifecycle.IngredientCount
	for rows.Next() {
		var c lifecycle.IngredientCount
		var tgroups sql.NullString
		if err := rows.Scan(&c.Ingredient, &c.MemberCount,
			&tgroups); err != nil {
			return nil, err
		}
		if tgroups.String != "" {
			c.TherapeuticGroups = strings.Split(tgroups.String, ", ")
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// samples shows normalized records with the transform made visible.
func (insp *inspector) samples(
	ctx context.Context,
) []lifecycle.SampleRecord {
	rows, err := insp.operator.DB().QueryContext(ctx, `
		SELECT code, description, COALESCE(generic_name, ''),
			COALESCE(therapeutic_group, ''), active_ingredient
		FROM `+catalog.DrugRecordsTable+`
		WHERE active_ingredient IS NOT NULL AND active_ingredient != ''
		ORDER BY code
		LIMIT ?`, insp.cfg.Search.SampleSize)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var res []lifecycle.SampleRecord
	for rows.Next() {
		var s lifecycle.SampleRecord
		err := rows.Scan(&s.Code, &s.Description, &s.GenericName,
			&s.TherapeuticGroup, &s.Normalized)
		if err != nil {
			return res
		}
		s.Original = s.GenericName
		if s.Original == "" {
			s.Original = s.Description
		}
		s.TransformApplied = !strings.EqualFold(s.Original, s.Normalized)
		res = append(res, s)
	}
	return res
}

// recommendations derives remediation steps from the computed sections.
// Rules fire independently, in a fixed order; several can apply at once.
func recommendations(rep *lifecycle.InspectionReport) []string {
	var res []string

	if !rep.Normalization.TablesExist {
		res = append(res,
			"Run 'meddb init' to create the store schema")
	}
	if !rep.Normalization.Completed {
		res = append(res,
			"Run 'meddb normalize' to canonicalize the catalog")
	}
	if n := rep.Normalization.UnnormalizedRecords; n > 0 {
		res = append(res, fmt.Sprintf(
			"Run 'meddb normalize' to canonicalize the remaining %d records", n))
	}
	if !rep.Normalization.IndexesExist {
		res = append(res,
			"Run 'meddb init' to create the search indexes")
	}
	if rep.Normalization.UniqueIngredients == 0 {
		res = append(res,
			"Run 'meddb normalize' to generate the ingredient grouping table")
	}

	return res
}
