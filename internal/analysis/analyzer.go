package analysis

import (
	"time"

	"colsweep/pkg/errors"
)

// ColumnReport pairs one column's metrics with its verdict.
type ColumnReport struct {
	Name    string
	Kind    Kind
	Metrics ColumnMetrics
	Verdict Verdict
}

// Result aggregates the analysis of every column of one table. It is
// the sole input contract for report renderers and is read-only after
// Analyze returns it.
type Result struct {
	TableName  string
	Schema     string
	AnalyzedAt time.Time
	TotalRows  int

	// Columns preserves the source column order.
	Columns []ColumnReport

	ColumnsToKeep    []string
	ColumnsToExclude []string
	TotalColumns     int
	ExclusionRate    float64

	Thresholds ThresholdConfig

	// Provenance copied from the analyzed table.
	Query       string
	QueryParams []interface{}
	Filters     []string
}

// Analyze profiles every column of the table in source order, applies
// the exclusion policy, and aggregates the verdicts. The call is
// atomic: a failure profiling any column aborts the whole run with
// that column identified, and no partial result is returned.
func Analyze(table *Table, thresholds ThresholdConfig) (*Result, error) {
	if table == nil || len(table.Columns) == 0 {
		return nil, errors.EmptyInputError("table has no columns to analyze")
	}
	if err := thresholds.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid threshold configuration")
	}

	result := &Result{
		TableName:    table.Name,
		Schema:       table.Schema,
		AnalyzedAt:   time.Now(),
		TotalRows:    table.RowCount,
		TotalColumns: len(table.Columns),
		Thresholds:   thresholds,
		Query:        table.Query,
		QueryParams:  table.QueryParams,
		Filters:      table.Filters,
	}

	for _, col := range table.Columns {
		metrics, err := ProfileColumn(col, table.RowCount)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to profile column").
				WithContext("column", col.Name).
				WithContext("table", table.QualifiedName())
		}

		verdict := Decide(metrics, thresholds)
		result.Columns = append(result.Columns, ColumnReport{
			Name:    col.Name,
			Kind:    col.Kind,
			Metrics: metrics,
			Verdict: verdict,
		})

		if verdict.Action == ActionExclude {
			result.ColumnsToExclude = append(result.ColumnsToExclude, col.Name)
		} else {
			result.ColumnsToKeep = append(result.ColumnsToKeep, col.Name)
		}
	}

	result.ExclusionRate = float64(len(result.ColumnsToExclude)) / float64(result.TotalColumns) * 100

	return result, nil
}
