package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colsweep/pkg/errors"
)

func sampleTable() *Table {
	return &Table{
		Name:     "customers",
		Schema:   "dbo",
		RowCount: 10,
		Columns: []Column{
			{Name: "id", Kind: KindNumeric, Values: []interface{}{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
			{Name: "legacy_code", Kind: KindText, Values: []interface{}{nil, nil, nil, nil, nil, nil, nil, nil, nil, "X"}},
			{Name: "discount", Kind: KindNumeric, Values: []interface{}{0, 0, 0, 0, 0, 0, 0, 0, 0.5, 0}},
			{Name: "region", Kind: KindText, Values: []interface{}{"N", "S", "N", "E", "W", "N", "S", "E", "W", "N"}},
		},
	}
}

func TestAnalyzePartitionsColumns(t *testing.T) {
	result, err := Analyze(sampleTable(), RelaxedThresholds())
	require.NoError(t, err)

	assert.Equal(t, "customers", result.TableName)
	assert.Equal(t, "dbo.customers", result.QualifiedName())
	assert.Equal(t, 10, result.TotalRows)
	assert.Equal(t, 4, result.TotalColumns)

	assert.ElementsMatch(t, []string{"id", "region"}, result.ColumnsToKeep)
	assert.ElementsMatch(t, []string{"legacy_code", "discount"}, result.ColumnsToExclude)
	assert.Equal(t, result.TotalColumns, len(result.ColumnsToKeep)+len(result.ColumnsToExclude))
	assert.InDelta(t, 50.0, result.ExclusionRate, 1e-9)
}

func TestAnalyzePreservesColumnOrder(t *testing.T) {
	result, err := Analyze(sampleTable(), RelaxedThresholds())
	require.NoError(t, err)

	names := make([]string, len(result.Columns))
	for i, c := range result.Columns {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"id", "legacy_code", "discount", "region"}, names)
}

func TestAnalyzeVerdictsCarryReasons(t *testing.T) {
	result, err := Analyze(sampleTable(), RelaxedThresholds())
	require.NoError(t, err)

	byName := make(map[string]ColumnReport)
	for _, c := range result.Columns {
		byName[c.Name] = c
	}

	legacy := byName["legacy_code"]
	assert.Equal(t, ActionExclude, legacy.Verdict.Action)
	assert.Equal(t, []string{"MANY_NULLS (90.0%)", "SINGLE_VALUE (X)"}, legacy.ReasonStrings())

	discount := byName["discount"]
	assert.Equal(t, ActionExclude, discount.Verdict.Action)
	assert.Equal(t, []string{"MANY_ZEROS (90.0%)"}, discount.ReasonStrings())

	id := byName["id"]
	assert.Equal(t, ActionKeep, id.Verdict.Action)
	assert.Nil(t, id.ReasonStrings())
	assert.Equal(t, "10 distinct (100.0%), 0.0% nulls", id.KeepSummary())
}

func TestAnalyzeEmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		table *Table
	}{
		{"nil table", nil},
		{"no columns", &Table{Name: "empty", RowCount: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Analyze(tt.table, RelaxedThresholds())
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeEmptyInput, errors.GetErrorCode(err))
		})
	}
}

func TestAnalyzeZeroRowTable(t *testing.T) {
	table := &Table{
		Name:     "fresh",
		RowCount: 0,
		Columns: []Column{
			{Name: "a", Kind: KindNumeric},
			{Name: "b", Kind: KindText},
		},
	}

	result, err := Analyze(table, RelaxedThresholds())
	require.NoError(t, err)

	// With no rows every ratio is 0 and every column is kept.
	assert.Len(t, result.ColumnsToKeep, 2)
	assert.Empty(t, result.ColumnsToExclude)
	assert.Zero(t, result.ExclusionRate)
}

func TestAnalyzeInvalidThresholds(t *testing.T) {
	_, err := Analyze(sampleTable(), ThresholdConfig{NullThresholdPercent: 150})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetErrorCode(err))
}

func TestAnalyzeAtomicOnBadColumn(t *testing.T) {
	table := &Table{
		Name:     "orders",
		Schema:   "dbo",
		RowCount: 3,
		Columns: []Column{
			{Name: "good", Kind: KindNumeric, Values: []interface{}{1, 2, 3}},
			{Name: "short_col", Kind: KindText, Values: []interface{}{"only one"}},
		},
	}

	result, err := Analyze(table, RelaxedThresholds())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "short_col")

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "short_col", appErr.Context["column"])
	assert.Equal(t, "dbo.orders", appErr.Context["table"])
}

func TestAnalyzeCopiesProvenance(t *testing.T) {
	table := sampleTable()
	table.Query = "SELECT id FROM dbo.customers WHERE region = @p1"
	table.QueryParams = []interface{}{"N"}
	table.Filters = []string{"region = N"}

	result, err := Analyze(table, RelaxedThresholds())
	require.NoError(t, err)

	assert.Equal(t, table.Query, result.Query)
	assert.Equal(t, table.QueryParams, result.QueryParams)
	assert.Equal(t, table.Filters, result.Filters)
	assert.False(t, result.AnalyzedAt.IsZero())
}

func TestSuggestedCleanupSQL(t *testing.T) {
	result, err := Analyze(sampleTable(), RelaxedThresholds())
	require.NoError(t, err)

	sql := result.SuggestedCleanupSQL()
	assert.Contains(t, sql, "ALTER TABLE dbo.customers")
	assert.Contains(t, sql, "DROP COLUMN legacy_code, discount;")
	assert.Contains(t, sql, "SELECT id, region")
	assert.Contains(t, sql, "INTO dbo.customers_cleaned")
}

func TestSuggestedCleanupSQLNothingToDrop(t *testing.T) {
	table := &Table{
		Name:     "clean",
		RowCount: 2,
		Columns: []Column{
			{Name: "a", Kind: KindText, Values: []interface{}{"x", "y"}},
		},
	}

	result, err := Analyze(table, RelaxedThresholds())
	require.NoError(t, err)
	assert.Empty(t, result.SuggestedCleanupSQL())
}
