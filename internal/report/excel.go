package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"colsweep/internal/analysis"
	"colsweep/pkg/errors"
)

// writeExcel writes the analysis as a two-sheet workbook: a summary
// sheet and a per-column detail sheet with KEEP/EXCLUDE highlighting.
func (r *Reporter) writeExcel(path string) error {
	res := r.result
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	const columnsSheet = "Columns"

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(columnsSheet); err != nil {
		return errors.Wrap(err, errors.ErrCodeFileOperation, "failed to create worksheet")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeFileOperation, "failed to create style")
	}
	excludeStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#CC0000"},
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeFileOperation, "failed to create style")
	}
	keepStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#008000"},
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeFileOperation, "failed to create style")
	}

	// Summary sheet.
	summary := [][]interface{}{
		{"Table", res.QualifiedName()},
		{"Analyzed", res.AnalyzedAt.Format("2006-01-02 15:04:05")},
		{"Rows Sampled", res.TotalRows},
		{"Total Columns", res.TotalColumns},
		{"Columns to Keep", len(res.ColumnsToKeep)},
		{"Columns to Exclude", len(res.ColumnsToExclude)},
		{"Exclusion Rate", fmt.Sprintf("%.1f%%", res.ExclusionRate)},
		{"Query", res.Query},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return errors.Wrap(err, errors.ErrCodeFileOperation, "failed to write summary row")
		}
	}

	// Column detail sheet.
	header := []interface{}{
		"Column", "Action", "Kind", "Null Count", "Null %", "Distinct",
		"Variance %", "Zeros %", "Empty %", "Reasons",
	}
	if err := f.SetSheetRow(columnsSheet, "A1", &header); err != nil {
		return errors.Wrap(err, errors.ErrCodeFileOperation, "failed to write header row")
	}
	if err := f.SetCellStyle(columnsSheet, "A1", "J1", headerStyle); err != nil {
		return errors.Wrap(err, errors.ErrCodeFileOperation, "failed to style header row")
	}

	for i, col := range res.Columns {
		m := col.Metrics
		reasons := "OK"
		if col.Verdict.Action == analysis.ActionExclude {
			reasons = strings.Join(col.ReasonStrings(), " | ")
		}
		row := []interface{}{
			col.Name,
			string(col.Verdict.Action),
			string(col.Kind),
			m.NullCount,
			m.NullPercent,
			m.DistinctCount,
			m.DistinctPercent,
			m.ZeroPercent,
			m.EmptyStringPercent,
			reasons,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(columnsSheet, cell, &row); err != nil {
			return errors.Wrap(err, errors.ErrCodeFileOperation, "failed to write column row")
		}

		actionCell, _ := excelize.CoordinatesToCellName(2, i+2)
		style := keepStyle
		if col.Verdict.Action == analysis.ActionExclude {
			style = excludeStyle
		}
		if err := f.SetCellStyle(columnsSheet, actionCell, actionCell, style); err != nil {
			return errors.Wrap(err, errors.ErrCodeFileOperation, "failed to style action cell")
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(err, errors.ErrCodeFileOperation, "failed to save workbook").
			WithContext("path", path)
	}
	return nil
}
