package report

import (
	"bytes"
	"fmt"
	"strings"

	"colsweep/internal/analysis"
)

// Inline CSS for the dark-themed Markdown report.
const markdownStyle = `<style>
body { background-color: #1e1e1e; color: #e5e5e5; font-family: Arial, sans-serif; }
h1, h2, h3 { color: #ffcc00; }
table { border-collapse: collapse; width: 100%; margin-top: 10px; }
th, td { border: 1px solid #555; padding: 6px; text-align: center; }
th { background-color: #333; color: #ffcc00; }
td { color: #ddd; }
.keep { color: #00cc66; font-weight: bold; }
.exclude { color: #ff4444; font-weight: bold; }
code { background-color: #2d2d2d; padding: 2px 4px; border-radius: 4px; }
</style>`

// generateMarkdown renders the dark-themed Markdown report.
func (r *Reporter) generateMarkdown() string {
	res := r.result
	var buf bytes.Buffer

	buf.WriteString(markdownStyle + "\n\n")

	buf.WriteString("# Data Quality Analysis Report\n\n")
	buf.WriteString("## General Information\n")
	fmt.Fprintf(&buf, "- **Table:** `%s`\n", res.QualifiedName())
	fmt.Fprintf(&buf, "- **Date/Time:** %s\n", res.AnalyzedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&buf, "- **Total Rows:** %d\n", res.TotalRows)
	fmt.Fprintf(&buf, "- **Total Columns:** %d\n\n", res.TotalColumns)

	buf.WriteString("---\n\n## Applied Filters\n")
	if len(res.Filters) > 0 {
		for _, f := range res.Filters {
			fmt.Fprintf(&buf, "- %s\n", f)
		}
	} else {
		buf.WriteString("- No filters applied\n")
	}

	if res.Query != "" {
		buf.WriteString("\n---\n\n## Executed Query\n```sql\n" + res.Query + "\n```\n")
		if len(res.QueryParams) > 0 {
			fmt.Fprintf(&buf, "**Parameters:** %v\n", res.QueryParams)
		}
	}

	buf.WriteString("\n---\n\n## Analysis Summary\n\n")
	buf.WriteString("| Metric | Value |\n")
	buf.WriteString("|--------|-------|\n")
	fmt.Fprintf(&buf, "| Total Columns | %d |\n", res.TotalColumns)
	fmt.Fprintf(&buf, "| Columns to Keep | %d |\n", len(res.ColumnsToKeep))
	fmt.Fprintf(&buf, "| Columns to Exclude | %d |\n", len(res.ColumnsToExclude))
	fmt.Fprintf(&buf, "| Exclusion Rate | %.1f%% |\n\n", res.ExclusionRate)

	if len(res.ColumnsToExclude) > 0 {
		buf.WriteString("---\n\n## Columns Suggested for Exclusion\n\n")
		buf.WriteString("| # | Column | Reasons |\n")
		buf.WriteString("|---|--------|---------|\n")
		for i, name := range res.ColumnsToExclude {
			for _, col := range res.Columns {
				if col.Name == name {
					fmt.Fprintf(&buf, "| %d | `%s` | %s |\n", i+1, name, strings.Join(col.ReasonStrings(), " | "))
				}
			}
		}
	} else {
		buf.WriteString("---\n\n## Analysis Result\n\n")
		buf.WriteString("No columns need to be excluded.\n")
		buf.WriteString("All columns meet the configured quality criteria.\n")
	}

	buf.WriteString("\n---\n\n## Detailed Column Analysis\n\n")
	buf.WriteString("| Column | Action | Nulls (%) | Distinct | Variance (%) | Zeros (%) | Empty (%) | Kind | Reasons |\n")
	buf.WriteString("|--------|--------|-----------|----------|--------------|-----------|-----------|------|--------|\n")
	for _, col := range res.Columns {
		m := col.Metrics
		actionCell := "<span class='keep'>KEEP</span>"
		reasons := "OK"
		if col.Verdict.Action == analysis.ActionExclude {
			actionCell = "<span class='exclude'>EXCLUDE</span>"
			reasons = strings.Join(col.ReasonStrings(), " | ")
		}
		fmt.Fprintf(&buf, "| `%s` | %s | %.1f%% | %d | %.1f%% | %.1f%% | %.1f%% | `%s` | %s |\n",
			col.Name, actionCell, m.NullPercent, m.DistinctCount, m.DistinctPercent,
			m.ZeroPercent, m.EmptyStringPercent, col.Kind, reasons)
	}

	buf.WriteString("\n---\n\n## Exclusion Criteria Used\n\n")
	fmt.Fprintf(&buf, "- Many Nulls: >= %.0f%% null values\n", res.Thresholds.NullThresholdPercent)
	buf.WriteString("- Single Value: column holds exactly 1 distinct value\n")
	fmt.Fprintf(&buf, "- Many Zeros: >= %.0f%% zero values (numeric columns)\n", res.Thresholds.ZeroThresholdPercent)
	fmt.Fprintf(&buf, "- Empty Strings: >= %.0f%% empty strings (text columns)\n", res.Thresholds.ZeroThresholdPercent)
	if res.Thresholds.LowVarianceThresholdPercent > 0 {
		fmt.Fprintf(&buf, "- Low Variance: < %.0f%% distinct values\n", res.Thresholds.LowVarianceThresholdPercent)
	}
	buf.WriteString("\nColumns that do not meet these criteria are kept.\n")

	if sql := res.SuggestedCleanupSQL(); sql != "" {
		buf.WriteString("\n---\n\n## Suggested Cleanup SQL\n\n```sql\n" + sql + "```\n")
	}

	return buf.String()
}
