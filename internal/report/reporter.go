package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"colsweep/internal/analysis"
	"colsweep/pkg/errors"
)

// Format identifies a report output format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatExcel    Format = "xlsx"
)

// ParseFormat resolves a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt", "console":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatExcel, nil
	}
	return "", errors.New(errors.ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported report format: %s", s)).
		WithSuggestions("Use one of: text, markdown, html, json, csv, xlsx")
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatText:
		return "txt"
	case FormatMarkdown:
		return "md"
	default:
		return string(f)
	}
}

// Reporter renders an analysis result. Every renderer works purely off
// the result object; no renderer recomputes metrics.
type Reporter struct {
	result *analysis.Result
}

// NewReporter creates a reporter for one analysis result.
func NewReporter(result *analysis.Result) *Reporter {
	return &Reporter{result: result}
}

// Generate renders the report as a string in the given format. Excel
// is binary and only available through WriteFile.
func (r *Reporter) Generate(format Format) (string, error) {
	switch format {
	case FormatText:
		return r.generateText(), nil
	case FormatMarkdown:
		return r.generateMarkdown(), nil
	case FormatHTML:
		return r.generateHTML()
	case FormatJSON:
		return r.generateJSON()
	case FormatCSV:
		return r.generateCSV()
	case FormatExcel:
		return "", errors.New(errors.ErrCodeUnsupportedFormat, "xlsx reports must be written to a file")
	}
	return "", errors.New(errors.ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported report format: %s", format))
}

// generateText renders the console report.
func (r *Reporter) generateText() string {
	res := r.result
	var buf bytes.Buffer

	keep := color.New(color.FgGreen, color.Bold).SprintFunc()
	exclude := color.New(color.FgRed, color.Bold).SprintFunc()

	buf.WriteString("DATA QUALITY ANALYSIS\n")
	buf.WriteString(strings.Repeat("=", 70) + "\n\n")
	fmt.Fprintf(&buf, "Table: %s\n", res.QualifiedName())
	fmt.Fprintf(&buf, "Analyzed: %s\n", res.AnalyzedAt.Format(time.RFC3339))
	fmt.Fprintf(&buf, "Rows sampled: %d\n", res.TotalRows)
	fmt.Fprintf(&buf, "Criteria: nulls >= %.0f%%, single value (=1), zeros/empties >= %.0f%%",
		res.Thresholds.NullThresholdPercent, res.Thresholds.ZeroThresholdPercent)
	if res.Thresholds.LowVarianceThresholdPercent > 0 {
		fmt.Fprintf(&buf, ", variance < %.0f%%", res.Thresholds.LowVarianceThresholdPercent)
	}
	buf.WriteString("\n\n")

	if len(res.Filters) > 0 {
		buf.WriteString("Filters applied:\n")
		for _, f := range res.Filters {
			fmt.Fprintf(&buf, "  - %s\n", f)
		}
		buf.WriteString("\n")
	}
	if res.Query != "" {
		fmt.Fprintf(&buf, "Query: %s\n", res.Query)
		if len(res.QueryParams) > 0 {
			fmt.Fprintf(&buf, "Parameters: %v\n", res.QueryParams)
		}
		buf.WriteString("\n")
	}

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Column", "Action", "Nulls %", "Distinct", "Variance %", "Zeros %", "Empty %", "Kind", "Reasons"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	for _, col := range res.Columns {
		m := col.Metrics
		action := keep(string(col.Verdict.Action))
		reasons := "OK"
		if col.Verdict.Action == analysis.ActionExclude {
			action = exclude(string(col.Verdict.Action))
			reasons = strings.Join(col.ReasonStrings(), " | ")
		} else {
			reasons = col.KeepSummary()
		}
		table.Append([]string{
			col.Name,
			action,
			fmt.Sprintf("%.1f", m.NullPercent),
			fmt.Sprintf("%d", m.DistinctCount),
			fmt.Sprintf("%.1f", m.DistinctPercent),
			fmt.Sprintf("%.1f", m.ZeroPercent),
			fmt.Sprintf("%.1f", m.EmptyStringPercent),
			string(col.Kind),
			reasons,
		})
	}
	table.Render()

	buf.WriteString("\nSUMMARY\n")
	buf.WriteString(strings.Repeat("-", 40) + "\n")
	fmt.Fprintf(&buf, "Total columns:   %d\n", res.TotalColumns)
	fmt.Fprintf(&buf, "Columns to keep: %d\n", len(res.ColumnsToKeep))
	fmt.Fprintf(&buf, "Columns to drop: %d\n", len(res.ColumnsToExclude))
	fmt.Fprintf(&buf, "Exclusion rate:  %.1f%%\n", res.ExclusionRate)

	if len(res.ColumnsToExclude) > 0 {
		buf.WriteString("\nEXCLUSION LIST\n")
		buf.WriteString(strings.Repeat("-", 40) + "\n")
		for i, name := range res.ColumnsToExclude {
			for _, col := range res.Columns {
				if col.Name == name {
					fmt.Fprintf(&buf, "%2d. %s -> %s\n", i+1, name, strings.Join(col.ReasonStrings(), " | "))
				}
			}
		}
		buf.WriteString("\nSUGGESTED CLEANUP SQL\n")
		buf.WriteString(strings.Repeat("-", 40) + "\n")
		buf.WriteString(res.SuggestedCleanupSQL())
	} else {
		buf.WriteString("\nNo columns need to be dropped. All columns meet the quality criteria.\n")
	}

	return buf.String()
}

// generateJSON renders the result as indented JSON.
func (r *Reporter) generateJSON() (string, error) {
	data, err := json.MarshalIndent(r.result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// generateCSV renders one row per column with all computed metrics.
func (r *Reporter) generateCSV() (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{
		"Column", "Action", "Kind", "Null Count", "Null Percent", "Distinct Count",
		"Distinct Percent", "Zero Percent", "Empty Percent", "Reasons",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, col := range r.result.Columns {
		m := col.Metrics
		row := []string{
			col.Name,
			string(col.Verdict.Action),
			string(col.Kind),
			fmt.Sprintf("%d", m.NullCount),
			fmt.Sprintf("%.1f", m.NullPercent),
			fmt.Sprintf("%d", m.DistinctCount),
			fmt.Sprintf("%.1f", m.DistinctPercent),
			fmt.Sprintf("%.1f", m.ZeroPercent),
			fmt.Sprintf("%.1f", m.EmptyStringPercent),
			strings.Join(col.ReasonStrings(), " | "),
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
