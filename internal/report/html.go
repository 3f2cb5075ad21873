package report

import (
	"bytes"
	"html/template"
	"strings"

	"colsweep/internal/analysis"
)

const htmlTemplate = `
<!DOCTYPE html>
<html>
<head>
    <title>Data Quality Analysis Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; background-color: #1e1e1e; color: #e5e5e5; }
        h1, h2 { color: #ffcc00; }
        table { border-collapse: collapse; width: 100%; margin-bottom: 20px; }
        th, td { border: 1px solid #555; padding: 8px; text-align: left; }
        th { background-color: #333; color: #ffcc00; }
        tr:nth-child(even) { background-color: #2a2a2a; }
        .keep { color: #00cc66; font-weight: bold; }
        .exclude { color: #ff4444; font-weight: bold; }
        .summary-box { background-color: #2d2d2d; padding: 15px; margin-bottom: 20px; border-radius: 5px; }
        pre { background-color: #2d2d2d; padding: 10px; border-radius: 4px; overflow-x: auto; }
    </style>
</head>
<body>
    <h1>Data Quality Analysis Report</h1>

    <div class="summary-box">
        <h2>Summary</h2>
        <p><strong>Table:</strong> {{.Result.QualifiedName}}</p>
        <p><strong>Analyzed:</strong> {{.Result.AnalyzedAt.Format "2006-01-02 15:04:05"}}</p>
        <p><strong>Rows Sampled:</strong> {{.Result.TotalRows}}</p>
        <p><strong>Total Columns:</strong> {{.Result.TotalColumns}}</p>
        <p><strong>Columns to Keep:</strong> <span class="keep">{{len .Result.ColumnsToKeep}}</span></p>
        <p><strong>Columns to Exclude:</strong> <span class="exclude">{{len .Result.ColumnsToExclude}}</span></p>
        <p><strong>Exclusion Rate:</strong> {{printf "%.1f%%" .Result.ExclusionRate}}</p>
    </div>

    {{if .Result.Filters}}
    <h2>Applied Filters</h2>
    <ul>
        {{range .Result.Filters}}<li>{{.}}</li>{{end}}
    </ul>
    {{end}}

    {{if .Result.Query}}
    <h2>Executed Query</h2>
    <pre>{{.Result.Query}}</pre>
    {{end}}

    <h2>Column Analysis</h2>
    <table>
        <tr>
            <th>Column</th>
            <th>Action</th>
            <th>Nulls (%)</th>
            <th>Distinct</th>
            <th>Variance (%)</th>
            <th>Zeros (%)</th>
            <th>Empty (%)</th>
            <th>Kind</th>
            <th>Reasons</th>
        </tr>
        {{range .Result.Columns}}
        <tr>
            <td>{{.Name}}</td>
            <td class="{{lower .Verdict.Action}}">{{.Verdict.Action}}</td>
            <td>{{printf "%.1f" .Metrics.NullPercent}}</td>
            <td>{{.Metrics.DistinctCount}}</td>
            <td>{{printf "%.1f" .Metrics.DistinctPercent}}</td>
            <td>{{printf "%.1f" .Metrics.ZeroPercent}}</td>
            <td>{{printf "%.1f" .Metrics.EmptyStringPercent}}</td>
            <td>{{.Kind}}</td>
            <td>{{reasons .}}</td>
        </tr>
        {{end}}
    </table>

    {{if .CleanupSQL}}
    <h2>Suggested Cleanup SQL</h2>
    <pre>{{.CleanupSQL}}</pre>
    {{end}}
</body>
</html>
`

// generateHTML renders the styled HTML report.
func (r *Reporter) generateHTML() (string, error) {
	funcs := template.FuncMap{
		"lower": func(a analysis.Action) string { return strings.ToLower(string(a)) },
		"reasons": func(c analysis.ColumnReport) string {
			if c.Verdict.Action == analysis.ActionKeep {
				return "OK"
			}
			return strings.Join(c.ReasonStrings(), " | ")
		},
	}

	tmpl, err := template.New("report").Funcs(funcs).Parse(htmlTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		Result     *analysis.Result
		CleanupSQL string
	}{
		Result:     r.result,
		CleanupSQL: r.result.SuggestedCleanupSQL(),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
