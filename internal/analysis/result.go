package analysis

import (
	"fmt"
	"strings"
)

// QualifiedName returns the schema-qualified name of the analyzed table.
func (r *Result) QualifiedName() string {
	if r.Schema == "" {
		return r.TableName
	}
	return r.Schema + "." + r.TableName
}

// ReasonStrings returns the formatted reasons for the named column, or
// nil if the column was kept.
func (c ColumnReport) ReasonStrings() []string {
	if len(c.Verdict.Reasons) == 0 {
		return nil
	}
	out := make([]string, len(c.Verdict.Reasons))
	for i, reason := range c.Verdict.Reasons {
		out[i] = reason.String()
	}
	return out
}

// KeepSummary is the informational one-liner printed for kept columns:
// uniques, nulls, and any non-zero zero/empty ratios.
func (c ColumnReport) KeepSummary() string {
	m := c.Metrics
	s := fmt.Sprintf("%d distinct (%.1f%%), %.1f%% nulls", m.DistinctCount, m.DistinctPercent, m.NullPercent)
	if m.ZeroPercent > 0 {
		s += fmt.Sprintf(", %.1f%% zeros", m.ZeroPercent)
	}
	if m.EmptyStringPercent > 0 {
		s += fmt.Sprintf(", %.1f%% empty", m.EmptyStringPercent)
	}
	return s
}

// SuggestedCleanupSQL builds the DROP COLUMN statement plus a
// SELECT ... INTO variant that keeps only the surviving columns.
// Returns "" when there is nothing to exclude.
func (r *Result) SuggestedCleanupSQL() string {
	if len(r.ColumnsToExclude) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "-- Drop %d columns from %s\n", len(r.ColumnsToExclude), r.QualifiedName())
	fmt.Fprintf(&b, "ALTER TABLE %s\nDROP COLUMN %s;\n", r.QualifiedName(), strings.Join(r.ColumnsToExclude, ", "))
	b.WriteString("\n-- Or build a new table with only the surviving columns:\n")
	fmt.Fprintf(&b, "SELECT %s\nINTO %s_cleaned\nFROM %s;\n",
		strings.Join(r.ColumnsToKeep, ", "), r.QualifiedName(), r.QualifiedName())
	return b.String()
}
