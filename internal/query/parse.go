package query

import (
	"strings"

	"colsweep/pkg/errors"
)

// Operators ordered longest-first so ">=" wins over ">".
var symbolOperators = []Operator{OpGreaterEqual, OpLessEqual, OpNotEqual, OpGreater, OpLess, OpEqual}

// ParseFilter parses a command-line filter expression such as
// "created_at>=2022-01-01", "name LIKE %test%" or "status IN A,B,C"
// into a Filter. IN and NOT IN values split on commas.
func ParseFilter(expr string) (Filter, error) {
	trimmed := strings.TrimSpace(expr)

	// Word operators first: "col NOT IN a,b", "col IN a,b", "col LIKE x".
	for _, op := range []Operator{OpNotIn, OpIn, OpLike} {
		needle := " " + string(op) + " "
		if idx := indexFold(trimmed, needle); idx > 0 {
			column := strings.TrimSpace(trimmed[:idx])
			value := strings.TrimSpace(trimmed[idx+len(needle):])
			if column == "" || value == "" {
				return Filter{}, errors.New(errors.ErrCodeValidationFailed, "malformed filter expression: "+expr)
			}
			if op == OpIn || op == OpNotIn {
				return Filter{Column: column, Operator: op, Value: splitList(value)}, nil
			}
			return Filter{Column: column, Operator: op, Value: value}, nil
		}
	}

	for _, op := range symbolOperators {
		if idx := strings.Index(trimmed, string(op)); idx > 0 {
			column := strings.TrimSpace(trimmed[:idx])
			value := strings.TrimSpace(trimmed[idx+len(op):])
			if column == "" || value == "" {
				return Filter{}, errors.New(errors.ErrCodeValidationFailed, "malformed filter expression: "+expr)
			}
			return Filter{Column: column, Operator: op, Value: value}, nil
		}
	}

	return Filter{}, errors.New(errors.ErrCodeValidationFailed, "no operator found in filter expression: "+expr).
		WithSuggestions("Use the form column>=value, column LIKE pattern, or column IN a,b,c")
}

// ParseFilters parses a list of CLI filter expressions.
func ParseFilters(exprs []string) ([]Filter, error) {
	filters := make([]Filter, 0, len(exprs))
	for _, expr := range exprs {
		f, err := ParseFilter(expr)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

func indexFold(s, substr string) int {
	return strings.Index(strings.ToUpper(s), strings.ToUpper(substr))
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
