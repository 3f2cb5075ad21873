package query

import (
	"fmt"
	"strings"

	"colsweep/pkg/errors"
)

// Operator is a comparison operator allowed in filter clauses.
type Operator string

const (
	OpEqual        Operator = "="
	OpNotEqual     Operator = "!="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpLike         Operator = "LIKE"
	OpIn           Operator = "IN"
	OpNotIn        Operator = "NOT IN"
)

var safeOperators = map[Operator]bool{
	OpEqual:        true,
	OpNotEqual:     true,
	OpGreater:      true,
	OpGreaterEqual: true,
	OpLess:         true,
	OpLessEqual:    true,
	OpLike:         true,
	OpIn:           true,
	OpNotIn:        true,
}

// Filter is one WHERE clause: column, operator, value. For IN / NOT IN
// the value must be a slice.
type Filter struct {
	Column   string
	Operator Operator
	Value    interface{}
}

// String renders the filter for display in reports, not for execution.
func (f Filter) String() string {
	return fmt.Sprintf("%s %s %v", f.Column, f.Operator, f.Value)
}

// Dialect supplies the driver-specific SQL fragments the builder needs.
type Dialect interface {
	// Placeholder returns the parameter marker for the n-th (1-based)
	// positional argument.
	Placeholder(n int) string
	// Limit rewrites a SELECT to return at most n rows.
	Limit(query string, n int) string
}

// SelectOptions describes the query to build.
type SelectOptions struct {
	Schema  string
	Table   string
	Columns []string // empty means SELECT *
	Filters []Filter
	Limit   int // 0 means no limit
}

// BuildSelect translates a table reference, optional projection, and
// filter clauses into a parameterized query and its positional
// argument list. Any operator outside the allow-list is rejected
// before construction.
func BuildSelect(opts SelectOptions, dialect Dialect) (string, []interface{}, error) {
	for _, f := range opts.Filters {
		if err := ValidateOperator(f.Operator); err != nil {
			return "", nil, err
		}
	}

	projection := "*"
	if len(opts.Columns) > 0 {
		projection = strings.Join(opts.Columns, ", ")
	}

	table := opts.Table
	if opts.Schema != "" {
		table = opts.Schema + "." + opts.Table
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", projection, table)

	var args []interface{}
	if len(opts.Filters) > 0 {
		conditions := make([]string, 0, len(opts.Filters))
		for _, f := range opts.Filters {
			switch f.Operator {
			case OpIn, OpNotIn:
				values := listValues(f.Value)
				placeholders := make([]string, len(values))
				for i, v := range values {
					placeholders[i] = dialect.Placeholder(len(args) + 1)
					args = append(args, v)
				}
				conditions = append(conditions,
					fmt.Sprintf("%s %s (%s)", f.Column, f.Operator, strings.Join(placeholders, ", ")))
			default:
				conditions = append(conditions,
					fmt.Sprintf("%s %s %s", f.Column, f.Operator, dialect.Placeholder(len(args)+1)))
				args = append(args, f.Value)
			}
		}
		b.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	queryStr := b.String()
	if opts.Limit > 0 {
		queryStr = dialect.Limit(queryStr, opts.Limit)
	}

	return queryStr, args, nil
}

// ValidateOperator rejects operators outside the safe allow-list.
func ValidateOperator(op Operator) error {
	if !safeOperators[Operator(strings.ToUpper(string(op)))] {
		return errors.FilterOperatorError(string(op))
	}
	return nil
}

// listValues normalizes an IN/NOT IN value into a slice.
func listValues(v interface{}) []interface{} {
	switch vs := v.(type) {
	case []interface{}:
		return vs
	case []string:
		out := make([]interface{}, len(vs))
		for i, s := range vs {
			out[i] = s
		}
		return out
	}
	return []interface{}{v}
}
