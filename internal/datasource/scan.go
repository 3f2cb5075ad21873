package datasource

import (
	"database/sql"
	"strings"

	"colsweep/internal/analysis"
	"colsweep/pkg/errors"
)

// scanTable materializes a full result set into a column-major table,
// classifying every column's kind from the driver's type metadata.
// Zero rows is a legitimate result; zero columns is not.
func scanTable(rows *sql.Rows) (*analysis.Table, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeQueryFailed, "Failed to read column names")
	}
	if len(names) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyResult, "Result set has no columns")
	}

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeQueryFailed, "Failed to read column types")
	}

	table := &analysis.Table{Columns: make([]analysis.Column, len(names))}
	for i, name := range names {
		table.Columns[i] = analysis.Column{
			Name: name,
			Kind: classifyKind(types[i].DatabaseTypeName()),
		}
	}

	values := make([]interface{}, len(names))
	ptrs := make([]interface{}, len(names))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeQueryFailed, "Failed to scan row").
				WithContext("row", table.RowCount+1)
		}
		for i, v := range values {
			table.Columns[i].Values = append(table.Columns[i].Values, normalizeValue(v))
		}
		table.RowCount++
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeQueryFailed, "Failed while iterating rows")
	}

	return table, nil
}

// normalizeValue maps driver values to the forms the profiler expects:
// nil stays the null marker and raw bytes become strings.
func normalizeValue(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

var (
	numericTypes = typeSet(
		"INT", "INTEGER", "BIGINT", "SMALLINT", "TINYINT", "MEDIUMINT",
		"DECIMAL", "NUMERIC", "NUMBER", "FLOAT", "REAL", "DOUBLE",
		"DOUBLE PRECISION", "MONEY", "SMALLMONEY", "FIXED",
		"INT2", "INT4", "INT8", "FLOAT4", "FLOAT8", "SERIAL", "BIGSERIAL",
	)
	textTypes = typeSet(
		"CHAR", "NCHAR", "VARCHAR", "NVARCHAR", "TEXT", "NTEXT",
		"STRING", "CHARACTER VARYING", "BPCHAR", "UUID", "UNIQUEIDENTIFIER",
		"JSON", "JSONB", "XML", "ENUM",
	)
	temporalTypes = typeSet(
		"DATE", "DATETIME", "DATETIME2", "SMALLDATETIME", "DATETIMEOFFSET",
		"TIME", "TIMETZ", "TIMESTAMP", "TIMESTAMPTZ",
		"TIMESTAMP_NTZ", "TIMESTAMP_LTZ", "TIMESTAMP_TZ",
	)
	otherTypes = typeSet(
		"BIT", "BOOL", "BOOLEAN", "BINARY", "VARBINARY", "BLOB",
		"TINYBLOB", "MEDIUMBLOB", "LONGBLOB", "BYTEA", "IMAGE",
	)
)

// classifyKind maps a driver-reported type name to a column kind.
// Unknown names fall back to text, mirroring how heterogeneous data
// ends up treated as strings.
func classifyKind(dbTypeName string) analysis.Kind {
	name := strings.ToUpper(strings.TrimSpace(dbTypeName))
	// Strip length/precision suffixes like VARCHAR(255).
	if idx := strings.IndexByte(name, '('); idx > 0 {
		name = name[:idx]
	}

	switch {
	case numericTypes[name]:
		return analysis.KindNumeric
	case temporalTypes[name]:
		return analysis.KindTemporal
	case otherTypes[name]:
		return analysis.KindOther
	case textTypes[name]:
		return analysis.KindText
	}
	return analysis.KindText
}

func typeSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
