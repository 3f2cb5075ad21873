package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"colsweep/pkg/errors"
)

// ColumnMetrics is the output of profiling a single column. All
// percentages are in [0, 100] and every ratio with a zero denominator
// is defined as 0.
type ColumnMetrics struct {
	Kind               Kind
	TotalRows          int
	NullCount          int
	NullPercent        float64
	NonNullCount       int
	DistinctCount      int
	DistinctPercent    float64
	ZeroPercent        float64
	EmptyStringPercent float64
	SampleValue        interface{}
}

// ProfileColumn computes descriptive metrics for one column. totalRows
// must equal the length of the column's value slice; nil values are
// counted as nulls. The function is pure and never divides by zero.
func ProfileColumn(col Column, totalRows int) (ColumnMetrics, error) {
	if totalRows != len(col.Values) {
		return ColumnMetrics{}, errors.InvalidInputError(col.Name,
			fmt.Sprintf("declared row count %d does not match %d values", totalRows, len(col.Values)))
	}
	if !col.Kind.Valid() {
		return ColumnMetrics{}, errors.InvalidInputError(col.Name,
			fmt.Sprintf("unrecognized column kind %q", col.Kind))
	}

	m := ColumnMetrics{Kind: col.Kind, TotalRows: totalRows}

	distinct := make(map[string]struct{})
	var zeroCount, emptyCount int

	for _, v := range col.Values {
		if v == nil {
			m.NullCount++
			continue
		}
		if m.SampleValue == nil {
			m.SampleValue = v
		}
		distinct[distinctKey(col.Kind, v)] = struct{}{}

		switch col.Kind {
		case KindNumeric:
			if f, ok := asFloat(v); ok && f == 0 {
				zeroCount++
			}
		case KindText:
			if strings.TrimSpace(stringForm(v)) == "" {
				emptyCount++
			}
		}
	}

	m.NonNullCount = totalRows - m.NullCount
	m.DistinctCount = len(distinct)

	if totalRows > 0 {
		m.NullPercent = float64(m.NullCount) / float64(totalRows) * 100
	}
	if m.NonNullCount > 0 {
		m.DistinctPercent = float64(m.DistinctCount) / float64(m.NonNullCount) * 100
		if col.Kind == KindNumeric {
			m.ZeroPercent = float64(zeroCount) / float64(m.NonNullCount) * 100
		}
		if col.Kind == KindText {
			m.EmptyStringPercent = float64(emptyCount) / float64(m.NonNullCount) * 100
		}
	}

	return m, nil
}

// distinctKey maps a non-null value to its equality key. Numeric values
// compare by numeric value so 0 and 0.0 collapse; text compares the
// exact string; temporal compares the exact instant.
func distinctKey(kind Kind, v interface{}) string {
	switch kind {
	case KindNumeric:
		if f, ok := asFloat(v); ok {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
	case KindTemporal:
		if t, ok := v.(time.Time); ok {
			return strconv.FormatInt(t.UnixNano(), 10)
		}
	}
	return stringForm(v)
}

// asFloat converts machine integer and float kinds (and their textual
// forms, as some drivers hand back decimals as strings) to float64.
func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
		return f, err == nil
	}
	return 0, false
}

// stringForm coerces a value to its canonical string representation.
func stringForm(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	}
	return fmt.Sprintf("%v", v)
}
