package analysis

// Kind classifies a column's declared data type and drives which
// metrics apply to it.
type Kind string

const (
	KindNumeric  Kind = "numeric"
	KindText     Kind = "text"
	KindTemporal Kind = "temporal"
	KindOther    Kind = "other"
)

// Valid reports whether the kind is one of the recognized classifications.
func (k Kind) Valid() bool {
	switch k {
	case KindNumeric, KindText, KindTemporal, KindOther:
		return true
	}
	return false
}

// Column holds one field of a materialized table. A nil entry in Values
// is the null marker.
type Column struct {
	Name   string
	Kind   Kind
	Values []interface{}
}

// Table is an in-memory tabular result set, column-major, with columns
// in their original source order.
type Table struct {
	Name     string
	Schema   string
	Columns  []Column
	RowCount int

	// Provenance of the data, carried through to reports.
	Query       string
	QueryParams []interface{}
	Filters     []string
}

// QualifiedName returns the schema-qualified table name.
func (t *Table) QualifiedName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// ColumnNames returns the column names in source order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}
