package adapter

// Values holds column values keyed by column name, in insertion order.
type Values struct {
	columns []string
	values  map[string]any
}

// NewValues returns an empty Values.
func NewValues() *Values {
	return &Values{values: make(map[string]any)}
}

// Put stores the driver form of v for the column. A nil value (or nil
// pointer) stores NULL.
func (v *Values) Put(column string, value any) {
	if _, ok := v.values[column]; !ok {
		v.columns = append(v.columns, column)
	}
	v.values[column] = normalize(value)
}

// PutNull stores NULL for the column.
func (v *Values) PutNull(column string) { v.Put(column, nil) }

// Get returns the value stored for the column.
func (v *Values) Get(column string) (any, bool) {
	value, ok := v.values[column]
	return value, ok
}

// Columns returns the column names in insertion order.
func (v *Values) Columns() []string { return v.columns }

// Len returns the number of columns.
func (v *Values) Len() int { return len(v.columns) }
