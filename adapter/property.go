package adapter

// Column is implemented by every property.
type Column interface {
	Name() string
	Table() string
	Qualified() string
}

// Property is a typed reference to a column of a table.
type Property[T any] struct {
	table string
	name  string
}

// NewProperty returns the property of the named column.
func NewProperty[T any](table, name string) Property[T] {
	return Property[T]{table: table, name: name}
}

// Name returns the column name.
func (p Property[T]) Name() string { return p.name }

// Table returns the table name.
func (p Property[T]) Table() string { return p.table }

// Qualified returns the column name qualified by its table.
func (p Property[T]) Qualified() string {
	if p.table == "" {
		return "`" + p.name + "`"
	}
	return "`" + p.table + "`.`" + p.name + "`"
}

// String implements fmt.Stringer.
func (p Property[T]) String() string { return p.name }

// BoolProperty is the property of a boolean column. Boolean columns are
// stored as INTEGER 0/1.
type BoolProperty struct {
	Property[bool]
}

// NewBoolProperty returns the property of the named boolean column.
func NewBoolProperty(table, name string) BoolProperty {
	return BoolProperty{Property: NewProperty[bool](table, name)}
}

// DBValue returns the stored form of a boolean.
func (BoolProperty) DBValue(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

var (
	_ Column = Property[int64]{}
	_ Column = BoolProperty{}
)
