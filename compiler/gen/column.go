package gen

import (
	"slices"

	"github.com/go-openapi/inflect"

	"github.com/syssam/colflow/dialect"
	"github.com/syssam/colflow/schema/field"
)

// Column is the metadata of one mapped field. It is built once by
// NewColumn and never modified afterwards.
type Column struct {
	// Name is the Go field name.
	Name string
	// ColumnName is the SQL column name. SQL-path code uses it.
	ColumnName string
	// ContainerKey is the key of the column in a container. Container-path
	// code uses it.
	ContainerKey string
	// PutContainerDefault reports if loading a row into a container writes
	// a default value when the column is absent or NULL.
	PutContainerDefault bool
	// Type is the declared type of the field.
	Type    *field.TypeInfo
	Private bool
	// Length is the declared length, -1 when unspecified.
	Length       int
	Collate      field.Collate
	DefaultValue *string

	NotNull          bool
	OnNullConflict   field.ConflictAction
	Unique           bool
	OnUniqueConflict field.ConflictAction
	UniqueGroups     []int
	IndexGroups      []int

	// PrimaryKey and AutoIncrement are mutually exclusive: an auto-increment
	// primary key only sets AutoIncrement.
	PrimaryKey              bool
	AutoIncrement           bool
	QuickCheckAutoIncrement bool

	HasCustomConverter bool
	HasTypeConverter   bool

	// References lists the referenced columns of a foreign-key column.
	References []string

	// Access is the resolved access strategy. It is nil for parameterized
	// fields, which are mapped elsewhere.
	Access Access
}

// NewColumn builds the column of a field descriptor and resolves its
// access strategy. Configuration errors are sent to rep and returned; no
// column is returned with an error.
func NewColumn(d *field.Descriptor, policy TablePolicy, reg ConverterRegistry, rep Reporter) (*Column, error) {
	if d == nil || d.Type == nil {
		return nil, report(rep, NewInternalError("", "field descriptor without type"))
	}
	if d.Type.Array {
		return nil, report(rep, NewColumnError(d.Name, d.Type.String(), "columns cannot be array type", nil))
	}
	a := d.Annotations
	c := &Column{
		Name:                d.Name,
		ColumnName:          d.Name,
		ContainerKey:        d.Name,
		PutContainerDefault: true,
		Type:                d.Type,
		Private:             d.Private,
		Length:              -1,
		Collate:             field.CollateNone,
	}
	if col := a.Column; col != nil {
		if col.Name != "" {
			c.ColumnName = col.Name
		}
		if col.Length >= 0 {
			c.Length = col.Length
		}
		c.Collate = col.Collate
		c.DefaultValue = col.Default
	}
	if pk := a.PrimaryKey; pk != nil {
		if pk.AutoIncrement {
			if !d.Type.Type.Integer() {
				return nil, report(rep, NewColumnError(d.Name, d.Type.String(), "auto-increment primary key must be an integer", nil))
			}
			c.AutoIncrement = true
			c.QuickCheckAutoIncrement = pk.QuickCheck
		} else {
			c.PrimaryKey = true
		}
	}
	if u := a.Unique; u != nil {
		c.Unique = u.Unique
		c.OnUniqueConflict = u.OnConflict
		c.UniqueGroups = slices.Clone(u.Groups)
	}
	if nn := a.NotNull; nn != nil {
		c.NotNull = true
		c.OnNullConflict = nn.OnConflict
	}
	if ck := a.ContainerKey; ck != nil {
		if ck.Name != "" {
			c.ContainerKey = ck.Name
		}
		c.PutContainerDefault = ck.PutDefault
	}
	if idx := a.Index; idx != nil {
		if len(idx.Groups) == 0 {
			c.IndexGroups = []int{field.GenericIndexGroup}
		} else {
			c.IndexGroups = slices.Clone(idx.Groups)
		}
	}
	if fk := a.ForeignKey; fk != nil {
		c.References = slices.Clone(fk.References)
	}
	if d.Type.Generic {
		return c, nil
	}
	res, err := Resolve(d, policy, reg)
	if err != nil {
		return nil, report(rep, err)
	}
	c.Access = res.Access
	c.HasCustomConverter = res.HasCustomConverter
	c.HasTypeConverter = res.HasTypeConverter
	return c, nil
}

// PropertyName returns the Go identifier of the column property, derived
// from the column name: first_name -> FirstName.
func (c *Column) PropertyName() string {
	return inflect.Camelize(c.ColumnName)
}

// ReferenceColumnName returns the container key of a referenced column:
// the column name and the referenced column name, joined by an underscore
// and upper-cased.
func (c *Column) ReferenceColumnName(ref string) string {
	return upper(c.ColumnName + "_" + ref)
}

// Converter returns the compile-time converter of the column, if any.
func (c *Column) Converter() (*Converter, bool) {
	if tc, ok := c.Access.(*TypeConverter); ok && tc.Converter != nil {
		return tc.Converter, true
	}
	return nil, false
}

// ContainerType returns the type a container holds for the column, and
// whether it is the declared type. Columns with a compile-time converter
// are held in the database type of the converter, except booleans, which
// containers always hold as declared. Enums are held as strings, blobs as
// bytes and other natively stored columns as declared. An AccessorError is
// returned when no typed container accessor can read the column.
func (c *Column) ContainerType() (*field.TypeInfo, bool, error) {
	if c.Access == nil {
		return nil, false, ErrNoAccess
	}
	if conv, ok := c.Converter(); ok && c.Type.Type != field.TypeBool {
		if _, ok := AccessorName(conv.DBType); ok {
			return conv.DBType, false, nil
		}
		return nil, false, NewAccessorError(c.Name, c.Type.String())
	}
	if dialect.Native(c.Type) {
		if _, ok := AccessorName(c.Type); ok {
			return c.Type, true, nil
		}
	}
	if t := c.Access.Storage(); t != nil {
		if _, ok := AccessorName(t); ok {
			return t, false, nil
		}
	}
	return nil, false, NewAccessorError(c.Name, c.Type.String())
}

// PackagePrivate returns the package-private field access of the column,
// if the column uses one.
func (c *Column) PackagePrivate() (*PackagePrivate, bool) {
	if c.Access == nil {
		return nil, false
	}
	pp, ok := c.Access.Field().(*PackagePrivate)
	return pp, ok
}
