// Package field describes mapped struct fields for the colflow column compiler.
//
// A field is described by a Descriptor: its Go name, its declared type and
// the annotations attached to it. Descriptors are usually produced by the
// compiler/load package from struct tags, but they can be built by hand:
//
//	d := &field.Descriptor{
//	    Name: "Name",
//	    Type: field.Basic(field.TypeString),
//	    Annotations: field.Annotations{
//	        Column:  &field.Column{Name: "name", Length: 64, Collate: field.CollateNoCase},
//	        NotNull: &field.NotNull{},
//	    },
//	}
//
// # Types
//
// TypeInfo captures what the compiler needs to know about a declared type:
//
//	field.Basic(field.TypeInt64)                          // int64
//	field.Ptr(field.TypeBool)                             // *bool ("boxed" bool)
//	field.Time()                                          // time.Time
//	field.Named(field.TypeEnum, "example.com/m", "Status") // m.Status enum
//
// Array-shaped types cannot be stored in a column, and parameterized
// (Generic) types are mapped elsewhere, e.g. as relationships.
//
// # Annotations
//
// Each annotation is optional and independent:
//
//	Column       - column name, length, collation, default, custom converter
//	PrimaryKey   - primary key, optionally auto-increment
//	Unique       - UNIQUE constraint and unique groups
//	NotNull      - NOT NULL constraint
//	Index        - index groups (empty means GenericIndexGroup)
//	ContainerKey - alternate key of the container representation
//	ForeignKey   - referenced columns of a foreign-key column
package field
