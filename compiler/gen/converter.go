package gen

import (
	"maps"
	"slices"

	"github.com/syssam/colflow/dialect"
	"github.com/syssam/colflow/schema/field"
)

// AdapterPkg is the import path of the runtime package generated code
// compiles against.
const AdapterPkg = "github.com/syssam/colflow/adapter"

// Converter describes a type converter: a Go type with the methods
//
//	DBValue(M) D
//	ModelValue(D) M
//
// where M is the model type and D the database type.
type Converter struct {
	// Name is the Go type name of the converter.
	Name string
	// PkgPath is the import path of the package declaring the converter.
	PkgPath string
	// ModelType is the type the converter reads and writes on the model.
	ModelType *field.TypeInfo
	// DBType is the type stored in the database.
	DBType *field.TypeInfo
}

// VarName returns the name of the package variable holding the converter
// in generated code.
func (c *Converter) VarName() string { return "typeConverter" + c.Name }

// ConverterRegistry resolves converters by model type or by name.
type ConverterRegistry interface {
	// Lookup returns the converter registered for the model type t.
	Lookup(t *field.TypeInfo) (*Converter, bool)
	// ByName returns the converter with the given name.
	ByName(name string) (*Converter, bool)
}

// UUIDConverter is the built-in converter storing uuid.UUID as TEXT.
var UUIDConverter = &Converter{
	Name:      "UUIDConverter",
	PkgPath:   AdapterPkg,
	ModelType: field.Named(field.TypeOther, "github.com/google/uuid", "UUID"),
	DBType:    field.Basic(field.TypeString),
}

// Registry is a ConverterRegistry. The zero value is an empty registry.
type Registry struct {
	byName map[string]*Converter
}

// NewRegistry returns a registry holding the built-in converters and the
// given ones. It panics if a converter is invalid.
func NewRegistry(cs ...*Converter) *Registry {
	r := &Registry{}
	for _, c := range append([]*Converter{UUIDConverter}, cs...) {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds c to the registry, replacing a converter with the same name.
// The database type of a converter must have a native column type.
func (r *Registry) Register(c *Converter) error {
	switch {
	case c == nil || c.Name == "":
		return NewConfigError("Converter", nil, "converter must have a name")
	case c.ModelType == nil || c.DBType == nil:
		return NewConfigError("Converter", c.Name, "converter must declare its model and database types")
	case !dialect.Native(c.DBType):
		return NewConfigError("Converter", c.Name, "database type "+c.DBType.String()+" has no column type")
	}
	if r.byName == nil {
		r.byName = make(map[string]*Converter)
	}
	r.byName[c.Name] = c
	return nil
}

// Lookup implements ConverterRegistry. The model type must match exactly.
// When several converters serve the same type, the first by name wins.
func (r *Registry) Lookup(t *field.TypeInfo) (*Converter, bool) {
	if r == nil || t == nil {
		return nil, false
	}
	for _, c := range r.Converters() {
		if c.ModelType.Equal(t) {
			return c, true
		}
	}
	return nil, false
}

// ByName implements ConverterRegistry.
func (r *Registry) ByName(name string) (*Converter, bool) {
	if r == nil {
		return nil, false
	}
	c, ok := r.byName[name]
	return c, ok
}

// Converters returns the registered converters sorted by name.
func (r *Registry) Converters() []*Converter {
	names := slices.Sorted(maps.Keys(r.byName))
	cs := make([]*Converter, len(names))
	for i, n := range names {
		cs[i] = r.byName[n]
	}
	return cs
}

var _ ConverterRegistry = (*Registry)(nil)
