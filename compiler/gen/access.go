package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/colflow/schema/field"
)

// Access is the resolved strategy for reading and writing one column on a
// model. The set of implementations is closed:
//
//	field level:   *Direct, *PackagePrivate, *PrivateAccessors
//	value wrapper: *BoxedBoolean, *PrimitiveBoolean, *Enum, *Blob, *TypeConverter
//
// Value wrappers convert between the declared type and the stored form and
// reach the field through an inner field-level access.
type Access interface {
	// Read returns the expression of the stored form of the field of model.
	Read(model jen.Code) jen.Code
	// Write returns the statement storing value, an expression of the
	// stored form, into the field of model.
	Write(model, value jen.Code) jen.Code
	// Storage returns the stored type of the column. It is nil when the
	// converter of the column is only known at run time.
	Storage() *field.TypeInfo
	// Field returns the field-level access, unwrapping value wrappers.
	Field() FieldAccess

	access()
}

// FieldAccess reaches a field without any conversion.
type FieldAccess interface {
	Access
	// Get returns the expression of the field value.
	Get(model jen.Code) jen.Code
	// Set returns the statement assigning value to the field.
	Set(model, value jen.Code) jen.Code
}

// Direct accesses an exported field: model.Name.
type Direct struct {
	Name string
	Type *field.TypeInfo
}

func (a *Direct) Get(model jen.Code) jen.Code { return jen.Add(model).Dot(a.Name) }
func (a *Direct) Set(model, value jen.Code) jen.Code {
	return jen.Add(model).Dot(a.Name).Op("=").Add(value)
}
func (a *Direct) Read(model jen.Code) jen.Code         { return a.Get(model) }
func (a *Direct) Write(model, value jen.Code) jen.Code { return a.Set(model, value) }
func (a *Direct) Storage() *field.TypeInfo             { return a.Type }
func (a *Direct) Field() FieldAccess                   { return a }
func (*Direct) access()                                {}

// PackagePrivate accesses a field through helper functions generated in
// the package of the model: GetUserName(model) and SetUserName(model, v).
type PackagePrivate struct {
	Model ModelRef
	Name  string
	Type  *field.TypeInfo
}

// Getter returns the name of the generated getter function.
func (a *PackagePrivate) Getter() string { return "Get" + a.Model.Name + exportName(a.Name) }

// Setter returns the name of the generated setter function.
func (a *PackagePrivate) Setter() string { return "Set" + a.Model.Name + exportName(a.Name) }

func (a *PackagePrivate) Get(model jen.Code) jen.Code {
	return jen.Qual(a.Model.PkgPath, a.Getter()).Call(model)
}
func (a *PackagePrivate) Set(model, value jen.Code) jen.Code {
	return jen.Qual(a.Model.PkgPath, a.Setter()).Call(model, value)
}
func (a *PackagePrivate) Read(model jen.Code) jen.Code         { return a.Get(model) }
func (a *PackagePrivate) Write(model, value jen.Code) jen.Code { return a.Set(model, value) }
func (a *PackagePrivate) Storage() *field.TypeInfo             { return a.Type }
func (a *PackagePrivate) Field() FieldAccess                   { return a }
func (*PackagePrivate) access()                                {}

// PrivateAccessors accesses an unexported field through its getter and
// setter methods: model.Name() and model.SetName(v).
type PrivateAccessors struct {
	Getter string
	Setter string
	Type   *field.TypeInfo
}

func (a *PrivateAccessors) Get(model jen.Code) jen.Code { return jen.Add(model).Dot(a.Getter).Call() }
func (a *PrivateAccessors) Set(model, value jen.Code) jen.Code {
	return jen.Add(model).Dot(a.Setter).Call(value)
}
func (a *PrivateAccessors) Read(model jen.Code) jen.Code         { return a.Get(model) }
func (a *PrivateAccessors) Write(model, value jen.Code) jen.Code { return a.Set(model, value) }
func (a *PrivateAccessors) Storage() *field.TypeInfo             { return a.Type }
func (a *PrivateAccessors) Field() FieldAccess                   { return a }
func (*PrivateAccessors) access()                                {}

// PrimitiveBoolean stores a bool as INTEGER 0/1.
type PrimitiveBoolean struct {
	Inner FieldAccess
	Type  *field.TypeInfo
}

func (a *PrimitiveBoolean) Read(model jen.Code) jen.Code {
	return jen.Qual(AdapterPkg, "BoolInt").Call(a.Inner.Get(model))
}
func (a *PrimitiveBoolean) Write(model, value jen.Code) jen.Code {
	return a.Inner.Set(model, jen.Qual(AdapterPkg, "IntBool").Types(TypeCode(a.Type)).Call(value))
}
func (a *PrimitiveBoolean) Storage() *field.TypeInfo { return field.Basic(field.TypeInt64) }
func (a *PrimitiveBoolean) Field() FieldAccess       { return a.Inner }
func (*PrimitiveBoolean) access()                    {}

// BoxedBoolean stores a *bool as a nullable INTEGER 0/1. A nil pointer is
// stored as NULL.
type BoxedBoolean struct {
	Inner FieldAccess
	Type  *field.TypeInfo
}

func (a *BoxedBoolean) Read(model jen.Code) jen.Code {
	return jen.Qual(AdapterPkg, "BoolPtrInt").Call(a.Inner.Get(model))
}
func (a *BoxedBoolean) Write(model, value jen.Code) jen.Code {
	return a.Inner.Set(model, jen.Qual(AdapterPkg, "IntPtrBool").Types(TypeCode(a.Type.Elem())).Call(value))
}
func (a *BoxedBoolean) Storage() *field.TypeInfo { return field.Ptr(field.TypeInt64) }
func (a *BoxedBoolean) Field() FieldAccess       { return a.Inner }
func (*BoxedBoolean) access()                    {}

// Enum stores a string-based enum as its string form.
type Enum struct {
	Inner FieldAccess
	Type  *field.TypeInfo
}

func (a *Enum) Read(model jen.Code) jen.Code {
	if a.Type.Nillable {
		return jen.Qual(AdapterPkg, "EnumPtrValue").Call(a.Inner.Get(model))
	}
	return jen.String().Call(a.Inner.Get(model))
}
func (a *Enum) Write(model, value jen.Code) jen.Code {
	if a.Type.Nillable {
		return a.Inner.Set(model, jen.Qual(AdapterPkg, "EnumPtr").Types(TypeCode(a.Type.Elem())).Call(value))
	}
	return a.Inner.Set(model, TypeCode(a.Type).Call(value))
}
func (a *Enum) Storage() *field.TypeInfo {
	return &field.TypeInfo{Type: field.TypeString, Nillable: a.Type.Nillable}
}
func (a *Enum) Field() FieldAccess { return a.Inner }
func (*Enum) access()              {}

// Blob stores an adapter.Blob as its bytes. A nil *adapter.Blob is stored as NULL.
type Blob struct {
	Inner FieldAccess
	Type  *field.TypeInfo
}

func (a *Blob) Read(model jen.Code) jen.Code {
	if a.Type.Nillable {
		return jen.Qual(AdapterPkg, "BlobPtrBytes").Call(a.Inner.Get(model))
	}
	return jen.Add(a.Inner.Get(model)).Dot("Bytes").Call()
}
func (a *Blob) Write(model, value jen.Code) jen.Code {
	if a.Type.Nillable {
		return a.Inner.Set(model, jen.Qual(AdapterPkg, "BlobPtr").Call(value))
	}
	return a.Inner.Set(model, jen.Qual(AdapterPkg, "NewBlob").Call(value))
}
func (a *Blob) Storage() *field.TypeInfo { return field.Basic(field.TypeBytes) }
func (a *Blob) Field() FieldAccess       { return a.Inner }
func (*Blob) access()                    {}

// TypeConverter stores the field through a converter. A nil Converter
// stands for a converter registered at run time with adapter.Register.
type TypeConverter struct {
	Inner     FieldAccess
	Converter *Converter
	Type      *field.TypeInfo
}

// Registered reports if the converter is known at generation time.
func (a *TypeConverter) Registered() bool { return a.Converter != nil }

func (a *TypeConverter) Read(model jen.Code) jen.Code {
	if a.Converter == nil {
		return jen.Qual(AdapterPkg, "ToDB").Call(a.Inner.Get(model))
	}
	return jen.Id(a.Converter.VarName()).Dot("DBValue").Call(a.Inner.Get(model))
}
func (a *TypeConverter) Write(model, value jen.Code) jen.Code {
	if a.Converter == nil {
		return a.Inner.Set(model, jen.Qual(AdapterPkg, "FromDB").Types(TypeCode(a.Type)).Call(value))
	}
	return a.Inner.Set(model, jen.Id(a.Converter.VarName()).Dot("ModelValue").Call(value))
}
func (a *TypeConverter) Storage() *field.TypeInfo {
	if a.Converter == nil {
		return nil
	}
	return a.Converter.DBType
}
func (a *TypeConverter) Field() FieldAccess { return a.Inner }
func (*TypeConverter) access()              {}

var (
	_ FieldAccess = (*Direct)(nil)
	_ FieldAccess = (*PackagePrivate)(nil)
	_ FieldAccess = (*PrivateAccessors)(nil)
	_ Access      = (*PrimitiveBoolean)(nil)
	_ Access      = (*BoxedBoolean)(nil)
	_ Access      = (*Enum)(nil)
	_ Access      = (*Blob)(nil)
	_ Access      = (*TypeConverter)(nil)
)
