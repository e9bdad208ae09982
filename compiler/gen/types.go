package gen

import (
	"unicode/utf8"

	"github.com/dave/jennifer/jen"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/colflow/schema/field"
)

// ModelRef identifies the Go struct type mapped to a table.
type ModelRef struct {
	PkgPath string
	// PkgName is the package name, when it differs from the last element
	// of PkgPath.
	PkgName string
	Name    string
}

// Code returns the qualified type of the model.
func (m ModelRef) Code() *jen.Statement { return jen.Qual(m.PkgPath, m.Name) }

// TablePolicy carries the table-level settings that influence access
// resolution.
type TablePolicy struct {
	// PackagePrivate makes every field reachable through helper functions
	// generated in the model package.
	PackagePrivate bool
	// UseIsForPrivateBooleans names the getter of an unexported bool field
	// IsName instead of Name.
	UseIsForPrivateBooleans bool
	// Model is the mapped struct.
	Model ModelRef
}

// Casers are stateful; each call gets its own.
func upper(s string) string { return cases.Upper(language.Und).String(s) }

// exportName returns name with its first letter upper-cased.
func exportName(name string) string {
	if name == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(name)
	return cases.Title(language.Und, cases.NoLower).String(name[:size]) + name[size:]
}

// TypeCode returns the Go type expression of t.
func TypeCode(t *field.TypeInfo) *jen.Statement {
	if t.Nillable {
		return jen.Op("*").Add(TypeCode(t.Elem()))
	}
	if t.Array {
		e := *t
		e.Array = false
		return jen.Index().Add(TypeCode(&e))
	}
	switch {
	case t.Ident != "" && t.PkgPath != "":
		return jen.Qual(t.PkgPath, t.Ident)
	case t.Ident != "":
		return jen.Id(t.Ident)
	case t.Type == field.TypeBytes:
		return jen.Index().Byte()
	case t.Type == field.TypeTime:
		return jen.Qual("time", "Time")
	case t.Type == field.TypeEnum:
		return jen.String()
	default:
		return jen.Id(t.Type.String())
	}
}

// ZeroValue returns the zero value expression of t.
func ZeroValue(t *field.TypeInfo) jen.Code {
	switch {
	case t.Nillable || t.Array || t.Type == field.TypeBytes:
		return jen.Nil()
	case t.Type == field.TypeBool:
		return jen.False()
	case t.Type.Numeric():
		return jen.Lit(0)
	case t.Type == field.TypeString || t.Type == field.TypeEnum:
		return jen.Lit("")
	default:
		return TypeCode(t).Values()
	}
}

// accessors maps a kind to the name of its typed accessor and the type the
// accessor returns. Container.<Name>Value(key) and Row.<Name>Value(index)
// follow this naming.
var accessors = map[field.Type]struct {
	name string
	typ  *field.TypeInfo
}{
	field.TypeBool:    {"Bool", field.Basic(field.TypeBool)},
	field.TypeInt:     {"Int64", field.Basic(field.TypeInt64)},
	field.TypeInt8:    {"Int64", field.Basic(field.TypeInt64)},
	field.TypeInt16:   {"Int64", field.Basic(field.TypeInt64)},
	field.TypeInt32:   {"Int64", field.Basic(field.TypeInt64)},
	field.TypeInt64:   {"Int64", field.Basic(field.TypeInt64)},
	field.TypeUint:    {"Int64", field.Basic(field.TypeInt64)},
	field.TypeUint8:   {"Int64", field.Basic(field.TypeInt64)},
	field.TypeUint16:  {"Int64", field.Basic(field.TypeInt64)},
	field.TypeUint32:  {"Int64", field.Basic(field.TypeInt64)},
	field.TypeUint64:  {"Int64", field.Basic(field.TypeInt64)},
	field.TypeFloat32: {"Float64", field.Basic(field.TypeFloat64)},
	field.TypeFloat64: {"Float64", field.Basic(field.TypeFloat64)},
	field.TypeString:  {"String", field.Basic(field.TypeString)},
	field.TypeEnum:    {"String", field.Basic(field.TypeString)},
	field.TypeBytes:   {"Bytes", field.Basic(field.TypeBytes)},
	field.TypeTime:    {"Time", field.Time()},
}

// AccessorName returns the typed accessor name for values of type t,
// e.g. "Int64" for int32 and *int32.
func AccessorName(t *field.TypeInfo) (string, bool) {
	if t == nil || t.Array || t.Generic {
		return "", false
	}
	a, ok := accessors[t.Type]
	return a.name, ok
}

// TypedValue returns the expression reading a value of type t from src
// with its typed accessor: src.<Name>Value(arg). The result is converted
// to t when the accessor returns another type, and boxed with adapter.Ptr
// (or adapter.Nullable when present is not nil) for nillable types.
func TypedValue(t *field.TypeInfo, src, arg, present jen.Code) (jen.Code, bool) {
	name, ok := AccessorName(t)
	if !ok {
		return nil, false
	}
	elem := t.Elem()
	v := jen.Add(src).Dot(name + "Value").Call(arg)
	if !accessors[t.Type].typ.Equal(elem) {
		v = TypeCode(elem).Call(v)
	}
	switch {
	case !t.Nillable:
		return v, true
	case present != nil:
		return jen.Qual(AdapterPkg, "Nullable").Call(present, v), true
	default:
		return jen.Qual(AdapterPkg, "Ptr").Call(v), true
	}
}
