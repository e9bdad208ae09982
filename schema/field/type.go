package field

import (
	"strings"
)

// A Type represents a field kind as seen by the column compiler.
type Type uint8

// List of field kinds.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeInt
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUint
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	TypeFloat32
	TypeFloat64
	TypeString
	TypeBytes
	TypeTime
	TypeEnum
	TypeBlob
	TypeOther
	endTypes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeBool:    "bool",
	TypeInt:     "int",
	TypeInt8:    "int8",
	TypeInt16:   "int16",
	TypeInt32:   "int32",
	TypeInt64:   "int64",
	TypeUint:    "uint",
	TypeUint8:   "uint8",
	TypeUint16:  "uint16",
	TypeUint32:  "uint32",
	TypeUint64:  "uint64",
	TypeFloat32: "float32",
	TypeFloat64: "float64",
	TypeString:  "string",
	TypeBytes:   "[]byte",
	TypeTime:    "time.Time",
	TypeEnum:    "string",
	TypeBlob:    "Blob",
	TypeOther:   "other",
}

// String returns the Go name of the predeclared type backing the kind.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the given type if known type.
func (t Type) Valid() bool { return t > TypeInvalid && t < endTypes }

// Integer reports if the given type is an integral type.
func (t Type) Integer() bool { return t >= TypeInt && t <= TypeUint64 }

// Float reports if the given type is a floating point type.
func (t Type) Float() bool { return t == TypeFloat32 || t == TypeFloat64 }

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool { return t.Integer() || t.Float() }

// TypeInfo describes the declared Go type of a field.
//
// A nillable type is the pointer ("boxed") form of its kind, e.g. *bool
// for TypeBool. Array marks arrays and non-byte slices, and Generic marks
// parameterized shapes (generic instantiations, maps, channels, funcs and
// interfaces). Neither of them can be stored in a single column.
type TypeInfo struct {
	Type     Type
	Ident    string
	PkgPath  string
	PkgName  string
	Nillable bool
	Array    bool
	Generic  bool
}

// Named reports if the type is a named (non-predeclared) type.
func (t TypeInfo) Named() bool { return t.Ident != "" }

// Boxed reports if the type is the pointer form of its kind.
func (t TypeInfo) Boxed() bool { return t.Nillable }

// Primitive reports if the type is a non-pointer predeclared or named basic type.
func (t TypeInfo) Primitive() bool {
	return !t.Nillable && !t.Array && !t.Generic && (t.Type == TypeBool || t.Type.Numeric() || t.Type == TypeString)
}

// Elem returns the non-pointer form of the type.
func (t TypeInfo) Elem() *TypeInfo {
	t.Nillable = false
	return &t
}

// Equal reports if the two types describe the same declared type.
func (t TypeInfo) Equal(o *TypeInfo) bool {
	if o == nil {
		return false
	}
	return t.Type == o.Type && t.Ident == o.Ident && t.PkgPath == o.PkgPath &&
		t.Nillable == o.Nillable && t.Array == o.Array && t.Generic == o.Generic
}

// String returns the Go spelling of the type, e.g. "*int64" or "models.Status".
func (t TypeInfo) String() string {
	var b strings.Builder
	if t.Nillable {
		b.WriteByte('*')
	}
	if t.Array {
		b.WriteString("[]")
	}
	switch {
	case t.Ident != "" && t.pkgName() != "":
		b.WriteString(t.pkgName())
		b.WriteByte('.')
		b.WriteString(t.Ident)
	case t.Ident != "":
		b.WriteString(t.Ident)
	default:
		b.WriteString(t.Type.String())
	}
	return b.String()
}

func (t TypeInfo) pkgName() string {
	if t.PkgName != "" {
		return t.PkgName
	}
	if t.PkgPath == "" {
		return ""
	}
	return t.PkgPath[strings.LastIndexByte(t.PkgPath, '/')+1:]
}

// Basic returns the TypeInfo of a predeclared kind.
func Basic(t Type) *TypeInfo { return &TypeInfo{Type: t} }

// Ptr returns the pointer form of the predeclared kind.
func Ptr(t Type) *TypeInfo { return &TypeInfo{Type: t, Nillable: true} }

// Time returns the TypeInfo of time.Time.
func Time() *TypeInfo {
	return &TypeInfo{Type: TypeTime, Ident: "Time", PkgPath: "time"}
}

// Named returns the TypeInfo of a named type with the given underlying kind.
func Named(t Type, pkgPath, ident string) *TypeInfo {
	return &TypeInfo{Type: t, Ident: ident, PkgPath: pkgPath}
}
