package dialect

import (
	"strings"

	"ariga.io/atlas/sql/schema"

	"github.com/syssam/colflow/schema/field"
)

// SQLite is the name of the dialect targeted by the emitted code.
const SQLite = "sqlite3"

// Storage class names of SQLite.
const (
	TypeInteger  = "INTEGER"
	TypeReal     = "REAL"
	TypeText     = "TEXT"
	TypeBlob     = "BLOB"
	TypeDateTime = "DATETIME"
)

// ColumnType returns the column type of a declared Go type that can be
// stored without a converter. Pointer types map like their element type.
func ColumnType(t *field.TypeInfo) (schema.Type, bool) {
	if t == nil || t.Array || t.Generic {
		return nil, false
	}
	switch {
	case t.Type == field.TypeBool:
		return &schema.BoolType{T: TypeInteger}, true
	case t.Type.Integer():
		return &schema.IntegerType{T: TypeInteger, Unsigned: t.Type >= field.TypeUint}, true
	case t.Type.Float():
		return &schema.FloatType{T: TypeReal}, true
	case t.Type == field.TypeString:
		return &schema.StringType{T: TypeText}, true
	case t.Type == field.TypeBytes:
		return &schema.BinaryType{T: TypeBlob}, true
	case t.Type == field.TypeTime:
		return &schema.TimeType{T: TypeDateTime}, true
	}
	return nil, false
}

// Native reports if the type has a native column type.
func Native(t *field.TypeInfo) bool {
	_, ok := ColumnType(t)
	return ok
}

// TypeName returns the SQL spelling of a column type.
func TypeName(t schema.Type) string {
	switch t := t.(type) {
	case *schema.BoolType:
		return strings.ToUpper(t.T)
	case *schema.IntegerType:
		return strings.ToUpper(t.T)
	case *schema.FloatType:
		return strings.ToUpper(t.T)
	case *schema.StringType:
		return strings.ToUpper(t.T)
	case *schema.BinaryType:
		return strings.ToUpper(t.T)
	case *schema.TimeType:
		return strings.ToUpper(t.T)
	}
	return ""
}

// Quote quotes an SQL identifier with backticks. Already quoted
// identifiers are returned unchanged.
func Quote(ident string) string {
	if len(ident) >= 2 && ident[0] == '`' && ident[len(ident)-1] == '`' {
		return ident
	}
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}
