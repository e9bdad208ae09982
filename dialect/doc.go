// Package dialect holds the SQL dialect knowledge of the column compiler.
//
// The compiler targets SQLite storage classes. Every Go kind that the
// database/sql package can bind without a converter has a native column
// type:
//
//	bool                      INTEGER
//	int, int8 ... uint64      INTEGER
//	float32, float64          REAL
//	string                    TEXT
//	[]byte                    BLOB
//	time.Time                 DATETIME
//
// Column types are modeled with the ariga.io/atlas/sql/schema types so
// other tooling can consume them:
//
//	typ, ok := dialect.ColumnType(field.Basic(field.TypeInt64))
//	// typ == &schema.IntegerType{T: "INTEGER"}, ok == true
//	dialect.TypeName(typ) // "INTEGER"
//
// Identifiers are quoted with backticks:
//
//	dialect.Quote("order") // "`order`"
package dialect
