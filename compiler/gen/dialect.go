package gen

import "github.com/dave/jennifer/jen"

// TableGenerator generates the per-table adapter file.
// It is the minimum interface a dialect must implement.
type TableGenerator interface {
	// Name returns the dialect name (e.g., "sql").
	Name() string
	// GenAdapter generates the adapter file of a table
	// ({target}/{model}/{model}.go).
	GenAdapter(t *Table) (*jen.File, error)
}

// HelperGenerator generates files that belong to the model package, such
// as the accessor helpers of package-private tables.
// Dialects may implement it optionally.
type HelperGenerator interface {
	// GenHelpers generates the helper file of a table. It returns a nil
	// file when the table needs no helpers.
	GenHelpers(t *Table) (*jen.File, error)
}

// SchemaGenerator generates the schema package holding the DDL of every
// table. Dialects may implement it optionally.
type SchemaGenerator interface {
	// GenSchema generates {target}/schema/schema.go.
	GenSchema(tables []*Table) (*jen.File, error)
}

// DialectGenerator is a dialect that implements every generator interface.
//
//	┌──────────────────────────────────────────────┐
//	│                 Generator                    │
//	│  (orchestration: parallel writes, headers)   │
//	└──────────────────────┬───────────────────────┘
//	                       │ uses
//	                       ▼
//	┌──────────────────────────────────────────────┐
//	│  TableGenerator / HelperGenerator /          │
//	│  SchemaGenerator (implemented by gen/sql)    │
//	└──────────────────────────────────────────────┘
//
// Usage:
//
//	import "github.com/syssam/colflow/compiler/gen/sql"
//
//	g := gen.NewGenerator(cfg, tables)
//	g.WithDialect(sql.NewDialect(g))
//	err := g.Generate(ctx)
type DialectGenerator interface {
	TableGenerator
	HelperGenerator
	SchemaGenerator
}

// GeneratorHelper provides helper methods for dialect implementations.
// Generator implements this interface, allowing dialect packages to use
// the configuration without importing the full generator.
type GeneratorHelper interface {
	// NewFile creates a new Jennifer file with the standard header comment.
	NewFile(pkg string) *jen.File
	// NewFilePath creates a file of the package at pkgPath, which is
	// referenced unqualified inside the file.
	NewFilePath(pkgPath, pkg string) *jen.File
	// PackagePath returns the import path of the adapter package of t.
	PackagePath(t *Table) string
	// FeatureEnabled reports if the named feature is enabled.
	FeatureEnabled(name string) bool
}
