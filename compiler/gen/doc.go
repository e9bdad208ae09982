// Package gen builds the column metadata of mapped structs and drives code
// generation from it.
//
// # Architecture
//
// The pipeline follows this flow:
//
//	Go package with tagged structs
//	        ↓
//	   compiler/load (field.Descriptor per struct field)
//	        ↓
//	   NewColumn / Resolve (Column + Access strategy)
//	        ↓
//	   NewTable (columns in declaration order, bind indexes)
//	        ↓
//	   TableGenerator (dialect emitters, gen/sql)
//	        ↓
//	   Generated adapter packages
//
// # Key Types
//
//   - Column: immutable metadata of one mapped field
//   - Access: how generated code reads and writes the field on a model
//   - Table: the columns of one struct, plus unique and index groups
//   - Converter / Registry: custom type converters by model type or name
//   - Reporter: sink of configuration errors (LogReporter, Diagnostics)
//   - Config: global configuration for code generation
//
// # Access Resolution
//
// Resolve picks one strategy per field. Field-level strategies (Direct,
// PackagePrivate, PrivateAccessors) reach the field itself; value
// wrappers (PrimitiveBoolean, BoxedBoolean, Enum, Blob, TypeConverter)
// convert between the field type and its stored form around a field-level
// strategy. Emitters only talk to the Access interface.
//
// # Error Handling
//
// Column configuration errors are *ColumnError, *ConverterError and
// *AccessorError; they match ErrInvalidColumn, ErrConverterMismatch and
// ErrUnresolvedAccessor with errors.Is. Inconsistent input that no user
// annotation can cause is an *InternalError.
//
//	t, err := gen.NewTable("", model, fields, policy, reg, &gen.LogReporter{})
//	if gen.IsConverterError(err) {
//	    // a converter does not match its column
//	}
//
// A failing column is reported and skipped; the rest of the table is
// still built.
//
// # Configuration
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("./db"),
//	    gen.WithPackage("github.com/org/project/db"),
//	    gen.WithFeatures(gen.FeatureSchema),
//	)
//
// # Usage
//
//	import "github.com/syssam/colflow/compiler/gen/sql"
//
//	metrics, err := sql.Generate(ctx, cfg, tables)
//
// Or manually configure the generator:
//
//	g := gen.NewGenerator(cfg, tables)
//	g.WithDialect(sql.NewDialect(g))
//	err := g.Generate(ctx)
//
// # Features
//
//   - sql/insert: Insert function in every adapter (default on)
//   - container: container bind, load and transfer functions (default on)
//   - sql/schema: schema package creating every table and index
package gen
