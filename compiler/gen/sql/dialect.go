package sql

import (
	"context"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/colflow/compiler/gen"
)

// Generate is a convenience function to generate the SQL adapters of the
// given tables into cfg.Target.
//
// Example:
//
//	import "github.com/syssam/colflow/compiler/gen/sql"
//	err := sql.Generate(ctx, cfg, tables)
func Generate(ctx context.Context, cfg *gen.Config, tables []*gen.Table) (gen.WriterMetrics, error) {
	if cfg == nil || cfg.Target == "" {
		return gen.WriterMetrics{}, gen.NewConfigError("Target", nil, "missing target directory in config")
	}
	g := gen.NewGenerator(cfg, tables)
	g.WithDialect(NewDialect(g))
	err := g.Generate(ctx)
	return g.Metrics(), err
}

// Dialect implements gen.DialectGenerator for SQLite.
//
// Supported features:
//   - Adapter files binding models to statements, values and containers
//   - Helper functions for package-private models
//   - CREATE TABLE / CREATE INDEX statements and the schema package
type Dialect struct {
	helper gen.GeneratorHelper
}

// NewDialect creates a new SQL dialect generator.
// The helper parameter should be a *gen.Generator.
func NewDialect(helper gen.GeneratorHelper) *Dialect {
	return &Dialect{helper: helper}
}

// Name returns the dialect name.
func (d *Dialect) Name() string {
	return "sql"
}

// GenAdapter generates the adapter file of t ({model}/{model}.go).
func (d *Dialect) GenAdapter(t *gen.Table) (*jen.File, error) {
	return genAdapter(d.helper, t)
}

// GenHelpers generates the accessor helpers of a package-private table,
// in the model package.
func (d *Dialect) GenHelpers(t *gen.Table) (*jen.File, error) {
	return genHelpers(d.helper, t)
}

// GenSchema generates the schema package (schema/schema.go).
func (d *Dialect) GenSchema(tables []*gen.Table) (*jen.File, error) {
	return genSchema(d.helper, tables)
}

// Compile-time interface assertion.
var _ gen.DialectGenerator = (*Dialect)(nil)
