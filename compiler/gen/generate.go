package gen

import (
	"context"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
)

// Generator writes the generated files of a set of tables. Every file is
// produced by the configured dialect; the generator only orchestrates
// parallel generation and writes.
type Generator struct {
	cfg     *Config
	tables  []*Table
	workers int
	writer  *Writer

	// Dialect generator for database-specific code.
	dialect TableGenerator

	// Optional interface implementations detected at runtime.
	helperGen HelperGenerator
	schemaGen SchemaGenerator
}

// NewGenerator creates a generator of the given tables.
// You must call WithDialect() to set a dialect before calling Generate().
//
// Example:
//
//	import "github.com/syssam/colflow/compiler/gen/sql"
//
//	g := gen.NewGenerator(cfg, tables)
//	g.WithDialect(sql.NewDialect(g))
//	g.Generate(ctx)
func NewGenerator(cfg *Config, tables []*Table) *Generator {
	if cfg == nil {
		cfg = &Config{}
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Generator{
		cfg:     cfg,
		tables:  tables,
		workers: workers,
		writer:  NewWriter(),
	}
}

// WithDialect sets the dialect generator. Additional capabilities are
// detected via HelperGenerator and SchemaGenerator.
func (g *Generator) WithDialect(d TableGenerator) *Generator {
	if d != nil {
		g.dialect = d
		if hg, ok := d.(HelperGenerator); ok {
			g.helperGen = hg
		}
		if sg, ok := d.(SchemaGenerator); ok {
			g.schemaGen = sg
		}
	}
	return g
}

// Config returns the configuration of the generator.
func (g *Generator) Config() *Config { return g.cfg }

// Metrics returns the metrics of the files written so far.
func (g *Generator) Metrics() WriterMetrics { return g.writer.Metrics() }

// Generate generates all files with parallel execution.
// Returns an error if no dialect has been set via WithDialect() or the
// target directory is missing.
func (g *Generator) Generate(ctx context.Context) error {
	if g.dialect == nil {
		return NewConfigError("Dialect", nil, "no dialect set: call WithDialect() before Generate()")
	}
	if g.cfg.Target == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}

	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)

	for _, t := range g.tables {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := g.dialect.GenAdapter(t)
			if err != nil {
				return err
			}
			dir := PackageName(t)
			return g.writeFile(t.Name, f, filepath.Join(g.cfg.Target, dir), dir+".go")
		})

		if g.helperGen != nil && t.PackagePrivate() {
			errg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				f, err := g.helperGen.GenHelpers(t)
				if err != nil || f == nil {
					return err
				}
				if t.ModelDir == "" {
					return NewGenerationError(t.Name, "", "package-private table without model directory", nil)
				}
				return g.writeFile(t.Name, f, t.ModelDir, PackageName(t)+"_colflow.go")
			})
		}
	}

	if g.schemaGen != nil && g.FeatureEnabled(FeatureSchema.Name) {
		errg.Go(func() error {
			f, err := g.schemaGen.GenSchema(g.tables)
			if err != nil {
				return err
			}
			return g.writeFile("", f, filepath.Join(g.cfg.Target, "schema"), "schema.go")
		})
	}

	return errg.Wait()
}

func (g *Generator) writeFile(table string, f *jen.File, dir, name string) error {
	if f == nil {
		return nil
	}
	if err := g.writer.Write(f, filepath.Join(dir, name)); err != nil {
		return NewGenerationError(table, name, "write failed", err)
	}
	return nil
}

// PackageName returns the name of the adapter package of t: the lower
// cased model name.
func PackageName(t *Table) string {
	return strings.ToLower(t.Model.Name)
}

// NewFile implements GeneratorHelper.
func (g *Generator) NewFile(pkg string) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment(g.header())
	return f
}

// NewFilePath implements GeneratorHelper.
func (g *Generator) NewFilePath(pkgPath, pkg string) *jen.File {
	f := jen.NewFilePathName(pkgPath, pkg)
	f.HeaderComment(g.header())
	return f
}

// PackagePath implements GeneratorHelper.
func (g *Generator) PackagePath(t *Table) string {
	return path.Join(g.cfg.Package, PackageName(t))
}

// FeatureEnabled implements GeneratorHelper. Unknown features are
// reported as disabled.
func (g *Generator) FeatureEnabled(name string) bool {
	ok, err := g.cfg.FeatureEnabled(name)
	return err == nil && ok
}

func (g *Generator) header() string {
	if g.cfg.Header != "" {
		return g.cfg.Header
	}
	return DefaultHeader
}

var _ GeneratorHelper = (*Generator)(nil)
