// Package load reads mapped struct types from a Go package.
//
// Fields are annotated with struct tags:
//
//	type User struct {
//		_      struct{}    `colflow:"users,use_is"`
//		ID     int64       `db:"id,autoincrement,quickcheck"`
//		Email  string      `db:"email,notnull,unique,collate=NOCASE,on_unique=REPLACE"`
//		Name   string      `db:"name,length=64,index"`
//		Owner  int64       `db:"owner_id,ref=id" container:"OWNER"`
//		Status Status      `db:",default='active'"`
//		Token  uuid.UUID   `db:",converter=UUIDConverter"`
//		Cache  []byte      `db:"-"`
//	}
//
// Exported fields are mapped unless tagged db:"-". Unexported fields are
// mapped when they carry a db tag or the table is package_private.
package load

import (
	"context"
	"errors"
	"fmt"
	"go/types"
	"log/slog"
	"path/filepath"
	"reflect"
	"slices"

	"golang.org/x/tools/go/packages"

	"github.com/syssam/colflow/compiler/gen"
	"github.com/syssam/colflow/schema/field"
)

// LoadMode is the information loaded from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedModule

// Config configures the loader.
type Config struct {
	// Path is the package pattern to load, e.g. "./models".
	Path string
	// Dir is the working directory of the build tool.
	Dir string
	// Types names the struct types to load. When empty, every exported
	// struct with at least one db or colflow tag is loaded.
	Types []string
	// BuildFlags are passed to the build tool, e.g. "-tags=dev".
	BuildFlags []string
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Schema is the result of loading a package.
type Schema struct {
	// PkgPath and PkgName identify the loaded package.
	PkgPath string
	PkgName string
	// Dir is the directory of the package.
	Dir string
	// ModulePath and ModuleDir identify the enclosing module, if any.
	ModulePath string
	ModuleDir  string
	// Models holds the mapped structs, sorted by name.
	Models []*Model
	// Converters holds the converter types declared in the package.
	Converters []*gen.Converter
}

// Model is one mapped struct.
type Model struct {
	Name    string
	Options TableOptions
	Fields  []*field.Descriptor
}

// Ref returns the reference of the model in package s.
func (s *Schema) Ref(m *Model) gen.ModelRef {
	return gen.ModelRef{PkgPath: s.PkgPath, PkgName: s.PkgName, Name: m.Name}
}

// Package loads the package of cfg.Path and reads its mapped structs.
func Package(ctx context.Context, cfg *Config) (*Schema, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, gen.NewConfigError("Path", "", "missing package path")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pkgs, err := packages.Load(&packages.Config{
		Context:    ctx,
		Mode:       LoadMode,
		Dir:        cfg.Dir,
		BuildFlags: cfg.BuildFlags,
	}, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("colflow/load: loading package %q: %w", cfg.Path, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("colflow/load: pattern %q matched %d packages, expected 1", cfg.Path, len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		errs := make([]error, len(pkg.Errors))
		for i, e := range pkg.Errors {
			errs[i] = e
		}
		return nil, fmt.Errorf("colflow/load: package %q: %w", cfg.Path, errors.Join(errs...))
	}
	s := &Schema{PkgPath: pkg.PkgPath, PkgName: pkg.Name}
	if len(pkg.GoFiles) > 0 {
		s.Dir = filepath.Dir(pkg.GoFiles[0])
	}
	if pkg.Module != nil {
		s.ModulePath, s.ModuleDir = pkg.Module.Path, pkg.Module.Dir
	}
	logger.Debug("package loaded", "path", s.PkgPath, "dir", s.Dir)

	var errs []error
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		n, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}
		if conv, ok := converterOf(n); ok {
			logger.Debug("converter found", "name", conv.Name, "model", conv.ModelType, "db", conv.DBType)
			s.Converters = append(s.Converters, conv)
			continue
		}
		st, ok := n.Underlying().(*types.Struct)
		if !ok || !wanted(cfg.Types, tn, st) {
			continue
		}
		// A field with a bad tag is reported and left out; the rest of the
		// model is kept.
		m, err := newModel(tn.Name(), st)
		if err != nil {
			errs = append(errs, err)
		}
		s.Models = append(s.Models, m)
	}
	for _, name := range cfg.Types {
		if !slices.ContainsFunc(s.Models, func(m *Model) bool { return m.Name == name }) {
			errs = append(errs, fmt.Errorf("colflow/load: struct type %q not found in %s", name, s.PkgPath))
		}
	}
	return s, errors.Join(errs...)
}

func wanted(names []string, tn *types.TypeName, st *types.Struct) bool {
	if len(names) > 0 {
		return slices.Contains(names, tn.Name())
	}
	if !tn.Exported() {
		return false
	}
	for i := range st.NumFields() {
		tag := reflect.StructTag(st.Tag(i))
		if _, ok := tag.Lookup(TagDB); ok {
			return true
		}
		if _, ok := tag.Lookup(TagTable); ok {
			return true
		}
	}
	return false
}

func newModel(name string, st *types.Struct) (*Model, error) {
	m := &Model{Name: name}
	var errs []error
	for i := range st.NumFields() {
		tag := reflect.StructTag(st.Tag(i))
		if opts, ok := tag.Lookup(TagTable); ok && st.Field(i).Name() == "_" {
			o, err := parseTableTag(opts)
			if err != nil {
				errs = append(errs, fmt.Errorf("colflow/load: %s: %w", name, err))
			}
			m.Options = o
		}
	}
	for i := range st.NumFields() {
		v := st.Field(i)
		tag := reflect.StructTag(st.Tag(i))
		if v.Name() == "_" || v.Embedded() {
			continue
		}
		_, tagged := tag.Lookup(TagDB)
		if !v.Exported() && !tagged && !m.Options.PackagePrivate {
			continue
		}
		d := &field.Descriptor{Name: v.Name(), Type: typeInfo(v.Type()), Private: !v.Exported()}
		skip, err := parseFieldTags(d, tag)
		switch {
		case err != nil:
			errs = append(errs, gen.NewColumnError(v.Name(), d.Type.String(), "invalid struct tag", err))
		case !skip:
			m.Fields = append(m.Fields, d)
		}
	}
	return m, errors.Join(errs...)
}

// Tables builds the tables of every model. Column errors are sent to rep
// and joined into the returned error; the tables are returned with the
// failing columns skipped.
func (s *Schema) Tables(reg gen.ConverterRegistry, rep gen.Reporter) ([]*gen.Table, error) {
	var errs []error
	tables := make([]*gen.Table, 0, len(s.Models))
	for _, m := range s.Models {
		ref := s.Ref(m)
		policy := gen.TablePolicy{
			PackagePrivate:          m.Options.PackagePrivate,
			UseIsForPrivateBooleans: m.Options.UseIsForPrivateBooleans,
			Model:                   ref,
		}
		t, err := gen.NewTable(m.Options.Name, ref, m.Fields, policy, reg, rep)
		if err != nil {
			errs = append(errs, err)
		}
		t.ModelDir = s.Dir
		tables = append(tables, t)
	}
	return tables, errors.Join(errs...)
}
