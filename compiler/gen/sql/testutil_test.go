package sql

import (
	"fmt"
	"path"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/require"

	"github.com/syssam/colflow/compiler/gen"
	"github.com/syssam/colflow/schema/field"
)

const modelsPkg = "example.com/app/models"

var (
	userModel  = gen.ModelRef{PkgPath: modelsPkg, Name: "User"}
	statusType = field.Named(field.TypeEnum, modelsPkg, "Status")
	moneyType  = field.Named(field.TypeOther, "example.com/app/money", "Money")
	blobType   = field.Named(field.TypeBlob, gen.AdapterPkg, "Blob")

	// statusCode stores models.Status as an INTEGER code.
	statusCode = &gen.Converter{
		Name:      "StatusCode",
		PkgPath:   modelsPkg,
		ModelType: statusType,
		DBType:    field.Basic(field.TypeInt64),
	}
	// portText stores uint16 ports as TEXT. It serves every uint16 field.
	portText = &gen.Converter{
		Name:      "PortText",
		PkgPath:   modelsPkg,
		ModelType: field.Basic(field.TypeUint16),
		DBType:    field.Basic(field.TypeString),
	}
	// flagText stores a bool as "Y" or "N". Fields opt in by name.
	flagText = &gen.Converter{
		Name:      "FlagText",
		PkgPath:   modelsPkg,
		ModelType: field.Basic(field.TypeBool),
		DBType:    field.Basic(field.TypeString),
	}
)

func registry() *gen.Registry { return gen.NewRegistry(statusCode, portText, flagText) }

// mockHelper implements gen.GeneratorHelper with configurable feature flags.
type mockHelper struct {
	pkg      string
	features map[string]bool
}

func newMockHelper() *mockHelper {
	return &mockHelper{
		pkg: "example.com/app/db",
		features: map[string]bool{
			gen.FeatureInsert.Name:    true,
			gen.FeatureContainer.Name: true,
		},
	}
}

func (m *mockHelper) withFeatures(enabled bool, features ...string) *mockHelper {
	for _, f := range features {
		m.features[f] = enabled
	}
	return m
}

func (m *mockHelper) NewFile(pkg string) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment(gen.DefaultHeader)
	return f
}

func (m *mockHelper) NewFilePath(pkgPath, pkg string) *jen.File {
	f := jen.NewFilePathName(pkgPath, pkg)
	f.HeaderComment(gen.DefaultHeader)
	return f
}

func (m *mockHelper) PackagePath(t *gen.Table) string {
	return path.Join(m.pkg, gen.PackageName(t))
}

func (m *mockHelper) FeatureEnabled(name string) bool { return m.features[name] }

// Ensure mockHelper implements gen.GeneratorHelper.
var _ gen.GeneratorHelper = (*mockHelper)(nil)

// render renders a code fragment for assertions.
func render(c jen.Code) string {
	return fmt.Sprintf("%#v", c)
}

// renderFile renders a generated file.
func renderFile(t *testing.T, f *jen.File) string {
	t.Helper()
	require.NotNil(t, f)
	return fmt.Sprintf("%#v", f)
}

func desc(name string, typ *field.TypeInfo) *field.Descriptor {
	return &field.Descriptor{Name: name, Type: typ}
}

func autoIncrement(name string, quickCheck bool) *field.Descriptor {
	d := desc(name, field.Basic(field.TypeInt64))
	d.Annotations.PrimaryKey = &field.PrimaryKey{AutoIncrement: true, QuickCheck: quickCheck}
	return d
}

func named(d *field.Descriptor, column string) *field.Descriptor {
	if d.Annotations.Column == nil {
		d.Annotations.Column = &field.Column{Length: -1}
	}
	d.Annotations.Column.Name = column
	return d
}

// newColumn builds a column of the user model with Direct field access.
func newColumn(t *testing.T, d *field.Descriptor) *gen.Column {
	t.Helper()
	return newPolicyColumn(t, d, gen.TablePolicy{Model: userModel})
}

func newPolicyColumn(t *testing.T, d *field.Descriptor, policy gen.TablePolicy) *gen.Column {
	t.Helper()
	c, err := gen.NewColumn(d, policy, registry(), nil)
	require.NoError(t, err)
	return c
}

// newTable builds the users table of the given fields.
func newTable(t *testing.T, ds ...*field.Descriptor) *gen.Table {
	t.Helper()
	return newPolicyTable(t, gen.TablePolicy{}, ds...)
}

func newPolicyTable(t *testing.T, policy gen.TablePolicy, ds ...*field.Descriptor) *gen.Table {
	t.Helper()
	tbl, err := gen.NewTable("", userModel, ds, policy, registry(), nil)
	require.NoError(t, err)
	return tbl
}
