package sql

import (
	"errors"
	"fmt"
	"path"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/colflow/compiler/gen"
)

// columnCode holds the fragments emitted for one column.
type columnCode struct {
	property, propertyCase    jen.Code
	values, containerValues   jen.Code
	bind, containerBind       jen.Code
	load, containerLoad       jen.Code
	autoInc, containerAutoInc jen.Code
	toModel, toContainer      jen.Code
	foreignKeys               []jen.Code
}

// fragments collects the errors of a sequence of emitter calls.
type fragments struct {
	errs []error
}

func (f *fragments) code(c jen.Code, err error) jen.Code {
	if err != nil {
		f.errs = append(f.errs, err)
		return jen.Null()
	}
	return c
}

func emitColumn(t *gen.Table, c *gen.Column, index int) (*columnCode, error) {
	var (
		f  fragments
		cc columnCode
	)
	cc.property = f.code(PropertyDecl(c, t.Name))
	cc.propertyCase = f.code(PropertyCase(c))
	cc.values = f.code(ContentValues(c, false))
	cc.containerValues = f.code(ContentValues(c, true))
	cc.bind = f.code(BindStatementAt(c, index, false))
	cc.containerBind = f.code(BindStatementAt(c, index, true))
	cc.load = f.code(LoadFromRow(c, false, true))
	cc.containerLoad = f.code(LoadFromRow(c, true, c.PutContainerDefault))
	cc.autoInc = f.code(UpdateAutoIncrement(c, false))
	cc.containerAutoInc = f.code(UpdateAutoIncrement(c, true))
	for _, ref := range c.References {
		cc.foreignKeys = append(cc.foreignKeys, f.code(ForeignKeyContainerPut(c, ref)))
	}
	var err error
	if cc.toModel, err = ToModel(c); err == nil {
		cc.toContainer, err = ModelToContainer(c)
	}
	switch {
	case errors.Is(err, gen.ErrUnresolvedAccessor):
		// Reported by gen.NewTable. Only this column is left out of the
		// container transfer.
		cc.toModel = jen.Commentf("%s is not transferred: %v.", c.Name, err)
		cc.toContainer = cc.toModel
	case err != nil:
		f.errs = append(f.errs, err)
	}
	if err := errors.Join(f.errs...); err != nil {
		return nil, fmt.Errorf("column %s: %w", c.Name, err)
	}
	return &cc, nil
}

// emitColumns emits the fragments of every column of t. Parameter indexes
// are assigned before the columns are emitted in parallel; the result is
// in declaration order.
func emitColumns(t *gen.Table) ([]*columnCode, error) {
	indexes := t.BindIndexes()
	codes := make([]*columnCode, len(t.Columns))
	errs := make([]error, len(t.Columns))
	var g errgroup.Group
	for i, c := range t.Columns {
		g.Go(func() error {
			codes[i], errs[i] = emitColumn(t, c, indexes[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return codes, errors.Join(errs...)
}

// genAdapter generates the adapter file of a table.
func genAdapter(h gen.GeneratorHelper, t *gen.Table) (*jen.File, error) {
	name := gen.PackageName(t)
	fail := func(msg string, err error) (*jen.File, error) {
		return nil, gen.NewGenerationError(t.Name, name+".go", msg, err)
	}
	codes, err := emitColumns(t)
	if err != nil {
		return fail("column emission failed", err)
	}
	insert, err := InsertSQL(t)
	if err != nil {
		return fail("insert statement", err)
	}
	create, err := CreateTableSQL(t)
	if err != nil {
		return fail("create statement", err)
	}
	indexes := CreateIndexSQL(t)

	f := h.NewFile(name)
	f.PackageComment(fmt.Sprintf("Package %s binds %s to the %s table.", name, t.Model.Name, t.Name))
	modelPtr := func() *jen.Statement { return jen.Op("*").Add(t.Model.Code()) }
	model := func() *jen.Statement { return jen.Id(modelVar).Add(modelPtr()) }
	container := func() *jen.Statement { return jen.Id(containerVar).Qual(gen.AdapterPkg, "Container") }
	each := func(pick func(*columnCode) jen.Code) func(*jen.Group) {
		return func(grp *jen.Group) {
			for _, cc := range codes {
				grp.Add(pick(cc))
			}
		}
	}

	f.Const().Defs(
		jen.Comment("Table holds the table name."),
		jen.Id("Table").Op("=").Lit(t.Name),
		jen.Comment("InsertQuery inserts one row. Parameters are bound by BindToStatement."),
		jen.Id("InsertQuery").Op("=").Lit(insert),
		jen.Comment("CreateTableQuery creates the table."),
		jen.Id("CreateTableQuery").Op("=").Lit(create),
	)
	if len(indexes) > 0 {
		f.Comment("CreateIndexQueries create the indexes of the table.")
		f.Var().Id("CreateIndexQueries").Op("=").Index().String().ValuesFunc(func(grp *jen.Group) {
			for _, q := range indexes {
				grp.Lit(q)
			}
		})
	}
	for _, cc := range codes {
		f.Add(cc.property)
	}
	for _, conv := range t.Converters() {
		f.Add(ConverterDecl(conv))
	}

	f.Comment("Property returns the column of a quoted column name, or nil.")
	f.Func().Id("Property").Params(jen.Id("name").String()).Qual(gen.AdapterPkg, "Column").Block(
		jen.Switch(jen.Id("name")).BlockFunc(each(func(cc *columnCode) jen.Code { return cc.propertyCase })),
		jen.Return(jen.Nil()),
	)

	f.Comment("BindToValues writes every column of model into values.")
	f.Func().Id("BindToValues").Params(jen.Id(valuesVar).Op("*").Qual(gen.AdapterPkg, "Values"), model()).
		BlockFunc(each(func(cc *columnCode) jen.Code { return cc.values }))

	f.Comment("BindToStatement binds every column of model to the parameters of InsertQuery.")
	f.Func().Id("BindToStatement").Params(jen.Id(stmtVar).Op("*").Qual(gen.AdapterPkg, "Statement"), model()).
		BlockFunc(each(func(cc *columnCode) jen.Code { return cc.bind }))

	f.Comment("LoadFromRow reads the columns present in row into model. Absent columns are reset.")
	f.Func().Id("LoadFromRow").Params(jen.Id(rowVar).Qual(gen.AdapterPkg, "Row"), model()).
		BlockFunc(each(func(cc *columnCode) jen.Code { return cc.load }))

	autoInc, hasAutoInc := t.AutoIncrement()
	if hasAutoInc {
		f.Comment("UpdateAutoIncrement sets the key assigned by the database.")
		f.Func().Id("UpdateAutoIncrement").Params(model(), jen.Id(idVar).Int64()).
			BlockFunc(each(func(cc *columnCode) jen.Code { return cc.autoInc }))
		if autoInc.QuickCheckAutoIncrement {
			check, err := QuickCheck(autoInc)
			if err != nil {
				return fail("quick check", err)
			}
			f.Comment("Exists reports if model was inserted, judged by its key.")
			f.Func().Id("Exists").Params(model()).Bool().Block(jen.Return(check))
		}
	}

	if h.FeatureEnabled(gen.FeatureContainer.Name) {
		genContainerFuncs(f, t, codes, model, container, each, hasAutoInc)
	}

	if fks := t.ForeignKeys(); len(fks) > 0 {
		f.Comment("PutForeignKeys writes the reference columns of model into the container of a related row.")
		f.Func().Id("PutForeignKeys").Params(model(), container()).
			BlockFunc(func(grp *jen.Group) {
				for _, cc := range codes {
					for _, code := range cc.foreignKeys {
						grp.Add(code)
					}
				}
			})
	}

	if h.FeatureEnabled(gen.FeatureInsert.Name) {
		genInsert(f, t, model, hasAutoInc)
	}
	return f, nil
}

func genContainerFuncs(
	f *jen.File,
	t *gen.Table,
	codes []*columnCode,
	model, container func() *jen.Statement,
	each func(func(*columnCode) jen.Code) func(*jen.Group),
	hasAutoInc bool,
) {
	f.Comment("BindContainerToValues writes every column of container into values.")
	f.Func().Id("BindContainerToValues").Params(jen.Id(valuesVar).Op("*").Qual(gen.AdapterPkg, "Values"), container()).
		BlockFunc(each(func(cc *columnCode) jen.Code { return cc.containerValues }))

	f.Comment("BindContainerToStatement binds every column of container to the parameters of InsertQuery.")
	f.Func().Id("BindContainerToStatement").Params(jen.Id(stmtVar).Op("*").Qual(gen.AdapterPkg, "Statement"), container()).
		BlockFunc(each(func(cc *columnCode) jen.Code { return cc.containerBind }))

	f.Comment("LoadContainerFromRow reads the columns present in row into container.")
	f.Func().Id("LoadContainerFromRow").Params(jen.Id(rowVar).Qual(gen.AdapterPkg, "Row"), container()).
		BlockFunc(each(func(cc *columnCode) jen.Code { return cc.containerLoad }))

	if hasAutoInc {
		f.Comment("UpdateContainerAutoIncrement sets the key assigned by the database.")
		f.Func().Id("UpdateContainerAutoIncrement").Params(container(), jen.Id(idVar).Int64()).
			BlockFunc(each(func(cc *columnCode) jen.Code { return cc.containerAutoInc }))
	}

	f.Comment("ToModel returns the model held by container.")
	f.Func().Id("ToModel").Params(container()).Op("*").Add(t.Model.Code()).BlockFunc(func(grp *jen.Group) {
		grp.Id(modelVar).Op(":=").Op("&").Add(t.Model.Code()).Values()
		for _, cc := range codes {
			grp.Add(cc.toModel)
		}
		grp.Return(jen.Id(modelVar))
	})

	f.Comment("ToContainer writes every column of model into container.")
	f.Func().Id("ToContainer").Params(model(), container()).
		BlockFunc(each(func(cc *columnCode) jen.Code { return cc.toContainer }))
}

func genInsert(f *jen.File, t *gen.Table, model func() *jen.Statement, hasAutoInc bool) {
	ctx := jen.Id("ctx").Qual("context", "Context")
	db := jen.Id("db").Qual(gen.AdapterPkg, "Execer")
	f.Comment("Insert inserts model with db.")
	f.Func().Id("Insert").Params(ctx, db, model()).Error().BlockFunc(func(grp *jen.Group) {
		grp.Id(stmtVar).Op(":=").Qual(gen.AdapterPkg, "NewStatement").Call(jen.Lit(len(t.InsertColumns())))
		grp.Id("BindToStatement").Call(jen.Id(stmtVar), jen.Id(modelVar))
		if !hasAutoInc {
			grp.List(jen.Id("_"), jen.Err()).Op(":=").Id(stmtVar).Dot("Exec").Call(jen.Id("ctx"), jen.Id("db"), jen.Id("InsertQuery"))
			grp.Return(jen.Err())
			return
		}
		grp.List(jen.Id("res"), jen.Err()).Op(":=").Id(stmtVar).Dot("Exec").Call(jen.Id("ctx"), jen.Id("db"), jen.Id("InsertQuery"))
		grp.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err()))
		grp.List(jen.Id(idVar), jen.Err()).Op(":=").Id("res").Dot("LastInsertId").Call()
		grp.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err()))
		grp.Id("UpdateAutoIncrement").Call(jen.Id(modelVar), jen.Id(idVar))
		grp.Return(jen.Nil())
	})
}

// genHelpers generates the getter and setter functions of the
// package-private columns of t, in the model package. It returns nil when
// no column needs them.
func genHelpers(h gen.GeneratorHelper, t *gen.Table) (*jen.File, error) {
	if !t.PackagePrivate() {
		return nil, nil
	}
	pkg := t.Model.PkgName
	if pkg == "" {
		pkg = path.Base(t.Model.PkgPath)
	}
	f := h.NewFilePath(t.Model.PkgPath, pkg)
	var errs []error
	for _, c := range t.Columns {
		codes, err := PackageHelpers(c, t.Model)
		if err != nil {
			errs = append(errs, fmt.Errorf("column %s: %w", c.Name, err))
			continue
		}
		for _, code := range codes {
			f.Add(code)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, gen.NewGenerationError(t.Name, gen.PackageName(t)+"_colflow.go", "helper emission failed", err)
	}
	return f, nil
}

// genSchema generates the schema package: the DDL of every table and a
// Create function executing it.
func genSchema(h gen.GeneratorHelper, tables []*gen.Table) (*jen.File, error) {
	var (
		stmts []string
		errs  []error
	)
	for _, t := range tables {
		create, err := CreateTableSQL(t)
		if err != nil {
			errs = append(errs, fmt.Errorf("table %s: %w", t.Name, err))
			continue
		}
		stmts = append(stmts, create)
		stmts = append(stmts, CreateIndexSQL(t)...)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, gen.NewGenerationError("", "schema.go", "schema emission failed", err)
	}
	f := h.NewFile("schema")
	f.PackageComment("Package schema creates the tables of the generated adapters.")
	f.Comment("Statements holds the CREATE statements of every table, in table order.")
	f.Var().Id("Statements").Op("=").Index().String().ValuesFunc(func(grp *jen.Group) {
		for _, s := range stmts {
			grp.Lit(s)
		}
	})
	f.Comment("Create executes Statements with db.")
	f.Func().Id("Create").Params(jen.Id("ctx").Qual("context", "Context"), jen.Id("db").Qual(gen.AdapterPkg, "Execer")).Error().Block(
		jen.For(jen.List(jen.Id("_"), jen.Id("s")).Op(":=").Range().Id("Statements")).Block(
			jen.If(
				jen.List(jen.Id("_"), jen.Err()).Op(":=").Id("db").Dot("ExecContext").Call(jen.Id("ctx"), jen.Id("s")),
				jen.Err().Op("!=").Nil(),
			).Block(jen.Return(jen.Err())),
		),
		jen.Return(jen.Nil()),
	)
	return f, nil
}
