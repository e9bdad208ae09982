package sql

import (
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/colflow/compiler/gen"
	"github.com/syssam/colflow/dialect"
	"github.com/syssam/colflow/schema/field"
)

// Names of the variables the emitted fragments refer to.
const (
	modelVar     = "model"
	containerVar = "container"
	valuesVar    = "values"
	stmtVar      = "stmt"
	rowVar       = "row"
	idVar        = "id"
	indexVar     = "index"
)

func checkAccess(c *gen.Column) error {
	if c.Access == nil {
		return gen.ErrNoAccess
	}
	return nil
}

// PropertyDecl emits the typed property of the column, named after the
// column name:
//
//	var FirstName = adapter.NewProperty[string]("users", "first_name")
//
// Boolean columns get an adapter.BoolProperty.
func PropertyDecl(c *gen.Column, table string) (jen.Code, error) {
	if err := checkAccess(c); err != nil {
		return nil, err
	}
	var init *jen.Statement
	if c.Type.Type == field.TypeBool {
		init = jen.Qual(gen.AdapterPkg, "NewBoolProperty").Call(jen.Lit(table), jen.Lit(c.ColumnName))
	} else {
		init = jen.Qual(gen.AdapterPkg, "NewProperty").Types(gen.TypeCode(c.Type.Elem())).Call(jen.Lit(table), jen.Lit(c.ColumnName))
	}
	return jen.Var().Id(c.PropertyName()).Op("=").Add(init), nil
}

// PropertyCase emits the branch of the property dispatch keyed by the
// quoted column name.
func PropertyCase(c *gen.Column) (jen.Code, error) {
	if err := checkAccess(c); err != nil {
		return nil, err
	}
	return jen.Case(jen.Lit(dialect.Quote(c.ColumnName))).Block(jen.Return(jen.Id(c.PropertyName()))), nil
}

// InsertColumnName returns the quoted column name of an insert statement.
func InsertColumnName(c *gen.Column) (string, error) {
	if err := checkAccess(c); err != nil {
		return "", err
	}
	return dialect.Quote(c.ColumnName), nil
}

// InsertPlaceholder returns the positional parameter of the column in an
// insert statement.
func InsertPlaceholder(*gen.Column) string { return "?" }

// ContentValues emits the statement writing the column into values, keyed
// by column name, from the model or the container.
func ContentValues(c *gen.Column, container bool) (jen.Code, error) {
	v, err := storedValue(c, container)
	if err != nil {
		return nil, err
	}
	return jen.Id(valuesVar).Dot("Put").Call(jen.Lit(c.ColumnName), v), nil
}

// BindStatement emits the statement binding the column at the cursor
// position and advances the cursor. An auto-increment primary key is not
// bound: the fragment is empty and the cursor does not move.
func BindStatement(c *gen.Column, cursor *gen.BindCursor, container bool) (jen.Code, error) {
	if err := checkAccess(c); err != nil {
		return nil, err
	}
	index, ok := cursor.Advance(c)
	if !ok {
		return jen.Null(), nil
	}
	return BindStatementAt(c, index, container)
}

// BindStatementAt emits the statement binding the column at a parameter
// index computed beforehand, e.g. by gen.Table.BindIndexes.
func BindStatementAt(c *gen.Column, index int, container bool) (jen.Code, error) {
	v, err := storedValue(c, container)
	if err != nil {
		return nil, err
	}
	if c.AutoIncrement || index < 1 {
		return jen.Null(), nil
	}
	return jen.Id(stmtVar).Dot("Bind").Call(jen.Lit(index), v), nil
}

// storedValue returns the stored form of the column, read from the model
// through the access strategy or from the container by key.
func storedValue(c *gen.Column, container bool) (jen.Code, error) {
	if err := checkAccess(c); err != nil {
		return nil, err
	}
	if container {
		if conv, ok := boundaryConverter(c); ok {
			key := jen.Lit(c.ContainerKey)
			var present jen.Code
			if c.Type.Nillable {
				present = jen.Id(containerVar).Dot("Has").Call(key)
			}
			v, _ := gen.TypedValue(c.Type, jen.Id(containerVar), key, present)
			return jen.Id(conv.VarName()).Dot("DBValue").Call(v), nil
		}
		return jen.Id(containerVar).Dot("Value").Call(jen.Lit(c.ContainerKey)), nil
	}
	return c.Access.Read(jen.Id(modelVar)), nil
}

// boundaryConverter returns the converter of a column whose container
// holds the declared form. Such a column is converted between the row and
// the container instead of between the container and the model.
func boundaryConverter(c *gen.Column) (*gen.Converter, bool) {
	conv, ok := c.Converter()
	if !ok {
		return nil, false
	}
	if _, declared, err := c.ContainerType(); err != nil || !declared {
		return nil, false
	}
	return conv, true
}

// PutDefaultOnAbsence returns whether loading the column writes a default
// when the row has no value for it. Loading a model always does; loading a
// container follows the column's PutContainerDefault, whatever the caller
// asked for.
func PutDefaultOnAbsence(c *gen.Column, container, putDefault bool) bool {
	if !container {
		return true
	}
	if c.PutContainerDefault != putDefault {
		return c.PutContainerDefault
	}
	return putDefault
}

// LoadFromRow emits the statement reading the column by name from row
// into the model or the container:
//
//	if index := row.ColumnIndex("name"); index != -1 && !row.IsNull(index) {
//		model.Name = row.StringValue(index)
//	} else {
//		model.Name = ""
//	}
//
// The else branch is emitted when PutDefaultOnAbsence holds.
func LoadFromRow(c *gen.Column, container, putDefault bool) (jen.Code, error) {
	if err := checkAccess(c); err != nil {
		return nil, err
	}
	index := jen.Id(indexVar)
	var set, def jen.Code
	if container {
		t, _, err := c.ContainerType()
		t = elemOf(t)
		conv, convert := boundaryConverter(c)
		if convert {
			t = conv.DBType
		}
		v, ok := gen.TypedValue(t, jen.Id(rowVar), index, nil)
		switch {
		case err != nil || !ok:
			v = jen.Id(rowVar).Dot("Value").Call(index)
		case convert:
			v = jen.Id(conv.VarName()).Dot("ModelValue").Call(v)
		}
		set = jen.Id(containerVar).Dot("Put").Call(jen.Lit(c.ContainerKey), v)
		def = jen.Id(containerVar).Dot("PutDefault").Call(jen.Lit(c.ContainerKey))
	} else {
		v, ok := gen.TypedValue(c.Access.Storage(), jen.Id(rowVar), index, nil)
		if !ok {
			v = jen.Id(rowVar).Dot("Value").Call(index)
		}
		set = c.Access.Write(jen.Id(modelVar), v)
		def = c.Access.Field().Set(jen.Id(modelVar), gen.ZeroValue(c.Type))
	}
	stmt := jen.If(
		index.Clone().Op(":=").Id(rowVar).Dot("ColumnIndex").Call(jen.Lit(c.ColumnName)),
		index.Clone().Op("!=").Lit(-1).Op("&&").Op("!").Id(rowVar).Dot("IsNull").Call(index),
	).Block(set)
	if PutDefaultOnAbsence(c, container, putDefault) {
		stmt.Else().Block(def)
	}
	return stmt, nil
}

// UpdateAutoIncrement emits the statement writing the database-assigned
// key id back into the model or the container. It is empty for columns
// that are not auto-increment primary keys.
func UpdateAutoIncrement(c *gen.Column, container bool) (jen.Code, error) {
	if err := checkAccess(c); err != nil {
		return nil, err
	}
	if !c.AutoIncrement {
		return jen.Null(), nil
	}
	if container {
		return jen.Id(containerVar).Dot("Put").Call(jen.Lit(c.ContainerKey), jen.Id(idVar)), nil
	}
	var v jen.Code = jen.Id(idVar)
	if elem := c.Type.Elem(); !elem.Equal(field.Basic(field.TypeInt64)) {
		v = gen.TypeCode(elem).Call(v)
	}
	if c.Type.Nillable {
		v = jen.Qual(gen.AdapterPkg, "Ptr").Call(v)
	}
	return c.Access.Field().Set(jen.Id(modelVar), v), nil
}

// ToModel emits the statement moving the column from the container to the
// model. The container value is read with the typed accessor of the
// container form of the column (see gen.Column.ContainerType). A column
// whose container form is its declared type is assigned through the
// field-level access, so booleans are never converted twice; any other
// column goes through its access strategy.
func ToModel(c *gen.Column) (jen.Code, error) {
	if err := checkAccess(c); err != nil {
		return nil, err
	}
	t, declared, err := c.ContainerType()
	if err != nil {
		return nil, err
	}
	key := jen.Lit(c.ContainerKey)
	var present jen.Code
	if t.Nillable {
		present = jen.Id(containerVar).Dot("Has").Call(key)
	}
	v, _ := gen.TypedValue(t, jen.Id(containerVar), key, present)
	if declared {
		return c.Access.Field().Set(jen.Id(modelVar), v), nil
	}
	return c.Access.Write(jen.Id(modelVar), v), nil
}

// ModelToContainer emits the inverse of ToModel: it writes the container
// form of the column into the container.
func ModelToContainer(c *gen.Column) (jen.Code, error) {
	if err := checkAccess(c); err != nil {
		return nil, err
	}
	_, declared, err := c.ContainerType()
	if err != nil {
		return nil, err
	}
	var v jen.Code
	if declared {
		v = c.Access.Field().Get(jen.Id(modelVar))
	} else {
		v = c.Access.Read(jen.Id(modelVar))
	}
	return jen.Id(containerVar).Dot("Put").Call(jen.Lit(c.ContainerKey), v), nil
}

func elemOf(t *field.TypeInfo) *field.TypeInfo {
	if t == nil {
		return nil
	}
	return t.Elem()
}

// CreationClause returns the column definition of a CREATE TABLE
// statement: the quoted name and SQL type, followed by the length, the
// collation, UNIQUE and NOT NULL when present, in that order.
func CreationClause(c *gen.Column) (string, error) {
	if err := checkAccess(c); err != nil {
		return "", err
	}
	typ := dialect.TypeBlob
	if t := c.Access.Storage(); t != nil {
		st, ok := dialect.ColumnType(t)
		if !ok {
			return "", gen.NewInternalError(c.Name, "stored type "+t.String()+" has no column type")
		}
		typ = dialect.TypeName(st)
	}
	var b strings.Builder
	b.WriteString(dialect.Quote(c.ColumnName))
	b.WriteByte(' ')
	b.WriteString(typ)
	if c.Length > -1 {
		b.WriteString("(" + strconv.Itoa(c.Length) + ")")
	}
	if c.Collate != field.CollateNone {
		b.WriteString(" COLLATE " + c.Collate.String())
	}
	if c.Unique {
		b.WriteString(" UNIQUE")
	}
	if c.NotNull {
		b.WriteString(" NOT NULL")
	}
	return b.String(), nil
}

// ForeignKeyContainerPut emits the statement writing the column value of
// the model into the container of a related entity, keyed by the
// reference column name of ref.
func ForeignKeyContainerPut(c *gen.Column, ref string) (jen.Code, error) {
	if err := checkAccess(c); err != nil {
		return nil, err
	}
	return jen.Id(containerVar).Dot("Put").Call(jen.Lit(ReferenceColumnName(c, ref)), c.Access.Read(jen.Id(modelVar))), nil
}

// ReferenceColumnName returns the container key of the referenced column
// ref: COLUMN_REF.
func ReferenceColumnName(c *gen.Column, ref string) string {
	return c.ReferenceColumnName(ref)
}

// QuickCheck emits the expression reporting whether the model was already
// inserted, judged by its auto-increment key. It is empty unless the
// column enables the quick check.
func QuickCheck(c *gen.Column) (jen.Code, error) {
	if err := checkAccess(c); err != nil {
		return nil, err
	}
	if !c.AutoIncrement || !c.QuickCheckAutoIncrement {
		return jen.Null(), nil
	}
	get := c.Access.Field().Get(jen.Id(modelVar))
	if c.Type.Nillable {
		return jen.Add(get).Op("!=").Nil().Op("&&").Op("*").Add(get).Op(">").Lit(0), nil
	}
	return jen.Add(get).Op(">").Lit(0), nil
}

// PackageHelpers emits the getter and setter functions a package-private
// column is accessed through. They belong to the package of the model.
// Other columns get no helpers.
func PackageHelpers(c *gen.Column, model gen.ModelRef) ([]jen.Code, error) {
	if err := checkAccess(c); err != nil {
		return nil, err
	}
	pp, ok := c.PackagePrivate()
	if !ok {
		return nil, nil
	}
	m := jen.Id("m")
	typ := gen.TypeCode(c.Type)
	return []jen.Code{
		jen.Commentf("%s returns the %s field of m.", pp.Getter(), c.Name),
		jen.Func().Id(pp.Getter()).Params(m.Clone().Op("*").Add(model.Code())).Add(typ.Clone()).Block(
			jen.Return(m.Clone().Dot(c.Name)),
		),
		jen.Commentf("%s sets the %s field of m.", pp.Setter(), c.Name),
		jen.Func().Id(pp.Setter()).Params(m.Clone().Op("*").Add(model.Code()), jen.Id("v").Add(typ.Clone())).Block(
			m.Clone().Dot(c.Name).Op("=").Id("v"),
		),
	}, nil
}

// ConverterDecl emits the package variable holding a converter.
func ConverterDecl(conv *gen.Converter) jen.Code {
	return jen.Var().Id(conv.VarName()).Op("=").Qual(conv.PkgPath, conv.Name).Values()
}
