package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/colflow/schema/field"
)

func TestTableName(t *testing.T) {
	assert.Equal(t, "users", TableName("User"))
	assert.Equal(t, "user_profiles", TableName("UserProfile"))
	assert.Equal(t, "categories", TableName("Category"))
}

func TestNewTable(t *testing.T) {
	tbl, err := NewTable("", userModel, []*field.Descriptor{
		autoIncrement("ID"),
		desc("Name", field.Basic(field.TypeString)),
		desc("Items", &field.TypeInfo{Type: field.TypeOther, Ident: "List", Generic: true}),
	}, TablePolicy{}, NewRegistry(), nil)
	require.NoError(t, err)
	assert.Equal(t, "users", tbl.Name)
	assert.Equal(t, userModel, tbl.Policy.Model)
	require.Len(t, tbl.Columns, 2)
	require.Len(t, tbl.Unmapped, 1)
	assert.Equal(t, "Items", tbl.Unmapped[0].Name)

	ai, ok := tbl.AutoIncrement()
	require.True(t, ok)
	assert.Equal(t, "ID", ai.Name)
	assert.Len(t, tbl.InsertColumns(), 1)

	c, ok := tbl.Column("Name")
	require.True(t, ok)
	assert.Equal(t, "Name", c.ColumnName)
	_, ok = tbl.Column("Missing")
	assert.False(t, ok)
}

// Failing fields are skipped and every error is returned and reported.
func TestNewTable_Degraded(t *testing.T) {
	var diags Diagnostics
	tbl, err := NewTable("users", userModel, []*field.Descriptor{
		desc("Name", field.Basic(field.TypeString)),
		desc("Tags", &field.TypeInfo{Type: field.TypeString, Array: true}),
		withConverter(desc("Code", field.Basic(field.TypeString)), "Missing"),
		desc("Age", field.Basic(field.TypeInt)),
	}, TablePolicy{}, NewRegistry(), &diags)
	require.Error(t, err)
	require.Len(t, tbl.Columns, 2)
	assert.Equal(t, "Name", tbl.Columns[0].Name)
	assert.Equal(t, "Age", tbl.Columns[1].Name)

	errs := diags.Errors()
	require.Len(t, errs, 2)
	var colErr *ColumnError
	require.ErrorAs(t, errs[0], &colErr)
	assert.Equal(t, "users", colErr.Table)
	assert.True(t, IsConverterError(errs[1]))
	assert.True(t, errors.Is(err, ErrInvalidColumn))
	assert.True(t, errors.Is(err, ErrConverterMismatch))
}

func TestNewTable_Invalid(t *testing.T) {
	named := func(name, column string) *field.Descriptor {
		d := desc(name, field.Basic(field.TypeString))
		d.Annotations.Column = &field.Column{Name: column, Length: -1}
		return d
	}

	t.Run("duplicate column", func(t *testing.T) {
		tbl, err := NewTable("users", userModel, []*field.Descriptor{named("A", "name"), named("B", "NAME")}, TablePolicy{}, nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate column name NAME")
		assert.Len(t, tbl.Columns, 1)
	})

	t.Run("two auto increments", func(t *testing.T) {
		tbl, err := NewTable("users", userModel, []*field.Descriptor{autoIncrement("ID"), autoIncrement("Other")}, TablePolicy{}, nil, nil)
		require.Error(t, err)
		assert.Len(t, tbl.Columns, 1)
	})

	t.Run("auto increment with primary keys", func(t *testing.T) {
		pk := desc("Code", field.Basic(field.TypeString))
		pk.Annotations.PrimaryKey = &field.PrimaryKey{}
		_, err := NewTable("users", userModel, []*field.Descriptor{autoIncrement("ID"), pk}, TablePolicy{}, nil, nil)
		assert.True(t, IsColumnError(err))
	})
}

// Columns [A, B (auto-increment primary key), C] bind to 1, -, 2.
func TestTable_BindIndexes(t *testing.T) {
	tbl, err := NewTable("t", userModel, []*field.Descriptor{
		desc("A", field.Basic(field.TypeString)),
		autoIncrement("B"),
		desc("C", field.Basic(field.TypeString)),
	}, TablePolicy{}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 2}, tbl.BindIndexes())
	assert.Equal(t, tbl.BindIndexes(), tbl.BindIndexes())

	var cursor BindCursor
	for i, c := range tbl.Columns {
		index, ok := cursor.Advance(c)
		assert.Equal(t, i != 1, ok)
		assert.Equal(t, tbl.BindIndexes()[i], index)
	}
	assert.Equal(t, 2, cursor.Count())
}

func TestTable_Groups(t *testing.T) {
	unique := func(name string, groups ...int) *field.Descriptor {
		d := desc(name, field.Basic(field.TypeString))
		d.Annotations.Unique = &field.Unique{Unique: true, Groups: groups}
		d.Annotations.Index = &field.Index{Groups: groups}
		return d
	}
	notUnique := desc("D", field.Basic(field.TypeString))
	notUnique.Annotations.Unique = &field.Unique{Groups: []int{1}}

	tbl, err := NewTable("t", userModel, []*field.Descriptor{unique("A", 1), unique("B", 1, 2), unique("C"), notUnique}, TablePolicy{}, nil, nil)
	require.NoError(t, err)

	ug := tbl.UniqueGroups()
	require.Len(t, ug, 2)
	assert.Len(t, ug[1], 3)
	assert.Len(t, ug[2], 1)

	ig := tbl.IndexGroups()
	assert.Len(t, ig[1], 2)
	assert.Len(t, ig[field.GenericIndexGroup], 1)
}

func TestTable_Converters(t *testing.T) {
	tbl, err := NewTable("t", userModel, []*field.Descriptor{
		desc("ID", UUIDConverter.ModelType),
		withConverter(desc("Status", statusType), "StatusConverter"),
		desc("Other", UUIDConverter.ModelType),
	}, TablePolicy{}, NewRegistry(statusConverter), nil)
	require.NoError(t, err)
	convs := tbl.Converters()
	require.Len(t, convs, 2)
	assert.Equal(t, "StatusConverter", convs[0].Name)
	assert.Equal(t, "UUIDConverter", convs[1].Name)
	assert.False(t, tbl.PackagePrivate())
}

func TestNewTable_NoContainerAccessor(t *testing.T) {
	var diags Diagnostics
	tbl, err := NewTable("t", userModel, []*field.Descriptor{
		desc("Name", field.Basic(field.TypeString)),
		desc("Price", moneyType),
	}, TablePolicy{}, nil, &diags)
	require.Error(t, err)
	assert.True(t, IsAccessorError(err))
	assert.ErrorIs(t, err, ErrUnresolvedAccessor)
	assert.Contains(t, err.Error(), "field Price")
	require.Len(t, diags.Errors(), 1)
	assert.True(t, IsAccessorError(diags.Errors()[0]))

	// The column is still stored.
	require.Len(t, tbl.Columns, 2)
	price, ok := tbl.Column("Price")
	require.True(t, ok)
	assert.Nil(t, price.Access.Storage())
}

func TestTable_ForeignKeys(t *testing.T) {
	fk := desc("OwnerID", field.Basic(field.TypeInt64))
	fk.Annotations.ForeignKey = &field.ForeignKey{References: []string{"id"}}
	tbl, err := NewTable("t", userModel, []*field.Descriptor{desc("Name", field.Basic(field.TypeString)), fk}, TablePolicy{}, nil, nil)
	require.NoError(t, err)
	fks := tbl.ForeignKeys()
	require.Len(t, fks, 1)
	assert.Equal(t, "OwnerID", fks[0].Name)
}
