package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/colflow/schema/field"
)

func TestType(t *testing.T) {
	assert.True(t, field.TypeInt32.Integer())
	assert.True(t, field.TypeUint64.Numeric())
	assert.True(t, field.TypeFloat32.Float())
	assert.False(t, field.TypeString.Numeric())
	assert.False(t, field.TypeBool.Integer())
	assert.True(t, field.TypeBlob.Valid())
	assert.False(t, field.TypeInvalid.Valid())
	assert.Equal(t, "int64", field.TypeInt64.String())
	assert.Equal(t, "[]byte", field.TypeBytes.String())
	assert.Equal(t, "invalid", field.Type(200).String())
}

func TestTypeInfo_String(t *testing.T) {
	tests := []struct {
		info     *field.TypeInfo
		expected string
	}{
		{field.Basic(field.TypeInt64), "int64"},
		{field.Ptr(field.TypeBool), "*bool"},
		{field.Time(), "time.Time"},
		{field.Named(field.TypeEnum, "example.com/app/models", "Status"), "models.Status"},
		{&field.TypeInfo{Type: field.TypeString, Array: true}, "[]string"},
		{&field.TypeInfo{Type: field.TypeOther, Ident: "UUID", PkgPath: "github.com/google/uuid"}, "uuid.UUID"},
		{&field.TypeInfo{Type: field.TypeOther, Ident: "Money", PkgPath: "example.com/x", PkgName: "money"}, "money.Money"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.info.String())
		})
	}
}

func TestTypeInfo_Equal(t *testing.T) {
	a := field.Named(field.TypeEnum, "example.com/app/models", "Status")
	assert.True(t, a.Equal(field.Named(field.TypeEnum, "example.com/app/models", "Status")))
	assert.False(t, a.Equal(field.Named(field.TypeEnum, "example.com/other", "Status")))
	assert.False(t, a.Equal(nil))
	assert.False(t, field.Basic(field.TypeBool).Equal(field.Ptr(field.TypeBool)))
	assert.True(t, field.Ptr(field.TypeBool).Elem().Equal(field.Basic(field.TypeBool)))
}

func TestTypeInfo_Primitive(t *testing.T) {
	assert.True(t, field.Basic(field.TypeBool).Primitive())
	assert.True(t, field.Basic(field.TypeFloat64).Primitive())
	assert.False(t, field.Ptr(field.TypeInt).Primitive())
	assert.True(t, field.Ptr(field.TypeInt).Boxed())
	assert.False(t, field.Time().Primitive())
	assert.False(t, field.Basic(field.TypeBytes).Primitive())
}

func TestParseCollate(t *testing.T) {
	for s, expected := range map[string]field.Collate{
		"":       field.CollateNone,
		"none":   field.CollateNone,
		"binary": field.CollateBinary,
		"NOCASE": field.CollateNoCase,
		"RTrim":  field.CollateRTrim,
	} {
		c, err := field.ParseCollate(s)
		require.NoError(t, err)
		assert.Equal(t, expected, c)
	}
	_, err := field.ParseCollate("utf8")
	require.Error(t, err)
	assert.Equal(t, "NOCASE", field.CollateNoCase.String())
	assert.Equal(t, "NONE", field.CollateNone.String())
}

func TestParseConflictAction(t *testing.T) {
	a, err := field.ParseConflictAction("replace")
	require.NoError(t, err)
	assert.Equal(t, field.ConflictReplace, a)
	assert.Equal(t, "REPLACE", a.String())

	a, err = field.ParseConflictAction("")
	require.NoError(t, err)
	assert.Equal(t, field.ConflictNone, a)

	_, err = field.ParseConflictAction("explode")
	require.Error(t, err)
}
