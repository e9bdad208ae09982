package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/colflow/schema/field"
)

func TestResolve(t *testing.T) {
	reg := NewRegistry(statusConverter)
	policy := TablePolicy{Model: userModel}

	tests := []struct {
		name       string
		desc       *field.Descriptor
		policy     TablePolicy
		expected   Access
		custom     bool
		typeConv   bool
		registered bool
	}{
		{
			name:     "custom converter wins over enum",
			desc:     withConverter(desc("Status", statusType), "StatusConverter"),
			expected: &TypeConverter{},
			custom:   true, typeConv: true, registered: true,
		},
		{name: "enum", desc: desc("Status", statusType), expected: &Enum{}},
		{name: "nillable enum", desc: desc("Status", &field.TypeInfo{Type: field.TypeEnum, Ident: "Status", PkgPath: modelsPkg, Nillable: true}), expected: &Enum{}},
		{name: "blob", desc: desc("Data", blobType), expected: &Blob{}},
		{name: "boxed bool", desc: desc("Active", field.Ptr(field.TypeBool)), expected: &BoxedBoolean{}},
		{name: "bool", desc: desc("Active", field.Basic(field.TypeBool)), expected: &PrimitiveBoolean{}},
		{
			name:     "registered converter",
			desc:     desc("ID", UUIDConverter.ModelType),
			expected: &TypeConverter{},
			typeConv: true, registered: true,
		},
		{
			name:     "unregistered non native type",
			desc:     desc("Price", moneyType),
			expected: &TypeConverter{},
			typeConv: true,
		},
		{name: "exported native", desc: desc("Age", field.Basic(field.TypeInt32)), expected: &Direct{}},
		{name: "named native", desc: desc("Age", field.Named(field.TypeInt32, modelsPkg, "Age")), expected: &Direct{}},
		{name: "time", desc: desc("Created", field.Time()), expected: &Direct{}},
		{name: "private native", desc: privateDesc("name", field.Basic(field.TypeString)), expected: &PrivateAccessors{}},
		{
			name:     "package private",
			desc:     desc("Name", field.Basic(field.TypeString)),
			policy:   TablePolicy{PackagePrivate: true, Model: userModel},
			expected: &PackagePrivate{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := policy
			if tt.policy != (TablePolicy{}) {
				p = tt.policy
			}
			res, err := Resolve(tt.desc, p, reg)
			require.NoError(t, err)
			assert.IsType(t, tt.expected, res.Access)
			assert.Equal(t, tt.custom, res.HasCustomConverter)
			assert.Equal(t, tt.typeConv, res.HasTypeConverter)
			if tc, ok := res.Access.(*TypeConverter); ok {
				assert.Equal(t, tt.registered, tc.Registered())
			}
		})
	}
}

func TestResolve_Wrappers(t *testing.T) {
	res, err := Resolve(privateDesc("active", field.Ptr(field.TypeBool)), TablePolicy{}, nil)
	require.NoError(t, err)
	boxed, ok := res.Access.(*BoxedBoolean)
	require.True(t, ok)
	assert.Equal(t, &PrivateAccessors{Getter: "Active", Setter: "SetActive", Type: field.Ptr(field.TypeBool)}, boxed.Inner)
	assert.Same(t, boxed.Inner, res.Access.Field())
}

func TestResolve_ConverterErrors(t *testing.T) {
	reg := NewRegistry(statusConverter)

	t.Run("mismatch", func(t *testing.T) {
		_, err := Resolve(withConverter(desc("Code", field.Basic(field.TypeString)), "StatusConverter"), TablePolicy{}, reg)
		require.Error(t, err)
		var convErr *ConverterError
		require.ErrorAs(t, err, &convErr)
		assert.Equal(t, "Code", convErr.Field)
		assert.Equal(t, "string", convErr.Declared)
		assert.Equal(t, "models.Status", convErr.Expected)
		assert.ErrorIs(t, err, ErrConverterMismatch)
	})

	t.Run("nillable mismatch", func(t *testing.T) {
		d := withConverter(desc("Status", &field.TypeInfo{Type: field.TypeEnum, Ident: "Status", PkgPath: modelsPkg, Nillable: true}), "StatusConverter")
		_, err := Resolve(d, TablePolicy{}, reg)
		assert.True(t, IsConverterError(err))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Resolve(withConverter(desc("Status", statusType), "Missing"), TablePolicy{}, reg)
		var convErr *ConverterError
		require.ErrorAs(t, err, &convErr)
		assert.Equal(t, "Missing", convErr.Converter)
	})

	t.Run("nil registry", func(t *testing.T) {
		_, err := Resolve(withConverter(desc("Status", statusType), "StatusConverter"), TablePolicy{}, nil)
		assert.True(t, IsConverterError(err))
	})
}

func TestResolve_Invalid(t *testing.T) {
	_, err := Resolve(desc("Tags", &field.TypeInfo{Type: field.TypeString, Array: true}), TablePolicy{}, nil)
	assert.True(t, IsColumnError(err))

	_, err = Resolve(desc("Items", &field.TypeInfo{Type: field.TypeOther, Ident: "List", Generic: true}), TablePolicy{}, nil)
	assert.True(t, IsInternalError(err))

	_, err = Resolve(nil, TablePolicy{}, nil)
	assert.True(t, IsInternalError(err))

	_, err = Resolve(desc("Name", field.Basic(field.TypeString)), TablePolicy{PackagePrivate: true}, nil)
	assert.True(t, IsInternalError(err))
}

// Every non-array, non-parameterized declared type resolves to exactly one
// strategy.
func TestResolve_Exhaustive(t *testing.T) {
	reg := NewRegistry()
	for typ := field.TypeBool; typ <= field.TypeOther; typ++ {
		for _, nillable := range []bool{false, true} {
			for _, private := range []bool{false, true} {
				info := &field.TypeInfo{Type: typ, Nillable: nillable}
				switch typ {
				case field.TypeEnum:
					info.Ident, info.PkgPath = "Status", modelsPkg
				case field.TypeBlob:
					info.Ident, info.PkgPath = "Blob", AdapterPkg
				case field.TypeTime:
					info.Ident, info.PkgPath = "Time", "time"
				case field.TypeOther:
					info.Ident, info.PkgPath = "Thing", modelsPkg
				}
				for _, policy := range []TablePolicy{{}, {UseIsForPrivateBooleans: true}, {PackagePrivate: true, Model: userModel}} {
					res, err := Resolve(&field.Descriptor{Name: "value", Type: info, Private: private}, policy, reg)
					require.NoError(t, err, info.String())
					require.NotNil(t, res.Access, info.String())
					require.NotNil(t, res.Access.Field(), info.String())
				}
			}
		}
	}
}

func TestResolve_Deterministic(t *testing.T) {
	reg := NewRegistry(statusConverter)
	for _, d := range []*field.Descriptor{
		withConverter(desc("Status", statusType), "StatusConverter"),
		privateDesc("active", field.Basic(field.TypeBool)),
		desc("Price", moneyType),
	} {
		first, err := Resolve(d, TablePolicy{UseIsForPrivateBooleans: true}, reg)
		require.NoError(t, err)
		second, err := Resolve(d, TablePolicy{UseIsForPrivateBooleans: true}, reg)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestAccessorNames(t *testing.T) {
	tests := []struct {
		desc           *field.Descriptor
		useIs          bool
		getter, setter string
	}{
		{privateDesc("name", field.Basic(field.TypeString)), true, "Name", "SetName"},
		{privateDesc("active", field.Basic(field.TypeBool)), false, "Active", "SetActive"},
		{privateDesc("active", field.Basic(field.TypeBool)), true, "IsActive", "SetActive"},
		{privateDesc("active", field.Ptr(field.TypeBool)), true, "IsActive", "SetActive"},
		{privateDesc("isActive", field.Basic(field.TypeBool)), true, "IsActive", "SetActive"},
		{privateDesc("island", field.Basic(field.TypeBool)), true, "IsIsland", "SetIsland"},
		{
			&field.Descriptor{
				Name: "secret", Type: field.Basic(field.TypeString), Private: true,
				Annotations: field.Annotations{Column: &field.Column{Length: -1, Getter: "Reveal", Setter: "Hide"}},
			},
			false, "Reveal", "Hide",
		},
	}
	for _, tt := range tests {
		t.Run(tt.getter, func(t *testing.T) {
			getter, setter := accessorNames(tt.desc, tt.useIs)
			assert.Equal(t, tt.getter, getter)
			assert.Equal(t, tt.setter, setter)
		})
	}
}
