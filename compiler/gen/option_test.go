package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/colflow/schema/field"
)

func TestWithHeader(t *testing.T) {
	t.Run("sets header", func(t *testing.T) {
		c := &Config{}
		err := WithHeader("// Custom header")(c)

		require.NoError(t, err)
		assert.Equal(t, "// Custom header", c.Header)
	})

	t.Run("empty header is allowed", func(t *testing.T) {
		c := &Config{Header: "existing"}
		err := WithHeader("")(c)

		require.NoError(t, err)
		assert.Equal(t, "", c.Header)
	})
}

func TestWithTarget(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithTarget("out/db/")(c))
	assert.Equal(t, "out/db", c.Target)

	err := WithTarget("")(c)
	assert.True(t, IsConfigError(err))
}

func TestWithPackage(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithPackage("example.com/app/db")(c))
	assert.Equal(t, "example.com/app/db", c.Package)
	assert.True(t, IsConfigError(WithPackage("")(c)))
}

func TestWithWorkers(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithWorkers(4)(c))
	assert.Equal(t, 4, c.Workers)
	assert.True(t, IsConfigError(WithWorkers(-1)(c)))
}

func TestWithFeatureNames(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithFeatureNames("sql/schema")(c))
	require.Len(t, c.Features, 1)
	assert.Equal(t, FeatureSchema.Name, c.Features[0].Name)

	err := WithFeatureNames("missing")(c)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	assert.True(t, IsConfigError(WithoutFeatures("missing")(c)))
}

func TestWithConverters(t *testing.T) {
	c, err := NewConfig(WithConverters(statusConverter))
	require.NoError(t, err)

	reg, err := c.Registry()
	require.NoError(t, err)
	conv, ok := reg.Lookup(statusType)
	require.True(t, ok)
	assert.Same(t, statusConverter, conv)
	_, ok = reg.ByName(UUIDConverter.Name)
	assert.True(t, ok)

	_, err = NewConfig(WithConverters(nil))
	assert.True(t, IsConfigError(err))

	c.Converters = append(c.Converters, &Converter{Name: "Bad", ModelType: statusType, DBType: field.Named(field.TypeOther, "x", "Y")})
	_, err = c.Registry()
	assert.True(t, IsConfigError(err))
}

func TestConfigApply(t *testing.T) {
	t.Run("stops at first error", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(WithTarget(""), WithHeader("h"))
		require.Error(t, err)
		assert.Empty(t, c.Header)
	})

	t.Run("apply all collects errors", func(t *testing.T) {
		c := &Config{}
		err := c.ApplyAll(WithTarget(""), WithPackage(""), WithHeader("h"))
		require.Error(t, err)
		assert.Equal(t, "h", c.Header)
		var cfgErr *ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Contains(t, err.Error(), "Target")
		assert.Contains(t, err.Error(), "Package")
	})
}

func TestMustNewConfig(t *testing.T) {
	assert.NotPanics(t, func() { MustNewConfig(WithTarget("x")) })
	assert.Panics(t, func() { MustNewConfig(WithTarget("")) })
}
