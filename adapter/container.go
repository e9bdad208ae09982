package adapter

import (
	"database/sql/driver"
	"slices"
	"sort"
	"time"

	"github.com/spf13/cast"
)

// Container is a generic, string-keyed representation of a model. It holds
// the database form of every column under the column's container key.
type Container interface {
	// Value returns the raw value stored under key, or nil.
	Value(key string) any
	// Has reports if a non-nil value is stored under key.
	Has(key string) bool
	// Put stores v under key. Pointers are dereferenced and a nil pointer
	// is stored as nil ("unset").
	Put(key string, v any)
	// PutDefault stores the default (unset) value under key.
	PutDefault(key string)

	StringValue(key string) string
	Int64Value(key string) int64
	Float64Value(key string) float64
	BoolValue(key string) bool
	BytesValue(key string) []byte
	TimeValue(key string) time.Time
}

// MapContainer is a map-backed Container.
type MapContainer struct {
	data map[string]any
}

// NewMapContainer returns an empty MapContainer.
func NewMapContainer() *MapContainer {
	return &MapContainer{data: make(map[string]any)}
}

// Value implements Container.
func (c *MapContainer) Value(key string) any { return c.data[key] }

// Has implements Container.
func (c *MapContainer) Has(key string) bool { return c.data[key] != nil }

// Contains reports if key was written, even with an unset value.
func (c *MapContainer) Contains(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Put implements Container.
func (c *MapContainer) Put(key string, v any) { c.data[key] = normalize(v) }

// PutDefault implements Container.
func (c *MapContainer) PutDefault(key string) { c.data[key] = nil }

// Keys returns the written keys in sorted order.
func (c *MapContainer) Keys() []string {
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StringValue implements Container.
func (c *MapContainer) StringValue(key string) string { return cast.ToString(c.data[key]) }

// Int64Value implements Container.
func (c *MapContainer) Int64Value(key string) int64 { return cast.ToInt64(c.data[key]) }

// Float64Value implements Container.
func (c *MapContainer) Float64Value(key string) float64 { return cast.ToFloat64(c.data[key]) }

// BoolValue implements Container.
func (c *MapContainer) BoolValue(key string) bool { return cast.ToBool(c.data[key]) }

// BytesValue implements Container.
func (c *MapContainer) BytesValue(key string) []byte { return toBytes(c.data[key]) }

// TimeValue implements Container.
func (c *MapContainer) TimeValue(key string) time.Time { return cast.ToTime(c.data[key]) }

var _ Container = (*MapContainer)(nil)

// normalize converts v to its driver form. Values the driver package does
// not know are kept as is.
func normalize(v any) any {
	if v == nil {
		return nil
	}
	dv, err := driver.DefaultParameterConverter.ConvertValue(v)
	if err != nil {
		return v
	}
	return dv
}

func toBytes(v any) []byte {
	switch v := v.(type) {
	case nil:
		return nil
	case []byte:
		return slices.Clone(v)
	case string:
		return []byte(v)
	case Blob:
		return slices.Clone(v.Data)
	}
	return []byte(cast.ToString(v))
}
