package adapter

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// TypeConverter converts between a model type M and its database form D.
type TypeConverter[M, D any] interface {
	DBValue(M) D
	ModelValue(D) M
}

type registered struct {
	db    reflect.Type
	toDB  func(any) any
	model func(any) any
}

var converters = struct {
	sync.RWMutex
	m map[reflect.Type]registered
}{m: make(map[reflect.Type]registered)}

// Register makes c the run-time converter of the model type M. It is used
// by generated code for columns whose converter was not known at
// generation time.
func Register[M, D any](c TypeConverter[M, D]) {
	converters.Lock()
	defer converters.Unlock()
	converters.m[reflect.TypeFor[M]()] = registered{
		db:    reflect.TypeFor[D](),
		toDB:  func(v any) any { return c.DBValue(v.(M)) },
		model: func(v any) any { return c.ModelValue(v.(D)) },
	}
}

func lookup(t reflect.Type) (registered, bool) {
	converters.RLock()
	defer converters.RUnlock()
	r, ok := converters.m[t]
	return r, ok
}

// ToDB converts a model value to its database form using the registered
// converter of its type. A nil value or nil pointer converts to nil;
// other pointers are converted through the value they point to.
func ToDB(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if _, ok := lookup(rv.Type()); !ok && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	r, ok := lookup(rv.Type())
	if !ok {
		panic(fmt.Sprintf("adapter: no type converter registered for %T", v))
	}
	return r.toDB(rv.Interface())
}

// FromDB converts a database value to the model type M using the
// registered converter of M. When M is a pointer type without a converter,
// the converter of its element type is used and NULL converts to nil.
func FromDB[M any](v any) M {
	t := reflect.TypeFor[M]()
	var zero M
	if _, ok := lookup(t); !ok && t.Kind() == reflect.Pointer {
		if v == nil {
			return zero
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(reflect.ValueOf(fromDB(t.Elem(), v)))
		return p.Interface().(M)
	}
	if v == nil {
		if _, ok := lookup(t); !ok {
			panic(fmt.Sprintf("adapter: no type converter registered for %s", t))
		}
		return zero
	}
	return fromDB(t, v).(M)
}

func fromDB(t reflect.Type, v any) any {
	r, ok := lookup(t)
	if !ok {
		panic(fmt.Sprintf("adapter: no type converter registered for %s", t))
	}
	rv := reflect.ValueOf(v)
	if rv.Type() != r.db {
		if !rv.Type().ConvertibleTo(r.db) {
			panic(fmt.Sprintf("adapter: cannot convert %T to %s", v, r.db))
		}
		rv = rv.Convert(r.db)
	}
	return r.model(rv.Interface())
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

// Nullable returns a pointer to v if ok, and nil otherwise.
func Nullable[T any](ok bool, v T) *T {
	if !ok {
		return nil
	}
	return &v
}

// EnumPtrValue returns the stored form of a nillable enum.
func EnumPtrValue[E ~string](v *E) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

// EnumPtr returns the nillable enum of a stored value.
func EnumPtr[E ~string](v *string) *E {
	if v == nil {
		return nil
	}
	e := E(*v)
	return &e
}

// BoolInt returns the stored form of a boolean: 1 for true, 0 for false.
func BoolInt[B ~bool](v B) int64 {
	if bool(v) {
		return 1
	}
	return 0
}

// IntBool returns the boolean of a stored value: any non-zero value is true.
func IntBool[B ~bool](v int64) B { return B(v != 0) }

// BoolPtrInt returns the stored form of a nillable boolean.
func BoolPtrInt[B ~bool](v *B) *int64 {
	if v == nil {
		return nil
	}
	i := BoolInt(*v)
	return &i
}

// IntPtrBool returns the nillable boolean of a stored value.
func IntPtrBool[B ~bool](v *int64) *B {
	if v == nil {
		return nil
	}
	b := IntBool[B](*v)
	return &b
}

// UUIDConverter stores uuid.UUID values as TEXT.
type UUIDConverter struct{}

// DBValue implements TypeConverter.
func (UUIDConverter) DBValue(v uuid.UUID) string { return v.String() }

// ModelValue implements TypeConverter. Malformed values convert to uuid.Nil.
func (UUIDConverter) ModelValue(s string) uuid.UUID {
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return u
}

var _ TypeConverter[uuid.UUID, string] = UUIDConverter{}
