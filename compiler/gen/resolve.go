package gen

import (
	"strings"

	"github.com/syssam/colflow/dialect"
	"github.com/syssam/colflow/schema/field"
)

// Resolution is the outcome of access resolution for one field.
type Resolution struct {
	Access             Access
	HasCustomConverter bool
	HasTypeConverter   bool
}

// Resolve computes the access strategy of a field. The first matching rule
// wins:
//
//  1. a converter named on the column annotation (its model type must
//     equal the declared type)
//  2. enum types
//  3. adapter.Blob
//  4. *bool
//  5. bool
//  6. a converter registered for the declared type, or a run-time
//     converter when the type has no native column type
//  7. field-level access chosen by policy and visibility
//
// Resolve is deterministic and does not report errors; callers do.
func Resolve(d *field.Descriptor, policy TablePolicy, reg ConverterRegistry) (*Resolution, error) {
	switch {
	case d == nil || d.Type == nil:
		return nil, NewInternalError("", "field descriptor without type")
	case d.Type.Array:
		return nil, NewColumnError(d.Name, d.Type.String(), "columns cannot be array type", nil)
	case d.Type.Generic:
		return nil, NewInternalError(d.Name, "parameterized field "+d.Type.String()+" has no access strategy")
	}
	inner, err := fieldAccess(d, policy)
	if err != nil {
		return nil, err
	}
	t := d.Type
	if col := d.Annotations.Column; col != nil && col.Converter != "" {
		conv, ok := lookupByName(reg, col.Converter)
		if !ok {
			return nil, NewConverterError(d.Name, col.Converter, t.String(), "", "unknown converter")
		}
		if !conv.ModelType.Equal(t) {
			return nil, NewConverterError(d.Name, conv.Name, t.String(), conv.ModelType.String(),
				"model type of the converter must match the type of the column")
		}
		return &Resolution{
			Access:             &TypeConverter{Inner: inner, Converter: conv, Type: t},
			HasCustomConverter: true,
			HasTypeConverter:   true,
		}, nil
	}
	switch {
	case t.Type == field.TypeEnum:
		return &Resolution{Access: &Enum{Inner: inner, Type: t}}, nil
	case t.Type == field.TypeBlob:
		return &Resolution{Access: &Blob{Inner: inner, Type: t}}, nil
	case t.Type == field.TypeBool && t.Nillable:
		return &Resolution{Access: &BoxedBoolean{Inner: inner, Type: t}}, nil
	case t.Type == field.TypeBool:
		return &Resolution{Access: &PrimitiveBoolean{Inner: inner, Type: t}}, nil
	}
	if conv, ok := lookupByType(reg, t); ok {
		return &Resolution{Access: &TypeConverter{Inner: inner, Converter: conv, Type: t}, HasTypeConverter: true}, nil
	}
	if !dialect.Native(t) {
		return &Resolution{Access: &TypeConverter{Inner: inner, Type: t}, HasTypeConverter: true}, nil
	}
	return &Resolution{Access: inner}, nil
}

// fieldAccess returns the field-level access of d.
func fieldAccess(d *field.Descriptor, policy TablePolicy) (FieldAccess, error) {
	if d.Name == "" {
		return nil, NewInternalError("", "field descriptor without name")
	}
	switch {
	case policy.PackagePrivate:
		if policy.Model.Name == "" {
			return nil, NewInternalError(d.Name, "package-private access requires the model type")
		}
		return &PackagePrivate{Model: policy.Model, Name: d.Name, Type: d.Type}, nil
	case d.Private:
		getter, setter := accessorNames(d, policy.UseIsForPrivateBooleans)
		return &PrivateAccessors{Getter: getter, Setter: setter, Type: d.Type}, nil
	default:
		return &Direct{Name: d.Name, Type: d.Type}, nil
	}
}

// accessorNames returns the getter and setter method names of an
// unexported field: name -> Name, SetName. Boolean getters become IsName
// when useIs is set; a field already named isX keeps IsX.
func accessorNames(d *field.Descriptor, useIs bool) (getter, setter string) {
	base := exportName(d.Name)
	getter, setter = base, "Set"+base
	if useIs && d.Type.Type == field.TypeBool {
		if rest, ok := strings.CutPrefix(d.Name, "is"); ok && rest != "" && exportName(rest) == rest {
			setter = "Set" + rest
		} else {
			getter = "Is" + base
		}
	}
	if col := d.Annotations.Column; col != nil {
		if col.Getter != "" {
			getter = col.Getter
		}
		if col.Setter != "" {
			setter = col.Setter
		}
	}
	return getter, setter
}

func lookupByName(reg ConverterRegistry, name string) (*Converter, bool) {
	if reg == nil {
		return nil, false
	}
	return reg.ByName(name)
}

func lookupByType(reg ConverterRegistry, t *field.TypeInfo) (*Converter, bool) {
	if reg == nil {
		return nil, false
	}
	return reg.Lookup(t)
}
