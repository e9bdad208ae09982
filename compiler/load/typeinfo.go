package load

import (
	"go/types"

	"github.com/syssam/colflow/compiler/gen"
	"github.com/syssam/colflow/schema/field"
)

var basicTypes = map[types.BasicKind]field.Type{
	types.Bool:    field.TypeBool,
	types.Int:     field.TypeInt,
	types.Int8:    field.TypeInt8,
	types.Int16:   field.TypeInt16,
	types.Int32:   field.TypeInt32,
	types.Int64:   field.TypeInt64,
	types.Uint:    field.TypeUint,
	types.Uint8:   field.TypeUint8,
	types.Uint16:  field.TypeUint16,
	types.Uint32:  field.TypeUint32,
	types.Uint64:  field.TypeUint64,
	types.Float32: field.TypeFloat32,
	types.Float64: field.TypeFloat64,
	types.String:  field.TypeString,
}

// typeInfo converts a Go type into the declared type of a field.
// Named types keep their identity; a named string type is an enum.
// Maps, channels, functions, interfaces, type parameters and generic
// instantiations are marked Generic.
func typeInfo(t types.Type) *field.TypeInfo {
	switch t := types.Unalias(t).(type) {
	case *types.Pointer:
		e := typeInfo(t.Elem())
		if e.Nillable {
			e.Generic = true
		}
		e.Nillable = true
		return e
	case *types.Slice:
		if isByte(t.Elem()) {
			return field.Basic(field.TypeBytes)
		}
		e := typeInfo(t.Elem())
		e.Array = true
		return e
	case *types.Array:
		e := typeInfo(t.Elem())
		e.Array = true
		return e
	case *types.Named:
		return namedInfo(t)
	case *types.Basic:
		if k, ok := basicTypes[t.Kind()]; ok {
			return field.Basic(k)
		}
	}
	return &field.TypeInfo{Type: field.TypeOther, Generic: true}
}

func namedInfo(t *types.Named) *field.TypeInfo {
	obj := t.Obj()
	if obj.Pkg() == nil {
		// error and comparable
		return &field.TypeInfo{Type: field.TypeOther, Ident: obj.Name(), Generic: true}
	}
	pkgPath, name := obj.Pkg().Path(), obj.Name()
	info := &field.TypeInfo{Type: field.TypeOther, Ident: name, PkgPath: pkgPath, PkgName: obj.Pkg().Name()}
	switch {
	case t.TypeArgs().Len() > 0 || t.TypeParams().Len() > 0:
		info.Generic = true
		return info
	case pkgPath == "time" && name == "Time":
		return field.Time()
	case pkgPath == gen.AdapterPkg && name == "Blob":
		info.Type = field.TypeBlob
		return info
	}
	switch u := t.Underlying().(type) {
	case *types.Basic:
		k, ok := basicTypes[u.Kind()]
		switch {
		case !ok:
			info.Generic = true
		case k == field.TypeString:
			info.Type = field.TypeEnum
		default:
			info.Type = k
		}
	case *types.Slice:
		if isByte(u.Elem()) {
			info.Type = field.TypeBytes
		}
	case *types.Struct, *types.Array, *types.Pointer:
	default:
		info.Generic = true
	}
	return info
}

func isByte(t types.Type) bool {
	b, ok := types.Unalias(t).(*types.Basic)
	return ok && b.Kind() == types.Byte
}

// converterOf reports if the named type n implements
//
//	DBValue(M) D
//	ModelValue(D) M
//
// and returns its descriptor.
func converterOf(n *types.Named) (*gen.Converter, bool) {
	if n.TypeParams().Len() > 0 {
		return nil, false
	}
	ms := types.NewMethodSet(types.NewPointer(n))
	toDB, ok := signature(ms, n, "DBValue")
	if !ok {
		return nil, false
	}
	toModel, ok := signature(ms, n, "ModelValue")
	if !ok {
		return nil, false
	}
	model, db := toDB.Params().At(0).Type(), toDB.Results().At(0).Type()
	if !types.Identical(toModel.Params().At(0).Type(), db) || !types.Identical(toModel.Results().At(0).Type(), model) {
		return nil, false
	}
	obj := n.Obj()
	return &gen.Converter{
		Name:      obj.Name(),
		PkgPath:   obj.Pkg().Path(),
		ModelType: typeInfo(model),
		DBType:    typeInfo(db),
	}, true
}

func signature(ms *types.MethodSet, n *types.Named, name string) (*types.Signature, bool) {
	sel := ms.Lookup(n.Obj().Pkg(), name)
	if sel == nil {
		return nil, false
	}
	sig, ok := sel.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 1 || sig.Results().Len() != 1 {
		return nil, false
	}
	return sig, true
}
