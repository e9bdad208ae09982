package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/colflow/schema/field"
)

const modelsPkg = "example.com/app/models"

var (
	userModel  = ModelRef{PkgPath: modelsPkg, Name: "User"}
	statusType = field.Named(field.TypeEnum, modelsPkg, "Status")
	moneyType  = field.Named(field.TypeOther, "example.com/app/money", "Money")
	blobType   = field.Named(field.TypeBlob, AdapterPkg, "Blob")
)

// render renders a code fragment for assertions.
func render(c jen.Code) string {
	return fmt.Sprintf("%#v", c)
}

func desc(name string, t *field.TypeInfo) *field.Descriptor {
	return &field.Descriptor{Name: name, Type: t}
}

func privateDesc(name string, t *field.TypeInfo) *field.Descriptor {
	return &field.Descriptor{Name: name, Type: t, Private: true}
}

func withConverter(d *field.Descriptor, name string) *field.Descriptor {
	d.Annotations.Column = &field.Column{Length: -1, Converter: name}
	return d
}

func autoIncrement(name string) *field.Descriptor {
	d := desc(name, field.Basic(field.TypeInt64))
	d.Annotations.PrimaryKey = &field.PrimaryKey{AutoIncrement: true}
	return d
}

// statusConverter stores models.Status as an INTEGER code.
var statusConverter = &Converter{
	Name:      "StatusConverter",
	PkgPath:   modelsPkg,
	ModelType: statusType,
	DBType:    field.Basic(field.TypeInt64),
}
