package load

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/syssam/colflow/schema/field"
)

// Struct tag keys read by the loader.
const (
	TagDB        = "db"
	TagContainer = "container"
	TagTable     = "colflow"
)

// TableOptions are the table-level settings declared on a blank field:
//
//	_ struct{} `colflow:"users,package_private,use_is"`
type TableOptions struct {
	Name                    string
	PackagePrivate          bool
	UseIsForPrivateBooleans bool
}

func parseTableTag(tag string) (TableOptions, error) {
	var opts TableOptions
	name, rest, _ := strings.Cut(tag, ",")
	opts.Name = strings.TrimSpace(name)
	for _, o := range splitOptions(rest) {
		switch o {
		case "package_private":
			opts.PackagePrivate = true
		case "use_is":
			opts.UseIsForPrivateBooleans = true
		default:
			return opts, fmt.Errorf("unknown table option %q", o)
		}
	}
	return opts, nil
}

// parseFieldTags fills the annotations of d from the db and container
// tags. It reports if the field is skipped.
func parseFieldTags(d *field.Descriptor, tag reflect.StructTag) (skip bool, err error) {
	db, hasDB := tag.Lookup(TagDB)
	if db == "-" {
		return true, nil
	}
	if hasDB {
		if err := parseDBTag(&d.Annotations, db); err != nil {
			return false, err
		}
	}
	if ct, ok := tag.Lookup(TagContainer); ok {
		key, rest, _ := strings.Cut(ct, ",")
		ck := &field.ContainerKey{Name: strings.TrimSpace(key), PutDefault: true}
		for _, o := range splitOptions(rest) {
			if o != "nodefault" {
				return false, fmt.Errorf("unknown container option %q", o)
			}
			ck.PutDefault = false
		}
		d.Annotations.ContainerKey = ck
	}
	return false, nil
}

func parseDBTag(a *field.Annotations, tag string) error {
	name, rest, _ := strings.Cut(tag, ",")
	col := &field.Column{Name: strings.TrimSpace(name), Length: -1}
	unique := func() *field.Unique {
		if a.Unique == nil {
			a.Unique = &field.Unique{}
		}
		return a.Unique
	}
	for _, o := range splitOptions(rest) {
		key, value, hasValue := strings.Cut(o, "=")
		if hasValue && value == "" {
			return fmt.Errorf("option %q requires a value", key)
		}
		var err error
		switch key {
		case "pk":
			a.PrimaryKey = &field.PrimaryKey{}
		case "autoincrement":
			if a.PrimaryKey == nil {
				a.PrimaryKey = &field.PrimaryKey{}
			}
			a.PrimaryKey.AutoIncrement = true
		case "quickcheck":
			if a.PrimaryKey == nil {
				a.PrimaryKey = &field.PrimaryKey{}
			}
			a.PrimaryKey.QuickCheck = true
		case "notnull":
			if a.NotNull == nil {
				a.NotNull = &field.NotNull{}
			}
		case "on_null":
			if a.NotNull == nil {
				a.NotNull = &field.NotNull{}
			}
			a.NotNull.OnConflict, err = field.ParseConflictAction(value)
		case "unique":
			unique().Unique = true
		case "unique_groups":
			unique().Groups, err = parseGroups(value)
		case "on_unique":
			unique().OnConflict, err = field.ParseConflictAction(value)
		case "index":
			a.Index = &field.Index{}
			if hasValue {
				a.Index.Groups, err = parseGroups(value)
			}
		case "length":
			col.Length, err = strconv.Atoi(value)
		case "collate":
			col.Collate, err = field.ParseCollate(value)
		case "default":
			col.Default = &value
		case "converter":
			col.Converter = value
		case "getter":
			col.Getter = value
		case "setter":
			col.Setter = value
		case "ref":
			a.ForeignKey = &field.ForeignKey{References: strings.Split(value, "|")}
		default:
			return fmt.Errorf("unknown option %q", key)
		}
		if err != nil {
			return fmt.Errorf("option %q: %w", key, err)
		}
	}
	a.Column = col
	return nil
}

func parseGroups(s string) ([]int, error) {
	parts := strings.Split(s, "|")
	groups := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		groups = append(groups, n)
	}
	return groups, nil
}

func splitOptions(s string) []string {
	var opts []string
	for o := range strings.SplitSeq(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			opts = append(opts, o)
		}
	}
	return opts
}
