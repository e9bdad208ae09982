package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/colflow/compiler/gen"
	"github.com/syssam/colflow/compiler/gen/sql"
)

// Output formats of the inspect command.
const (
	formatYAML    = "yaml"
	formatMsgpack = "msgpack"
)

// snapshot is the resolved metadata of a package.
type snapshot struct {
	Package string      `yaml:"package" msgpack:"package"`
	Tables  []tableInfo `yaml:"tables" msgpack:"tables"`
}

type tableInfo struct {
	Name     string       `yaml:"name" msgpack:"name"`
	Model    string       `yaml:"model" msgpack:"model"`
	Create   string       `yaml:"create" msgpack:"create"`
	Insert   string       `yaml:"insert" msgpack:"insert"`
	Indexes  []string     `yaml:"indexes,omitempty" msgpack:"indexes,omitempty"`
	Columns  []columnInfo `yaml:"columns" msgpack:"columns"`
	Unmapped []string     `yaml:"unmapped,omitempty" msgpack:"unmapped,omitempty"`
}

type columnInfo struct {
	Field         string   `yaml:"field" msgpack:"field"`
	Column        string   `yaml:"column" msgpack:"column"`
	ContainerKey  string   `yaml:"container_key" msgpack:"container_key"`
	Type          string   `yaml:"type" msgpack:"type"`
	Storage       string   `yaml:"storage,omitempty" msgpack:"storage,omitempty"`
	Access        string   `yaml:"access" msgpack:"access"`
	Converter     string   `yaml:"converter,omitempty" msgpack:"converter,omitempty"`
	Clause        string   `yaml:"clause" msgpack:"clause"`
	PrimaryKey    bool     `yaml:"primary_key,omitempty" msgpack:"primary_key,omitempty"`
	AutoIncrement bool     `yaml:"auto_increment,omitempty" msgpack:"auto_increment,omitempty"`
	UniqueGroups  []int    `yaml:"unique_groups,omitempty" msgpack:"unique_groups,omitempty"`
	IndexGroups   []int    `yaml:"index_groups,omitempty" msgpack:"index_groups,omitempty"`
	References    []string `yaml:"references,omitempty" msgpack:"references,omitempty"`
}

func (a *app) inspectCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "inspect [package]",
		Short: "Print the resolved column metadata of a Go package",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatYAML && format != formatMsgpack {
				return gen.NewConfigError("Format", format, "format must be yaml or msgpack")
			}
			p, err := a.loadProject(cmd.Context(), args, false)
			if err != nil {
				return err
			}
			snap, err := newSnapshot(p)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return encodeSnapshot(w, format, snap)
		},
	}
	packageFlags(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "output format (yaml, msgpack)")
	cmd.Flags().StringVar(&out, "out", "", "write the snapshot to a file instead of stdout")
	return cmd
}

func encodeSnapshot(w io.Writer, format string, snap *snapshot) error {
	if format == formatMsgpack {
		return msgpack.NewEncoder(w).Encode(snap)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return err
	}
	return enc.Close()
}

func newSnapshot(p *project) (*snapshot, error) {
	snap := &snapshot{Package: p.schema.PkgPath, Tables: make([]tableInfo, 0, len(p.tables))}
	for _, t := range p.tables {
		create, err := sql.CreateTableSQL(t)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", t.Name, err)
		}
		insert, err := sql.InsertSQL(t)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", t.Name, err)
		}
		ti := tableInfo{
			Name:    t.Name,
			Model:   t.Model.Name,
			Create:  create,
			Insert:  insert,
			Indexes: sql.CreateIndexSQL(t),
			Columns: make([]columnInfo, 0, len(t.Columns)),
		}
		for _, c := range t.Columns {
			ci, err := newColumnInfo(c)
			if err != nil {
				return nil, fmt.Errorf("table %s: %w", t.Name, err)
			}
			ti.Columns = append(ti.Columns, ci)
		}
		for _, c := range t.Unmapped {
			ti.Unmapped = append(ti.Unmapped, c.Name)
		}
		snap.Tables = append(snap.Tables, ti)
	}
	return snap, nil
}

func newColumnInfo(c *gen.Column) (columnInfo, error) {
	clause, err := sql.CreationClause(c)
	if err != nil {
		return columnInfo{}, fmt.Errorf("column %s: %w", c.Name, err)
	}
	ci := columnInfo{
		Field:         c.Name,
		Column:        c.ColumnName,
		ContainerKey:  c.ContainerKey,
		Type:          c.Type.String(),
		Access:        accessName(c.Access),
		Clause:        clause,
		PrimaryKey:    c.PrimaryKey,
		AutoIncrement: c.AutoIncrement,
		UniqueGroups:  c.UniqueGroups,
		IndexGroups:   c.IndexGroups,
		References:    c.References,
	}
	if st := c.Access.Storage(); st != nil {
		ci.Storage = st.String()
	}
	if conv, ok := c.Converter(); ok {
		ci.Converter = conv.Name
	}
	return ci, nil
}

// accessName names an access strategy: the value wrapper, if any, and the
// field-level access, e.g. "enum/direct".
func accessName(a gen.Access) string {
	var field string
	switch a.Field().(type) {
	case *gen.Direct:
		field = "direct"
	case *gen.PackagePrivate:
		field = "package-private"
	case *gen.PrivateAccessors:
		field = "accessors"
	}
	switch a := a.(type) {
	case *gen.PrimitiveBoolean:
		return "bool/" + field
	case *gen.BoxedBoolean:
		return "boxed-bool/" + field
	case *gen.Enum:
		return "enum/" + field
	case *gen.Blob:
		return "blob/" + field
	case *gen.TypeConverter:
		if a.Converter == nil {
			return "runtime-converter/" + field
		}
		return "converter/" + field
	}
	return field
}
