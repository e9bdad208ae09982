package gen

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/syssam/colflow/schema/field"
)

// Table is the set of columns of one mapped struct, in declaration order.
type Table struct {
	// Name is the SQL table name.
	Name string
	// Model is the mapped struct.
	Model ModelRef
	// ModelDir is the directory of the model package. Helper functions of
	// package-private tables are written there.
	ModelDir string
	Policy   TablePolicy
	// Columns holds the stored columns.
	Columns []*Column
	// Unmapped holds parameterized fields, which get no access strategy.
	Unmapped []*Column
}

// TableName returns the default table name of a model: the plural, snake
// cased model name (UserProfile -> user_profiles).
func TableName(model string) string {
	return inflect.Underscore(inflect.Pluralize(model))
}

// NewTable builds the columns of the given fields. A field that fails is
// reported, skipped and the remaining fields are still processed; the
// returned error joins every failure. A column no typed container accessor
// can read is reported with an AccessorError but kept in the table.
func NewTable(name string, model ModelRef, ds []*field.Descriptor, policy TablePolicy, reg ConverterRegistry, rep Reporter) (*Table, error) {
	if name == "" {
		name = TableName(model.Name)
	}
	if policy.Model == (ModelRef{}) {
		policy.Model = model
	}
	t := &Table{Name: name, Model: model, Policy: policy}
	var errs []error
	tr := ReporterFunc(func(err error) {
		var colErr *ColumnError
		if errors.As(err, &colErr) && colErr.Table == "" {
			colErr.Table = name
		}
		errs = append(errs, err)
		if rep != nil {
			rep.Report(err)
		}
	})
	names := make(map[string]bool)
	var autoInc *Column
	for _, d := range ds {
		c, err := NewColumn(d, policy, reg, tr)
		switch {
		case err != nil:
			continue
		case c.Access == nil:
			t.Unmapped = append(t.Unmapped, c)
			continue
		case names[strings.ToLower(c.ColumnName)]:
			tr.Report(NewColumnError(c.Name, c.Type.String(), "duplicate column name "+c.ColumnName, nil))
			continue
		case c.AutoIncrement && autoInc != nil:
			tr.Report(NewColumnError(c.Name, c.Type.String(), "table already has auto-increment primary key "+autoInc.Name, nil))
			continue
		case c.AutoIncrement:
			autoInc = c
		}
		// The column is still stored; only its container transfer is left out.
		if _, _, err := c.ContainerType(); err != nil {
			tr.Report(err)
		}
		names[strings.ToLower(c.ColumnName)] = true
		t.Columns = append(t.Columns, c)
	}
	if autoInc != nil && len(t.PrimaryKeys()) > 0 {
		tr.Report(NewColumnError(autoInc.Name, autoInc.Type.String(), "auto-increment primary key cannot be combined with other primary keys", nil))
	}
	return t, errors.Join(errs...)
}

// Column returns the column of the named field.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// PrimaryKeys returns the non auto-increment primary key columns.
func (t *Table) PrimaryKeys() []*Column {
	var pks []*Column
	for _, c := range t.Columns {
		if c.PrimaryKey {
			pks = append(pks, c)
		}
	}
	return pks
}

// AutoIncrement returns the auto-increment primary key, if any.
func (t *Table) AutoIncrement() (*Column, bool) {
	for _, c := range t.Columns {
		if c.AutoIncrement {
			return c, true
		}
	}
	return nil, false
}

// InsertColumns returns the columns written by an insert statement; the
// auto-increment primary key is assigned by the database.
func (t *Table) InsertColumns() []*Column {
	cols := make([]*Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		if !c.AutoIncrement {
			cols = append(cols, c)
		}
	}
	return cols
}

// ForeignKeys returns the columns referencing other columns.
func (t *Table) ForeignKeys() []*Column {
	var fks []*Column
	for _, c := range t.Columns {
		if len(c.References) > 0 {
			fks = append(fks, c)
		}
	}
	return fks
}

// BindIndexes returns the statement parameter index of every column,
// aligned with Columns. Skipped columns get 0.
func (t *Table) BindIndexes() []int {
	var cursor BindCursor
	indexes := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		indexes[i], _ = cursor.Advance(c)
	}
	return indexes
}

// UniqueGroups returns the columns of every unique group, by group number.
// Group membership does not depend on the column-level UNIQUE flag.
func (t *Table) UniqueGroups() map[int][]*Column {
	groups := make(map[int][]*Column)
	for _, c := range t.Columns {
		for _, g := range c.UniqueGroups {
			groups[g] = append(groups[g], c)
		}
	}
	return groups
}

// IndexGroups returns the columns of every index group, by group number.
func (t *Table) IndexGroups() map[int][]*Column {
	groups := make(map[int][]*Column)
	for _, c := range t.Columns {
		for _, g := range c.IndexGroups {
			groups[g] = append(groups[g], c)
		}
	}
	return groups
}

// Converters returns the compile-time converters used by the table,
// sorted by name.
func (t *Table) Converters() []*Converter {
	byName := make(map[string]*Converter)
	for _, c := range t.Columns {
		if conv, ok := c.Converter(); ok {
			byName[conv.Name] = conv
		}
	}
	names := slices.Sorted(maps.Keys(byName))
	cs := make([]*Converter, len(names))
	for i, n := range names {
		cs[i] = byName[n]
	}
	return cs
}

// PackagePrivate reports if any column uses package-private access.
func (t *Table) PackagePrivate() bool {
	for _, c := range t.Columns {
		if _, ok := c.PackagePrivate(); ok {
			return true
		}
	}
	return false
}

// BindCursor threads the 1-based statement parameter index across the
// columns of a table, in declaration order. The zero value starts at 1.
type BindCursor struct {
	bound int
}

// Advance returns the parameter index of c and moves the cursor. An
// auto-increment primary key is not bound: Advance returns false and the
// cursor does not move.
func (b *BindCursor) Advance(c *Column) (int, bool) {
	if c.AutoIncrement {
		return 0, false
	}
	b.bound++
	return b.bound, true
}

// Count returns the number of parameters bound so far.
func (b *BindCursor) Count() int { return b.bound }
