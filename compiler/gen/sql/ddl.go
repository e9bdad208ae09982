package sql

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/syssam/colflow/compiler/gen"
	"github.com/syssam/colflow/dialect"
	"github.com/syssam/colflow/schema/field"
)

// CreateTableSQL returns the CREATE TABLE statement of t. Column clauses
// come from CreationClause, in declaration order, followed by the
// table constraints: a composite PRIMARY KEY for non auto-increment keys
// and one UNIQUE constraint per unique group.
func CreateTableSQL(t *gen.Table) (string, error) {
	defs := make([]string, 0, len(t.Columns)+2)
	var errs []error
	for _, c := range t.Columns {
		clause, err := CreationClause(c)
		if err != nil {
			errs = append(errs, fmt.Errorf("column %s: %w", c.Name, err))
			continue
		}
		if c.AutoIncrement {
			clause += " PRIMARY KEY AUTOINCREMENT"
		}
		if c.DefaultValue != nil {
			clause += " DEFAULT " + *c.DefaultValue
		}
		defs = append(defs, clause)
	}
	if err := errors.Join(errs...); err != nil {
		return "", err
	}
	var pks []*gen.Column
	for _, c := range t.PrimaryKeys() {
		if !c.AutoIncrement {
			pks = append(pks, c)
		}
	}
	if len(pks) > 0 {
		defs = append(defs, "PRIMARY KEY("+quoteColumns(pks)+")")
	}
	groups := t.UniqueGroups()
	for _, g := range slices.Sorted(maps.Keys(groups)) {
		cs := groups[g]
		def := "UNIQUE(" + quoteColumns(cs) + ")"
		if a := cs[0].OnUniqueConflict; a != field.ConflictNone {
			def += " ON CONFLICT " + a.String()
		}
		defs = append(defs, def)
	}
	return "CREATE TABLE IF NOT EXISTS " + dialect.Quote(t.Name) + "(" + strings.Join(defs, ", ") + ")", nil
}

// CreateIndexSQL returns the CREATE INDEX statements of t. Each numbered
// index group is one index named index_<table>_<group>; every column of
// the generic group gets its own index named index_<table>_<column>.
func CreateIndexSQL(t *gen.Table) []string {
	groups := t.IndexGroups()
	stmts := make([]string, 0, len(groups))
	for _, g := range slices.Sorted(maps.Keys(groups)) {
		cs := groups[g]
		if g == field.GenericIndexGroup {
			for _, c := range cs {
				stmts = append(stmts, createIndex(t.Name, t.Name+"_"+c.ColumnName, []*gen.Column{c}))
			}
			continue
		}
		stmts = append(stmts, createIndex(t.Name, fmt.Sprintf("%s_%d", t.Name, g), cs))
	}
	return stmts
}

func createIndex(table, name string, cs []*gen.Column) string {
	return "CREATE INDEX IF NOT EXISTS " + dialect.Quote("index_"+name) + " ON " + dialect.Quote(table) + "(" + quoteColumns(cs) + ")"
}

// InsertSQL returns the INSERT statement of t. The auto-increment key is
// left out and assigned by the database.
func InsertSQL(t *gen.Table) (string, error) {
	var names, params []string
	for _, c := range t.InsertColumns() {
		name, err := InsertColumnName(c)
		if err != nil {
			return "", fmt.Errorf("column %s: %w", c.Name, err)
		}
		names = append(names, name)
		params = append(params, InsertPlaceholder(c))
	}
	return "INSERT INTO " + dialect.Quote(t.Name) + "(" + strings.Join(names, ", ") + ") VALUES (" + strings.Join(params, ", ") + ")", nil
}

func quoteColumns(cs []*gen.Column) string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = dialect.Quote(c.ColumnName)
	}
	return strings.Join(names, ", ")
}
