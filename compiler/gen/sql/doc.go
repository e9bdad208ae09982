// Package sql implements the SQLite code generator of colflow.
//
// The package has two layers. The emitter functions work on one column
// and return a Jennifer fragment (or a SQL string):
//
//	PropertyDecl          var Name = adapter.NewProperty[string]("users", "name")
//	PropertyCase          case "`name`": return Name
//	InsertColumnName      `name`
//	ContentValues         values.Put("name", model.Name)
//	BindStatement         stmt.Bind(1, model.Name)
//	LoadFromRow           if index := row.ColumnIndex("name"); ... { model.Name = row.StringValue(index) }
//	UpdateAutoIncrement   model.ID = id
//	ToModel               model.Name = container.StringValue("Name")
//	CreationClause        `name` TEXT(64) COLLATE NOCASE UNIQUE NOT NULL
//	ForeignKeyContainerPut container.Put("OWNER_ID", model.Owner)
//
// Every emitter reads the model through the column's access strategy
// (gen.Access), so the same call serves exported fields, accessor
// methods, package-private helpers and converted values. Emitters return
// gen.ErrNoAccess for parameterized columns.
//
// The Dialect assembles the fragments of a gen.Table into files and
// implements gen.DialectGenerator:
//
//	{target}/
//	├── {model}/
//	│   └── {model}.go        # Adapter: properties, bind/load/transfer functions, DDL
//	└── schema/
//	    └── schema.go         # (if FeatureSchema enabled) CREATE statements of all tables
//	{model dir}/
//	└── {model}_colflow.go    # Accessor helpers of package-private models
//
// # Statement Parameters
//
// Parameter indexes are assigned by gen.Table.BindIndexes before the
// columns are emitted in parallel. An auto-increment primary key is never
// bound and does not consume an index.
//
// # DDL
//
// CreateTableSQL and CreateIndexSQL produce SQLite statements. Column
// names are quoted with backticks. Column-level conflict clauses are not
// emitted; a unique group carries the conflict action of its first
// column.
package sql
