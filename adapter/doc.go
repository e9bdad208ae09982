// Package adapter is the runtime support library of the code emitted by
// colflow. Generated model adapters move column values between three
// representations:
//
//   - the typed model, a Go struct;
//   - a Container, a string-keyed value holder that stores the database
//     form of each column under its container key;
//   - SQL artifacts: a Statement with 1-indexed positional parameters,
//     Values keyed by column name, and a Row read from a result set.
//
// A typical generated insert looks like:
//
//	stmt := adapter.NewStatement(3)
//	stmt.Bind(1, model.Name)
//	stmt.Bind(2, string(model.Status))
//	stmt.Bind(3, typeConverterUUIDConverter.DBValue(model.Token))
//	res, err := stmt.Exec(ctx, db, UserInsertSQL)
//
// Type converters translate between a model type and its database form.
// Converters known at generation time are referenced directly; the others
// are found at run time in the registry populated by Register.
//
// NewStatsExecer wraps a database handle to count executed statements and
// report slow ones.
package adapter
