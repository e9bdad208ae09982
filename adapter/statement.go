package adapter

import (
	"context"
	"database/sql"
	"fmt"
)

// Execer is implemented by *sql.DB, *sql.Tx and *sql.Conn.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Statement collects positional arguments of a prepared statement.
// Parameter indices are 1-based, as in SQL.
type Statement struct {
	args []any
}

// NewStatement returns a Statement with room for n parameters.
func NewStatement(n int) *Statement {
	return &Statement{args: make([]any, 0, n)}
}

// Bind binds v to the parameter at index (1-based).
func (s *Statement) Bind(index int, v any) {
	if index < 1 {
		panic(fmt.Sprintf("adapter: invalid parameter index %d", index))
	}
	for len(s.args) < index {
		s.args = append(s.args, nil)
	}
	s.args[index-1] = normalize(v)
}

// BindNull binds NULL to the parameter at index (1-based).
func (s *Statement) BindNull(index int) { s.Bind(index, nil) }

// Args returns the bound arguments in parameter order.
func (s *Statement) Args() []any { return s.args }

// Clear removes all bound arguments.
func (s *Statement) Clear() { s.args = s.args[:0] }

// Exec executes query with the bound arguments.
func (s *Statement) Exec(ctx context.Context, e Execer, query string) (sql.Result, error) {
	res, err := e.ExecContext(ctx, query, s.args...)
	if err != nil {
		return nil, fmt.Errorf("adapter: exec statement: %w", err)
	}
	return res, nil
}
