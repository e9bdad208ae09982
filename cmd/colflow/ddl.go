package main

import (
	"context"
	dbsql "database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/syssam/colflow/adapter"
	"github.com/syssam/colflow/compiler/gen/sql"
)

func (a *app) ddlCmd() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "ddl [package]",
		Short: "Print the CREATE statements of a Go package",
		Long: `DDL prints the CREATE TABLE and CREATE INDEX statements of every mapped
struct. With --check the statements are executed against an in-memory
SQLite database.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProject(cmd.Context(), args, false)
			if err != nil {
				return err
			}
			stmts, err := statements(p)
			if err != nil {
				return err
			}
			for _, stmt := range stmts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s;\n", stmt)
			}
			if !check {
				return nil
			}
			stats, err := checkStatements(cmd.Context(), stmts, a.logger)
			if err != nil {
				return err
			}
			a.logger.Info("statements executed", "stats", stats)
			return nil
		},
	}
	packageFlags(cmd)
	cmd.Flags().BoolVar(&check, "check", false, "execute the statements against an in-memory SQLite database")
	return cmd
}

func statements(p *project) ([]string, error) {
	var (
		stmts []string
		errs  []error
	)
	for _, t := range p.tables {
		create, err := sql.CreateTableSQL(t)
		if err != nil {
			errs = append(errs, fmt.Errorf("table %s: %w", t.Name, err))
			continue
		}
		stmts = append(stmts, create)
		stmts = append(stmts, sql.CreateIndexSQL(t)...)
	}
	return stmts, errors.Join(errs...)
}

// checkStatements executes stmts twice on an in-memory database. The
// second run verifies that every statement is idempotent.
func checkStatements(ctx context.Context, stmts []string, logger *slog.Logger) (adapter.StatsSnapshot, error) {
	db, err := dbsql.Open("sqlite", ":memory:")
	if err != nil {
		return adapter.StatsSnapshot{}, err
	}
	defer db.Close()
	db.SetMaxOpenConns(1)
	e := adapter.NewStatsExecer(db, adapter.WithSlowLog(logger))
	for range 2 {
		for _, stmt := range stmts {
			if _, err := e.ExecContext(ctx, stmt); err != nil {
				return e.Stats().Snapshot(), fmt.Errorf("executing %q: %w", stmt, err)
			}
		}
	}
	return e.Stats().Snapshot(), nil
}
