package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/syssam/colflow/compiler/gen"
	"github.com/syssam/colflow/compiler/load"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app holds the state shared by the commands of one invocation.
type app struct {
	stdout, stderr io.Writer
	v              *viper.Viper
	logger         *slog.Logger

	configFile string
	verbose    bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr, v: newViper(), logger: slog.New(slog.NewTextHandler(stderr, nil))}
}

func (a *app) root() *cobra.Command {
	root := &cobra.Command{
		Use:           "colflow",
		Short:         "colflow generates SQLite adapters for Go structs",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := readConfig(a.v, a.configFile); err != nil {
				return err
			}
			if err := bindFlags(a.v, cmd); err != nil {
				return err
			}
			lvl, err := parseLevel(a.v.GetString(keyLogLevel), a.verbose)
			if err != nil {
				return err
			}
			a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: lvl}))
			if f := a.v.ConfigFileUsed(); f != "" {
				a.logger.Debug("config loaded", "file", f)
			}
			return nil
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default: ./.colflow.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(a.generateCmd(), a.ddlCmd(), a.inspectCmd(), a.watchCmd())
	return root
}

// packageFlags adds the flags selecting the loaded package.
func packageFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.String("dir", "", "working directory of the package loader")
	fs.StringSlice("types", nil, "struct types to map (default: every tagged struct)")
	fs.StringSlice("tags", nil, "build tags used when loading the package")
}

// targetFlags adds the flags of the generator.
func targetFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringP("target", "o", "", "output directory of the adapter packages")
	fs.String("import-path", "", "import path of the target directory (default: inferred)")
	fs.String("header", "", "header comment of generated files")
	fs.Int("workers", 0, "files generated in parallel (default: GOMAXPROCS)")
	fs.StringSlice("feature", nil, "enable a generator feature (sql/insert, sql/schema, container)")
	fs.StringSlice("disable", nil, "disable a default generator feature")
}

// project is a loaded package with its tables.
type project struct {
	settings *settings
	schema   *load.Schema
	config   *gen.Config
	tables   []*gen.Table
}

// loadProject loads the configured package and builds its tables. Column errors
// are logged and returned joined.
func (a *app) loadProject(ctx context.Context, args []string, requireTarget bool) (*project, error) {
	s, err := loadSettings(a.v, args)
	if err != nil {
		return nil, err
	}
	schema, err := load.Package(ctx, s.loadConfig(a.logger))
	if err != nil {
		return nil, err
	}
	cfg, err := s.genConfig(schema, requireTarget)
	if err != nil {
		return nil, err
	}
	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	tables, err := schema.Tables(reg, &gen.LogReporter{Logger: a.logger})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", schema.PkgPath, err)
	}
	a.logger.Debug("tables built", "package", schema.PkgPath, "tables", len(tables))
	return &project{settings: s, schema: schema, config: cfg, tables: tables}, nil
}
