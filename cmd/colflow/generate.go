package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/colflow/compiler/gen/sql"
)

func (a *app) generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [package]",
		Short: "Generate the adapter packages of a Go package",
		Long: `Generate loads the structs of a Go package and writes one adapter
package per struct into the target directory. Package-private structs also
get a helper file in their own package.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd.Context(), cmd, args)
		},
	}
	packageFlags(cmd)
	targetFlags(cmd)
	return cmd
}

func (a *app) generate(ctx context.Context, cmd *cobra.Command, args []string) error {
	p, err := a.loadProject(ctx, args, true)
	if err != nil {
		return err
	}
	metrics, err := sql.Generate(ctx, p.config, p.tables)
	if err != nil {
		return err
	}
	a.logger.Info("adapters generated", "package", p.schema.PkgPath, "files", metrics.FilesGenerated, "bytes", metrics.TotalBytes)
	fmt.Fprintf(cmd.OutOrStdout(), "generated %d files in %s\n", metrics.FilesGenerated, p.config.Target)
	return nil
}
