package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/colflow/compiler/load"
)

func (a *app) watchCmd() *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch [package]",
		Short: "Regenerate the adapters whenever the package changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd, args, debounce)
		},
	}
	packageFlags(cmd)
	targetFlags(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "delay between a change and the regeneration")
	return cmd
}

func (a *app) watch(ctx context.Context, cmd *cobra.Command, args []string, debounce time.Duration) error {
	s, err := loadSettings(a.v, args)
	if err != nil {
		return err
	}
	schema, err := load.Package(ctx, s.loadConfig(a.logger))
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(schema.Dir); err != nil {
		return err
	}
	a.logger.Info("watching", "dir", schema.Dir)

	run := func() {
		if err := a.generate(ctx, cmd, args); err != nil {
			a.logger.Error("generation failed", "error", err)
		}
	}
	run()
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if sourceChanged(ev) {
				a.logger.Debug("change detected", "file", ev.Name, "op", ev.Op.String())
				pending = time.After(debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watcher error", "error", err)
		case <-pending:
			pending = nil
			run()
		}
	}
}

// sourceChanged reports if ev changes a hand-written Go source file.
func sourceChanged(ev fsnotify.Event) bool {
	name := filepath.Base(ev.Name)
	switch {
	case !strings.HasSuffix(name, ".go"),
		strings.HasSuffix(name, "_test.go"),
		strings.HasSuffix(name, "_colflow.go"),
		strings.HasPrefix(name, "."):
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}
