package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fire/internal/diag"
	"fire/internal/diagfmt"
	"fire/internal/driver"
	"fire/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [flags] [project]",
		Short: "Re-structure a Fire project whenever its sources change",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWatch,
	}
	cmd.Flags().Duration("debounce", watcher.DefaultDebounce, "quiet period before a rebuild")
	cmd.Flags().Int("jobs", 0, "files lexed in parallel (0: fire.toml or GOMAXPROCS)")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	root, err := projectArg(args)
	if err != nil {
		return err
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	_, cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cache, err := driver.OpenUserTokenCache("fire")
	if err != nil {
		slog.Warn("user token cache unavailable", "err", err)
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	build := func() *driver.StructureResult {
		start := time.Now()
		res, err := driver.Structure(ctx, &driver.StructureRequest{
			Root:           root,
			Jobs:           jobs,
			MaxDiagnostics: maxDiagnostics,
			Cache:          cache,
			Logger:         slog.Default(),
		})
		reportWatchRun(out, res, err, time.Since(start))
		return res
	}

	res := build()
	if ctx.Err() != nil {
		return nil
	}
	opts := watcher.Options{Debounce: debounce, Logger: slog.Default()}
	if res != nil && res.Manifest != nil {
		opts.Exclude = res.Manifest.Excluded
	}

	changes := make(chan []string, 1)
	w, err := watcher.New(root, opts, func(paths []string) {
		select {
		case changes <- paths:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := w.Start(); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()
	fmt.Fprintf(out, "watching %s (ctrl-c to stop)\n", root)

	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-changes:
			fmt.Fprintf(out, "changed: %s\n", strings.Join(paths, ", "))
			build()
		}
	}
}

func reportWatchRun(out io.Writer, res *driver.StructureResult, err error, took time.Duration) {
	var d *diag.Diagnostic
	switch {
	case err == nil:
		fmt.Fprintf(out, "ok: %d files, %d resources in %s\n", len(res.Files), res.Table.Len(), took.Round(time.Millisecond))
	case errors.As(err, &d):
		fmt.Fprintf(out, "failed: %s\n", diagfmt.Line(d))
	default:
		fmt.Fprintf(out, "failed: %v\n", err)
	}
}
