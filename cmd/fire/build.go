package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"fire/internal/diag"
	"fire/internal/diagfmt"
	"fire/internal/driver"
	"fire/internal/project"
	"fire/internal/source"
	"fire/internal/version"
)

type diagFormat string

const (
	diagFormatLine   diagFormat = "line"
	diagFormatPretty diagFormat = "pretty"
	diagFormatJSON   diagFormat = "json"
	diagFormatSarif  diagFormat = "sarif"
)

func readDiagFormat(value string) (diagFormat, error) {
	switch f := diagFormat(value); f {
	case diagFormatLine, diagFormatPretty, diagFormatJSON, diagFormatSarif:
		return f, nil
	case "":
		return diagFormatLine, nil
	default:
		return "", fmt.Errorf("invalid --diagnostics value %q (expected line|pretty|json|sarif)", value)
	}
}

type buildOptions struct {
	jobs       int
	collectAll bool
	userCache  bool
	noCache    bool
	ui         uiMode
	resources  bool
	format     diagfmt.ResourceFormat
	diagFormat diagFormat
	pathMode   diagfmt.PathMode
}

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [flags] [project]",
		Short: "Validate and structure a Fire project",
		Long:  "Build validates the project layout, lexes every source under src/ and builds the Resource Table.\nWithout an argument the project enclosing the working directory is built.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  buildExecution,
	}
	f := cmd.Flags()
	f.Int("jobs", 0, "files lexed in parallel (0: fire.toml or GOMAXPROCS)")
	f.Bool("all-diagnostics", false, "keep going after the first error and report every diagnostic")
	f.Bool("cache", false, "reuse tokens from the user cache directory")
	f.Bool("no-cache", false, "disable the token cache, including [build].cache")
	f.String("ui", "auto", "user interface (auto|on|off)")
	f.Bool("resources", false, "print the Resource Table on success")
	f.String("format", "text", "resource table format (text|json|yaml)")
	f.String("diagnostics", "pretty", "diagnostic output (line|pretty|json|sarif)")
	f.String("path-mode", "auto", "paths in diagnostics (auto|absolute|relative|basename)")
	return cmd
}

func buildExecution(cmd *cobra.Command, args []string) error {
	var (
		opts buildOptions
		err  error
	)
	f := cmd.Flags()
	if opts.jobs, err = f.GetInt("jobs"); err != nil {
		return err
	}
	if opts.collectAll, err = f.GetBool("all-diagnostics"); err != nil {
		return err
	}
	if opts.userCache, err = f.GetBool("cache"); err != nil {
		return err
	}
	if opts.noCache, err = f.GetBool("no-cache"); err != nil {
		return err
	}
	opts.resources, err = f.GetBool("resources")
	if err != nil {
		return err
	}
	uiValue, err := f.GetString("ui")
	if err != nil {
		return err
	}
	if opts.ui, err = readUIMode(uiValue); err != nil {
		return err
	}
	format, err := f.GetString("format")
	if err != nil {
		return err
	}
	switch opts.format = diagfmt.ResourceFormat(format); opts.format {
	case diagfmt.ResourcesText, diagfmt.ResourcesJSON, diagfmt.ResourcesYAML:
	default:
		return fmt.Errorf("invalid --format value %q (expected text|json|yaml)", format)
	}
	diagValue, err := f.GetString("diagnostics")
	if err != nil {
		return err
	}
	if opts.diagFormat, err = readDiagFormat(diagValue); err != nil {
		return err
	}
	pathMode, err := f.GetString("path-mode")
	if err != nil {
		return err
	}
	opts.pathMode = diagfmt.ParsePathMode(pathMode)
	if opts.userCache && opts.noCache {
		return errors.New("--cache and --no-cache are mutually exclusive")
	}
	root, err := projectArg(args)
	if err != nil {
		return err
	}
	return runStructure(cmd, root, opts)
}

// projectArg returns the project named on the command line or, when none is
// given, the nearest project enclosing the working directory.
func projectArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	root, ok, err := project.FindProjectRoot(".")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.New("no Fire project in the working directory or its parents")
	}
	slog.Debug("project found", "root", root)
	return root, nil
}

// runStructure is shared by `fire <project>` and `fire build`.
func runStructure(cmd *cobra.Command, root string, opts buildOptions) error {
	maxDiagnostics, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	timings, _ := cmd.Flags().GetBool("timings")

	tracer, cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	req := &driver.StructureRequest{
		Root:           root,
		Jobs:           opts.jobs,
		MaxDiagnostics: maxDiagnostics,
		CollectAll:     opts.collectAll,
		NoCache:        opts.noCache,
		Logger:         slog.Default(),
	}
	if opts.userCache {
		cache, cerr := driver.OpenUserTokenCache("fire")
		if cerr != nil {
			slog.Warn("user token cache unavailable", "err", cerr)
		}
		req.Cache = cache
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var res *driver.StructureResult
	if shouldUseTUI(opts.ui, stdout) && !quiet {
		res, err = runStructureWithUI(cmd.Context(), "fire build "+root, stdout, req)
	} else {
		res, err = driver.Structure(cmd.Context(), req)
	}

	if timings && res != nil {
		printTimings(stderr, res.Timings, res.Stages)
	}
	if err != nil {
		var d *diag.Diagnostic
		if !errors.As(err, &d) {
			return err
		}
		dumpRing(cmd, tracer)
		if perr := printDiagnostics(cmd, res, d, opts); perr != nil {
			return perr
		}
		return errReported
	}

	if opts.resources {
		if err := diagfmt.FormatResources(stdout, res.Table, opts.format); err != nil {
			return err
		}
	} else if !quiet && opts.diagFormat != diagFormatLine {
		fmt.Fprintf(stdout, "structured %d files, %d resources\n", len(res.Files), res.Table.Len())
	}
	return nil
}

func printDiagnostics(cmd *cobra.Command, res *driver.StructureResult, first *diag.Diagnostic, opts buildOptions) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	bag := diag.NewBag(0)
	var fs *source.FileSet
	if res != nil {
		fs = res.FileSet
	}
	if res != nil && res.Bag.Len() > 0 {
		bag = res.Bag
	} else {
		bag.Add(first)
	}
	switch opts.diagFormat {
	case diagFormatJSON:
		return diagfmt.JSON(stdout, bag, fs, diagfmt.JSONOpts{PathMode: opts.pathMode, IncludeNotes: true})
	case diagFormatSarif:
		return diagfmt.Sarif(stdout, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "fire",
			ToolVersion:    version.Version,
			InvocationArgs: cmd.Flags().Args(),
		})
	case diagFormatPretty:
		color, err := useColor(cmd, stderr)
		if err != nil {
			return err
		}
		diagfmt.Pretty(stderr, bag, fs, diagfmt.PrettyOpts{
			Color:     color,
			Context:   2,
			PathMode:  opts.pathMode,
			ShowNotes: true,
		})
		return nil
	default:
		writeLine(stderr, first)
		return nil
	}
}

func writeLine(w io.Writer, d *diag.Diagnostic) {
	fmt.Fprintln(w, diagfmt.Line(d))
}
