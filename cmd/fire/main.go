// Command fire structures a Fire project: it validates the project layout,
// lexes every source file and builds the Resource Table.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fire/internal/prof"
	"fire/internal/version"
)

const noProjectMessage = "Please provide the location of the Fire project to compile."

// errReported: диагностика уже напечатана, нужен только код выхода 1.
var errReported = errors.New("diagnostics reported")

// session — состояние одного запуска, которое живёт дольше команды.
type session struct {
	profile *prof.Session
}

func newRootCmd(state *session) *cobra.Command {
	root := &cobra.Command{
		Use:           "fire [flags] <project>",
		Short:         "Fire language compiler front end",
		Long:          `Fire validates a project, lexes its sources and builds the table of declared resources.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 0, "maximum number of diagnostics to collect (0: fire.toml or unlimited)")
	pf.String("log-level", "warn", "log level (debug|info|warn|error)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|phase|file)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "ring buffer capacity for --trace-mode ring|both")
	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file on exit")
	pf.String("runtime-trace", "", "write Go runtime trace to file")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		var err error
		state.profile, err = startProfiling(cmd)
		return err
	}

	root.AddCommand(newBuildCmd())
	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// execute runs the CLI and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	state := &session{}
	root := newRootCmd(state)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	if perr := state.profile.Stop(); perr != nil {
		fmt.Fprintf(stderr, "profile: %v\n", perr)
	}
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// runRoot — минимальный режим: проверка, структурирование, первая диагностика.
func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), noProjectMessage)
		return nil
	}
	return runStructure(cmd, args[0], buildOptions{ui: uiModeOff, diagFormat: diagFormatLine})
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, w io.Writer) (bool, error) {
	value, err := cmd.Flags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch value {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(w), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}
