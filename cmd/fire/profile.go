package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fire/internal/prof"
)

// startProfiling reads the profiling flags and starts the requested profilers.
func startProfiling(cmd *cobra.Command) (*prof.Session, error) {
	var (
		opts prof.Options
		err  error
	)
	flags := cmd.Flags()
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if opts == (prof.Options{}) {
		return nil, nil
	}
	return prof.Start(opts)
}
