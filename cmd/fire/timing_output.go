package main

import (
	"fmt"
	"io"

	"fire/internal/buildpipeline"
	"fire/internal/observ"
)

// printTimings prints the driver phases, then the per-file stages summed
// over all files.
func printTimings(out io.Writer, report observ.Report, stages buildpipeline.Timings) {
	fmt.Fprintln(out, "timings:")
	for _, p := range report.Phases {
		fmt.Fprintf(out, "  %-12s %8.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			fmt.Fprintf(out, "  // %s", p.Note)
		}
		fmt.Fprintln(out)
	}
	for _, stage := range buildpipeline.Stages {
		if stages.Has(stage) {
			fmt.Fprintf(out, "  %-12s %8.2f ms  // all files\n", stage, observ.Millis(stages.Duration(stage)))
		}
	}
	fmt.Fprintf(out, "  %-12s %8.2f ms\n", "total", report.TotalMS)
}
