package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"fire/internal/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().String("format", "text", "output format (text|json)")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Version   string `json:"version"`
			GitCommit string `json:"git_commit,omitempty"`
			BuildDate string `json:"build_date,omitempty"`
		}{version.Version, version.GitCommit, version.BuildDate})
	case "text", "":
		color, err := useColor(cmd, out)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, version.String(color))
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
