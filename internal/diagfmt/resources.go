package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"fire/internal/resource"
)

// ResourceFormat selects the rendering of the Resource Table.
type ResourceFormat string

const (
	ResourcesText ResourceFormat = "text"
	ResourcesJSON ResourceFormat = "json"
	ResourcesYAML ResourceFormat = "yaml"
)

type resourceDoc struct {
	Count     int             `json:"count" yaml:"count"`
	Resources []resource.Stub `json:"resources" yaml:"resources"`
}

// FormatResources prints every stub of table sorted by path.
func FormatResources(w io.Writer, table *resource.Table, format ResourceFormat) error {
	stubs := table.Stubs()
	switch format {
	case ResourcesJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resourceDoc{Count: len(stubs), Resources: stubs})
	case ResourcesYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(resourceDoc{Count: len(stubs), Resources: stubs}); err != nil {
			return err
		}
		return enc.Close()
	case ResourcesText, "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, s := range stubs {
			vis := ""
			if s.Private {
				vis = "private"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s:%d:%d\t%s\n", s.Path, s.Kind, s.File, s.Pos.Line, s.Pos.Col, vis)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown resource format %q (expected: text|json|yaml)", format)
	}
}
