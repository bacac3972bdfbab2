package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"fire/internal/diag"
	"fire/internal/lexer"
	"fire/internal/namespace"
	"fire/internal/resource"
	"fire/internal/source"
)

func TestJSONDiagnostics(t *testing.T) {
	fs, bag := unterminated(t)
	bag.Add(diag.NewError(diag.PrjMissingTarget, source.Span{}, "missing target directory").At("/home/user/game", source.LineCol{}))

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeRelative, IncludeNotes: true}))

	var out DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, 2, out.Count)

	first := out.Diagnostics[0]
	assert.Equal(t, "ERROR", first.Severity)
	assert.Equal(t, "LEX1002", first.Code)
	assert.Equal(t, LocationJSON{File: "src/main.fire", Line: 2, Col: 9, StartByte: 20, EndByte: 25}, first.Location)
	require.Len(t, first.Notes, 1)
	assert.Equal(t, "inside this function", first.Notes[0].Message)

	second := out.Diagnostics[1]
	assert.Equal(t, "PRJ5004", second.Code)
	assert.Equal(t, LocationJSON{File: "/home/user/game"}, second.Location)
}

func TestJSONMaxTruncatesOutput(t *testing.T) {
	bag := diag.NewBag(0)
	for range 5 {
		bag.Add(diag.NewError(diag.LexBadNumber, source.Span{}, "bad"))
	}
	out := BuildDiagnosticsOutput(bag, nil, JSONOpts{Max: 2})
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, 5, bag.Len())
}

func TestSarif(t *testing.T) {
	fs, bag := unterminated(t)
	var buf bytes.Buffer
	require.NoError(t, Sarif(&buf, bag, fs, SarifRunMeta{ToolName: "fire", ToolVersion: "0.1.0"}))

	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID string `json:"ruleId"`
				Level  string `json:"level"`
			} `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))
	assert.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)
	assert.Equal(t, "fire", log.Runs[0].Tool.Driver.Name)
	require.Len(t, log.Runs[0].Results, 1)
	assert.Equal(t, "LEX1002", log.Runs[0].Results[0].RuleID)
	assert.Equal(t, "error", log.Runs[0].Results[0].Level)
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.fire", []byte("let n = 42\n")))
	toks, err := lexer.Tokenize(file, lexer.Options{})
	require.NoError(t, err)

	var pretty bytes.Buffer
	require.NoError(t, FormatTokensPretty(&pretty, toks, fs))
	lines := strings.Split(strings.TrimSpace(pretty.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], `"n" at 1:5-1:6`)
	assert.Contains(t, lines[3], "42 at 1:9-1:11")

	var js bytes.Buffer
	require.NoError(t, FormatTokensJSON(&js, toks))
	var out []TokenOutput
	require.NoError(t, json.Unmarshal(js.Bytes(), &out))
	require.Len(t, out, 4)
	require.NotNil(t, out[3].Int)
	assert.Equal(t, int64(42), *out[3].Int)
	assert.Equal(t, uint32(9), out[3].Col)
}

func table(t *testing.T) *resource.Table {
	t.Helper()
	tbl := resource.NewTable(2)
	require.NoError(t, tbl.Insert(resource.Stub{Path: namespace.Parse("game::main"), Kind: resource.Function, File: "src/game.fire", Pos: source.LineCol{Line: 1, Col: 4}}))
	require.NoError(t, tbl.Insert(resource.Stub{Path: namespace.Parse("game::Player"), Kind: resource.Struct, File: "src/game.fire", Pos: source.LineCol{Line: 3, Col: 8}, Private: true}))
	tbl.Freeze()
	return tbl
}

func TestFormatResourcesText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatResources(&buf, table(t), ResourcesText))
	out := buf.String()
	assert.Contains(t, out, "game::Player")
	assert.Contains(t, out, "src/game.fire:3:8")
	assert.Contains(t, out, "private")
	assert.Contains(t, out, "function")
}

func TestFormatResourcesYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatResources(&buf, table(t), ResourcesYAML))

	var doc struct {
		Count     int `yaml:"count"`
		Resources []struct {
			Path string `yaml:"path"`
			Kind string `yaml:"kind"`
		} `yaml:"resources"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 2, doc.Count)
	kinds := map[string]string{}
	for _, r := range doc.Resources {
		kinds[r.Path] = r.Kind
	}
	assert.Equal(t, map[string]string{"game::main": "function", "game::Player": "struct"}, kinds)
}

func TestFormatResourcesUnknownFormat(t *testing.T) {
	assert.Error(t, FormatResources(&bytes.Buffer{}, table(t), "xml"))
}
