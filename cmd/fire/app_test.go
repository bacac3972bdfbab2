package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "target"), 0o755))
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = execute(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestNoArgumentPrintsUsage(t *testing.T) {
	code, stdout, _ := run(t)
	assert.Equal(t, 0, code)
	assert.Equal(t, noProjectMessage+"\n", stdout)
}

func TestRootSucceedsSilently(t *testing.T) {
	root := newProject(t, map[string]string{
		"src/main.fire":    "fn main() {}\n",
		"src/game/ui.fire": "struct Button { fn click(self) {} }\n",
	})
	code, stdout, stderr := run(t, root)
	assert.Equal(t, 0, code, stderr)
	assert.Empty(t, stdout)
}

func TestRootReportsFirstDiagnostic(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "a.fire"), []byte("fn a() {}"), 0o644))

	code, _, stderr := run(t, root)
	assert.Equal(t, 1, code)
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "ERROR PRJ5004")
}

func TestRootLexError(t *testing.T) {
	root := newProject(t, map[string]string{
		"src/bad.fire": "fn main() {\n    let s = \"a\\qb\"\n}\n",
	})
	code, _, stderr := run(t, root)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "src/bad.fire:2:")
	assert.Contains(t, stderr, "ERROR LEX1006")
}

func TestBuildPrintsResources(t *testing.T) {
	root := newProject(t, map[string]string{
		"src/game.fire": "fn main() {}\nstruct Player { fn hit(self) {} }\n",
	})
	code, stdout, stderr := run(t, "build", "--ui", "off", "--resources", "--format", "json", root)
	require.Equal(t, 0, code, stderr)

	var doc struct {
		Count     int `json:"count"`
		Resources []struct {
			Path string `json:"path"`
			Kind string `json:"kind"`
		} `json:"resources"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, 3, doc.Count)
	paths := make([]string, 0, len(doc.Resources))
	for _, r := range doc.Resources {
		paths = append(paths, r.Path+" "+r.Kind)
	}
	assert.ElementsMatch(t, []string{"game::main function", "game::Player struct", "game::Player::hit method"}, paths)
}

func TestBuildSummaryAndQuiet(t *testing.T) {
	root := newProject(t, map[string]string{"src/a.fire": "fn a() {}\n", "src/b.fire": "fn b() {}\n"})

	code, stdout, _ := run(t, "build", "--ui", "off", root)
	require.Equal(t, 0, code)
	assert.Equal(t, "structured 2 files, 2 resources\n", stdout)

	code, stdout, _ = run(t, "--quiet", "build", "--ui", "off", root)
	require.Equal(t, 0, code)
	assert.Empty(t, stdout)
}

func TestBuildFindsEnclosingProject(t *testing.T) {
	root := newProject(t, map[string]string{"src/gfx/draw.fire": "fn draw() {}\n"})
	t.Chdir(filepath.Join(root, "src", "gfx"))

	code, stdout, stderr := run(t, "build", "--ui", "off")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "structured 1 files, 1 resources\n", stdout)
}

func TestBuildJSONDiagnostics(t *testing.T) {
	root := newProject(t, map[string]string{
		"src/one.fire": "fn f() { $ }\n",
		"src/two.fire": "fn g() { ` }\n",
	})
	code, stdout, _ := run(t, "build", "--ui", "off", "--all-diagnostics", "--diagnostics", "json", root)
	assert.Equal(t, 1, code)

	var out struct {
		Count       int `json:"count"`
		Diagnostics []struct {
			Code     string `json:"code"`
			Location struct {
				File string `json:"file"`
			} `json:"location"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Equal(t, 2, out.Count)
	assert.Equal(t, "src/one.fire", out.Diagnostics[0].Location.File)
	assert.Equal(t, "src/two.fire", out.Diagnostics[1].Location.File)
}

func TestBuildTimings(t *testing.T) {
	root := newProject(t, map[string]string{"src/a.fire": "fn a() {}\n"})
	code, _, stderr := run(t, "--timings", "build", "--ui", "off", root)
	require.Equal(t, 0, code)
	assert.Contains(t, stderr, "timings:")
	assert.Contains(t, stderr, "discover")
	assert.Contains(t, stderr, "total")
}

func TestTraceToStderr(t *testing.T) {
	root := newProject(t, map[string]string{"src/a.fire": "fn a() {}\n"})
	code, _, stderr := run(t, "--trace-level", "phase", root)
	require.Equal(t, 0, code)
	assert.Contains(t, stderr, "structure")
	assert.Contains(t, stderr, "discover")
}

func TestTokenize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.fire")
	require.NoError(t, os.WriteFile(path, []byte("let n = 42\n"), 0o644))

	code, stdout, stderr := run(t, "tokenize", "--format", "json", path)
	require.Equal(t, 0, code, stderr)
	var toks []struct {
		Kind string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &toks))
	require.NotEmpty(t, toks)
	assert.Equal(t, "EOF", toks[len(toks)-1].Kind)
}

func TestTokenizeLexError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.fire")
	require.NoError(t, os.WriteFile(path, []byte("fn $"), 0o644))

	code, stdout, stderr := run(t, "tokenize", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "KwFn")
	assert.Contains(t, stderr, "LEX1001")
}

func TestVersionJSON(t *testing.T) {
	code, stdout, _ := run(t, "version", "--format", "json")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, `"version"`)
}

func TestInvalidFlags(t *testing.T) {
	root := newProject(t, map[string]string{"src/a.fire": "fn a() {}\n"})
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"ui", []string{"build", "--ui", "maybe", root}, "invalid --ui"},
		{"format", []string{"build", "--format", "xml", root}, "invalid --format"},
		{"diagnostics", []string{"build", "--diagnostics", "html", root}, "invalid --diagnostics"},
		{"log level", []string{"--log-level", "loud", root}, "invalid --log-level"},
		{"trace level", []string{"--trace-level", "all", root}, "invalid trace level"},
		{"cache", []string{"build", "--cache", "--no-cache", root}, "mutually exclusive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := run(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.False(t, shouldUseTUI(uiModeAuto, &bytes.Buffer{}))
	assert.True(t, shouldUseTUI(uiModeOn, &bytes.Buffer{}))
}

func TestProfilingFlags(t *testing.T) {
	root := newProject(t, map[string]string{"src/a.fire": "fn a() {}\n"})
	dir := t.TempDir()
	cpu, mem := filepath.Join(dir, "cpu.pprof"), filepath.Join(dir, "mem.pprof")

	code, _, stderr := run(t, "--cpu-profile", cpu, "--mem-profile", mem, root)
	require.Equal(t, 0, code, stderr)
	assert.FileExists(t, cpu)
	assert.FileExists(t, mem)
}
