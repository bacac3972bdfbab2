package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fire/internal/buildpipeline"
	"fire/internal/diag"
	"fire/internal/namespace"
	"fire/internal/resource"
	"fire/internal/storage"
)

// newProject lays out root/src/<files> plus an empty target directory.
func newProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "target"), 0o755))
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
	}
	return root
}

func diagOf(t *testing.T, err error) *diag.Diagnostic {
	t.Helper()
	var d *diag.Diagnostic
	require.True(t, errors.As(err, &d), "expected diagnostic, got %v", err)
	return d
}

func TestStructureBuildsTable(t *testing.T) {
	root := newProject(t, map[string]string{
		"src/c.fire":   "fn main() {}\nlet speed = 2.5f\n",
		"src/a/b.fire": "struct Player { fn jump(self) {} }\nenum Dir { Up, Down }\n",
		"src/a/x.txt":  "not a source",
	})

	res, err := Structure(context.Background(), &StructureRequest{Root: root, Jobs: 2})
	require.NoError(t, err)
	require.True(t, res.Table.Frozen())
	assert.False(t, res.Bag.HasErrors())

	var got []string
	for _, s := range res.Table.Stubs() {
		got = append(got, s.Path.String()+" "+s.Kind.String())
	}
	want := []string{
		"a::b::Dir enum",
		"a::b::Dir::Down enum-const",
		"a::b::Dir::Up enum-const",
		"a::b::Player struct",
		"a::b::Player::jump method",
		"c::main function",
		"c::speed var",
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Fatal(diff)
	}

	require.Len(t, res.Files, 2)
	assert.Equal(t, "src/a/b.fire", res.Files[0].Rel)
	assert.Equal(t, "src/c.fire", res.Files[1].Rel)
	assert.NotZero(t, res.Fingerprint)
	assert.NotEmpty(t, res.Timings.Phases)

	stub, ok := res.Table.Lookup(namespace.Parse("c::main"))
	require.True(t, ok)
	assert.Equal(t, "src/c.fire", stub.File)
	assert.Equal(t, uint32(1), stub.Pos.Line)
}

func TestStructureProjectShape(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main.fire"), []byte("fn main() {}"), 0o600))

	res, err := Structure(context.Background(), &StructureRequest{Root: root})
	d := diagOf(t, err)
	assert.Equal(t, diag.PrjMissingTarget, d.Code)
	assert.Empty(t, res.Files, "no file may be read before the project shape is valid")
	assert.Equal(t, 0, res.FileSet.Len())
}

// listFailStore fails List for directories ending with dir.
type listFailStore struct {
	storage.Store
	dir string
}

func (s listFailStore) List(ctx context.Context, dir string) ([]storage.Entry, error) {
	if strings.HasSuffix(dir, s.dir) {
		return nil, errors.New("device not ready")
	}
	return s.Store.List(ctx, dir)
}

func TestStructureDiscoverFailureIsDiagnostic(t *testing.T) {
	root := newProject(t, map[string]string{
		"src/main.fire":  "fn main() {}",
		"src/gfx/a.fire": "fn draw() {}",
	})
	store := listFailStore{Store: storage.NewAFS(), dir: "gfx"}

	res, err := Structure(context.Background(), &StructureRequest{Root: root, Store: store})
	d := diagOf(t, err)
	assert.Equal(t, diag.IOFileError, d.Code)
	assert.Equal(t, "src/gfx", d.File)
	assert.Equal(t, d, res.Bag.First())
}

func TestStructureLexError(t *testing.T) {
	root := newProject(t, map[string]string{
		"src/ok.fire":  "fn ok() {}",
		"src/bad.fire": "fn f() {\n  let s = \"abc\\q\"\n}",
	})
	_, err := Structure(context.Background(), &StructureRequest{Root: root, Jobs: 1})
	d := diagOf(t, err)
	assert.Equal(t, diag.LexUnknownEscape, d.Code)
	assert.Equal(t, "src/bad.fire:2:15: ERROR LEX1006: "+d.Message, d.Error())
}

func TestStructureDuplicateKeepsFirst(t *testing.T) {
	root := newProject(t, map[string]string{
		"src/a.fire":   "group b {\n  fn main() {}\n}\n",
		"src/a/b.fire": "pc main() {}\n",
	})
	res, err := Structure(context.Background(), &StructureRequest{Root: root, Jobs: 4})
	d := diagOf(t, err)
	assert.Equal(t, diag.ResDuplicate, d.Code)
	assert.Equal(t, "a::b::main", d.Resource)
	assert.Equal(t, "src/a/b.fire", d.File)
	require.Len(t, d.Notes, 1)
	assert.Equal(t, "src/a.fire", d.Notes[0].File)

	stub, ok := res.Table.Lookup(namespace.Parse("a::b::main"))
	require.True(t, ok)
	assert.Equal(t, resource.Function, stub.Kind)
	assert.False(t, res.Table.Frozen())
}

func TestStructureCollectAll(t *testing.T) {
	root := newProject(t, map[string]string{
		"src/one.fire":   "fn a() { $ }",
		"src/two.fire":   "let s = 'open",
		"src/three.fire": "fn fine() {}",
	})
	res, err := Structure(context.Background(), &StructureRequest{Root: root, CollectAll: true})
	require.Error(t, err)
	require.Equal(t, 2, res.Bag.Len())

	codes := []diag.Code{res.Bag.Items()[0].Code, res.Bag.Items()[1].Code}
	assert.ElementsMatch(t, []diag.Code{diag.LexUnknownChar, diag.LexUnterminatedString}, codes)
	_, ok := res.Table.Lookup(namespace.Parse("three::fine"))
	assert.True(t, ok, "healthy files are still structured in collect-all mode")
}

func TestStructureManifest(t *testing.T) {
	root := newProject(t, map[string]string{
		"fire.toml":          "[package]\nname = \"game\"\n\n[build]\njobs = 1\nexclude = [\"scratch\"]\n",
		"src/main.fire":      "fn main() {}",
		"src/scratch/x.fire": "fn main( $$$",
	})
	res, err := Structure(context.Background(), &StructureRequest{Root: root})
	require.NoError(t, err)
	assert.Equal(t, "game", res.Manifest.Name)
	assert.Equal(t, 1, res.Table.Len())

	bad := newProject(t, map[string]string{"fire.toml": "[build\n", "src/main.fire": ""})
	_, err = Structure(context.Background(), &StructureRequest{Root: bad})
	assert.Equal(t, diag.PrjBadManifest, diagOf(t, err).Code)
}

func TestStructureTokenCache(t *testing.T) {
	root := newProject(t, map[string]string{
		"src/main.fire": "@inline fn main() { let x = 0x1F + 3.25 }\nconst name = \"fire\\n\"\n",
	})
	cache, err := OpenTokenCache(t.TempDir())
	require.NoError(t, err)

	first, err := Structure(context.Background(), &StructureRequest{Root: root, Cache: cache})
	require.NoError(t, err)
	require.False(t, first.Files[0].Cached)

	rec := &buildpipeline.Recorder{}
	second, err := Structure(context.Background(), &StructureRequest{Root: root, Cache: cache, Progress: rec})
	require.NoError(t, err)
	require.True(t, second.Files[0].Cached)

	if diff := deep.Equal(first.Files[0].Tokens, second.Files[0].Tokens); diff != nil {
		t.Fatal(diff)
	}
	assert.Equal(t, first.Fingerprint, second.Fingerprint)

	var sawCached bool
	for _, ev := range rec.Events() {
		sawCached = sawCached || ev.Status == buildpipeline.StatusCached
	}
	assert.True(t, sawCached)
	assert.Equal(t, buildpipeline.StatusDone, rec.Last()["src/main.fire"])
}

func TestStructureManifestCacheDir(t *testing.T) {
	root := newProject(t, map[string]string{
		"fire.toml":     "[build]\ncache = true\n",
		"src/main.fire": "fn main() {}",
	})
	_, err := Structure(context.Background(), &StructureRequest{Root: root})
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(root, "target", ".fire-cache", "tokens"))

	_, err = Structure(context.Background(), &StructureRequest{Root: root, NoCache: true})
	require.NoError(t, err)
}

func TestStructureCancelled(t *testing.T) {
	root := newProject(t, map[string]string{"src/main.fire": "fn main() {}"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Structure(ctx, &StructureRequest{Root: root})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStructureProgressEvents(t *testing.T) {
	root := newProject(t, map[string]string{
		"src/a.fire": "fn a() {}",
		"src/b.fire": "fn b() {}",
	})
	rec := &buildpipeline.Recorder{}
	_, err := Structure(context.Background(), &StructureRequest{Root: root, Progress: rec})
	require.NoError(t, err)

	last := rec.Last()
	assert.Equal(t, buildpipeline.StatusDone, last["src/a.fire"])
	assert.Equal(t, buildpipeline.StatusDone, last["src/b.fire"])
}

func TestTokenizeKeepsTokensBeforeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.fire")
	require.NoError(t, os.WriteFile(path, []byte("fn main $"), 0o600))

	res, err := Tokenize(path, 0)
	require.NoError(t, err)
	require.Equal(t, 1, res.Bag.Len())
	assert.Equal(t, diag.LexUnknownChar, res.Bag.First().Code)

	var kinds []string
	for _, tok := range res.Tokens {
		kinds = append(kinds, tok.Kind.String())
	}
	assert.Equal(t, []string{"KwFn", "Ident", "Invalid", "EOF"}, kinds)
}
