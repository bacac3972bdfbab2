package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fire/internal/lexer"
	"fire/internal/namespace"
	"fire/internal/resource"
	"fire/internal/source"
)

type entry struct {
	Path    string
	Kind    resource.Kind
	Private bool
}

func scan(t *testing.T, prefix, src string) []entry {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("main.fire", []byte(src)))
	toks, err := lexer.Tokenize(file, lexer.Options{})
	require.NoError(t, err)

	stubs := Scan(namespace.Parse(prefix), "src/main.fire", toks)
	out := make([]entry, len(stubs))
	for i, s := range stubs {
		assert.Equal(t, "src/main.fire", s.File)
		out[i] = entry{Path: s.Path.String(), Kind: s.Kind, Private: s.Private}
	}
	return out
}

func TestTopLevelDeclarations(t *testing.T) {
	src := `
import std::io
import game::{ui, audio}

@inline
fn main() {
    let x = 1
    if x > 0 { raise Error("no") }
}

pc tick(dt: Float) {
    fn_like_ident()
}

let counter = 0
const limit = 0xFF
`
	got := scan(t, "game", src)
	want := []entry{
		{Path: "game::main", Kind: resource.Function},
		{Path: "game::tick", Kind: resource.Process},
		{Path: "game::counter", Kind: resource.Var},
		{Path: "game::limit", Kind: resource.Var},
	}
	assert.Equal(t, want, got)
}

func TestStructTraitEnum(t *testing.T) {
	src := `
struct Player : Entity {
    hp: Int
    fn hit(self, dmg: Int) { self.hp -= dmg }
    fn alive(self): Bool { self.hp > 0 }
}

trait Entity {
    fn update(self, dt: Float)
    fn draw(self)
}

enum Color : Int {
    Red = 1,
    Green = (2 + 3),
    blue
}
`
	got := scan(t, "", src)
	want := []entry{
		{Path: "Player", Kind: resource.Struct},
		{Path: "Player::hit", Kind: resource.Method},
		{Path: "Player::alive", Kind: resource.Method},
		{Path: "Entity", Kind: resource.Trait},
		{Path: "Entity::update", Kind: resource.AbstractMethod},
		{Path: "Entity::draw", Kind: resource.AbstractMethod},
		{Path: "Color", Kind: resource.Enum},
		{Path: "Color::Red", Kind: resource.EnumConst},
		{Path: "Color::Green", Kind: resource.EnumConst},
		{Path: "Color::blue", Kind: resource.EnumConst},
	}
	assert.Equal(t, want, got)
}

func TestImplBlocks(t *testing.T) {
	src := `
impl Player {
    fn heal(self) {}
}
impl Entity for Player {
    fn update(self, dt: Float) { }
}
`
	got := scan(t, "game", src)
	want := []entry{
		{Path: "game::Player::heal", Kind: resource.Method},
		{Path: "game::Player::update", Kind: resource.Method},
	}
	assert.Equal(t, want, got)
}

func TestGroupsNest(t *testing.T) {
	src := `
group ui {
    fn draw() {}
    group widgets {
        struct Button { fn click(self) {} }
    }
}
fn after() {}
`
	got := scan(t, "app", src)
	want := []entry{
		{Path: "app::ui::draw", Kind: resource.Function},
		{Path: "app::ui::widgets::Button", Kind: resource.Struct},
		{Path: "app::ui::widgets::Button::click", Kind: resource.Method},
		{Path: "app::after", Kind: resource.Function},
	}
	assert.Equal(t, want, got)
}

func TestPrivateFlag(t *testing.T) {
	src := `
private fn hidden() {}
fn shown() {}
private @cold("x") pc slow() {}
private let secret = 1
struct S { private fn inner(self) {} fn outer(self) {} }
`
	got := scan(t, "", src)
	want := []entry{
		{Path: "hidden", Kind: resource.Function, Private: true},
		{Path: "shown", Kind: resource.Function},
		{Path: "slow", Kind: resource.Process, Private: true},
		{Path: "secret", Kind: resource.Var, Private: true},
		{Path: "S", Kind: resource.Struct},
		{Path: "S::inner", Kind: resource.Method, Private: true},
		{Path: "S::outer", Kind: resource.Method},
	}
	assert.Equal(t, want, got)
}

func TestMalformedHeadersAreIgnored(t *testing.T) {
	src := `
fn (x) {}
struct lower {}
enum {}
group {}
const Upper = 1
private 42
fn ok() {}
`
	got := scan(t, "", src)
	assert.Equal(t, []entry{{Path: "ok", Kind: resource.Function}}, got)
}

func TestBodiesAreSkipped(t *testing.T) {
	src := `
fn outer() {
    fn not_a_resource() {}
    struct Nope {}
    let local = { a: [1, (2)] }
}
fn next() {}
`
	got := scan(t, "", src)
	want := []entry{
		{Path: "outer", Kind: resource.Function},
		{Path: "next", Kind: resource.Function},
	}
	assert.Equal(t, want, got)
}

func TestUnclosedBodyConsumesRest(t *testing.T) {
	got := scan(t, "", "fn a() { fn b() {}\n")
	assert.Equal(t, []entry{{Path: "a", Kind: resource.Function}}, got)
}

func TestStubPositions(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("m.fire", []byte("\n  fn main() {}")))
	toks, err := lexer.Tokenize(file, lexer.Options{})
	require.NoError(t, err)

	stubs := Scan(namespace.Root(), "m.fire", toks)
	require.Len(t, stubs, 1)
	assert.Equal(t, source.LineCol{Line: 2, Col: 6}, stubs[0].Pos)
	assert.Equal(t, "main", string(file.Content[stubs[0].Span.Start:stubs[0].Span.End]))
}
