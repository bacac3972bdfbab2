package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.AddVirtual("main.fire", []byte("fn main() {}"))
	id2 := fs.AddVirtual("main.fire", []byte("fn main() { let x = 1 }"))

	if id1 == id2 {
		t.Fatalf("expected new FileID on re-add, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("main.fire")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if fs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", fs.Len())
	}
	if fs.Get(id1).Hash == fs.Get(id2).Hash {
		t.Fatalf("different contents must hash differently")
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("v.fire", []byte("a\nbc\n"))
	f := fs.Get(id)

	if f.Flags&FileVirtual == 0 {
		t.Fatalf("FileVirtual flag missing")
	}
	if len(f.LineIdx) != 2 || f.LineIdx[0] != 1 || f.LineIdx[1] != 4 {
		t.Fatalf("unexpected LineIdx %v", f.LineIdx)
	}
}

func TestAddSourceNormalization(t *testing.T) {
	tests := []struct {
		name     string
		raw      []byte
		want     string
		wantFlag FileFlags
	}{
		{"plain", []byte("fn a\nfn b"), "fn a\nfn b", 0},
		{"crlf", []byte("fn a\r\nfn b\r\n"), "fn a\nfn b\n", FileNormalizedCRLF},
		{"bom", []byte("\xEF\xBB\xBFfn a"), "fn a", FileHadBOM},
		{"bom+crlf", []byte("\xEF\xBB\xBFa\r\nb"), "a\nb", FileHadBOM | FileNormalizedCRLF},
		// одиночный \r оставляем как есть
		{"lone cr", []byte("a\rb"), "a\rb", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFileSet()
			f := fs.Get(fs.AddSource("x.fire", tt.raw))
			if string(f.Content) != tt.want {
				t.Errorf("content = %q, want %q", f.Content, tt.want)
			}
			if f.Flags != tt.wantFlag {
				t.Errorf("flags = %b, want %b", f.Flags, tt.wantFlag)
			}
		})
	}
}

func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()
	// "привет" занимает 12 байт
	id := fs.AddVirtual("u.fire", []byte("let привет = 1\nfn f"))
	start, end := fs.Resolve(Span{File: id, Start: 21, End: 23})
	if start != (LineCol{Line: 2, Col: 1}) {
		t.Errorf("start = %+v", start)
	}
	if end != (LineCol{Line: 2, Col: 3}) {
		t.Errorf("end = %+v", end)
	}
	// "привет" начинается с 5-й колонки и кончается перед 11-й
	start, end = fs.Resolve(Span{File: id, Start: 4, End: 16})
	if start != (LineCol{Line: 1, Col: 5}) || end != (LineCol{Line: 1, Col: 11}) {
		t.Errorf("ident = %+v-%+v", start, end)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("l.fire", []byte("first\nsecond\n\nlast")))

	cases := map[uint32]string{0: "", 1: "first", 2: "second", 3: "", 4: "last", 5: ""}
	for n, want := range cases {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.fire")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFfn main()\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "fn main()\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b", f.Flags)
	}
	if got, ok := fs.GetByPath(path); !ok || got.ID != id {
		t.Fatalf("GetByPath failed")
	}
	if rel := f.FormatPath("relative", dir); rel != "main.fire" {
		t.Fatalf("FormatPath(relative) = %q", rel)
	}
	if base := f.FormatPath("basename", ""); base != "main.fire" {
		t.Fatalf("FormatPath(basename) = %q", base)
	}
}

func TestLoadMissing(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.fire")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestContentHashStable(t *testing.T) {
	a := ContentHash([]byte("fn main() {}"))
	b := ContentHash([]byte("fn main() {}"))
	c := ContentHash([]byte("fn main() { }"))
	if a != b {
		t.Fatal("hash must be deterministic")
	}
	if a == c {
		t.Fatal("hash collision on trivially different input")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 5}
	got := a.Cover(b)
	if got.Start != 2 || got.End != 8 || got.Len() != 6 {
		t.Fatalf("Cover = %+v", got)
	}
	if !(Span{Start: 3, End: 3}).Empty() {
		t.Fatal("zero-width span must be empty")
	}
}
