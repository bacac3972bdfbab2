package project

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"

	"fire/internal/diag"
	"fire/internal/source"
	"fire/internal/storage"
)

// ManifestName is the optional per-project configuration file.
const ManifestName = "fire.toml"

// ErrNoManifest indicates that the project has no fire.toml.
var ErrNoManifest = errors.New("no " + ManifestName)

// Manifest is the decoded fire.toml. Zero values mean "not set":
// command-line flags and built-in defaults fill them in.
type Manifest struct {
	Path           string // где лежит fire.toml
	Name           string
	Jobs           int
	MaxDiagnostics int
	Exclude        []string
	CollectAll     bool
	Cache          bool

	excludes []glob.Glob
}

type manifestFile struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Build struct {
		Jobs           int      `toml:"jobs"`
		MaxDiagnostics int      `toml:"max-diagnostics"`
		Exclude        []string `toml:"exclude"`
		CollectAll     bool     `toml:"collect-all"`
		Cache          bool     `toml:"cache"`
	} `toml:"build"`
}

// LoadManifest reads root/fire.toml through store. A missing manifest yields
// ErrNoManifest; a malformed one yields a PrjBadManifest diagnostic.
func LoadManifest(ctx context.Context, store storage.Store, root string) (*Manifest, error) {
	path := storage.Join(root, ManifestName)
	data, err := store.Read(ctx, path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoManifest
		}
		return nil, storageError(path, err)
	}
	return ParseManifest(path, data)
}

// ParseManifest decodes manifest text; path is used only in diagnostics.
func ParseManifest(path string, data []byte) (*Manifest, error) {
	var cfg manifestFile
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, badManifest(path, tomlPos(err), fmt.Sprintf("failed to parse TOML: %v", err))
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, badManifest(path, source.LineCol{}, fmt.Sprintf("unknown key %q", undecoded[0].String()))
	}

	m := &Manifest{Path: path}
	if meta.IsDefined("package", "name") {
		name := strings.TrimSpace(cfg.Package.Name)
		if !IsValidName(name) {
			return nil, badManifest(path, source.LineCol{}, fmt.Sprintf("invalid [package].name %q", cfg.Package.Name))
		}
		m.Name = name
	}
	if !meta.IsDefined("build") {
		return m, nil
	}
	if meta.IsDefined("build", "jobs") {
		if cfg.Build.Jobs < 0 {
			return nil, badManifest(path, source.LineCol{}, "[build].jobs must not be negative")
		}
		m.Jobs = cfg.Build.Jobs
	}
	if meta.IsDefined("build", "max-diagnostics") {
		if cfg.Build.MaxDiagnostics < 0 {
			return nil, badManifest(path, source.LineCol{}, "[build].max-diagnostics must not be negative")
		}
		m.MaxDiagnostics = cfg.Build.MaxDiagnostics
	}
	m.CollectAll = cfg.Build.CollectAll
	m.Cache = cfg.Build.Cache
	for _, pattern := range cfg.Build.Exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, badManifest(path, source.LineCol{}, fmt.Sprintf("invalid exclude pattern %q: %v", pattern, err))
		}
		m.Exclude = append(m.Exclude, pattern)
		m.excludes = append(m.excludes, g)
	}
	return m, nil
}

// Excluded reports whether a slash-separated path relative to src matches
// one of the [build].exclude patterns.
func (m *Manifest) Excluded(rel string) bool {
	if m == nil {
		return false
	}
	for _, g := range m.excludes {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

func badManifest(path string, pos source.LineCol, msg string) *diag.Diagnostic {
	return diag.NewError(diag.PrjBadManifest, source.Span{}, msg).At(path, pos)
}

func tomlPos(err error) source.LineCol {
	var perr toml.ParseError
	if !errors.As(err, &perr) {
		return source.LineCol{}
	}
	line, convErr := safecast.Conv[uint32](perr.Position.Line)
	if convErr != nil {
		return source.LineCol{}
	}
	return source.LineCol{Line: line}
}
