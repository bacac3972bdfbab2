package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"fire/internal/source"
	"fire/internal/token"
)

// Current schema version - increment when the payload format changes
const tokenCacheSchemaVersion uint16 = 1

// TokenCache keeps lexed token streams on disk, keyed by the content hash
// of the file. Thread-safe for concurrent access.
type TokenCache struct {
	mu  sync.RWMutex
	dir string
}

// tokenPayload is what one cache file holds.
type tokenPayload struct {
	Schema uint16
	Hash   uint64
	Size   int // длина содержимого, вторая проверка на коллизию
	Tokens []cachedToken
}

type cachedToken struct {
	Kind       token.Kind
	Start, End uint32
	Line, Col  uint32
	Text       string
	Int        int64
	Float      float32
}

// OpenTokenCache opens (creating it if needed) a cache rooted at dir.
func OpenTokenCache(dir string) (*TokenCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("token cache: %w", err)
	}
	return &TokenCache{dir: dir}, nil
}

// OpenUserTokenCache opens the per-user cache under $XDG_CACHE_HOME/app.
func OpenUserTokenCache(app string) (*TokenCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenTokenCache(filepath.Join(base, app))
}

// Dir returns the cache directory.
func (c *TokenCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *TokenCache) pathFor(hash uint64) string {
	// подкаталог "tokens" — чтобы было что чистить руками
	return filepath.Join(c.dir, "tokens", strconv.FormatUint(hash, 16)+".mp")
}

// Put stores the tokens of file. Writes go through a temp file and rename,
// so concurrent readers never see a partial payload.
func (c *TokenCache) Put(file *source.File, toks []token.Token) error {
	if c == nil {
		return nil
	}
	payload := tokenPayload{
		Schema: tokenCacheSchemaVersion,
		Hash:   file.Hash,
		Size:   len(file.Content),
		Tokens: make([]cachedToken, len(toks)),
	}
	for i, t := range toks {
		payload.Tokens[i] = cachedToken{
			Kind:  t.Kind,
			Start: t.Span.Start,
			End:   t.Span.End,
			Line:  t.Pos.Line,
			Col:   t.Pos.Col,
			Text:  t.Text,
			Int:   t.Int,
			Float: t.Float,
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(file.Hash)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// после успешного Rename файла уже нет
		_ = os.Remove(tmp)
	}()

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Get returns the cached tokens of file with spans rebound to file.ID.
// A miss, a stale schema or a mismatching payload all report false.
func (c *TokenCache) Get(file *source.File) ([]token.Token, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(file.Hash))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload tokenPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != tokenCacheSchemaVersion || payload.Hash != file.Hash || payload.Size != len(file.Content) {
		return nil, false, nil
	}
	toks := make([]token.Token, len(payload.Tokens))
	for i, ct := range payload.Tokens {
		toks[i] = token.Token{
			Kind:  ct.Kind,
			Span:  source.Span{File: file.ID, Start: ct.Start, End: ct.End},
			Pos:   source.LineCol{Line: ct.Line, Col: ct.Col},
			Text:  ct.Text,
			Int:   ct.Int,
			Float: ct.Float,
		}
	}
	return toks, true, nil
}

// DropAll removes every cached payload.
func (c *TokenCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "tokens"))
}
