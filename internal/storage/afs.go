package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

// AFS is a Store over github.com/viant/afs: local paths, file:// and any
// other scheme registered with afs (mem://, s3://, gs://).
type AFS struct {
	fs afs.Service
}

// NewAFS returns a Store backed by afs.New().
func NewAFS() *AFS {
	return &AFS{fs: afs.New()}
}

// IsURL reports whether p carries a scheme ("mem://", "s3://", "file://").
func IsURL(p string) bool { return strings.Contains(p, "://") }

// location приводит локальный путь к абсолютному: afs работает с URL.
func location(p string) string {
	if IsURL(p) {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// Join appends name to a local directory or a URL.
func Join(dir, name string) string {
	if IsURL(dir) {
		return url.Join(dir, name)
	}
	return filepath.Join(dir, name)
}

func samePath(a, b string) bool {
	return path.Clean(url.Path(a)) == path.Clean(url.Path(b))
}

func (s *AFS) List(ctx context.Context, dir string) ([]Entry, error) {
	loc := location(dir)
	objects, err := s.fs.List(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	out := make([]Entry, 0, len(objects))
	for _, obj := range objects {
		// afs отдаёт сам каталог первым элементом
		if samePath(obj.URL(), loc) {
			continue
		}
		out = append(out, Entry{
			Name:  obj.Name(),
			Path:  Join(dir, obj.Name()),
			IsDir: obj.IsDir(),
		})
	}
	return out, nil
}

func (s *AFS) Read(ctx context.Context, p string) ([]byte, error) {
	loc := location(p)
	ok, err := s.fs.Exists(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	if !ok {
		return nil, fmt.Errorf("read %s: %w", p, ErrNotFound)
	}
	data, err := s.fs.DownloadWithURL(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return data, nil
}

func (s *AFS) Stat(ctx context.Context, p string) (Entry, bool, error) {
	loc := location(p)
	ok, err := s.fs.Exists(ctx, loc)
	if err != nil {
		return Entry{}, false, fmt.Errorf("stat %s: %w", p, err)
	}
	if !ok {
		return Entry{}, false, nil
	}
	obj, err := s.fs.Object(ctx, loc)
	if err != nil {
		return Entry{}, false, fmt.Errorf("stat %s: %w", p, err)
	}
	return Entry{Name: obj.Name(), Path: p, IsDir: obj.IsDir()}, true, nil
}
