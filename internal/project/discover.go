package project

import (
	"context"
	"slices"
	"strings"

	"fire/internal/namespace"
	"fire/internal/storage"
)

// SourceFile is one discovered .fire file.
type SourceFile struct {
	Path     namespace.Path // каталоги + имя файла без расширения
	Location string         // путь или URL для storage.Store.Read
	Rel      string         // "src/a/b.fire", для диагностик
}

// DiscoverOptions tunes Discover.
type DiscoverOptions struct {
	// Exclude receives a slash-separated path relative to src ("a/b.fire",
	// "gen") and drops the file or the whole directory when it returns true.
	Exclude func(rel string) bool
}

// Discover walks root/src depth-first and returns every source file with the
// namespace path derived from its location. The result is sorted by path.
func Discover(ctx context.Context, store storage.Store, root string, opts DiscoverOptions) ([]SourceFile, error) {
	w := walker{store: store, opts: opts}
	if err := w.walk(ctx, storage.Join(root, SrcDir), "", namespace.Root()); err != nil {
		return nil, err
	}
	slices.SortFunc(w.out, func(a, b SourceFile) int {
		if c := namespace.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return strings.Compare(a.Rel, b.Rel)
	})
	return w.out, nil
}

type walker struct {
	store storage.Store
	opts  DiscoverOptions
	out   []SourceFile
}

// walk получает свой prefix по значению: каждый уровень рекурсии выводит
// новый путь через Child, общего изменяемого пути нет.
func (w *walker) walk(ctx context.Context, dir, rel string, prefix namespace.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := w.store.List(ctx, dir)
	if err != nil {
		label := SrcDir
		if rel != "" {
			label += "/" + rel
		}
		return storageError(label, err)
	}
	for _, e := range entries {
		childRel := e.Name
		if rel != "" {
			childRel = rel + "/" + e.Name
		}
		if w.opts.Exclude != nil && w.opts.Exclude(childRel) {
			continue
		}
		if e.IsDir {
			if err := w.walk(ctx, e.Path, childRel, prefix.Child(Segment(e.Name))); err != nil {
				return err
			}
			continue
		}
		if !IsSource(e.Name) {
			continue
		}
		w.out = append(w.out, SourceFile{
			Path:     prefix.Child(FileSegment(e.Name)),
			Location: e.Path,
			Rel:      SrcDir + "/" + childRel,
		})
	}
	return nil
}
