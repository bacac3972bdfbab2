// Package watcher reports batches of changed project files.
//
// Events from fsnotify are collected per path and flushed to the callback
// after a quiet period. A rewrite that leaves a file's content unchanged is
// not reported.
package watcher

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"

	"fire/internal/project"
	"fire/internal/source"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 200 * time.Millisecond

// DefaultExcludeDirs are never watched: build output and hidden directories.
var DefaultExcludeDirs = []string{project.TargetDir, ".*"}

// Options configures a Watcher.
type Options struct {
	Debounce    time.Duration
	ExcludeDirs []string              // glob по имени каталога
	Exclude     func(rel string) bool // rel вида "src/a/b.fire"
	Logger      *slog.Logger
}

// Watcher watches a project root recursively.
type Watcher struct {
	root        string
	fsw         *fsnotify.Watcher
	debounce    time.Duration
	excludeDirs []glob.Glob
	exclude     func(rel string) bool
	log         *slog.Logger
	onChange    func([]string)
	callbackMu  sync.Mutex

	mu      sync.Mutex
	pending map[string]struct{}
	hashes  map[string]uint64 // последнее увиденное содержимое
	timer   *time.Timer
	started bool
	closed  bool
	done    chan struct{}
}

// New creates a watcher for root. onChange receives the sorted, project-relative
// paths that changed since the previous call; calls never overlap.
func New(root string, opts Options, onChange func([]string)) (*Watcher, error) {
	if onChange == nil {
		return nil, os.ErrInvalid
	}
	patterns := opts.ExcludeDirs
	if patterns == nil {
		patterns = DefaultExcludeDirs
	}
	dirs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("exclude dir %q: %w", p, err)
		}
		dirs = append(dirs, g)
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		root:        filepath.Clean(root),
		fsw:         fsw,
		debounce:    debounce,
		excludeDirs: dirs,
		exclude:     opts.Exclude,
		log:         logger,
		onChange:    onChange,
		pending:     make(map[string]struct{}),
		hashes:      make(map[string]uint64),
		done:        make(chan struct{}),
	}, nil
}

// Start registers every directory under root and begins delivering events.
func (w *Watcher) Start() error {
	if err := w.watchTree(w.root, false); err != nil {
		return err
	}
	w.mu.Lock()
	w.started = true
	w.mu.Unlock()
	go w.run()
	return nil
}

// Close stops the watcher; a pending batch is dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	started := w.started
	w.mu.Unlock()
	err := w.fsw.Close()
	if started {
		<-w.done
	}
	return err
}

// watchTree добавляет каталоги. Для корня запоминает хеши файлов,
// для нового каталога ставит его файлы в очередь.
func (w *Watcher) watchTree(dir string, enqueue bool) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			w.log.Warn("watch: walk failed", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			if path != w.root && w.skipDir(path) {
				return filepath.SkipDir
			}
			return w.fsw.Add(path)
		}
		if !w.relevant(path) {
			return nil
		}
		if enqueue {
			w.schedule(path)
		} else if h, ok := w.hash(path); ok {
			w.mu.Lock()
			w.hashes[path] = h
			w.mu.Unlock()
		}
		return nil
	})
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("watch: fsnotify error", "error", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if w.skipDir(ev.Name) {
				return
			}
			if err := w.watchTree(ev.Name, true); err != nil {
				w.log.Warn("watch: cannot watch new directory", "path", ev.Name, "error", err)
			}
			return
		}
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}
	if w.relevant(ev.Name) {
		w.schedule(ev.Name)
		return
	}
	// удалённый каталог: его файлы тоже считаем изменёнными
	if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
		w.forgetTree(ev.Name)
	}
}

func (w *Watcher) forgetTree(dir string) {
	prefix := dir + string(filepath.Separator)
	w.mu.Lock()
	var gone []string
	for p := range w.hashes {
		if strings.HasPrefix(p, prefix) {
			gone = append(gone, p)
		}
	}
	w.mu.Unlock()
	for _, p := range gone {
		w.schedule(p)
	}
}

func (w *Watcher) hash(path string) (uint64, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			w.log.Debug("watch: read failed", "path", path, "error", err)
		}
		return 0, false
	}
	return source.ContentHash(data), true
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

// flush сравнивает содержимое с последним увиденным только после паузы:
// truncate+write одного и того же текста изменением не считается.
func (w *Watcher) flush() {
	w.mu.Lock()
	if w.closed || len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	pending := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	paths := make([]string, 0, len(pending))
	for p := range pending {
		h, ok := w.hash(p)
		w.mu.Lock()
		prev, seen := w.hashes[p]
		switch {
		case !ok && seen:
			delete(w.hashes, p)
			paths = append(paths, w.rel(p))
		case ok && (!seen || prev != h):
			w.hashes[p] = h
			paths = append(paths, w.rel(p))
		}
		w.mu.Unlock()
	}
	if len(paths) == 0 {
		return
	}

	slices.Sort(paths)
	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()
	w.onChange(paths)
}

func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (w *Watcher) skipDir(path string) bool {
	base := filepath.Base(path)
	for _, g := range w.excludeDirs {
		if g.Match(base) {
			return true
		}
	}
	return false
}

// relevant: исходники .fire и манифест в корне.
func (w *Watcher) relevant(path string) bool {
	rel := w.rel(path)
	if rel == project.ManifestName {
		return true
	}
	if !project.IsSource(filepath.Base(path)) {
		return false
	}
	return w.exclude == nil || !w.exclude(rel)
}
