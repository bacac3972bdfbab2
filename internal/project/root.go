package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FindProjectRoot walks up from startDir to the nearest directory that looks
// like a Fire project: it holds fire.toml, or both src and target directories.
// ok is false when the file system root is reached without a match.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve %s: %w", startDir, err)
	}
	// файл вместо каталога: начинаем с его каталога
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		found, err := isProjectDir(dir)
		if err != nil {
			return "", false, err
		}
		if found {
			return dir, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

func isProjectDir(dir string) (bool, error) {
	if ok, err := exists(filepath.Join(dir, ManifestName), false); ok || err != nil {
		return ok, err
	}
	src, err := exists(filepath.Join(dir, SrcDir), true)
	if err != nil || !src {
		return false, err
	}
	return exists(filepath.Join(dir, TargetDir), true)
}

func exists(p string, wantDir bool) (bool, error) {
	info, err := os.Stat(p)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat %s: %w", p, err)
	}
	return info.IsDir() == wantDir, nil
}
