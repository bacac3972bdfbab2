package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"fire/internal/diag"
	"fire/internal/source"
	"fire/internal/storage"
)

const (
	SrcDir    = "src"
	TargetDir = "target"
)

// Validate checks the project shape before any source is read: root is a
// directory holding a non-empty src and a target directory. Shape violations
// and storage failures both come back as *diag.Diagnostic.
func Validate(ctx context.Context, store storage.Store, root string) error {
	entry, ok, err := store.Stat(ctx, root)
	if err != nil {
		return storageError(root, err)
	}
	if !ok || !entry.IsDir {
		return shapeError(diag.PrjNotDir, root, "project path is not a directory")
	}

	src := storage.Join(root, SrcDir)
	entry, ok, err = store.Stat(ctx, src)
	if err != nil {
		return storageError(src, err)
	}
	if !ok || !entry.IsDir {
		return shapeError(diag.PrjMissingSrc, root, "missing src directory")
	}
	members, err := store.List(ctx, src)
	if err != nil {
		return storageError(src, err)
	}
	if len(members) == 0 {
		return shapeError(diag.PrjEmptySrc, root, "src directory is empty")
	}

	target := storage.Join(root, TargetDir)
	entry, ok, err = store.Stat(ctx, target)
	if err != nil {
		return storageError(target, err)
	}
	if !ok || !entry.IsDir {
		return shapeError(diag.PrjMissingTarget, root, "missing target directory")
	}
	return nil
}

func shapeError(code diag.Code, root, msg string) *diag.Diagnostic {
	return diag.NewError(code, source.Span{}, msg).At(root, source.LineCol{})
}

// storageError превращает сбой хранилища в IO-диагностику с путём.
// Отмена контекста диагностикой не является.
func storageError(path string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	code := diag.IOFileError
	if errors.Is(err, fs.ErrPermission) {
		code = diag.IOFileUnreadable
	}
	return diag.NewError(code, source.Span{}, fmt.Sprintf("cannot access %s: %v", path, err)).
		At(path, source.LineCol{})
}
