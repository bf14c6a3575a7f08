package engine

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/scout/scout/internal/types"
)

// Walk traverses root and invokes handle for each file the filter accepts.
// Unreadable entries are skipped. Walking stops at the first error returned
// by handle or when ctx is done.
func Walk(ctx context.Context, root string, f *Filter, handle func(types.Document) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if d != nil && d.IsDir() && p != root {
				return filepath.SkipDir
			}
			if p == root {
				return err
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		if d.IsDir() {
			if f.SkipDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || f.SkipFile(rel) {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		return handle(types.Document{
			Path:    rel,
			Kind:    f.Kind(rel),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Changed: true,
		})
	})
}

// CountTargets returns how many files under root the filter accepts,
// without reading them.
func CountTargets(ctx context.Context, root string, f *Filter) (int, error) {
	n := 0
	err := Walk(ctx, root, f, func(types.Document) error {
		n++
		return nil
	})
	return n, err
}
