package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"
)

// Dir serves resources from a directory on disk.
type Dir struct {
	root string
	fsys fs.FS
}

// NewDir returns a Source rooted at dir.
func NewDir(dir string) *Dir {
	return &Dir{root: dir, fsys: os.DirFS(dir)}
}

// Root returns the directory the source reads from.
func (d *Dir) Root() string { return d.root }

// Fetch reads the file at p relative to the root. Missing files and
// directories are reported as a 404 StatusError.
func (d *Dir) Fetch(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := strings.TrimPrefix(Clean(p), "/")
	if name == "" {
		name = "."
	}

	info, err := fs.Stat(d.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &StatusError{Path: p, Code: http.StatusNotFound}
		}
		return nil, fmt.Errorf("stat %s: %w", p, err)
	}
	if info.IsDir() {
		return nil, &StatusError{Path: p, Code: http.StatusNotFound}
	}

	data, err := fs.ReadFile(d.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}
	return data, nil
}
