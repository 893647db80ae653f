// Package source resolves site-absolute resource paths such as
// /assets/data/news-index.json to their bytes, either from a local site
// directory or from a remote origin.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// Source fetches a resource by its site-absolute path.
type Source interface {
	Fetch(ctx context.Context, p string) ([]byte, error)
}

// StatusError reports a fetch that completed with a non-success status.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d %s", e.Path, e.Code, http.StatusText(e.Code))
}

// IsNotFound reports whether err is a StatusError with status 404.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Clean strips any query or fragment and returns a rooted, cleaned path.
// Paths that try to climb above the root stay at the root.
func Clean(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return path.Clean("/" + p)
}

// Resolve returns the path ref refers to when read from the page at base,
// the way a browser resolves a relative fetch. Site-absolute refs are
// returned as they are; any query or fragment is dropped.
func Resolve(base, ref string) string {
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).Path
}
