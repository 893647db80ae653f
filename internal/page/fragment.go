package page

import (
	"context"
	"log/slog"

	"github.com/ziadkadry99/newsfront/internal/source"
)

// Loader injects shared fragments into page containers.
type Loader struct {
	Source source.Source
	Logger *slog.Logger
}

// NewLoader returns a Loader. A nil logger uses slog.Default().
func NewLoader(src source.Source, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{Source: src, Logger: logger}
}

// LoadFragment replaces the content of the element with the given id by the
// fragment at path, then calls callback. A page without that element is
// left alone and nothing is fetched. A failed fetch is logged once and
// leaves the container untouched; callback is not called. The return value
// reports whether the fragment was injected.
func (l *Loader) LoadFragment(ctx context.Context, p *Page, id, path string, callback func(*Page)) bool {
	container := p.ByID(id)
	if container.Length() == 0 {
		return false
	}

	html, err := l.Source.Fetch(ctx, path)
	if err != nil {
		l.Logger.Error("fragment load failed", "container", id, "path", path, "error", err)
		return false
	}

	container.SetHtml(string(html))
	if callback != nil {
		callback(p)
	}
	return true
}
