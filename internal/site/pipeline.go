// Package site renders page shells: per request through Pipeline, or the
// whole site ahead of time through Generator.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/ziadkadry99/newsfront/internal/config"
	"github.com/ziadkadry99/newsfront/internal/livereload"
	"github.com/ziadkadry99/newsfront/internal/markdown"
	"github.com/ziadkadry99/newsfront/internal/page"
	"github.com/ziadkadry99/newsfront/internal/render"
	"github.com/ziadkadry99/newsfront/internal/source"
)

// Pipeline runs every page-load operation against one shell. Operations are
// independent: each logs its own failure and the others still run.
type Pipeline struct {
	Source     source.Source
	Loader     *page.Loader
	Renderer   *render.Renderer
	Paths      config.PathsConfig
	Widgets    []config.WidgetConfig
	LiveReload bool
	Logger     *slog.Logger
}

// NewPipeline wires a Pipeline from configuration. A nil md leaves the
// article view unconfigured, which aborts every article render.
func NewPipeline(cfg *config.Config, src source.Source, md markdown.Converter, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		Source:   src,
		Loader:   page.NewLoader(src, logger),
		Renderer: render.New(src, md, logger, cfg.TitleSuffix, cfg.Paths.ListPage),
		Paths:    cfg.Paths,
		Widgets:  cfg.Widgets,
		Logger:   logger,
	}
}

// RenderOptions overrides the detail page detection.
type RenderOptions struct {
	ForceArticle bool // render the article whatever the path
	SkipArticle  bool // never render the article
}

// Result is a rendered page and what was filled in.
type Result struct {
	HTML    []byte
	Header  bool
	Footer  bool
	Article bool
	Widgets int
}

// IsDetail reports whether a path is served by the article detail shell.
func (p *Pipeline) IsDetail(urlPath string) bool {
	return p.Paths.DetailPage != "" && strings.Contains(urlPath, p.Paths.DetailPage)
}

// Render fills shell for the page at u and serializes it. Only a shell that
// cannot be parsed or serialized is an error.
func (p *Pipeline) Render(ctx context.Context, shell []byte, u *url.URL, opts RenderOptions) (*Result, error) {
	pg, err := page.ParseBytes(shell, u)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	res.Header = p.Loader.LoadFragment(ctx, pg, "header", p.Paths.Header, func(pg *page.Page) {
		page.InitHeader(pg, p.Logger)
	})
	res.Footer = p.Loader.LoadFragment(ctx, pg, "footer", p.Paths.Footer, nil)

	if !opts.SkipArticle && (opts.ForceArticle || p.IsDetail(pg.URL().Path)) {
		res.Article = p.Renderer.Article(ctx, pg, p.Paths.Index)
	}

	for _, w := range p.Widgets {
		if p.Renderer.Cards(ctx, pg, render.CardsRequest{
			Container: w.Container,
			IndexPath: p.Paths.Index,
			Limit:     w.Limit,
			Category:  w.Category,
		}) {
			res.Widgets++
		}
	}

	if p.LiveReload {
		pg.AppendToBody(livereload.Script)
	}

	res.HTML, err = pg.Render()
	if err != nil {
		return nil, fmt.Errorf("site: %s: %w", pg.URL().Path, err)
	}
	return res, nil
}
