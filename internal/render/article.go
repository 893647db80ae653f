package render

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/ziadkadry99/newsfront/internal/markdown"
	"github.com/ziadkadry99/newsfront/internal/news"
	"github.com/ziadkadry99/newsfront/internal/page"
	"github.com/ziadkadry99/newsfront/internal/source"
)

var (
	errNoConverter = errors.New("markdown converter is not configured")
	errNoID        = errors.New("id query parameter is missing")
)

// article is everything fetched for one detail render.
type article struct {
	item       news.Item
	prev, next *news.Item
	body       string
}

// Article renders the article named by the page's id query parameter.
// Every fetch completes before the page is touched, so any failure is
// logged once and leaves the page as it was. It reports success.
func (r *Renderer) Article(ctx context.Context, p *page.Page, indexPath string) bool {
	a, err := r.loadArticle(ctx, p.URL(), indexPath)
	if err != nil {
		r.Logger.Error("article render failed", "path", p.URL().Path, "error", err)
		return false
	}

	p.SetTitle(a.item.Title + r.TitleSuffix)

	if el := p.ByID(ArticleTitleID); el.Length() > 0 {
		el.SetText(a.item.Title)
	}
	if el := p.ByID(ArticleDateID); el.Length() > 0 {
		el.SetText(news.FormatDate(a.item.Date))
		el.SetAttr("datetime", a.item.Date)
	}
	if el := p.ByID(ArticleCategoryID); el.Length() > 0 {
		el.SetText(news.CategoryLabel(a.item.Category))
	}
	if el := p.ByID(BreadcrumbTitleID); el.Length() > 0 {
		el.SetText(a.item.Title)
	}
	if el := p.ByID(ArticleBodyID); el.Length() > 0 {
		el.SetHtml(a.body)
	}

	r.Pagination(p, a.prev, a.next)
	r.Logger.Debug("article rendered", "id", a.item.ID)
	return true
}

// loadArticle fetches everything the article at u needs. A relative
// markdownPath is resolved against u.
func (r *Renderer) loadArticle(ctx context.Context, u *url.URL, indexPath string) (*article, error) {
	id := u.Query().Get("id")
	if r.Markdown == nil {
		return nil, errNoConverter
	}
	if id == "" {
		return nil, errNoID
	}

	idx, err := news.Load(ctx, r.Source, indexPath)
	if err != nil {
		return nil, err
	}

	item, prev, next, err := idx.Neighbors(id)
	if err != nil {
		return nil, err
	}

	src, err := r.Source.Fetch(ctx, source.Resolve(u.Path, item.MarkdownPath))
	if err != nil {
		return nil, fmt.Errorf("loading markdown for %q: %w", id, err)
	}

	body, _ := markdown.StripFrontMatter(src)
	html, err := r.Markdown.Convert(body)
	if err != nil {
		return nil, fmt.Errorf("rendering markdown for %q: %w", id, err)
	}

	return &article{item: item, prev: prev, next: next, body: string(html)}, nil
}
