package render

import (
	"context"
	"strings"

	"github.com/ziadkadry99/newsfront/internal/news"
	"github.com/ziadkadry99/newsfront/internal/page"
)

// CardsRequest describes one card list.
type CardsRequest struct {
	Container string
	IndexPath string
	Limit     int    // 0 renders every item
	Category  string // "" matches all
}

// Cards fills the container with one card per index item, after filtering
// by category and truncating to the limit. A page without the container is
// left alone and nothing is fetched. It reports whether the container was
// written.
func (r *Renderer) Cards(ctx context.Context, p *page.Page, req CardsRequest) bool {
	container := p.ByID(req.Container)
	if container.Length() == 0 {
		return false
	}

	idx, err := news.Load(ctx, r.Source, req.IndexPath)
	if err != nil {
		r.Logger.Error("news card render failed", "container", req.Container, "error", err)
		return false
	}

	items := idx.Filter(req.Category).Limit(req.Limit)

	html, err := CardsHTML(items)
	if err != nil {
		r.Logger.Error("news card render failed", "container", req.Container, "error", err)
		return false
	}

	container.SetHtml(html)
	r.Logger.Debug("news cards rendered", "container", req.Container, "category", req.Category, "count", len(items))
	return true
}

// CardsHTML renders the card markup for items.
func CardsHTML(items news.Index) (string, error) {
	var b strings.Builder
	if err := cardsTemplate.Execute(&b, items); err != nil {
		return "", err
	}
	return b.String(), nil
}
