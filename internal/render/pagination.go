package render

import (
	"strings"

	"github.com/ziadkadry99/newsfront/internal/news"
	"github.com/ziadkadry99/newsfront/internal/page"
)

// Pagination replaces the pagination container with links to the older
// (prev) and newer (next) articles, placeholders where there is none, and a
// link back to the list. Pages without the container are left alone.
func (r *Renderer) Pagination(p *page.Page, prev, next *news.Item) bool {
	container := p.ByID(PaginationID)
	if container.Length() == 0 {
		return false
	}

	html, err := PaginationHTML(prev, next, r.ListPage)
	if err != nil {
		r.Logger.Error("pagination render failed", "error", err)
		return false
	}
	container.SetHtml(html)
	return true
}

// PaginationHTML renders the previous/list/next link row.
func PaginationHTML(prev, next *news.Item, listPage string) (string, error) {
	var b strings.Builder
	err := paginationTemplate.Execute(&b, struct {
		Prev, Next *news.Item
		ListPage   string
	}{prev, next, listPage})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
