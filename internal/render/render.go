// Package render fills news containers of a page: card lists, the article
// detail view and its previous/next navigation.
package render

import (
	"html/template"
	"log/slog"

	"github.com/ziadkadry99/newsfront/internal/markdown"
	"github.com/ziadkadry99/newsfront/internal/news"
	"github.com/ziadkadry99/newsfront/internal/source"
)

// Element ids the article view writes into.
const (
	ArticleTitleID    = "article-title"
	ArticleDateID     = "article-date"
	ArticleCategoryID = "article-category"
	BreadcrumbTitleID = "breadcrumb-article-title"
	ArticleBodyID     = "article-body-content"
	PaginationID      = "pagination-nav-container"
)

// Renderer renders news content into pages.
type Renderer struct {
	Source      source.Source
	Markdown    markdown.Converter // nil aborts every article render
	Logger      *slog.Logger
	TitleSuffix string
	ListPage    string
}

// New returns a Renderer. A nil logger uses slog.Default().
func New(src source.Source, md markdown.Converter, logger *slog.Logger, titleSuffix, listPage string) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		Source:      src,
		Markdown:    md,
		Logger:      logger,
		TitleSuffix: titleSuffix,
		ListPage:    listPage,
	}
}

var funcs = template.FuncMap{
	"formatDate": news.FormatDate,
}

var cardsTemplate = template.Must(template.New("cards").Funcs(funcs).Parse(`
{{- range .}}
<a href="{{.Link}}" class="news-card">
    <img src="{{.Image}}" alt="{{.Title}}">
    <div class="news-card-content">
        <time datetime="{{.Date}}">{{formatDate .Date}}</time>
        <h3>{{.Title}}</h3>
        {{- if .Summary}}
        <p class="news-summary">{{.Summary}}</p>
        {{- end}}
    </div>
</a>
{{- end}}
`))

var paginationTemplate = template.Must(template.New("pagination").Parse(
	`{{if .Prev}}<a href="{{.Prev.Link}}" class="prev"> &lt; 前の記事へ</a>{{else}}<div class="prev-placeholder"></div>{{end}}` +
		`<a href="{{.ListPage}}" class="all-news">ニュース一覧へ戻る</a>` +
		`{{if .Next}}<a href="{{.Next.Link}}" class="next">次の記事へ &gt; </a>{{else}}<div class="next-placeholder"></div>{{end}}`,
))
