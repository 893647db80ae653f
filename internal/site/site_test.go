package site

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/newsfront/internal/config"
	"github.com/ziadkadry99/newsfront/internal/livereload"
	"github.com/ziadkadry99/newsfront/internal/markdown"
	"github.com/ziadkadry99/newsfront/internal/source"
)

func testdataDir(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok)
	dir, err := filepath.Abs(filepath.Join(filepath.Dir(filename), "..", "..", "testdata", "site"))
	require.NoError(t, err)
	return dir
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.SiteDir = testdataDir(t)
	cfg.OutputDir = t.TempDir()
	return cfg
}

func newTestPipeline(t *testing.T, cfg *config.Config) (*Pipeline, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	md := markdown.New(markdown.Options{HighlightStyle: cfg.Markdown.HighlightStyle})
	return NewPipeline(cfg, source.NewDir(cfg.SiteDir), md, logger), &logs
}

func readShell(t *testing.T, rel string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(testdataDir(t), filepath.FromSlash(rel)))
	require.NoError(t, err)
	return b
}

func parse(t *testing.T, html []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestPipeline_IndexPage(t *testing.T) {
	p, _ := newTestPipeline(t, testConfig(t))

	res, err := p.Render(context.Background(), readShell(t, "index.html"), &url.URL{Path: "/index.html"}, RenderOptions{})
	require.NoError(t, err)

	assert.True(t, res.Header)
	assert.True(t, res.Footer)
	assert.False(t, res.Article)
	assert.Equal(t, 1, res.Widgets)

	doc := parse(t, res.HTML)
	assert.Equal(t, 1, doc.Find("#header header.site-header").Length())
	assert.Equal(t, 1, doc.Find("#footer footer.site-footer").Length())
	assert.Equal(t, 3, doc.Find("#latest-news-cards a.news-card").Length())

	active := doc.Find("header nav ul a.active")
	require.Equal(t, 1, active.Length())
	href, _ := active.Attr("href")
	assert.Equal(t, "/", href)
	assert.True(t, strings.HasPrefix(string(res.HTML), "<!DOCTYPE html>"))
}

func TestPipeline_CategoryWidget(t *testing.T) {
	p, _ := newTestPipeline(t, testConfig(t))

	res, err := p.Render(context.Background(), readShell(t, "sjcaa/index.html"), &url.URL{Path: "/sjcaa/"}, RenderOptions{})
	require.NoError(t, err)

	doc := parse(t, res.HTML)
	cards := doc.Find("#sjcaa-news-cards a.news-card")
	require.Equal(t, 1, cards.Length())
	href, _ := cards.Attr("href")
	assert.Equal(t, "/news/2024-04-10-sjcaa-forum.html", href)

	assert.True(t, doc.Find(`a[href="/sjcaa/"]`).HasClass("active"))
	assert.True(t, doc.Find(".has-dropdown").HasClass("active"))
	assert.True(t, doc.Find(".dropdown-trigger").HasClass("active"))
}

func TestPipeline_DetailPage(t *testing.T) {
	p, _ := newTestPipeline(t, testConfig(t))

	u := &url.URL{Path: "/news/detail.html", RawQuery: "id=2024-04-10-sjcaa-forum"}
	res, err := p.Render(context.Background(), readShell(t, "news/detail.html"), u, RenderOptions{})
	require.NoError(t, err)
	require.True(t, res.Article)

	doc := parse(t, res.HTML)
	assert.Equal(t, "SJCAA 交流フォーラム開催報告 | 株式会社アジア太平洋協力会", doc.Find("title").Text())
	assert.Equal(t, "SJCAA 交流フォーラム開催報告", doc.Find("#article-title").Text())
	assert.Equal(t, "2024年04月10日", doc.Find("#article-date").Text())
	assert.Equal(t, "SJCAA関連", doc.Find("#article-category").Text())
	assert.Contains(t, doc.Find("#article-body-content").Text(), "参加者")
	assert.NotContains(t, doc.Find("#article-body-content").Text(), "title:")

	prev, _ := doc.Find("#pagination-nav-container a.prev").Attr("href")
	next, _ := doc.Find("#pagination-nav-container a.next").Attr("href")
	all, _ := doc.Find("#pagination-nav-container a.all-news").Attr("href")
	assert.Equal(t, "/news/detail.html?id=2024-03-05-company", prev)
	assert.Equal(t, "/news/detail.html?id=2024-05-20-eihua-open", next)
	assert.Equal(t, "/news/news-list.html", all)
}

func TestPipeline_UnknownArticleLeavesShell(t *testing.T) {
	p, logs := newTestPipeline(t, testConfig(t))

	u := &url.URL{Path: "/news/detail.html", RawQuery: "id=nope"}
	res, err := p.Render(context.Background(), readShell(t, "news/detail.html"), u, RenderOptions{})
	require.NoError(t, err)
	assert.False(t, res.Article)
	assert.True(t, res.Header, "other operations still run")

	doc := parse(t, res.HTML)
	assert.Equal(t, "ニュース | 株式会社アジア太平洋協力会", doc.Find("title").Text())
	assert.Empty(t, doc.Find("#article-title").Text())
	assert.Equal(t, 1, strings.Count(logs.String(), "article render failed"))
}

func TestPipeline_SkipArticle(t *testing.T) {
	p, logs := newTestPipeline(t, testConfig(t))

	res, err := p.Render(context.Background(), readShell(t, "news/detail.html"), &url.URL{Path: "/news/detail.html"}, RenderOptions{SkipArticle: true})
	require.NoError(t, err)
	assert.False(t, res.Article)
	assert.NotContains(t, logs.String(), "article render failed")
}

func TestPipeline_MissingFragmentIsIsolated(t *testing.T) {
	cfg := testConfig(t)
	cfg.Paths.Header = "/assets/html/missing.html"
	p, logs := newTestPipeline(t, cfg)

	res, err := p.Render(context.Background(), readShell(t, "index.html"), &url.URL{Path: "/"}, RenderOptions{})
	require.NoError(t, err)

	assert.False(t, res.Header)
	assert.True(t, res.Footer)
	assert.Equal(t, 1, res.Widgets)
	assert.Equal(t, 1, strings.Count(logs.String(), "fragment load failed"))

	doc := parse(t, res.HTML)
	assert.Empty(t, strings.TrimSpace(doc.Find("#header").Text()))
}

func TestPipeline_LiveReload(t *testing.T) {
	p, _ := newTestPipeline(t, testConfig(t))
	p.LiveReload = true

	res, err := p.Render(context.Background(), readShell(t, "index.html"), &url.URL{Path: "/"}, RenderOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(res.HTML), livereload.Path)
	assert.Equal(t, 1, parse(t, res.HTML).Find("body > script").Length())
}

func TestPipeline_IsDetail(t *testing.T) {
	p, _ := newTestPipeline(t, testConfig(t))
	assert.True(t, p.IsDetail("/news/detail.html"))
	assert.True(t, p.IsDetail("/en/news/detail.html"))
	assert.False(t, p.IsDetail("/news/news-list.html"))

	p.Paths.DetailPage = ""
	assert.False(t, p.IsDetail("/news/detail.html"))
}

type recordingReporter struct {
	total   int
	updates []string
	done    bool
}

func (r *recordingReporter) Start(total int)        { r.total = total }
func (r *recordingReporter) Update(_ int, m string) { r.updates = append(r.updates, m) }
func (r *recordingReporter) Finish()                { r.done = true }

func TestGenerator_Generate(t *testing.T) {
	cfg := testConfig(t)
	p, logs := newTestPipeline(t, cfg)
	rep := &recordingReporter{}
	g := NewGenerator(cfg, p, rep, p.Logger)

	sum, err := g.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, sum.Pages)
	assert.Equal(t, 1, sum.Articles)
	assert.Equal(t, 2, sum.Dynamic)
	assert.Equal(t, 0, sum.Failed)
	assert.Equal(t, 8, sum.Copied)
	assert.Positive(t, sum.Bytes)

	assert.Equal(t, 5, rep.total)
	assert.Len(t, rep.updates, 5)
	assert.True(t, rep.done)
	assert.NotContains(t, logs.String(), "article render failed")

	out := func(rel string) []byte {
		b, err := os.ReadFile(filepath.Join(cfg.OutputDir, filepath.FromSlash(rel)))
		require.NoError(t, err)
		return b
	}

	index := parse(t, out("index.html"))
	assert.Equal(t, 3, index.Find("#latest-news-cards a.news-card").Length())
	assert.Equal(t, 1, index.Find("#footer footer").Length())

	detail := parse(t, out("news/detail.html"))
	assert.Empty(t, detail.Find("#article-title").Text())

	article := parse(t, out("news/2024-04-10-sjcaa-forum.html"))
	assert.Equal(t, "SJCAA 交流フォーラム開催報告", article.Find("#article-title").Text())
	assert.Contains(t, article.Find("#article-body-content").Text(), "参加者")

	assert.Equal(t, readShell(t, "assets/css/style.css"), out("assets/css/style.css"))
	assert.Equal(t, readShell(t, "assets/news/draft-unlisted.md"), out("assets/news/draft-unlisted.md"))
	assert.Equal(t, readShell(t, "assets/html/header.html"), out("assets/html/header.html"))
}

func TestGenerator_OutputInsideSiteIsSkipped(t *testing.T) {
	site := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(site, "index.html"), []byte("<html><body><p>hi</p></body></html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(site, "dist"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(site, "dist", "stale.html"), []byte("old"), 0o644))

	cfg := config.DefaultConfig()
	cfg.SiteDir = site
	cfg.OutputDir = filepath.Join(site, "dist")
	p, logs := newTestPipeline(t, cfg)

	sum, err := NewGenerator(cfg, p, nil, p.Logger).Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Pages)
	assert.Zero(t, sum.Copied)
	assert.Zero(t, sum.Articles)
	assert.Contains(t, logs.String(), "news index unavailable")
	assert.FileExists(t, filepath.Join(site, "dist", "index.html"))
}

func TestGenerator_EmptySite(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SiteDir = t.TempDir()
	cfg.OutputDir = t.TempDir()
	p, _ := newTestPipeline(t, cfg)

	_, err := NewGenerator(cfg, p, nil, nil).Generate(context.Background())
	assert.Error(t, err)
}

func TestStaticPath(t *testing.T) {
	tests := []struct {
		link string
		want string
		ok   bool
	}{
		{"/news/2024-04-10.html", "news/2024-04-10.html", true},
		{"/news/forum/", "news/forum/index.html", true},
		{"/", "index.html", true},
		{"/news/detail.html?id=x", "", false},
		{"/news/a.html#top", "", false},
		{"https://example.com/a.html", "", false},
		{"//example.com/a.html", "", false},
		{"news/a.html", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			got, ok := StaticPath(tt.link)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
