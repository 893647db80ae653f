package site

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ziadkadry99/newsfront/internal/config"
	"github.com/ziadkadry99/newsfront/internal/news"
	"github.com/ziadkadry99/newsfront/internal/progress"
	"github.com/ziadkadry99/newsfront/internal/walker"
)

// Generator builds the site into a static output directory.
type Generator struct {
	SiteDir   string
	OutputDir string
	Include   []string
	Exclude   []string
	Pipeline  *Pipeline
	Reporter  progress.Reporter
	Logger    *slog.Logger
}

// NewGenerator creates a Generator for the configured site and output
// directories. A nil reporter discards progress.
func NewGenerator(cfg *config.Config, pipeline *Pipeline, reporter progress.Reporter, logger *slog.Logger) *Generator {
	if reporter == nil {
		reporter = progress.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		SiteDir:   cfg.SiteDir,
		OutputDir: cfg.OutputDir,
		Include:   cfg.Include,
		Exclude:   cfg.Exclude,
		Pipeline:  pipeline,
		Reporter:  reporter,
		Logger:    logger,
	}
}

// Summary counts what a build produced.
type Summary struct {
	Pages    int   // page shells rendered
	Articles int   // articles pre-rendered at their own path
	Dynamic  int   // articles left to the detail page query
	Failed   int   // articles whose render failed
	Copied   int   // files copied verbatim
	Bytes    int64 // bytes written
}

// articleJob is an article pre-rendered from the detail shell.
type articleJob struct {
	item    news.Item
	relPath string
}

// Generate renders every page shell, pre-renders articles with plain links
// and copies all other files.
func (g *Generator) Generate(ctx context.Context) (*Summary, error) {
	outAbs, err := filepath.Abs(g.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("resolving output dir: %w", err)
	}

	files, err := walker.Walk(walker.WalkerConfig{
		RootDir:  g.SiteDir,
		Include:  g.Include,
		Exclude:  g.Exclude,
		SkipDirs: []string{outAbs},
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files found in %s", g.SiteDir)
	}

	if err := os.MkdirAll(outAbs, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	var (
		pages  []walker.FileInfo
		detail *walker.FileInfo
		sum    = &Summary{}
		taken  = make(map[string]bool, len(files))
	)
	for i, f := range files {
		taken[f.RelPath] = true
		if f.Kind != walker.Page {
			n, err := copyFile(f.Path, filepath.Join(outAbs, filepath.FromSlash(f.RelPath)))
			if err != nil {
				return nil, fmt.Errorf("copying %s: %w", f.RelPath, err)
			}
			sum.Copied++
			sum.Bytes += n
			continue
		}
		pages = append(pages, f)
		if f.URLPath() == g.Pipeline.Paths.DetailPage {
			detail = &files[i]
		}
	}

	jobs := g.articleJobs(ctx, detail, taken, sum)

	g.Reporter.Start(len(pages) + len(jobs))
	done := 0

	for _, f := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		shell, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.RelPath, err)
		}
		res, err := g.Pipeline.Render(ctx, shell, &url.URL{Path: f.URLPath()}, RenderOptions{
			SkipArticle: detail != nil && f.RelPath == detail.RelPath,
		})
		if err != nil {
			return nil, err
		}
		n, err := writeFile(filepath.Join(outAbs, filepath.FromSlash(f.RelPath)), res.HTML)
		if err != nil {
			return nil, err
		}
		sum.Pages++
		sum.Bytes += n
		done++
		g.Reporter.Update(done, f.RelPath)
	}

	if len(jobs) > 0 {
		shell, err := os.ReadFile(detail.Path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", detail.RelPath, err)
		}
		for _, job := range jobs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			u := &url.URL{Path: "/" + job.relPath, RawQuery: url.Values{"id": {job.item.ID}}.Encode()}
			res, err := g.Pipeline.Render(ctx, shell, u, RenderOptions{ForceArticle: true})
			if err != nil {
				return nil, err
			}
			done++
			g.Reporter.Update(done, job.relPath)
			if !res.Article {
				sum.Failed++
				continue
			}
			n, err := writeFile(filepath.Join(outAbs, filepath.FromSlash(job.relPath)), res.HTML)
			if err != nil {
				return nil, err
			}
			sum.Articles++
			sum.Bytes += n
		}
	}

	g.Reporter.Finish()
	g.Logger.Info("site built",
		"output", g.OutputDir,
		"pages", sum.Pages,
		"articles", sum.Articles,
		"dynamic", sum.Dynamic,
		"copied", sum.Copied,
		"size", humanize.Bytes(uint64(sum.Bytes)),
	)
	return sum, nil
}

// articleJobs selects the articles whose link is a plain site path. Links
// through the detail page query stay dynamic, as do links colliding with a
// file of the site.
func (g *Generator) articleJobs(ctx context.Context, detail *walker.FileInfo, taken map[string]bool, sum *Summary) []articleJob {
	idx, err := news.Load(ctx, g.Pipeline.Source, g.Pipeline.Paths.Index)
	if err != nil {
		g.Logger.Warn("news index unavailable, no articles pre-rendered", "error", err)
		return nil
	}

	var jobs []articleJob
	seen := make(map[string]bool)
	for _, item := range idx {
		rel, ok := StaticPath(item.Link)
		switch {
		case !ok:
			sum.Dynamic++
		case detail == nil:
			g.Logger.Warn("no detail page shell, article left dynamic", "id", item.ID, "detail_page", g.Pipeline.Paths.DetailPage)
			sum.Dynamic++
		case taken[rel] || seen[rel]:
			g.Logger.Warn("article link already taken, article left dynamic", "id", item.ID, "link", item.Link)
			sum.Dynamic++
		default:
			seen[rel] = true
			jobs = append(jobs, articleJob{item: item, relPath: rel})
		}
	}
	return jobs
}

// StaticPath returns the output path of a plain site-absolute link such
// as /news/2024-04-10.html. Links with a query, a fragment or a host are
// not static.
func StaticPath(link string) (string, bool) {
	u, err := url.Parse(link)
	if err != nil || u.IsAbs() || u.Host != "" || u.RawQuery != "" || u.Fragment != "" {
		return "", false
	}
	if !strings.HasPrefix(u.Path, "/") {
		return "", false
	}
	rel := strings.TrimPrefix(path.Clean(u.Path), "/")
	if rel == "" || strings.HasSuffix(u.Path, "/") {
		rel = path.Join(rel, "index.html")
	}
	return rel, true
}

func writeFile(dst string, data []byte) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", dst, err)
	}
	return int64(len(data)), nil
}

func copyFile(src, dst string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, err
	}
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}
