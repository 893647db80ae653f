package page

import (
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const activeClass = "active"

var trailingIndex = regexp.MustCompile(`(?i)(/index\.html|/)$`)

// NormalizePath drops one trailing "/index.html" or "/" so that a directory
// and its index page compare equal. The site root normalizes to "".
func NormalizePath(p string) string {
	return trailingIndex.ReplaceAllString(p, "")
}

// InitHeader runs once the header fragment is in place. Dropdown behaviour
// belongs to the browser; here its markup is only checked for presence
// before the navigation is highlighted.
func InitHeader(p *Page, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	doc := p.Document()
	if doc.Find(".dropdown-trigger").Length() == 0 || doc.Find(".has-dropdown").Length() == 0 {
		logger.Warn("header loaded but navigation dropdown elements are missing", "path", p.URL().Path)
	}
	HighlightNav(p)
}

// HighlightNav marks as active every header navigation link whose
// normalized path equals the current normalized path, or is a segment-wise
// proper prefix of it and longer than one character. The enclosing
// .has-dropdown item and its .dropdown-trigger are marked as well.
// Fragment-only links (dropdown triggers), non-http schemes and links to
// other hosts are ignored. It returns the number of links marked.
func HighlightNav(p *Page) int {
	base := p.URL()
	current := NormalizePath(base.Path)
	marked := 0

	p.Document().Find("header nav ul a").Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok || href == "" || strings.HasPrefix(href, "#") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil || (ref.Scheme != "" && ref.Scheme != "http" && ref.Scheme != "https") {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Host != base.Host {
			return
		}

		linkPath := NormalizePath(resolved.Path)
		if !pathMatches(linkPath, current) {
			return
		}

		link.AddClass(activeClass)
		marked++

		if parent := link.Closest(".has-dropdown"); parent.Length() > 0 {
			parent.AddClass(activeClass)
			parent.Find(".dropdown-trigger").First().AddClass(activeClass)
		}
	})
	return marked
}

func pathMatches(linkPath, current string) bool {
	if linkPath == current {
		return true
	}
	return len(linkPath) > 1 && strings.HasPrefix(current, linkPath+"/")
}
