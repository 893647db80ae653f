// Package page wraps a parsed page shell and implements the operations that
// fill it in place: fragment loading and navigation highlighting.
package page

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// Page is a parsed HTML document together with the URL it is rendered for.
type Page struct {
	doc *goquery.Document
	url *url.URL
}

// Parse reads an HTML document. u supplies the path and query the page is
// rendered for; it is never nil on the returned Page.
//
// Shells that are not valid UTF-8, such as Shift_JIS ones, are decoded
// according to their <meta> declaration. The page always renders as UTF-8,
// so the declaration is rewritten.
func Parse(r io.Reader, u *url.URL) (*Page, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}
	if !utf8.Valid(b) {
		enc, name, _ := charset.DetermineEncoding(b, "")
		if b, err = enc.NewDecoder().Bytes(b); err != nil {
			return nil, fmt.Errorf("decoding page as %s: %w", name, err)
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	if u == nil {
		u = &url.URL{Path: "/"}
	}

	doc.Find("meta[charset]").Each(func(_ int, m *goquery.Selection) {
		m.SetAttr("charset", "utf-8")
	})
	doc.Find("meta[http-equiv]").Each(func(_ int, m *goquery.Selection) {
		if v, _ := m.Attr("http-equiv"); strings.EqualFold(v, "content-type") {
			m.SetAttr("content", "text/html; charset=utf-8")
		}
	})
	return &Page{doc: doc, url: u}, nil
}

// ParseBytes is Parse over a byte slice.
func ParseBytes(b []byte, u *url.URL) (*Page, error) {
	return Parse(bytes.NewReader(b), u)
}

// URL returns the URL the page is rendered for.
func (p *Page) URL() *url.URL { return p.url }

// Document exposes the underlying goquery document.
func (p *Page) Document() *goquery.Document { return p.doc }

// ByID returns the first element whose id attribute equals id exactly.
// The id is compared verbatim, so no selector escaping is needed.
func (p *Page) ByID(id string) *goquery.Selection {
	return p.doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	}).First()
}

// Has reports whether an element with the given id exists.
func (p *Page) Has(id string) bool {
	return p.ByID(id).Length() > 0
}

// Title returns the document title.
func (p *Page) Title() string {
	return p.doc.Find("head title").First().Text()
}

// SetTitle replaces the document title, creating the element if needed.
func (p *Page) SetTitle(title string) {
	el := p.doc.Find("title").First()
	if el.Length() == 0 {
		p.doc.Find("head").First().AppendHtml("<title></title>")
		el = p.doc.Find("title").First()
	}
	el.SetText(title)
}

// AppendToBody appends raw HTML at the end of the body.
func (p *Page) AppendToBody(html string) {
	p.doc.Find("body").First().AppendHtml(html)
}

// Render serializes the document.
func (p *Page) Render() ([]byte, error) {
	out, err := p.doc.Html()
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return []byte(out), nil
}
