package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/newsfront/internal/news"
	"github.com/ziadkadry99/newsfront/internal/site"
	"github.com/ziadkadry99/newsfront/internal/source"
	"github.com/ziadkadry99/newsfront/internal/walker"
)

// itemResponse is one article with its neighbours.
type itemResponse struct {
	Item news.Item  `json:"item"`
	Prev *news.Item `json:"prev,omitempty"`
	Next *news.Item `json:"next,omitempty"`
}

// handleNewsList returns the index filtered by ?category= and truncated to
// ?limit=, with the card renderer's semantics.
func (s *Server) handleNewsList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	idx, err := news.Load(r.Context(), s.src, s.pipeline.Paths.Index)
	if err != nil {
		s.logger.Error("news index unavailable", "error", err)
		writeError(w, http.StatusBadGateway, "news index unavailable")
		return
	}

	items := idx.Filter(r.URL.Query().Get("category")).Limit(limit)
	if items == nil {
		items = news.Index{}
	}
	writeJSON(w, http.StatusOK, items)
}

// handleNewsItem returns one article and its previous and next entries.
func (s *Server) handleNewsItem(w http.ResponseWriter, r *http.Request) {
	idx, err := news.Load(r.Context(), s.src, s.pipeline.Paths.Index)
	if err != nil {
		s.logger.Error("news index unavailable", "error", err)
		writeError(w, http.StatusBadGateway, "news index unavailable")
		return
	}

	item, prev, next, err := idx.Neighbors(chi.URLParam(r, "id"))
	if errors.Is(err, news.ErrNotFound) {
		writeError(w, http.StatusNotFound, "news item not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Item: item, Prev: prev, Next: next})
}

// handleSite renders page shells and serves every other file verbatim.
func (s *Server) handleSite(w http.ResponseWriter, r *http.Request) {
	p := source.Clean(r.URL.Path)
	if strings.HasSuffix(r.URL.Path, "/") {
		p = path.Join(p, "index.html")
	}

	body, err := s.src.Fetch(r.Context(), p)
	if err != nil {
		if !source.IsNotFound(err) {
			s.logger.Error("fetch failed", "path", p, "error", err)
			http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
			return
		}
		// A directory requested without its trailing slash.
		if path.Ext(p) == "" {
			if _, err := s.src.Fetch(r.Context(), path.Join(p, "index.html")); err == nil {
				target := p + "/"
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				http.Redirect(w, r, target, http.StatusMovedPermanently)
				return
			}
		}
		if s.serveArticle(w, r, p) {
			return
		}
		http.NotFound(w, r)
		return
	}

	if s.isShell(p) {
		s.renderShell(w, r, body, r.URL, site.RenderOptions{})
		return
	}

	w.Header().Set("Content-Type", contentType(p, body))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(body)
	}
}

// serveArticle renders the article whose plain link is p from the detail
// shell, the way a build pre-renders it. It reports whether p was such a
// link.
func (s *Server) serveArticle(w http.ResponseWriter, r *http.Request, p string) bool {
	rel := strings.TrimPrefix(p, "/")
	idx, err := news.Load(r.Context(), s.src, s.pipeline.Paths.Index)
	if err != nil {
		return false
	}

	for _, item := range idx {
		if link, ok := site.StaticPath(item.Link); !ok || link != rel {
			continue
		}
		shell, err := s.src.Fetch(r.Context(), s.pipeline.Paths.DetailPage)
		if err != nil {
			s.logger.Error("detail page unavailable", "path", s.pipeline.Paths.DetailPage, "error", err)
			return false
		}
		u := *r.URL
		q := u.Query()
		q.Set("id", item.ID)
		u.RawQuery = q.Encode()
		s.renderShell(w, r, shell, &u, site.RenderOptions{ForceArticle: true})
		return true
	}
	return false
}

func (s *Server) renderShell(w http.ResponseWriter, r *http.Request, shell []byte, u *url.URL, opts site.RenderOptions) {
	res, err := s.pipeline.Render(r.Context(), shell, u, opts)
	if err != nil {
		s.logger.Error("page render failed", "path", u.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(res.HTML)
	}
}

// isShell reports whether p names a page shell under the configured globs.
func (s *Server) isShell(p string) bool {
	return walker.IsPageShell(p, s.cfg.Include, s.cfg.Exclude)
}

// contentType picks a type from the extension, sniffing the content when
// the extension is unknown.
func contentType(p string, body []byte) string {
	if ct := mime.TypeByExtension(path.Ext(p)); ct != "" {
		return ct
	}
	return mimetype.Detect(body).String()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
