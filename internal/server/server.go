// Package server renders page shells per request and serves the rest of the
// site, the news API and the live-reload endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/newsfront/internal/livereload"
	"github.com/ziadkadry99/newsfront/internal/site"
	"github.com/ziadkadry99/newsfront/internal/source"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool     // allow all CORS origins
	Include  []string // globs selecting page shells
	Exclude  []string // globs of html files served verbatim
}

// Server is the development server for a news site.
type Server struct {
	cfg        Config
	pipeline   *site.Pipeline
	src        source.Source
	hub        *livereload.Hub
	logger     *slog.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a Server rendering through pipeline. A non-nil hub enables
// the live-reload endpoint and client script injection.
func New(cfg Config, pipeline *site.Pipeline, hub *livereload.Hub, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	pipeline.LiveReload = hub != nil

	s := &Server{
		cfg:      cfg,
		pipeline: pipeline,
		src:      pipeline.Source,
		hub:      hub,
		logger:   logger,
	}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(s.logger))
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// The websocket outlives any request timeout.
	if s.hub != nil {
		r.Get(livereload.Path, s.hub.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// Health check
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		r.Route("/api/news", func(r chi.Router) {
			r.Get("/", s.handleNewsList)
			r.Get("/{id}", s.handleNewsItem)
		})

		r.Get("/*", s.handleSite)
		r.Head("/*", s.handleSite)
	})

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port. It returns nil after a
// graceful Shutdown, including one that happened before Start.
func (s *Server) Start() error {
	s.logger.Info("newsfront server listening", "addr", s.httpServer.Addr, "live_reload", s.hub != nil)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.hub != nil {
		s.hub.Close()
	}
	return s.httpServer.Shutdown(ctx)
}

// accessLog writes one structured line per request.
func accessLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
