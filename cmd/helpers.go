package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ziadkadry99/newsfront/internal/config"
	"github.com/ziadkadry99/newsfront/internal/markdown"
	"github.com/ziadkadry99/newsfront/internal/site"
	"github.com/ziadkadry99/newsfront/internal/source"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `newsfront init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	if !verbose {
		logLevel.Set(parseLevel(cfg.LogLevel))
	}
	logger.Debug("configuration loaded",
		"site_dir", cfg.SiteDir,
		"output_dir", cfg.OutputDir,
		"base_url", cfg.Source.BaseURL,
		"widgets", len(cfg.Widgets),
	)
	return cfg, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newSource reads from the remote origin when one is configured, from the
// site directory otherwise.
func newSource(cfg *config.Config) source.Source {
	if cfg.Source.BaseURL != "" {
		return source.NewHTTP(cfg.Source.BaseURL, time.Duration(cfg.Source.TimeoutSeconds)*time.Second)
	}
	return source.NewDir(cfg.SiteDir)
}

func newConverter(cfg *config.Config) *markdown.Renderer {
	return markdown.New(markdown.Options{
		HighlightStyle: cfg.Markdown.HighlightStyle,
		Sanitize:       cfg.Markdown.Sanitize,
	})
}

func newPipeline(cfg *config.Config, src source.Source) *site.Pipeline {
	return site.NewPipeline(cfg, src, newConverter(cfg), logger)
}
