package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ".", cfg.SiteDir)
	assert.Equal(t, "dist", cfg.OutputDir)
	assert.Equal(t, "/assets/data/news-index.json", cfg.Paths.Index)
	assert.Equal(t, "/news/detail.html", cfg.Paths.DetailPage)
	assert.Equal(t, 8080, cfg.Server.Port)
	require.Len(t, cfg.Widgets, 4)
	assert.Equal(t, WidgetConfig{Container: "latest-news-cards", Limit: 3}, cfg.Widgets[0])
	assert.Equal(t, WidgetConfig{Container: "sjcaa-news-cards", Limit: 4, Category: "sjcaa"}, cfg.Widgets[2])
}

func TestDefaultConfigDoesNotShareWidgets(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Widgets[0].Limit = 99
	assert.Equal(t, 3, DefaultWidgets[0].Limit)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.newsfront.yml")

	original := DefaultConfig()
	original.SiteDir = "public"
	original.OutputDir = "out"
	original.Markdown.Sanitize = true
	original.Server.Port = 9000
	original.Widgets = []WidgetConfig{{Container: "news", Limit: 2, Category: "sjcaa"}}

	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, original.SiteDir, loaded.SiteDir)
	assert.Equal(t, original.OutputDir, loaded.OutputDir)
	assert.True(t, loaded.Markdown.Sanitize)
	assert.Equal(t, 9000, loaded.Server.Port)
	assert.Equal(t, original.Widgets, loaded.Widgets)
	assert.Equal(t, original.Paths, loaded.Paths)
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(filepath.Join(dir, "nonexistent.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Paths, cfg.Paths)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")
	require.NoError(t, DefaultConfig().Save(path))

	t.Setenv("NEWSFRONT_OUTPUT_DIR", "public")
	t.Setenv("NEWSFRONT_SERVER__PORT", "9090")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "public", loaded.OutputDir)
	assert.Equal(t, 9090, loaded.Server.Port)
}

func TestLoadUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("site_dir: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"remote source without site dir", func(c *Config) { c.SiteDir = ""; c.Source.BaseURL = "https://example.com" }, false},
		{"no site dir and no source", func(c *Config) { c.SiteDir = "" }, true},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, true},
		{"relative index path", func(c *Config) { c.Paths.Index = "assets/data/news-index.json" }, true},
		{"empty header path", func(c *Config) { c.Paths.Header = "" }, true},
		{"widget without container", func(c *Config) { c.Widgets = []WidgetConfig{{Limit: 1}} }, true},
		{"duplicate widget", func(c *Config) { c.Widgets = append(c.Widgets, c.Widgets[0]) }, true},
		{"negative widget limit", func(c *Config) { c.Widgets[0].Limit = -1 }, true},
		{"unknown highlight style", func(c *Config) { c.Markdown.HighlightStyle = "no-such-style" }, true},
		{"non-http base url", func(c *Config) { c.Source.BaseURL = "ftp://example.com" }, true},
		{"negative timeout", func(c *Config) { c.Source.TimeoutSeconds = -1 }, true},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"drafts/**", []string{"drafts/**"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitAndTrim(tt.input), "splitAndTrim(%q)", tt.input)
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "site_dir", envKey("NEWSFRONT_SITE_DIR"))
	assert.Equal(t, "markdown.sanitize", envKey("NEWSFRONT_MARKDOWN__SANITIZE"))
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"8080", 8080, false},
		{" 3000 ", 3000, false},
		{"0", 0, false},
		{"65535", 65535, false},
		{"", 0, true},
		{"80a", 0, true},
		{"-1", 0, true},
		{"70000", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parsePort(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "port")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
