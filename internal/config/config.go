package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides. Nested keys use a double
// underscore: NEWSFRONT_SERVER__PORT -> server.port.
const EnvPrefix = "NEWSFRONT_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (NEWSFRONT_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps NEWSFRONT_SERVER__PORT to server.port.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.SiteDir == "" && c.Source.BaseURL == "" {
		return fmt.Errorf("site_dir or source.base_url is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}

	for name, p := range map[string]string{
		"paths.header":      c.Paths.Header,
		"paths.footer":      c.Paths.Footer,
		"paths.index":       c.Paths.Index,
		"paths.detail_page": c.Paths.DetailPage,
		"paths.list_page":   c.Paths.ListPage,
	} {
		if p == "" {
			return fmt.Errorf("%s is required", name)
		}
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("%s must be site-absolute (start with /), got %q", name, p)
		}
	}

	seen := make(map[string]bool, len(c.Widgets))
	for i, w := range c.Widgets {
		if w.Container == "" {
			return fmt.Errorf("widgets[%d]: container is required", i)
		}
		if seen[w.Container] {
			return fmt.Errorf("widgets[%d]: duplicate container %q", i, w.Container)
		}
		seen[w.Container] = true
		if w.Limit < 0 {
			return fmt.Errorf("widgets[%d]: limit must be non-negative", i)
		}
	}

	if c.Markdown.HighlightStyle != "" && styles.Get(c.Markdown.HighlightStyle) == styles.Fallback {
		return fmt.Errorf("unknown markdown.highlight_style %q", c.Markdown.HighlightStyle)
	}

	if c.Source.BaseURL != "" && !strings.HasPrefix(c.Source.BaseURL, "http://") && !strings.HasPrefix(c.Source.BaseURL, "https://") {
		return fmt.Errorf("source.base_url must be an http(s) URL, got %q", c.Source.BaseURL)
	}
	if c.Source.TimeoutSeconds < 0 {
		return fmt.Errorf("source.timeout_seconds must be non-negative")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535")
	}

	return nil
}
