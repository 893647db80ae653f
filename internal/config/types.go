package config

// Config is the top-level newsfront configuration, corresponding to .newsfront.yml.
type Config struct {
	SiteDir     string         `yaml:"site_dir" koanf:"site_dir"`
	OutputDir   string         `yaml:"output_dir" koanf:"output_dir"`
	LogLevel    string         `yaml:"log_level" koanf:"log_level"`
	Paths       PathsConfig    `yaml:"paths" koanf:"paths"`
	TitleSuffix string         `yaml:"title_suffix" koanf:"title_suffix"`
	Widgets     []WidgetConfig `yaml:"widgets" koanf:"widgets"`
	Markdown    MarkdownConfig `yaml:"markdown" koanf:"markdown"`
	Source      SourceConfig   `yaml:"source" koanf:"source"`
	Server      ServerConfig   `yaml:"server" koanf:"server"`
	Include     []string       `yaml:"include" koanf:"include"`
	Exclude     []string       `yaml:"exclude" koanf:"exclude"`
	ContentGlob string         `yaml:"content_glob" koanf:"content_glob"`
}

// PathsConfig holds the site-absolute paths of the shared resources.
type PathsConfig struct {
	Header     string `yaml:"header" koanf:"header"`
	Footer     string `yaml:"footer" koanf:"footer"`
	Index      string `yaml:"index" koanf:"index"`
	DetailPage string `yaml:"detail_page" koanf:"detail_page"`
	ListPage   string `yaml:"list_page" koanf:"list_page"`
}

// WidgetConfig binds a card container to a limit and category filter.
// A zero Limit renders every item, an empty Category matches all.
type WidgetConfig struct {
	Container string `yaml:"container" koanf:"container"`
	Limit     int    `yaml:"limit" koanf:"limit"`
	Category  string `yaml:"category" koanf:"category"`
}

// MarkdownConfig controls article rendering.
type MarkdownConfig struct {
	HighlightStyle string `yaml:"highlight_style" koanf:"highlight_style"`
	Sanitize       bool   `yaml:"sanitize" koanf:"sanitize"`
}

// SourceConfig selects where resources are fetched from. An empty BaseURL
// reads from SiteDir.
type SourceConfig struct {
	BaseURL        string `yaml:"base_url" koanf:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" koanf:"timeout_seconds"`
}

// ServerConfig holds settings for newsfront serve.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
	Watch    bool `yaml:"watch" koanf:"watch"`
}
