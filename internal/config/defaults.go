package config

// DefaultWidgets reproduces the card containers of the corporate site and
// its two sub-sites.
var DefaultWidgets = []WidgetConfig{
	{Container: "latest-news-cards", Limit: 3},
	{Container: "full-news-list"},
	{Container: "sjcaa-news-cards", Limit: 4, Category: "sjcaa"},
	{Container: "eihua-juku-news-cards", Limit: 4, Category: "eihua"},
}

// DefaultExcludes are glob patterns never treated as page shells.
var DefaultExcludes = []string{
	"assets/html/**",
	"node_modules/**",
	".git/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteDir:   ".",
		OutputDir: "dist",
		LogLevel:  "info",
		Paths: PathsConfig{
			Header:     "/assets/html/header.html",
			Footer:     "/assets/html/footer.html",
			Index:      "/assets/data/news-index.json",
			DetailPage: "/news/detail.html",
			ListPage:   "/news/news-list.html",
		},
		TitleSuffix: " | 株式会社アジア太平洋協力会",
		Widgets:     append([]WidgetConfig(nil), DefaultWidgets...),
		Markdown: MarkdownConfig{
			HighlightStyle: "github",
		},
		Source: SourceConfig{
			TimeoutSeconds: 10,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Include:     []string{"**/*.html"},
		Exclude:     append([]string(nil), DefaultExcludes...),
		ContentGlob: "assets/news/**/*.md",
	}
}
