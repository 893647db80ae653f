package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// siteMarkers are files whose presence identifies a site root.
var siteMarkers = []string{
	"index.html",
	"assets/data/news-index.json",
	"assets/html/header.html",
}

// detectSiteDir returns "." when the working directory looks like a site
// root, otherwise the first immediate subdirectory that does.
func detectSiteDir() string {
	if isSiteRoot(".") {
		return "."
	}
	entries, err := os.ReadDir(".")
	if err != nil {
		return "."
	}
	for _, e := range entries {
		if e.IsDir() && isSiteRoot(e.Name()) {
			return e.Name()
		}
	}
	return "."
}

func isSiteRoot(dir string) bool {
	for _, marker := range siteMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to newsfront! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Site directory.
	sitePrompt := promptui.Prompt{
		Label:   "Site directory (contains index.html and assets/)",
		Default: detectSiteDir(),
	}
	siteDir, err := sitePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site dir: %w", err)
	}
	cfg.SiteDir = siteDir

	// 2. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for newsfront build",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	// 3. Resource source.
	sourcePrompt := promptui.Select{
		Label: "Where are fragments, the index and articles read from?",
		Items: []string{
			"local: the site directory",
			"remote: an http(s) origin",
		},
	}
	sourceIdx, _, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("source selection: %w", err)
	}
	if sourceIdx == 1 {
		urlPrompt := promptui.Prompt{
			Label: "Origin base URL",
			Validate: func(s string) error {
				if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
					return fmt.Errorf("must start with http:// or https://")
				}
				return nil
			},
		}
		baseURL, err := urlPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("base url: %w", err)
		}
		cfg.Source.BaseURL = strings.TrimRight(baseURL, "/")
	}

	// 4. Server port.
	portPrompt := promptui.Prompt{
		Label:   "Port for newsfront serve",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			_, err := parsePort(s)
			return err
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	if cfg.Server.Port, err = parsePort(portStr); err != nil {
		return nil, err
	}

	// 5. Sanitization.
	sanitizePrompt := promptui.Select{
		Label: "Sanitize rendered article HTML?",
		Items: []string{"no: articles are author-controlled", "yes: strip scripts and unsafe attributes"},
	}
	sanitizeIdx, _, err := sanitizePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("sanitize selection: %w", err)
	}
	cfg.Markdown.Sanitize = sanitizeIdx == 1

	// 6. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	if excludeStr != "" {
		cfg.Exclude = append(cfg.Exclude, splitAndTrim(excludeStr)...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}

// parsePort reads a TCP port number.
func parsePort(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 65535 {
		return 0, fmt.Errorf("port %q: not a number between 0 and 65535", s)
	}
	return n, nil
}
