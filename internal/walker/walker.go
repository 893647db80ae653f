package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Kind classifies a file of the site tree.
type Kind int

const (
	// Asset is copied verbatim.
	Asset Kind = iota
	// Page is an HTML shell rendered through the page pipeline.
	Page
	// Markdown is an article source.
	Markdown
)

func (k Kind) String() string {
	switch k {
	case Page:
		return "page"
	case Markdown:
		return "markdown"
	default:
		return "asset"
	}
}

// FileInfo holds metadata about a single file discovered during traversal.
type FileInfo struct {
	Path    string // Absolute path on disk.
	RelPath string // Slash-separated path relative to the root directory.
	Size    int64  // File size in bytes.
	Kind    Kind
}

// URLPath returns the site-absolute path the file is served at.
func (f FileInfo) URLPath() string {
	return "/" + f.RelPath
}

// WalkerConfig controls the behaviour of the Walk function.
type WalkerConfig struct {
	RootDir  string   // Root directory to walk.
	Include  []string // Glob patterns selecting page shells among *.html files.
	Exclude  []string // Glob patterns of html files that are never pages.
	SkipDirs []string // Extra directories (relative to RootDir) to leave out, e.g. the build output.
}

// Walk traverses the site tree rooted at config.RootDir and returns every
// regular file, classified as page, markdown or asset, sorted by path. It
// skips default-excluded directories and honours a root .gitignore.
func Walk(config WalkerConfig) ([]FileInfo, error) {
	root, err := filepath.Abs(config.RootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}

	skip := make(map[string]bool, len(config.SkipDirs))
	for _, d := range config.SkipDirs {
		if !filepath.IsAbs(d) {
			d = filepath.Join(root, d)
		}
		if abs, err := filepath.Abs(d); err == nil {
			skip[abs] = true
		}
	}

	gitignorePatterns := loadGitignore(filepath.Join(root, ".gitignore"))

	var files []FileInfo

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Skip entries we cannot read instead of aborting.
			return nil
		}

		if d.IsDir() {
			if path != root && (skipDir(d.Name()) || skip[path]) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if matchesGitignore(relPath, gitignorePatterns) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		files = append(files, FileInfo{
			Path:    path,
			RelPath: relPath,
			Size:    info.Size(),
			Kind:    classify(relPath, config.Include, config.Exclude),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

func classify(relPath string, include, exclude []string) Kind {
	switch {
	case strings.HasSuffix(strings.ToLower(relPath), ".md"):
		return Markdown
	case IsPageShell(relPath, include, exclude):
		return Page
	}
	return Asset
}

// Glob returns the slash-separated paths under root matching a doublestar
// pattern such as "assets/news/**/*.md".
func Glob(root, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("walker: glob %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// loadGitignore reads a .gitignore file and returns its non-empty,
// non-comment lines as patterns.
func loadGitignore(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// matchesGitignore checks if a relative path matches any gitignore pattern.
func matchesGitignore(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	for _, pattern := range patterns {
		dirOnly := strings.HasSuffix(pattern, "/")
		pattern = strings.Trim(pattern, "/")

		if !strings.Contains(pattern, "/") {
			// A slash-free pattern matches any path component; a
			// directory-only one must not match the file name itself.
			parts := strings.Split(relPath, "/")
			if dirOnly {
				parts = parts[:len(parts)-1]
			}
			for _, part := range parts {
				if matched, _ := filepath.Match(pattern, part); matched {
					return true
				}
			}
			continue
		}

		if matched, _ := doublestar.Match(pattern, relPath); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern+"/**", relPath); matched {
			return true
		}
	}
	return false
}
