package walker

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// skipDirs holds lower-cased directory names never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	".idea":        true,
	".vscode":      true,
	".newsfront":   true,
}

func skipDir(name string) bool {
	return skipDirs[strings.ToLower(name)]
}

// IsPageShell reports whether the site-relative relPath is an HTML page
// that gets fragments, news lists and articles injected. HTML matching an
// exclude glob (the header and footer fragments, by default) is served
// verbatim like any other asset. An empty include list admits all HTML.
func IsPageShell(relPath string, include, exclude []string) bool {
	rel := strings.TrimPrefix(filepath.ToSlash(relPath), "/")
	switch strings.ToLower(path.Ext(rel)) {
	case ".html", ".htm":
	default:
		return false
	}
	if len(include) > 0 && !globMatch(include, rel) {
		return false
	}
	return !globMatch(exclude, rel)
}

// globMatch tries each pattern on rel and then on its file name alone, so
// "header.html" catches a fragment in any directory.
func globMatch(patterns []string, rel string) bool {
	name := path.Base(rel)
	for _, p := range patterns {
		p = filepath.ToSlash(p)
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
