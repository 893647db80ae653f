package livereload

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses editor save bursts into one reload.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports changes anywhere below a directory.
type Watcher struct {
	Root     string
	Skip     []string // absolute or root-relative directories to ignore
	Debounce time.Duration
	Logger   *slog.Logger
}

// NewWatcher returns a Watcher over root with the default debounce.
func NewWatcher(root string, skip []string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{Root: root, Skip: skip, Debounce: DefaultDebounce, Logger: logger}
}

// Run watches until ctx is done, calling onChange once per burst of events
// with the last path that changed. Directories created while running are
// watched too.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	root, err := filepath.Abs(w.Root)
	if err != nil {
		return fmt.Errorf("livereload: resolve root: %w", err)
	}
	skip := w.skipSet(root)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("livereload: create watcher: %w", err)
	}
	defer func() {
		if err := fw.Close(); err != nil {
			w.Logger.Error("failed to close watcher cleanly", "error", err)
		}
	}()

	if err := addTree(fw, root, skip); err != nil {
		return err
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending string
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod || skipped(event.Name, skip) {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(fw, event.Name, skip); err != nil {
						w.Logger.Warn("watch new directory", "path", event.Name, "error", err)
					}
				}
			}
			pending = event.Name
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.Logger.Debug("site changed", "path", pending)
			onChange(pending)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Logger.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) skipSet(root string) map[string]bool {
	skip := make(map[string]bool, len(w.Skip)+1)
	skip[filepath.Join(root, ".git")] = true
	for _, d := range w.Skip {
		if !filepath.IsAbs(d) {
			d = filepath.Join(root, d)
		}
		skip[filepath.Clean(d)] = true
	}
	return skip
}

func skipped(path string, skip map[string]bool) bool {
	for p := filepath.Clean(path); ; p = filepath.Dir(p) {
		if skip[p] {
			return true
		}
		if parent := filepath.Dir(p); parent == p {
			return false
		}
	}
}

func addTree(fw *fsnotify.Watcher, dir string, skip map[string]bool) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if skip[path] {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("livereload: watch %s: %w", path, err)
		}
		return nil
	})
}
