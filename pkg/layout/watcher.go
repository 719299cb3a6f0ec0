package layout

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a layout directory when its documents change and hands the
// fresh set to a callback. Intended for development servers; production
// admins load once at boot.
type Watcher struct {
	dir      string
	patterns []string
	debounce time.Duration
	logger   *slog.Logger
	onReload func(*Set, error)

	watcher *fsnotify.Watcher

	mu    sync.Mutex
	dirty bool
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the watcher waits for further changes before
// reloading.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithPatterns replaces the include globs passed to Load on reload.
func WithPatterns(patterns ...string) WatcherOption {
	return func(w *Watcher) { w.patterns = patterns }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher builds a watcher over the given layout directory. onReload
// receives every reload result, including failures.
func NewWatcher(dir string, onReload func(*Set, error), opts ...WatcherOption) (*Watcher, error) {
	if dir == "" {
		return nil, errors.New("layout: watch directory is required")
	}
	if onReload == nil {
		return nil, errors.New("layout: reload callback is required")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		dir:      dir,
		debounce: 500 * time.Millisecond,
		logger:   slog.Default(),
		onReload: onReload,
		watcher:  fsw,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start watches the directory tree and begins processing events. The watcher
// stops when ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addWatchesRecursive(w.dir); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("layout watcher started",
		"dir", w.dir,
		"debounce", w.debounce)
	return nil
}

// Stop closes the underlying filesystem watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if strings.HasPrefix(base, ".") && base != "." && path != root {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		} else {
			w.logger.Debug("watching directory", "path", path)
		}
		return nil
	})
}

func (w *Watcher) processEvents(ctx context.Context) {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("layout watcher error", "error", err)

		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}
	if !isLayoutFile(event.Name) {
		return
	}

	w.mu.Lock()
	w.dirty = true
	w.mu.Unlock()

	w.logger.Debug("layout change detected", "path", event.Name, "op", event.Op.String())
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if !w.dirty {
		w.mu.Unlock()
		return
	}
	w.dirty = false
	w.mu.Unlock()

	set, err := Load(os.DirFS(w.dir), w.patterns...)
	if err != nil {
		w.logger.Error("layout reload failed", "dir", w.dir, "error", err)
	} else {
		w.logger.Info("layout reloaded", "dir", w.dir, "admins", len(set.Codes()))
	}
	w.onReload(set, err)
}

func isLayoutFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
