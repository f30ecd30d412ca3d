// Package watcher reports debounced changes to TypeScript sources so that the
// extract command can rebuild the document while the user edits.
package watcher

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a batch of changes is reported.
const DefaultDebounce = 300 * time.Millisecond

var (
	// ErrStopped is returned by Start after Stop.
	ErrStopped = errors.New("watcher stopped")
	// ErrStarted is returned by a second call to Start.
	ErrStarted = errors.New("watcher already started")
)

// defaultExtensions are the source extensions the loader reads.
var defaultExtensions = []string{".ts", ".tsx", ".mts", ".cts"}

// skippedDirs are never watched.
var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
}

// Watcher monitors source directories and reports changed files in batches.
type Watcher struct {
	watcher    *fsnotify.Watcher
	extensions map[string]bool
	debounce   time.Duration
	logger     *slog.Logger

	mu      sync.Mutex
	pending map[string]bool
	timer   *time.Timer

	stateMu  sync.Mutex
	started  bool
	stopped  bool
	cancel   context.CancelFunc
	stopOnce sync.Once
	doneCh   chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before changes are reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithExtensions replaces the monitored file extensions.
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		w.extensions = make(map[string]bool, len(exts))
		for _, ext := range exts {
			w.extensions[ext] = true
		}
	}
}

// WithLogger sets the logger used for watch errors.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a watcher over dirs and their subdirectories.
func New(dirs []string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
		pending:  make(map[string]bool),
		doneCh:   make(chan struct{}),
	}
	WithExtensions(defaultExtensions...)(w)
	for _, opt := range opts {
		opt(w)
	}

	for _, dir := range dirs {
		if err := w.addRecursive(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Start begins watching. fn receives the sorted slash paths of every file
// changed during one debounce window. Calls to fn never overlap; changes made
// while fn runs are reported in the next batch. A watcher starts once and
// cannot be restarted after Stop.
func (w *Watcher) Start(ctx context.Context, fn func(files []string)) error {
	w.stateMu.Lock()
	defer w.stateMu.Unlock()
	switch {
	case w.stopped:
		return ErrStopped
	case w.started:
		return ErrStarted
	}
	w.started = true

	ctx, w.cancel = context.WithCancel(ctx)
	fire := make(chan struct{}, 1)
	go w.loop(ctx, fn, fire)
	return nil
}

// Stop stops watching and waits for the event loop to exit. It is safe to
// call more than once, and before Start.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		w.stateMu.Lock()
		w.stopped = true
		cancel := w.cancel
		w.stateMu.Unlock()

		if cancel != nil {
			cancel()
			<-w.doneCh
		}
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) loop(ctx context.Context, fn func([]string), fire chan struct{}) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", "dir", event.Name, "error", err)
					}
				}
			}
			if !w.relevant(event) {
				continue
			}
			w.mu.Lock()
			w.pending[filepath.ToSlash(event.Name)] = true
			w.mu.Unlock()
			w.resetTimer(fire)

		case <-fire:
			if files := w.drain(); len(files) > 0 {
				fn(files)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

// drain returns and clears the pending changes.
func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := make([]string, 0, len(w.pending))
	for f := range w.pending {
		files = append(files, f)
	}
	w.pending = make(map[string]bool)
	sort.Strings(files)
	return files
}

func (w *Watcher) resetTimer(fire chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case fire <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// relevant reports writes, creations, removals and renames of monitored files.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return w.extensions[filepath.Ext(event.Name)]
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			w.logger.Warn("error accessing path", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skippedDirs[d.Name()] {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "dir", path, "error", err)
		}
		return nil
	})
}
